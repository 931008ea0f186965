package terminal

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/de-tools/ledger-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/ledger-atlas/pkg/services/account"
	"github.com/de-tools/ledger-atlas/pkg/services/config"
)

type accountOpener struct{}

// NewAccountOpener opens sessions through the profile registry and settings file named by the
// global flags.
func NewAccountOpener() commands.Opener {
	return accountOpener{}
}

func (accountOpener) Open(ctx context.Context, g commands.Globals) (*commands.Session, error) {
	explorer, err := explorerFor(g)
	if err != nil {
		return nil, err
	}
	session, err := explorer.Open(ctx, g.Profile)
	if err != nil {
		return nil, err
	}

	out := &commands.Session{Runner: session.Coordinator, Report: session.Settings.Report}
	if session.Publisher != nil {
		out.Publisher = session.Publisher
	}
	return out, nil
}

func (accountOpener) ListProfiles(ctx context.Context, g commands.Globals) ([]string, error) {
	explorer, err := explorerFor(g)
	if err != nil {
		return nil, err
	}
	return explorer.ListProfiles(ctx)
}

// explorerFor tolerates a missing profiles file; only named profiles need it.
func explorerFor(g commands.Globals) (account.Explorer, error) {
	var registry config.Registry
	if g.ProfilesPath != "" {
		if _, err := os.Stat(g.ProfilesPath); err == nil {
			if registry, err = config.NewRegistry(g.ProfilesPath); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return account.NewExplorer(registry, g.ConfigPath), nil
}
