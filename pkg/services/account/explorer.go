package account

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/metrics"
	"github.com/de-tools/ledger-atlas/pkg/services/config"
	"github.com/de-tools/ledger-atlas/pkg/services/export"
	"github.com/de-tools/ledger-atlas/pkg/services/ledger"
	"github.com/de-tools/ledger-atlas/pkg/services/report"
	"github.com/de-tools/ledger-atlas/pkg/services/source"
	"github.com/de-tools/ledger-atlas/pkg/store/client"
)

// Explorer resolves named backends from the profile registry into ready report sessions.
type Explorer interface {
	ListProfiles(ctx context.Context) ([]string, error)
	Open(ctx context.Context, profile string) (*Session, error)
}

// Session is a wired report pipeline for one backend.
type Session struct {
	Settings    *config.Settings
	Metrics     *metrics.Recorder
	Coordinator *report.Coordinator
	// Publisher is nil unless an export bucket is configured.
	Publisher *export.Publisher
}

type accountExplorer struct {
	registry     config.Registry
	settingsPath string
}

// NewExplorer reads settings from settingsPath (may be empty). registry may be nil, in which case
// only the unnamed profile can be opened.
func NewExplorer(registry config.Registry, settingsPath string) Explorer {
	return &accountExplorer{registry: registry, settingsPath: settingsPath}
}

func (a *accountExplorer) ListProfiles(ctx context.Context) ([]string, error) {
	if a.registry == nil {
		return nil, nil
	}
	return a.registry.GetProfiles(ctx)
}

// Open builds a session. An empty profile name uses the settings file and environment alone.
func (a *accountExplorer) Open(ctx context.Context, profile string) (*Session, error) {
	var p *config.Profile
	if profile != "" {
		if a.registry == nil {
			return nil, fmt.Errorf("%w: %s", config.ErrProfileNotFound, profile)
		}
		var err error
		p, err = a.registry.GetProfile(ctx, profile)
		if err != nil {
			return nil, err
		}
	}

	settings, err := config.LoadSettings(a.settingsPath, p)
	if err != nil {
		return nil, err
	}
	return NewSession(ctx, settings)
}

// NewSession wires client, fetcher, normalizer, engine and coordinator for settings.
func NewSession(ctx context.Context, settings *config.Settings) (*Session, error) {
	logger := zerolog.Ctx(ctx)
	recorder := metrics.New()

	c, err := client.New(client.Config{
		BaseURL:  settings.Source.BaseURL,
		Token:    settings.Source.Token,
		Timeout:  settings.Source.Timeout,
		RetryMax: settings.Source.RetryMax,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create source client: %w", err)
	}

	fetcher := source.NewFetcher(c, recorder, source.Config{
		PageSize:      settings.Source.PageSize,
		OverFetchDays: settings.Source.OverFetchDays,
	})
	engine := report.NewEngine(fetcher, ledger.NewNormalizer(recorder))

	session := &Session{
		Settings:    settings,
		Metrics:     recorder,
		Coordinator: report.NewCoordinator(engine),
	}

	if settings.Export.Bucket != "" {
		publisher, err := export.NewS3Publisher(ctx, settings.Export.Region, settings.Export.Bucket, settings.Export.Prefix)
		if err != nil {
			return nil, err
		}
		session.Publisher = publisher
	}

	logger.Debug().
		Str("base_url", settings.Source.BaseURL).
		Bool("publishing", session.Publisher != nil).
		Msg("report session ready")
	return session, nil
}
