package terminal

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ledger-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/ledger-atlas/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	opener   commands.Opener
	reporter *export.Reporter
	logger   zerolog.Logger
	globals  commands.Globals
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// Opener resolves profiles into report sessions. Defaults to NewAccountOpener().
	Opener commands.Opener
	Output io.Writer
	Logger *zerolog.Logger
	// ProfilesPath is the default of --profiles-file.
	ProfilesPath string
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Opener == nil {
		opts.Opener = NewAccountOpener()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		opener:   opts.Opener,
		reporter: export.NewReporter(opts.Output),
		logger:   logger,
		globals:  commands.Globals{ProfilesPath: opts.ProfilesPath},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Financial reconciliation and reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.globals.ConfigPath, "config", "c", "", "Path to the settings file (yaml, toml or json)")
	flags.StringVar(&cli.globals.ProfilesPath, "profiles-file", cli.globals.ProfilesPath, "Path to the profiles file")
	flags.StringVarP(&cli.globals.Profile, "profile", "p", "", "Profile to report on; empty uses the settings file alone")

	cmd.AddCommand(commands.NewReportCmd(&cli.globals, cli.opener, cli.reporter))
	cmd.AddCommand(commands.NewTransactionsCmd(&cli.globals, cli.opener, cli.reporter))
	cmd.AddCommand(commands.NewCategoriesCmd(&cli.globals, cli.opener))
	cmd.AddCommand(commands.NewExportCmd(&cli.globals, cli.opener))
	cmd.AddCommand(commands.NewProfilesCmd(&cli.globals, cli.opener))

	return cmd
}
