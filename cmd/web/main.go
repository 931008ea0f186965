package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	handlers "github.com/de-tools/ledger-atlas/pkg/handlers/report"
	"github.com/de-tools/ledger-atlas/pkg/server"
	"github.com/de-tools/ledger-atlas/pkg/services/account"
	"github.com/de-tools/ledger-atlas/pkg/services/config"
)

var (
	settingsPath string
	profilesPath string
	profile      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the financial report API",
		RunE:  runServer,
	}

	defaultPath, _ := config.DefaultRegistryPath()

	rootCmd.Flags().StringVarP(&settingsPath, "config", "c", "", "Path to the settings file")
	rootCmd.Flags().StringVar(&profilesPath, "profiles-file", defaultPath, "Path to the profiles file (default is $HOME/.ledgercfg)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile whose backend the server reports on")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	var registry config.Registry
	if profile != "" {
		r, err := config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		registry = r
	}

	session, err := account.NewExplorer(registry, settingsPath).Open(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to prepare report session: %w", err)
	}
	settings := session.Settings

	var publisher handlers.Publisher
	if session.Publisher != nil {
		publisher = session.Publisher
	}

	logger.Info().
		Str("source", settings.Source.BaseURL).
		Str("profile", profile).
		Bool("publishing", publisher != nil).
		Msg("configuration loaded")

	api := server.NewWebAPI(logger, server.Config{
		Addr:      net.JoinHostPort(settings.Server.Host, strconv.Itoa(settings.Server.Port)),
		RateLimit: settings.Server.RateLimit,
		Dependencies: server.Dependencies{
			Runner:    session.Coordinator,
			Publisher: publisher,
			Metrics:   session.Metrics,
			Report:    settings.Report,
		},
	})
	return api.Start()
}
