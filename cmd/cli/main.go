package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/runtime/terminal"
	"github.com/de-tools/ledger-atlas/pkg/services/config"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	profilesPath, err := config.DefaultRegistryPath()
	if err != nil {
		logger.Warn().Err(err).Msg("cannot locate home directory, pass --profiles-file")
	}

	cli := terminal.NewCLI(terminal.Options{
		Output:       os.Stdout,
		Logger:       &logger,
		ProfilesPath: profilesPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
