package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tanmay-37/event-ease/repo"
	"github.com/tanmay-37/event-ease/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	connector, err := repo.NewFirestoreConnector(ctx, config.ProjectID, config.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing Firebase")
	}
	defer connector.Close()

	log.Info().Str("project", config.ProjectID).Msg("Cleanup service started")

	archiver := service.NewArchiver(connector, config.Timezone)
	archiver.Start(ctx)

	log.Info().Msg("Cleanup service stopped")
}
