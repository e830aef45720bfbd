package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config represents the service configuration
type Config struct {
	ProjectID       string
	CredentialsFile string
	Timezone        *time.Location
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("Loaded .env file")
	}

	config := &Config{
		Timezone: time.Local,
	}

	config.ProjectID = os.Getenv("FIREBASE_PROJECT_ID")
	if config.ProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	// Optional; application default credentials are used when unset.
	config.CredentialsFile = os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH")

	// Event date/time strings carry no zone of their own, so expiry is
	// computed in one pinned timezone.
	if tz := os.Getenv("EVENT_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid EVENT_TIMEZONE %q: %w", tz, err)
		}
		config.Timezone = loc
	}

	return config, nil
}
