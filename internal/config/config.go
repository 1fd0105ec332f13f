// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// WebhookURL is the document-generation webhook endpoint.
	WebhookURL string

	// GoogleClientID is the OAuth client ID used by sign-in shells.
	GoogleClientID string

	// SessionFile is the path of the local session key/value file.
	SessionFile string

	// Port defines the stub webhook's listening address (ip:port).
	Port string

	// DatabaseDSN holds the submission-archive connection string.
	// Empty disables archiving.
	DatabaseDSN string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.WebhookURL, "url", "https://i43-j.app.n8n.cloud/webhook-test/local-host-test", "document webhook URL")
	flag.StringVar(&options.GoogleClientID, "client-id", "261221329843-j59mr1vc8o63t9b76cp1ahlf2aj6ldmp.apps.googleusercontent.com", "Google OAuth client ID")
	flag.StringVar(&options.SessionFile, "session", "session.json", "path to session file")
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// A .env file is optional; ignore the error when it is absent.
	_ = godotenv.Load()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if webhookURL := os.Getenv("WEBHOOK_URL"); webhookURL != "" {
		options.WebhookURL = webhookURL
	}
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		options.GoogleClientID = clientID
	}
	if sessionFile := os.Getenv("SESSION_FILE"); sessionFile != "" {
		options.SessionFile = sessionFile
	}
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	return options
}
