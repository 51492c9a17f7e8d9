// Package config loads application configuration from environment
// variables.  Every value has a documented default so the client runs
// against a local development stack with no configuration at all.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The three service addresses point at the
// independently-owned backend APIs; everything else configures the local
// client itself.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	KioskPort       string // port the local kiosk server listens on
	UserAPIURL      string // base address of the user/auth service
	MovieAPIURL     string // base address of the movie catalog service
	ScreeningAPIURL string // base address of the scheduling service
	SessionFile     string // path of the persisted session record
	AMQPURL         string // RabbitMQ URL for booking events (empty disables)
}

// Load reads configuration from the environment.  Defaults match the
// local development stack: user service on :8000, catalog on :8001,
// scheduling on :8002.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		KioskPort:       getenv("KIOSK_PORT", "5173"),
		UserAPIURL:      getenv("USER_API_URL", "http://localhost:8000"),
		MovieAPIURL:     getenv("MOVIE_API_URL", "http://localhost:8001"),
		ScreeningAPIURL: getenv("SCREENING_API_URL", "http://localhost:8002"),
		SessionFile:     getenv("SESSION_FILE", defaultSessionFile()),
		AMQPURL:         os.Getenv("AMQP_URL"),
	}
}

// defaultSessionFile places the session record under the user's home
// directory.  Falls back to the working directory when home is unknown.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cinelux/session.json"
	}
	return filepath.Join(home, ".cinelux", "session.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
