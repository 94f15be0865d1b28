package config

import (
	"fmt"
	"os"
	"strings"
)

// Config captures runtime configuration values used by the backend service.
type Config struct {
	// ServerAddress is the host:port pair the HTTP server listens on. Defaults to ":8787".
	ServerAddress string

	// DatabaseURL is the Postgres DSN used by database/sql.
	DatabaseURL string

	// YocoSecretKey is the secret key used to authenticate against the Yoco checkout API.
	YocoSecretKey string

	// SitePath is the frontend path that Yoco redirects back to after payment.
	// Defaults to "/queenswood-tennis".
	SitePath string
}

const (
	defaultServerAddress = ":8787"
	defaultSitePath      = "/queenswood-tennis"
	envServerAddress     = "BACKEND_ADDR"
	envDatabaseURL       = "DATABASE_URL"
	envYocoSecretKey     = "YOCO_SECRET_KEY"
	envSitePath          = "SITE_PATH"
)

// Load reads configuration from environment variables, applies defaults, and returns
// a Config structure. Required values return an error when missing.
func Load() (Config, error) {
	cfg := Config{
		ServerAddress: firstNonEmpty(os.Getenv(envServerAddress), defaultServerAddress),
		DatabaseURL:   os.Getenv(envDatabaseURL),
		YocoSecretKey: os.Getenv(envYocoSecretKey),
		SitePath:      firstNonEmpty(os.Getenv(envSitePath), defaultSitePath),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("%s is required", envDatabaseURL)
	}
	if cfg.YocoSecretKey == "" {
		return Config{}, fmt.Errorf("%s is required", envYocoSecretKey)
	}

	if !strings.HasPrefix(cfg.SitePath, "/") {
		cfg.SitePath = "/" + cfg.SitePath
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
