// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port              int           `env:"PORT"                envDefault:"8080"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT"        envDefault:"15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       envDefault:"15s"`
	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN"`

	// Database configuration
	PostgresURL string `env:"POSTGRES_URL"`
	PostgresSSL string `env:"POSTGRES_SSL" envDefault:"require"`

	// View cache configuration; an empty RedisAddr selects the in-process cache
	RedisAddr    string        `env:"REDIS_ADDR"`
	ViewCacheTTL time.Duration `env:"VIEW_CACHE_TTL" envDefault:"5m"`

	// Session configuration
	AuthSecret   string        `env:"AUTH_SECRET,required,notEmpty"`
	SessionTTL   time.Duration `env:"SESSION_TTL"   envDefault:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"true"`

	// Logging configuration
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
}

// LoadConfig loads the application configuration from environment variables.
// A .env file next to the project root, or in the working directory, is
// loaded first when present. The returned notes describe where values came
// from and which settings look incomplete.
func LoadConfig() (*Config, []string, error) {
	notes := []string{loadDotEnv()}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, notes, fmt.Errorf("failed to parse environment: %w", err)
	}

	notes = append(notes, validateConfig(cfg)...)
	return cfg, notes, nil
}

// loadDotEnv loads .env without overriding variables already set
func loadDotEnv() string {
	execPath, err := os.Executable()
	if err == nil {
		projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
		envPath := filepath.Join(projectRoot, ".env")
		if err := godotenv.Load(envPath); err == nil {
			return "Loaded environment variables from " + envPath
		}
	}

	if err := godotenv.Load(); err != nil {
		return "No .env file found or error loading .env file. Using environment variables."
	}
	return "Loaded environment variables from current directory .env file"
}

// validateConfig checks if critical configuration values are set and returns
// a warning for each one that is missing
func validateConfig(config *Config) []string {
	var warnings []string

	if config.PostgresURL == "" {
		warnings = append(warnings, "Warning: No POSTGRES_URL provided. Database requests will fail.")
	}

	if config.RedisAddr == "" {
		warnings = append(warnings, "Warning: No REDIS_ADDR provided. Using the in-process view cache.")
	}

	if !config.CookieSecure {
		warnings = append(warnings, "Warning: COOKIE_SECURE is off. Session cookies will be sent over plain HTTP.")
	}

	switch config.PostgresSSL {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		warnings = append(warnings, fmt.Sprintf("Warning: Unknown POSTGRES_SSL value %q.", config.PostgresSSL))
	}

	return warnings
}
