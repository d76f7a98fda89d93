// Package cli provides common CLI initialization utilities: logging setup,
// .env discovery and configuration loading.
package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"paysum/internal/config"
	"paysum/internal/log"
)

// SetupLogger initializes structured logging. Verbose switches the level
// to Debug.
func SetupLogger(verbose bool) *log.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return log.New(level)
}

// LoadEnvFile loads the nearest .env file, walking up from the working
// directory. Local development convenience; missing files are fine and a
// file that fails to parse only warns.
func LoadEnvFile(logger *log.Logger) {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				logger.Warn("could not parse .env file, continuing with existing environment", "path", path, "error", err)
			} else {
				logger.Debug("loaded .env file", "path", path)
			}
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// LoadAndValidateConfig loads the configuration and validates it. Credential
// values are never logged, only their presence.
func LoadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		"region", cfg.Region,
		"http_timeout", cfg.HTTPTimeout,
		"api_key_set", cfg.MergeAPIKey != "",
		"account_token_set", cfg.MergeAccountToken != "")
	return cfg, nil
}
