package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"paysum/internal/merge"
)

type Config struct {
	// Merge credentials
	MergeAPIKey       string
	MergeAccountToken string

	// Region selects the Merge API host (US/EU/APAC)
	Region string

	// HTTPTimeout bounds each upstream request end to end
	HTTPTimeout time.Duration
}

func Load() *Config {
	return &Config{
		MergeAPIKey:       getEnv("MERGE_API_KEY", ""),
		MergeAccountToken: getEnv("MERGE_ACCOUNT_TOKEN", ""),
		Region:            getEnv("MERGE_REGION", "US"),
		HTTPTimeout:       getEnvDuration("MERGE_HTTP_TIMEOUT", 30*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid.
// Credentials are checked here, before any fetch starts; the fetch pipeline
// never runs with empty credentials.
func (c *Config) Validate() error {
	var errors []string

	if c.MergeAPIKey == "" {
		errors = append(errors, "MERGE_API_KEY is not set")
	}
	if c.MergeAccountToken == "" {
		errors = append(errors, "MERGE_ACCOUNT_TOKEN is not set")
	}

	if !slices.Contains(merge.Regions(), c.Region) {
		errors = append(errors, fmt.Sprintf("invalid region '%s': must be one of %v", c.Region, merge.Regions()))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
