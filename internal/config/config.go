package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	DatabasePath    string
	LinkBaseURL     string
	DefaultLocale   string
	IngestSecret    string
	NewRelicLicense string
	NewRelicAppName string
	NewRelicEnabled bool
}

func Load() *Config {
	newRelicEnabledStr := getEnv("NEW_RELIC_ENABLED", "false")
	newRelicEnabled, err := strconv.ParseBool(newRelicEnabledStr)
	if err != nil {
		newRelicEnabled = false
	}

	return &Config{
		Port:            getEnv("PORT", "16166"),
		DatabasePath:    getEnv("DATABASE_PATH", "./deploys.db"),
		LinkBaseURL:     getEnv("LINK_BASE_URL", "/"),
		DefaultLocale:   getEnv("DEFAULT_LOCALE", "en"),
		IngestSecret:    getEnv("INGEST_SECRET", "change-me-ingest-secret"),
		NewRelicLicense: getEnv("NEW_RELIC_LICENSE_KEY", ""),
		NewRelicAppName: getEnv("NEW_RELIC_APP_NAME", "deploy-dashboard"),
		NewRelicEnabled: newRelicEnabled,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
