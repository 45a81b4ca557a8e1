package config

import (
	"os"
)

type Config struct {
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string
	// SeedDatabaseURL is only read by the setup binary when applying the
	// bundled Quartz DDL to a development database.
	SeedDatabaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":3001"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ServiceName:     getEnv("SERVICE_NAME", "quartzboard-api"),
		SeedDatabaseURL: getEnv("SEED_DATABASE_URL", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
