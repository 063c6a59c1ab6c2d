package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// OpenWeatherAPIKey is used when a request does not carry its own token.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// ReferenceCity is probed to validate API tokens.
	ReferenceCity string

	HTTPTimeout  time.Duration
	FetchRetries int

	// Uploaded dataset retention.
	DatasetMaxAge   time.Duration // 0 = unlimited
	DatasetMaxCount int           // 0 = unlimited

	// JanitorInterval controls how often expired datasets are purged.
	JanitorInterval time.Duration

	MaxUploadBytes int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")
	cfg.ReferenceCity = getenvDefault("REFERENCE_CITY", "London")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchRetries, err = getenvInt("FETCH_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.FetchRetries < 0 {
		return nil, fmt.Errorf("invalid FETCH_RETRIES: must not be negative")
	}

	if cfg.DatasetMaxAge, err = getenvDuration("DATASET_MAX_AGE", "2h"); err != nil {
		return nil, err
	}
	if cfg.DatasetMaxCount, err = getenvInt("DATASET_MAX_COUNT", 32); err != nil {
		return nil, err
	}

	if cfg.JanitorInterval, err = getenvDuration("JANITOR_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	uploadMB, err := getenvInt("MAX_UPLOAD_MB", 16)
	if err != nil {
		return nil, err
	}
	if uploadMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: must be positive")
	}
	cfg.MaxUploadBytes = uploadMB * 1024 * 1024
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
