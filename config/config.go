package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration read from the environment
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	ChannelsConfig string         // path to a channels JSON file; empty uses the defaults
	Location       *time.Location // time zone used for day/month report boundaries
	LogLevel       string
	ChromePath     string
	ExportDir      string
	BaseURL        string
}

// Load reads .env (outside production) and then the environment
func Load() (*Config, error) {
	logger := GetLogger()

	if os.Getenv("ENV") != "production" {
		// Overload so .env values win over whatever the shell exported
		if err := godotenv.Overload(".env"); err != nil {
			logger.Warnf("⚠️ Config: .env file not found, using system environment variables (%v)", err)
		} else {
			logger.Info("✅ Config: loaded environment variables from .env")
		}
	}

	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		ChannelsConfig: os.Getenv("CHANNELS_CONFIG"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ChromePath:     os.Getenv("CHROME_PATH"),
		ExportDir:      getEnv("EXPORT_DIR", "exports"),
	}
	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:"+cfg.Port)

	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dbURL

	tz := getEnv("REPORT_TIMEZONE", "America/Sao_Paulo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	SetLevel(cfg.LogLevel)
	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to the individual DB_* variables
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getEnv("DB_PORT", "5432"),
		user,
		os.Getenv("DB_PASSWORD"),
		dbname,
		getEnv("DB_SSLMODE", "disable"),
	), nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
