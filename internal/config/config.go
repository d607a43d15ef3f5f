package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// StorageDriver selects the snapshot storage backend.
type StorageDriver string

const (
	StorageDriverFS      StorageDriver = "fs"
	StorageDriverMongoDB StorageDriver = "mongodb"
	StorageDriverMemory  StorageDriver = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig holds settings for the snapshot key-value store.
type StorageConfig struct {
	Driver      StorageDriver
	DataDir     string
	MongoURI    string
	MongoDBName string
}

// ReportingConfig holds scheduler and daily-report settings. WebhookURL is
// optional; when empty the daily summary push is disabled.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
	WebhookURL   string
}

// SheetsConfig contains configuration for the optional Google Sheets export.
// Both fields must be set together; leaving both empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Driver:      StorageDriver(getenvWithDefault("STORAGE_DRIVER", string(StorageDriverFS))),
			DataDir:     getenvWithDefault("DATA_DIR", "./data"),
			MongoURI:    os.Getenv("MONGODB_URI"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "chickledger"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "5 0 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			WebhookURL:   os.Getenv("REPORT_WEBHOOK_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and
// optional features are configured consistently.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case StorageDriverFS:
		if c.Storage.DataDir == "" {
			return errors.New("DATA_DIR must be provided for the fs storage driver")
		}
	case StorageDriverMongoDB:
		if c.Storage.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided for the mongodb storage driver")
		}
		if c.Storage.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided for the mongodb storage driver")
		}
	case StorageDriverMemory:
		// Nothing to validate; snapshots will not survive a restart.
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of fs, mongodb, memory (got %q)", c.Storage.Driver)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	return nil
}

// SheetsEnabled reports whether the Google Sheets export is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
