// Package config loads application configuration from the environment into
// explicit structs. Nothing reads ambient process state after Load returns;
// every component receives the piece of configuration it needs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Ingest   IngestConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// StorageConfig locates uploaded settlement documents on disk.
type StorageConfig struct {
	UploadPath string
}

// IngestConfig controls the inbox sweeper: PDFs dropped into InboxPath are
// picked up on the cron schedule.
type IngestConfig struct {
	InboxPath     string
	SweepSchedule string
	SweepEnabled  bool
}

// Load reads configuration from environment variables, honoring a local
// .env file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "settlements"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			UploadPath: getEnv("STORAGE_UPLOAD_PATH", "./uploads"),
		},
		Ingest: IngestConfig{
			InboxPath:     getEnv("INGEST_INBOX_PATH", "./inbox"),
			SweepSchedule: getEnv("INGEST_SWEEP_SCHEDULE", "*/5 * * * *"),
			SweepEnabled:  getEnvAsBool("INGEST_SWEEP_ENABLED", true),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
