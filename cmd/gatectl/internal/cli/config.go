package cli

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	ServerURL       string        // Gatekeep API server URL (default: http://localhost:8080)
	CredentialsFile string        // Path to the encrypted credential database (default: ~/.gatekeep/credentials.db)
	MasterKeyPath   string        // Optional: path to master encryption key file
	Timeout         time.Duration // Per-request timeout (default: 30s)
	Env             string        // Environment (dev, staging, prod) (default: dev)
	LogLevel        string        // Log level (debug, info, warn, error) (default: warn)
	LogFormat       string        // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		ServerURL:       getEnvOrDefault("GATEKEEP_SERVER", "http://localhost:8080"),
		CredentialsFile: getEnvOrDefault("GATEKEEP_CREDENTIALS_FILE", defaultCredentialsFile()),
		MasterKeyPath:   os.Getenv("GATEKEEP_MASTER_KEY_PATH"), // Optional
		Timeout:         getEnvDurationOrDefault("GATEKEEP_TIMEOUT", 30*time.Second),
		Env:             getEnvOrDefault("ENV", "dev"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.db"
	}
	return filepath.Join(home, ".gatekeep", "credentials.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
