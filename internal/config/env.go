package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvConfig holds the environment-driven settings of the service.
type EnvConfig struct {
	APP_PORT      string
	LOG_FILE_PATH string
	TEMPLATE_DIR  string

	// Optional data source backends for the streaming endpoints.
	DB_DSN         string
	ELASTIC_URL    string
	GCP_PROJECT_ID string

	STREAM_BATCH_SIZE int
}

// DefaultEnvConfig is populated by LoadEnvConfig.
var DefaultEnvConfig EnvConfig

// LoadEnvConfig reads .env if present and fills DefaultEnvConfig from the
// process environment. Missing keys fall back to development defaults.
func LoadEnvConfig() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	DefaultEnvConfig = EnvConfig{
		APP_PORT:          getEnv("APP_PORT", "8080"),
		LOG_FILE_PATH:     getEnv("LOG_FILE_PATH", ""),
		TEMPLATE_DIR:      getEnv("TEMPLATE_DIR", "templates"),
		DB_DSN:            getEnv("DB_DSN", ""),
		ELASTIC_URL:       getEnv("ELASTIC_URL", ""),
		GCP_PROJECT_ID:    getEnv("GCP_PROJECT_ID", ""),
		STREAM_BATCH_SIZE: getEnvInt("STREAM_BATCH_SIZE", 500),
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
