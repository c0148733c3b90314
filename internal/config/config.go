package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration, read once at startup.
type Config struct {
	ServerPort    int
	DatabasePath  string
	AppNamespace  string // Scopes collection paths within the store
	StaticDir     string
	AllowedOrigin string
	LogLevel      string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./grindlink.db"),
		AppNamespace:  getEnv("APP_NAMESPACE", "grindlink"),
		StaticDir:     getEnv("STATIC_DIR", "./web"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
