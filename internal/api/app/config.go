package app

import (
	"os"
	"strconv"
	"time"

	"github.com/cedarhq/taskboard/pkg/jwtx"
)

type Config struct {
	Issuer       string // Optional: issuer claim for tokens (default: taskboard)
	SigningKey   string // Optional: path to Ed25519 PKCS8 PEM file; empty generates an ephemeral key
	AccessTTL    time.Duration // Optional: bearer token lifetime (default: 1h)
	DatabaseFile string // Optional: path to SQLite database file (default: ./taskboard.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("TASKBOARD_ISSUER", "taskboard"),
		SigningKey:          os.Getenv("TASKBOARD_SIGNING_KEY_FILE"), // Optional: ephemeral when unset
		AccessTTL:           getEnvDurationOrDefault("TASKBOARD_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		DatabaseFile:        getEnvOrDefault("TASKBOARD_DATABASE_FILE", "taskboard.db"),
		PepperFile:          getEnvOrDefault("TASKBOARD_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
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
