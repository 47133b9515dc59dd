// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mongotesting/contacts-service/internal/core/cache"
	"github.com/mongotesting/contacts-service/internal/core/docdb"
)

// Log output formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	Cache  CacheConfig
	DocDB  DocDBConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string
	Port            int
	GinMode         string
	ShutdownTimeout time.Duration
	// CORSAllowedOrigins is empty when CORS is disabled.
	CORSAllowedOrigins []string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type     string
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether lookups go through a cache.
func (c CacheConfig) Enabled() bool {
	return cache.Type(c.Type) != cache.TypeNone
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type           string
	URI            string
	Database       string
	Collection     string
	AppName        string
	ConnectTimeout time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "0.0.0.0"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			GinMode:            getEnv("GIN_MODE", "release"),
			ShutdownTimeout:    time.Duration(getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		Cache: CacheConfig{
			Type:     getEnv("CACHE_TYPE", string(cache.TypeNone)),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		DocDB: DocDBConfig{
			Type:           getEnv("DOCDB_TYPE", string(docdb.TypeMongoDB)),
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "clients"),
			Collection:     getEnv("MONGODB_COLLECTION", "contacts"),
			AppName:        getEnv("MONGODB_APP_NAME", "contacts-service"),
			ConnectTimeout: time.Duration(getEnvAsInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", LogFormatJSON),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}

	if !docdb.Type(c.DocDB.Type).Valid() {
		return fmt.Errorf("unsupported DOCDB_TYPE %q", c.DocDB.Type)
	}
	if c.DocDB.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.DocDB.Database == "" || c.DocDB.Collection == "" {
		return fmt.Errorf("MONGODB_DATABASE and MONGODB_COLLECTION must not be empty")
	}
	if c.DocDB.ConnectTimeout <= 0 {
		return fmt.Errorf("MONGODB_CONNECT_TIMEOUT_SECONDS must be positive")
	}

	switch cache.Type(c.Cache.Type) {
	case cache.TypeNone:
	case cache.TypeRedis:
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("CACHE_TTL_SECONDS must be positive")
		}
	default:
		return fmt.Errorf("unsupported CACHE_TYPE %q", c.Cache.Type)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatConsole {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping
// empty entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
