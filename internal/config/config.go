package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	OTLP       OTLPConfig
	Pagination PaginationConfig
}

type ServerConfig struct {
	Port     string
	AppName  string
	LogLevel string
}

type DatabaseConfig struct {
	URL          string
	Host         string
	User         string
	Password     string
	Name         string
	Port         string
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

type OTLPConfig struct {
	Endpoint    string // empty disables trace export
	ServiceName string
	Environment string
}

type PaginationConfig struct {
	DefaultLimit int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "3000"),
			AppName:  getEnv("APP_NAME", "Product Catalog v1.0"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			Host:         getEnv("DB_HOST", "localhost"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     os.Getenv("DB_PASSWORD"),
			Name:         getEnv("DB_NAME", "catalog"),
			Port:         getEnv("DB_PORT", "5432"),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 100),
		},
		OTLP: OTLPConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "product-catalog"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Pagination: PaginationConfig{
			DefaultLimit: getEnvInt("PAGINATION_DEFAULT_LIMIT", 10),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
