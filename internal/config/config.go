package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string

	LogLevel string
	Env      string

	// DatabaseURL and JWTSecret are mandatory. Missing values are a
	// fatal configuration error reported before anything starts.
	DatabaseURL string
	JWTSecret   string

	RedisURL string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        GetEnv("PORT", "8082"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisURL:    GetEnv("REDIS_URL", "redis://localhost:6379"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
