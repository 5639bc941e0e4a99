package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	AppEnv      string
	JWTSecret   string

	// Deployment policy toggles. Read once at startup and injected into
	// the account service so tests can vary them per instance.
	EnableRegistration bool
	DemoMode           bool
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:db.sqlite"),
		AppEnv:             getEnv("APP_ENV", "local"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		EnableRegistration: getEnv("ENABLE_REGISTRATION", "false") == "true",
		DemoMode:           getEnv("DEMO", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
