package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env when present; otherwise the process environment is
// used as-is.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	} else {
		log.Println("✅ Loaded .env")
	}
}

// Get returns an environment variable with a fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProduction reports whether the server runs with production error
// reporting (no diagnostic detail in responses).
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}
