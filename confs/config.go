package confs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings when needed.
func LoadConfig() error {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		// Only log when the file truly doesn't exist; not an error for runtime
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return nil
}

// ListenAddr returns the HTTP listen address, defaulting to 0.0.0.0:3640.
func ListenAddr() string {
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:3640"
}

// RedisURL returns the Redis connection URL, empty when Redis is not
// configured (leaderboard falls back to SQL).
func RedisURL() string {
	return os.Getenv("REDIS_URL")
}

// JWTSecret returns the signing secret for admin and social-login tokens.
func JWTSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "dev-secret-change-me"
}

// GeminiAPIKey returns the generative AI API key; empty disables AI routes.
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// LogMode selects the zap config, "dev" or "prod".
func LogMode() string {
	if mode := os.Getenv("LOG_MODE"); mode != "" {
		return mode
	}
	return "dev"
}
