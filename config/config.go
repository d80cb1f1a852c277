package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// JwtKey is the shared HMAC secret used for signing and validating tokens.
var JwtKey []byte

// JwtIssuer and JwtAudience are stamped into every issued token and checked
// on validation.
var (
	JwtIssuer   string
	JwtAudience string
)

// TokenLifetime matches the original API contract: tokens expire after 24h.
const TokenLifetime = 24 * time.Hour

// Load reads the optional .env file and initializes the JWT settings.
// The application refuses to start without a signing secret.
func Load() {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	JwtKey = []byte(secret)

	JwtIssuer = getEnv("JWT_ISSUER", "budget-api")
	JwtAudience = getEnv("JWT_AUDIENCE", "budget-app")
}

// ServerAddr returns the listen address for the HTTP server.
func ServerAddr() string {
	return getEnv("SERVER_ADDR", ":8080")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
