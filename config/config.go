package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret signals that no JWT signing secret is configured.
var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

// Config carries every externally supplied setting. It is built once at
// startup and injected explicitly; nothing below the bootstrap reads the
// process environment.
type Config struct {
	DatabaseURL       string
	HTTPAddr          string
	JWTSecret         string
	JWTTTL            time.Duration
	DeliveryJWTSecret string
	AllowedOrigins    []string
	LogLevel          string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present but never overrides real env vars.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPAddr:          getDefault("HTTP_ADDR", ":8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		DeliveryJWTSecret: os.Getenv("DELIVERY_JWT_SECRET"),
		LogLevel:          getDefault("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}
	// The delivery token path has its own secret so the two token families can
	// be rotated independently; it falls back to the main secret.
	if cfg.DeliveryJWTSecret == "" {
		cfg.DeliveryJWTSecret = cfg.JWTSecret
	}

	if raw := os.Getenv("JWT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse JWT_TTL: %w", err)
		}
		cfg.JWTTTL = ttl
	}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
