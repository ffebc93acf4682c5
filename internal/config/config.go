package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// MemoryDB as DB_CONN selects the in-memory store instead of Postgres
const MemoryDB = "memory"

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	JWTSecret     string
	HMACSecret    string
	AllowedOrigin []string

	CoinGeckoURL    string
	CoinGeckoAPIKey string

	PriceRefreshSchedule string

	SenderEmail  string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// ResetRedirectURL is where password reset links point when the client does not say
	ResetRedirectURL string
}

// NewConfig loads configuration from a .env file, when present, and
// environment variables
func NewConfig() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=companion password=companion dbname=companion sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		HMACSecret:    getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		AllowedOrigin: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		CoinGeckoURL:    getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3"),
		CoinGeckoAPIKey: getEnv("COINGECKO_API_KEY", ""),

		PriceRefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 15m"),

		SenderEmail:  getEnv("SENDER_EMAIL", "no-reply@localhost"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/auth/oauth/google/callback"),

		ResetRedirectURL: getEnv("RESET_REDIRECT_URL", "http://localhost:5173/reset-password"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}
	if cfg.CoinGeckoURL == "" {
		return nil, fmt.Errorf("COINGECKO_URL is required")
	}

	return cfg, nil
}

// MailEnabled reports whether an SMTP server is configured
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
