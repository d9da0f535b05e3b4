// Package configs loads the host configuration from the environment,
// optionally seeded from a .env file.
package configs

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	ListenAddr string

	// CanonicalWebURL is the base URL this deployment is reached
	// under; the OAuth callback and the openid.realm parameter are
	// derived from it.
	CanonicalWebURL string

	// Provider names the identity provider to activate ("google").
	Provider string

	Google GoogleConfig

	// LinkToExistingOpenIDAccounts enables legacy OpenID account
	// linking. Default false.
	LinkToExistingOpenIDAccounts bool

	// Debug enables verbose provider diagnostics.
	Debug bool

	// SessionKey is the AES key for the session cookie (16, 24 or 32
	// bytes).
	SessionKey string

	Redis RedisConfig
}

func LoadConfig() (*Config, error) {
	// A .env file is a development convenience; the environment alone
	// is enough in production.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		CanonicalWebURL: os.Getenv("CANONICAL_WEB_URL"),
		Provider:        getenv("OAUTH_PROVIDER", "google"),
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		},
		LinkToExistingOpenIDAccounts: getenvBool("LINK_TO_EXISTING_OPENID_ACCOUNTS", false),
		Debug:                        getenvBool("DEBUG", false),
		SessionKey:                   os.Getenv("SESSION_KEY"),
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvInt("REDIS_DB", 0),
		},
	}

	if cfg.CanonicalWebURL == "" {
		return nil, fmt.Errorf("CANONICAL_WEB_URL is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
