package config

import (
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Placeholder values shipped in example env files. A store configured with
// either of them is treated as not configured.
const (
	PlaceholderStoreURL = "https://placeholder.supabase.co"
	PlaceholderStoreKey = "placeholder-key"

	minStoreKeyLength = 20
)

type Config struct {
	// Managed store
	StoreURL     string
	StoreKey     string
	StoreSSLMode string

	// Hosted authentication service
	AuthURL       string
	AuthAnonKey   string
	AuthJWTSecret string

	// Admin
	AdminEmails    string
	AdminUserIDs   string
	AdminTokenHash string

	// Server
	Port        string
	CORSOrigins string
	SentryDSN   string
	AppEnv      string
}

// Load reads configuration from the process environment. Values from
// .env.local and .env are applied first without overriding variables that
// are already set.
func Load() *Config {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("failed to load env file", "file", f, "error", err)
		}
	}

	return &Config{
		StoreURL:     getEnv("STORE_URL", ""),
		StoreKey:     getEnv("STORE_KEY", ""),
		StoreSSLMode: getEnv("STORE_SSLMODE", ""),

		AuthURL:       strings.TrimRight(getEnv("AUTH_URL", ""), "/"),
		AuthAnonKey:   getEnv("AUTH_ANON_KEY", ""),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		AdminEmails:    getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs:   getEnv("ADMIN_USER_IDS", ""),
		AdminTokenHash: getEnv("ADMIN_TOKEN_HASH", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		AppEnv:      getEnv("APP_ENV", "development"),
	}
}

// StoreConfigured reports whether the store URL and key look like real
// credentials. When it returns false no connection is attempted.
func (c *Config) StoreConfigured() bool {
	if c.StoreURL == "" || c.StoreKey == "" {
		return false
	}
	if c.StoreURL == PlaceholderStoreURL || c.StoreKey == PlaceholderStoreKey {
		return false
	}
	if len(c.StoreKey) < minStoreKeyLength {
		return false
	}
	u, err := url.Parse(c.StoreURL)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "postgres" || u.Scheme == "postgresql"
}

// AuthConfigured reports whether the hosted auth service can be called.
func (c *Config) AuthConfigured() bool {
	if c.AuthURL == "" || c.AuthAnonKey == "" {
		return false
	}
	if c.AuthURL == PlaceholderStoreURL || c.AuthAnonKey == PlaceholderStoreKey {
		return false
	}
	return strings.HasPrefix(c.AuthURL, "https://") || strings.HasPrefix(c.AuthURL, "http://")
}

// DSN returns the store URL with the access key set as the password.
func (c *Config) DSN() string {
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return ""
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.StoreKey)

	q := u.Query()
	if c.StoreSSLMode != "" {
		q.Set("sslmode", c.StoreSSLMode)
	} else if q.Get("sslmode") == "" {
		q.Set("sslmode", "require")
	}
	q.Set("TimeZone", "UTC")
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
