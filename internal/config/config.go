package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port       string
	CORSOrigin string
}

type AuthConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	BcryptCost       int
	LockoutThreshold int
	LockoutWindow    time.Duration
	CookieSecure     bool
	LoginRateLimit   int
	LoginRateWindow  time.Duration
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:       getenv("PORT", "5000"),
			CORSOrigin: os.Getenv("CORS_ORIGIN"),
		},
		Auth: AuthConfig{
			AccessSecret:     os.Getenv("JWT_ACCESS_SECRET"),
			RefreshSecret:    os.Getenv("JWT_REFRESH_SECRET"),
			AccessTTL:        getenvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTTL:       getenvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
			BcryptCost:       getenvInt("BCRYPT_COST", 12),
			LockoutThreshold: getenvInt("LOCKOUT_THRESHOLD", 5),
			LockoutWindow:    getenvDuration("LOCKOUT_WINDOW", 15*time.Minute),
			CookieSecure:     getenvBool("AUTH_COOKIE_SECURE", false),
			LoginRateLimit:   getenvInt("LOGIN_RATE_LIMIT", 20),
			LoginRateWindow:  getenvDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
