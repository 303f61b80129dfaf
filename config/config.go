package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DSN       string
	JWTSecret string

	NotesPort   string
	CompanyPort string

	LogLevel  string
	LogFormat string

	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
}

// Load reads .env (if present) into the process environment and builds a
// Config from it. The returned bool reports whether a .env file was found.
func Load(requireSecret bool) (*Config, bool, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		DSN:               GetString("DSN", ""),
		JWTSecret:         GetString("JWT_SECRET", ""),
		NotesPort:         GetString("NOTES_PORT", "3002"),
		CompanyPort:       GetString("COMPANY_PORT", "3003"),
		LogLevel:          GetString("LOG_LEVEL", "info"),
		LogFormat:         GetString("LOG_FORMAT", "json"),
		DBMaxOpenConns:    GetInt("DB_MAX_OPEN_CONNS", 10),
		DBConnMaxLifetime: GetDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		AccessTokenTTL:    GetDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL:   GetDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
	}

	var missing []string
	if cfg.DSN == "" {
		missing = append(missing, "DSN")
	}
	if requireSecret && cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, loaded, fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}

	return cfg, loaded, nil
}

// GetString returns the value of key or defaultVal when unset.
func GetString(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// GetInt returns key parsed as an int; unset or malformed values yield defaultVal.
func GetInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultVal
}

func GetDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultVal
}
