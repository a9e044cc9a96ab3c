// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the scheduler service.
type Config struct {
	HTTPPort    int
	SQLitePath  string
	TokenSecret string
	TokenTTL    time.Duration
	InviteTTL   time.Duration
	Timezone    string
	LogFormat   string
	LogLevel    string
}

// Load parses configuration from the process environment. A .env file in
// the working directory is folded in first without overriding variables
// that are already set.
//
// The loader applies defaults for optional fields while accumulating
// missing and invalid entries so operators see every problem at once.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:   8080,
		SQLitePath: "scheduler.db",
		TokenTTL:   24 * time.Hour,
		InviteTTL:  7 * 24 * time.Hour,
		Timezone:   "UTC",
		LogFormat:  "json",
		LogLevel:   "info",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("GSCHED_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "GSCHED_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if path := strings.TrimSpace(os.Getenv("GSCHED_SQLITE_PATH")); path != "" {
		cfg.SQLitePath = path
	}

	if secret := strings.TrimSpace(os.Getenv("GSCHED_TOKEN_SECRET")); secret == "" {
		missing = append(missing, "GSCHED_TOKEN_SECRET")
	} else {
		cfg.TokenSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("GSCHED_TOKEN_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "GSCHED_TOKEN_TTL")
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("GSCHED_INVITE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "GSCHED_INVITE_TTL")
		} else {
			cfg.InviteTTL = ttl
		}
	}

	if tz := strings.TrimSpace(os.Getenv("GSCHED_TIMEZONE")); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			invalid = append(invalid, "GSCHED_TIMEZONE")
		} else {
			cfg.Timezone = tz
		}
	}

	if format := strings.TrimSpace(os.Getenv("GSCHED_LOG_FORMAT")); format != "" {
		switch strings.ToLower(format) {
		case "json", "text":
			cfg.LogFormat = strings.ToLower(format)
		default:
			invalid = append(invalid, "GSCHED_LOG_FORMAT")
		}
	}

	if level := strings.TrimSpace(os.Getenv("GSCHED_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if len(missing) > 0 || len(invalid) > 0 {
		return Config{}, loadError(missing, invalid)
	}

	return cfg, nil
}

// Location resolves the configured timezone. Load validated it already,
// so failures fall back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadError(missing, invalid []string) error {
	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required variables: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid variables: %s", strings.Join(invalid, ", ")))
	}
	return fmt.Errorf("config: %s", strings.Join(parts, "; "))
}
