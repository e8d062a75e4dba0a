package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"meetingbooking/internal/pkg/validator"
)

const (
	defaultPort               = "8080"
	defaultJWTAccessTTL       = "24h"
	defaultCancellationWindow = "1h"
	defaultSweepInterval      = "1m"
	defaultJWTSecret          = "change-me-jwt-secret"
)

type Config struct {
	AppEnv             string `validate:"required"`
	Port               string `validate:"required"`
	DatabaseURL        string `validate:"required"`
	JWTSecret          string `validate:"required"`
	JWTAccessTTL       time.Duration
	CancellationWindow time.Duration
	SweepInterval      time.Duration
	MailerEnabled      bool
	CORSExtraOrigins   string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.MailerEnabled = parseBoolEnv("MAILER_ENABLED", "true")
	cfg.CORSExtraOrigins = strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.CancellationWindow, err = parseDurationEnv("CANCELLATION_WINDOW", defaultCancellationWindow)
	if err != nil {
		return nil, err
	}

	cfg.SweepInterval, err = parseDurationEnv("SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if fields := validator.Validate(cfg); fields != nil {
		for name, tag := range fields {
			return fmt.Errorf("config field %s failed %q check", name, tag)
		}
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.CancellationWindow < 0 {
		return fmt.Errorf("CANCELLATION_WINDOW must be >= 0")
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
