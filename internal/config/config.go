package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL      = "weekly_agenda.db"
	defaultHTTPAddr         = ":8080"
	defaultTokenTTL         = 168 * time.Hour
	defaultReminderInterval = time.Minute
	defaultFromEmail        = "noreply@agenda.com"
)

// ErrNoJWTSecret is returned by RequireJWTSecret when JWT_SECRET is unset.
var ErrNoJWTSecret = errors.New("JWT_SECRET is required")

// Config keeps runtime settings for the agenda server and tools.
type Config struct {
	DatabaseURL      string
	HTTPAddr         string
	JWTSecret        string
	TokenTTL         time.Duration
	ReminderInterval time.Duration
	Location         *time.Location
	CORSOrigins      []string

	SendGridAPIKey    string
	SendGridFromEmail string

	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		DatabaseURL:       get("DATABASE_URL"),
		HTTPAddr:          get("HTTP_ADDR"),
		JWTSecret:         get("JWT_SECRET"),
		SendGridAPIKey:    get("SENDGRID_API_KEY"),
		SendGridFromEmail: get("SENDGRID_FROM_EMAIL"),
		TelegramToken:     get("TELEGRAM_TOKEN"),
		TokenTTL:          defaultTokenTTL,
		ReminderInterval:  defaultReminderInterval,
		Location:          time.Local,
		CORSOrigins:       []string{"*"},
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.SendGridFromEmail == "" {
		cfg.SendGridFromEmail = defaultFromEmail
	}

	if raw := get("TOKEN_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return cfg, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer, got %q", raw)
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}

	if raw := get("REMINDER_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < time.Second {
			return cfg, fmt.Errorf("REMINDER_INTERVAL must be a duration of at least 1s, got %q", raw)
		}
		cfg.ReminderInterval = d
	}

	if raw := get("TIMEZONE"); raw != "" {
		loc, err := time.LoadLocation(raw)
		if err != nil {
			return cfg, fmt.Errorf("load TIMEZONE: %w", err)
		}
		cfg.Location = loc
	}

	if raw := get("CORS_ORIGINS"); raw != "" {
		cfg.CORSOrigins = splitList(raw)
	}

	if raw := get("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer, got %q", raw)
		}
		cfg.TelegramChatID = id
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// RequireJWTSecret reports an error when tokens cannot be signed.
func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
