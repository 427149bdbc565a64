package config

import (
	"errors"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := fromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}
	if cfg.DatabaseURL != "weekly_agenda.db" || cfg.HTTPAddr != ":8080" {
		t.Errorf("defaults = %q, %q", cfg.DatabaseURL, cfg.HTTPAddr)
	}
	if cfg.ReminderInterval != time.Minute || cfg.TokenTTL != 168*time.Hour {
		t.Errorf("durations = %v, %v", cfg.ReminderInterval, cfg.TokenTTL)
	}
	if cfg.SendGridFromEmail != "noreply@agenda.com" {
		t.Errorf("from email = %q", cfg.SendGridFromEmail)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !errors.Is(cfg.RequireJWTSecret(), ErrNoJWTSecret) {
		t.Error("RequireJWTSecret() accepted an empty secret")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := fromEnv(envMap(map[string]string{
		"DATABASE_URL":      "postgres://u:p@localhost/agenda",
		"JWT_SECRET":        "s3cret",
		"TOKEN_TTL_HOURS":   "24",
		"REMINDER_INTERVAL": "30s",
		"TIMEZONE":          "UTC",
		"CORS_ORIGINS":      "http://a.test, http://b.test ,",
		"TELEGRAM_TOKEN":    "123:abc",
		"TELEGRAM_CHAT_ID":  "-1001",
	}))
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.ReminderInterval != 30*time.Second {
		t.Errorf("durations = %v, %v", cfg.TokenTTL, cfg.ReminderInterval)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v", cfg.Location)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.TelegramChatID != -1001 {
		t.Errorf("TelegramChatID = %d", cfg.TelegramChatID)
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		t.Errorf("RequireJWTSecret() = %v", err)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]map[string]string{
		"ttl":      {"TOKEN_TTL_HOURS": "-1"},
		"interval": {"REMINDER_INTERVAL": "soon"},
		"tiny":     {"REMINDER_INTERVAL": "10ms"},
		"timezone": {"TIMEZONE": "Mars/Olympus"},
		"chat id":  {"TELEGRAM_CHAT_ID": "abc"},
		"no chat":  {"TELEGRAM_TOKEN": "123:abc"},
	}
	for name, env := range tests {
		env := env
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := fromEnv(envMap(env)); err == nil {
				t.Errorf("fromEnv(%v) error = nil", env)
			}
		})
	}
}
