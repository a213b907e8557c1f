package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        int      `env:"PORT" envDefault:"8000"`
	DatabaseURL string   `env:"DATABASE_URL" envDefault:"sqlite:///./portfolio.db"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	SMTPServer    string        `env:"SMTP_SERVER"`
	SMTPPort      int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string        `env:"SMTP_USER"`
	SMTPPassword  string        `env:"SMTP_PASSWORD"`
	SMTPFromEmail string        `env:"SMTP_FROM_EMAIL" envDefault:"noreply@portfolio.com"`
	SMTPTimeout   time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	ContactEmail  string        `env:"CONTACT_EMAIL"`

	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"0s"` // 0 disables; only safe with a single instance
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
}

// loadConfig reads the process environment. godotenv has already merged any
// .env file into it by the time this runs.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSOrigins = trimOrigins(cfg.CORSOrigins)
	return cfg, nil
}

// RelayConfigured reports whether outbound mail has enough settings to try a
// delivery. Without it contact messages are only logged.
func (c Config) RelayConfigured() bool {
	return c.SMTPServer != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

func (c Config) slogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
