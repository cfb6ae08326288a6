package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mkravets/messagehub/internal/email"
)

// Config application configuration
type Config struct {
	// Database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/messagehub.db"`

	// IMAP account (optional; without it the hub serves stored messages only)
	IMAPServer      string        `env:"IMAP_SERVER"` // host:port, e.g. imap.gmail.com:993
	IMAPEmail       string        `env:"IMAP_EMAIL"`
	IMAPPassword    string        `env:"IMAP_PASSWORD"`
	IMAPMailbox     string        `env:"IMAP_MAILBOX" envDefault:"INBOX"`
	IMAPDialTimeout time.Duration `env:"IMAP_DIAL_TIMEOUT" envDefault:"30s"`

	// Sync
	SyncInterval time.Duration `env:"SYNC_INTERVAL" envDefault:"5s"`
	SyncWindow   int           `env:"SYNC_WINDOW" envDefault:"50"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// AccountConfigured returns true if a complete IMAP account is configured
func (c *Config) AccountConfigured() bool {
	return c.IMAPServer != "" && c.IMAPEmail != "" && c.IMAPPassword != ""
}

// AccountConfig builds the mailbox client configuration
func (c *Config) AccountConfig() email.AccountConfig {
	return email.AccountConfig{
		Server:      c.IMAPServer,
		Email:       c.IMAPEmail,
		Password:    c.IMAPPassword,
		Mailbox:     c.IMAPMailbox,
		DialTimeout: c.IMAPDialTimeout,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SyncWindow <= 0 {
		return nil, fmt.Errorf("SYNC_WINDOW must be positive, got %d", cfg.SyncWindow)
	}

	return cfg, nil
}
