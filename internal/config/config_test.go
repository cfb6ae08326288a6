package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "./data/messagehub.db", cfg.DatabasePath)
	require.Equal(t, "INBOX", cfg.IMAPMailbox)
	require.Equal(t, 30*time.Second, cfg.IMAPDialTimeout)
	require.Equal(t, 5*time.Second, cfg.SyncInterval)
	require.Equal(t, 50, cfg.SyncWindow)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.False(t, cfg.AccountConfigured())
}

func TestLoadAccount(t *testing.T) {
	t.Setenv("IMAP_SERVER", "imap.example.com:993")
	t.Setenv("IMAP_EMAIL", "user@example.com")
	t.Setenv("IMAP_PASSWORD", "secret")
	t.Setenv("IMAP_MAILBOX", "Archive")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.AccountConfigured())

	account := cfg.AccountConfig()
	require.Equal(t, "imap.example.com:993", account.Server)
	require.Equal(t, "user@example.com", account.Email)
	require.Equal(t, "secret", account.Password)
	require.Equal(t, "Archive", account.Mailbox)
	require.Equal(t, 30*time.Second, account.DialTimeout)
}

func TestLoadRejectsNonPositiveWindow(t *testing.T) {
	t.Setenv("SYNC_WINDOW", "0")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SYNC_WINDOW")
}

func TestAccountConfiguredPartial(t *testing.T) {
	t.Setenv("IMAP_SERVER", "imap.example.com:993")
	t.Setenv("IMAP_EMAIL", "user@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.AccountConfigured())
}
