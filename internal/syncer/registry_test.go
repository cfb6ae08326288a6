package syncer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/messagehub/internal/email"
)

func accountFor(address string) email.AccountConfig {
	return email.AccountConfig{
		Server:   "imap.example.com:993",
		Email:    address,
		Password: "secret",
	}
}

func TestRegistryExactMatch(t *testing.T) {
	r := NewRegistry()
	r.Add(accountFor("a@example.com"))
	r.Add(accountFor("b@example.com"))

	cfg, ok := r.ConfigFor("a@example.com")
	require.True(t, ok)
	require.Equal(t, "a@example.com", cfg.Email)
}

func TestRegistryFallbackToLastAdded(t *testing.T) {
	r := NewRegistry()
	r.Add(accountFor("a@example.com"))
	r.Add(accountFor("b@example.com"))

	cfg, ok := r.ConfigFor("unknown@example.com")
	require.True(t, ok)
	require.Equal(t, "b@example.com", cfg.Email)
}

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry()

	_, ok := r.ConfigFor("a@example.com")
	require.False(t, ok)
	require.Empty(t, r.All())
}

func TestRegistryAddReplacesSameAddress(t *testing.T) {
	r := NewRegistry()
	first := accountFor("a@example.com")
	r.Add(first)
	r.Add(accountFor("b@example.com"))

	rotated := accountFor("a@example.com")
	rotated.Password = "rotated"
	r.Add(rotated)

	all := r.All()
	require.Len(t, all, 2)
	// Re-adding moves the address to the end and swaps the credentials.
	require.Equal(t, "b@example.com", all[0].Email)
	require.Equal(t, "a@example.com", all[1].Email)
	require.Equal(t, "rotated", all[1].Password)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	r.Add(accountFor("a@example.com"))
	r.Add(accountFor("b@example.com"))

	r.Remove("b@example.com")

	all := r.All()
	require.Len(t, all, 1)
	require.Equal(t, "a@example.com", all[0].Email)
}
