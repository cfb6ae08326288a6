package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetOrCreateAccountIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, err := db.GetOrCreateAccount(ctx, "imap", "user@example.com")
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.Equal(t, "imap", first.Provider)
	require.Equal(t, "user@example.com", first.Email)

	second, err := db.GetOrCreateAccount(ctx, "imap", "user@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	// A different provider for the same address is a distinct account.
	other, err := db.GetOrCreateAccount(ctx, "gmail", "user@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, other.ID)
}

func TestGetOrCreateFolderIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	account, err := db.GetOrCreateAccount(ctx, "imap", "user@example.com")
	require.NoError(t, err)

	first, err := db.GetOrCreateFolder(ctx, account.ID, "INBOX", "INBOX")
	require.NoError(t, err)
	second, err := db.GetOrCreateFolder(ctx, account.ID, "INBOX", "INBOX")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	archive, err := db.GetOrCreateFolder(ctx, account.ID, "Archive", "Archive")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, archive.ID)
}

func TestGetAccountEmailForMessage(t *testing.T) {
	db := newTestDB(t)
	account, folder := seedAccountAndFolder(t, db)
	ctx := context.Background()

	msg := newHeaderMessage(account, folder, "20")
	require.NoError(t, db.InsertMessage(ctx, msg))

	email, err := db.GetAccountEmailForMessage(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", email)

	_, err = db.GetAccountEmailForMessage(ctx, 99999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTouchSyncState(t *testing.T) {
	db := newTestDB(t)
	account, folder := seedAccountAndFolder(t, db)
	ctx := context.Background()

	_, err := db.GetSyncState(ctx, account.ID, folder.ID)
	require.ErrorIs(t, err, ErrNotFound)

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.TouchSyncState(ctx, account.ID, folder.ID, first))

	state, err := db.GetSyncState(ctx, account.ID, folder.ID)
	require.NoError(t, err)
	require.True(t, state.LastSyncAt.Valid)
	require.False(t, state.Cursor.Valid)

	// Second touch updates the existing row instead of violating uniqueness.
	second := first.Add(time.Minute)
	require.NoError(t, db.TouchSyncState(ctx, account.ID, folder.ID, second))

	updated, err := db.GetSyncState(ctx, account.ID, folder.ID)
	require.NoError(t, err)
	require.Equal(t, state.ID, updated.ID)
	require.True(t, updated.LastSyncAt.Time.After(state.LastSyncAt.Time))
}
