package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkravets/messagehub/pkg/models"
)

// TouchSyncState records the completion time of a sync pass for
// (account, folder). The cursor column is left untouched; it is reserved for
// incremental UID-based fetching.
func (db *DB) TouchSyncState(ctx context.Context, accountID, folderID int64, at time.Time) error {
	query := `
		INSERT INTO sync_state (account_id, folder_id, last_sync_at)
		VALUES (?, ?, ?)
		ON CONFLICT(account_id, folder_id) DO UPDATE SET last_sync_at = excluded.last_sync_at
	`
	_, err := db.ExecContext(ctx, query, accountID, folderID, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to touch sync state: %w", err)
	}
	return nil
}

// GetSyncState returns the sync state for (account, folder)
func (db *DB) GetSyncState(ctx context.Context, accountID, folderID int64) (*models.SyncState, error) {
	var state models.SyncState
	query := `SELECT * FROM sync_state WHERE account_id = ? AND folder_id = ?`
	err := db.GetContext(ctx, &state, query, accountID, folderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}
	return &state, nil
}
