package models

import "database/sql"

// SyncState holds one incremental-sync cursor per (account, folder).
// The engine currently only records last_sync_at after each pass; Cursor is
// reserved for switching the header sync from a fixed window to UID-based
// incremental fetches.
type SyncState struct {
	ID         int64          `db:"id"`
	AccountID  int64          `db:"account_id"`
	FolderID   int64          `db:"folder_id"`
	Cursor     sql.NullString `db:"cursor"`
	LastSyncAt sql.NullTime   `db:"last_sync_at"`
}
