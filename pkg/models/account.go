package models

import (
	"database/sql"
	"time"
)

// Account represents one mail account, identified by (provider, email).
// Rows are created lazily on the first sync of an address and never deleted
// by the engine.
type Account struct {
	ID          int64          `db:"id"`
	Provider    string         `db:"provider"` // e.g. "imap"
	Email       string         `db:"email"`
	DisplayName sql.NullString `db:"display_name"`
	AuthBlob    sql.NullString `db:"auth_blob"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Folder represents one provider-side mailbox folder for an account,
// identified by (account_id, provider_folder_id).
type Folder struct {
	ID               int64  `db:"id"`
	AccountID        int64  `db:"account_id"`
	ProviderFolderID string `db:"provider_folder_id"`
	Name             string `db:"name"`
}
