package models

import (
	"database/sql"
	"time"
)

// Message represents a stored mail message.
//
// RemoteID is the mailbox's transient identifier for the message, normally a
// numeric IMAP UID. It may transiently hold a Message-ID token instead, in
// which case the body resolver falls back to a header search and rewrites it
// with the UID it resolved to.
//
// BodyText and BodyHTML are both NULL until the first full fetch. After a
// fetch either may be NULL or empty independently; "both NULL" is the only
// state that means "never fetched".
type Message struct {
	ID        int64          `db:"id"`
	AccountID int64          `db:"account_id"`
	FolderID  int64          `db:"folder_id"`
	RemoteID  string         `db:"remote_id"`
	StableID  sql.NullString `db:"stable_id"` // reserved for threading
	FromAddr  sql.NullString `db:"from_addr"`
	ToAddrs   sql.NullString `db:"to_addrs"`
	Subject   sql.NullString `db:"subject"`
	Snippet   sql.NullString `db:"snippet"`
	DateUTC   sql.NullTime   `db:"date_utc"`
	BodyText  sql.NullString `db:"body_text"`
	BodyHTML  sql.NullString `db:"body_html"`
	IsRead    bool           `db:"is_read"`
	CreatedAt time.Time      `db:"created_at"`
}

// BodyFetched reports whether a full fetch has completed for this message.
func (m *Message) BodyFetched() bool {
	return m.BodyText.Valid || m.BodyHTML.Valid
}
