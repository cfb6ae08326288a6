package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkravets/messagehub/pkg/models"
)

// InsertMessage inserts a new message row. Bodies are expected to be NULL at
// insert time; they are filled later by the body resolver. Returns
// ErrDuplicateMessage when (account_id, remote_id) is already stored.
func (db *DB) InsertMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT OR IGNORE INTO messages (account_id, folder_id, remote_id, stable_id, from_addr, to_addrs, subject, snippet, date_utc, body_text, body_html, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		msg.AccountID,
		msg.FolderID,
		msg.RemoteID,
		msg.StableID,
		msg.FromAddr,
		msg.ToAddrs,
		msg.Subject,
		msg.Snippet,
		msg.DateUTC,
		msg.BodyText,
		msg.BodyHTML,
		msg.IsRead,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	// Check if row was actually inserted (not ignored due to duplicate)
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDuplicateMessage
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	msg.ID = id
	msg.CreatedAt = now
	return nil
}

// GetMessageByID returns a message by ID
func (db *DB) GetMessageByID(ctx context.Context, id int64) (*models.Message, error) {
	var msg models.Message
	query := `SELECT * FROM messages WHERE id = ?`
	err := db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &msg, nil
}

// ListRecentMessages returns up to limit messages, newest first. Messages
// without a parsed date sort after all dated ones; ties are broken by local
// creation order so the result is reproducible between calls.
func (db *DB) ListRecentMessages(ctx context.Context, limit int) ([]*models.Message, error) {
	var msgs []*models.Message
	query := `
		SELECT * FROM messages
		ORDER BY
			CASE WHEN date_utc IS NULL THEN 1 ELSE 0 END,
			date_utc DESC,
			created_at DESC,
			id DESC
		LIMIT ?
	`
	err := db.SelectContext(ctx, &msgs, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// UpdateMessageBody stores the fetched bodies and the derived snippet.
// NULL and empty string are distinct: both bodies NULL means "never fetched",
// so callers must pass exactly what the fetch returned.
func (db *DB) UpdateMessageBody(ctx context.Context, id int64, bodyText, bodyHTML, snippet sql.NullString) error {
	query := `UPDATE messages SET body_text = ?, body_html = ?, snippet = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, bodyText, bodyHTML, snippet, id)
	if err != nil {
		return fmt.Errorf("failed to update message body: %w", err)
	}
	return nil
}

// UpdateMessageRemoteID overwrites the stored remote identifier
func (db *DB) UpdateMessageRemoteID(ctx context.Context, id int64, remoteID string) error {
	query := `UPDATE messages SET remote_id = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, remoteID, id)
	if err != nil {
		return fmt.Errorf("failed to update remote id: %w", err)
	}
	return nil
}

// MarkMessageRead marks a message as read
func (db *DB) MarkMessageRead(ctx context.Context, id int64) error {
	query := `UPDATE messages SET is_read = true WHERE id = ?`
	_, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}
	return nil
}
