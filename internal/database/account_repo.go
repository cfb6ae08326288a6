package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkravets/messagehub/pkg/models"
)

// ErrNotFound is returned when a record is not found
var ErrNotFound = errors.New("record not found")

// ErrDuplicateMessage is returned when inserting a message that already
// exists for the same (account, remote identifier) pair
var ErrDuplicateMessage = errors.New("message already exists")

// GetOrCreateAccount returns the account for (provider, email), creating it
// on first use
func (db *DB) GetOrCreateAccount(ctx context.Context, provider, email string) (*models.Account, error) {
	var account models.Account
	query := `SELECT * FROM accounts WHERE provider = ? AND email = ?`
	err := db.GetContext(ctx, &account, query, provider, email)
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO accounts (provider, email) VALUES (?, ?)`,
		provider, email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := db.GetContext(ctx, &account, `SELECT * FROM accounts WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to reload account: %w", err)
	}
	return &account, nil
}

// GetOrCreateFolder returns the folder for (account, provider folder id),
// creating it on first use
func (db *DB) GetOrCreateFolder(ctx context.Context, accountID int64, providerFolderID, name string) (*models.Folder, error) {
	var folder models.Folder
	query := `SELECT * FROM folders WHERE account_id = ? AND provider_folder_id = ?`
	err := db.GetContext(ctx, &folder, query, accountID, providerFolderID)
	if err == nil {
		return &folder, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO folders (account_id, provider_folder_id, name) VALUES (?, ?, ?)`,
		accountID, providerFolderID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := db.GetContext(ctx, &folder, `SELECT * FROM folders WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to reload folder: %w", err)
	}
	return &folder, nil
}

// GetAccountEmailForMessage returns the email address of the account that
// owns the given message
func (db *DB) GetAccountEmailForMessage(ctx context.Context, messageID int64) (string, error) {
	var email string
	query := `
		SELECT a.email FROM messages m
		JOIN accounts a ON m.account_id = a.id
		WHERE m.id = ?
	`
	err := db.GetContext(ctx, &email, query, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get account email: %w", err)
	}
	return email, nil
}
