package syncer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	netmail "net/mail"
	"strconv"
	"time"

	"github.com/mkravets/messagehub/internal/database"
	"github.com/mkravets/messagehub/internal/email"
	"github.com/mkravets/messagehub/pkg/models"
)

// Provider is the provider tag for accounts synced over IMAP
const Provider = "imap"

// Stats is the result of one header sync pass. When no per-header fetch
// errors occurred, Fetched == Inserted + Skipped.
type Stats struct {
	Fetched  int
	Inserted int
	Skipped  int
}

// Add returns the element-wise sum of two stats
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Fetched:  s.Fetched + o.Fetched,
		Inserted: s.Inserted + o.Inserted,
		Skipped:  s.Skipped + o.Skipped,
	}
}

// MailboxSession is the protocol surface the engine and resolver need from
// an open mailbox session
type MailboxSession interface {
	ListRecentHeaders(ctx context.Context, limit int) ([]email.HeaderRecord, error)
	FetchFullMessage(ctx context.Context, uid uint32) (*email.FullMessage, error)
	ResolveMessageID(ctx context.Context, stableID string) (uint32, error)
	Close() error
}

// SessionOpener opens an authenticated session for an account
type SessionOpener func(ctx context.Context, cfg email.AccountConfig) (MailboxSession, error)

// Store is the persistence surface the engine writes through
type Store interface {
	GetOrCreateAccount(ctx context.Context, provider, email string) (*models.Account, error)
	GetOrCreateFolder(ctx context.Context, accountID int64, providerFolderID, name string) (*models.Folder, error)
	InsertMessage(ctx context.Context, msg *models.Message) error
	TouchSyncState(ctx context.Context, accountID, folderID int64, at time.Time) error
}

// Engine performs header sync passes against the message store
type Engine struct {
	store  Store
	open   SessionOpener
	logger *slog.Logger
}

// NewEngine creates a sync engine
func NewEngine(store Store, open SessionOpener, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		open:   open,
		logger: logger.With("component", "sync_engine"),
	}
}

// Sync runs one header sync pass for an account: resolves the account and
// folder rows, lists the most recent limit headers and inserts each one with
// bodies NULL. A message already stored for (account, remote identifier) is
// counted as skipped, never overwritten. A failure opening the session or
// listing headers aborts the pass with no partial stats; an insert failure
// other than the expected duplicate propagates as a storage fault.
func (e *Engine) Sync(ctx context.Context, cfg email.AccountConfig, limit int) (Stats, error) {
	account, err := e.store.GetOrCreateAccount(ctx, Provider, cfg.Email)
	if err != nil {
		return Stats{}, err
	}

	mailbox := cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}
	folder, err := e.store.GetOrCreateFolder(ctx, account.ID, mailbox, mailbox)
	if err != nil {
		return Stats{}, err
	}

	session, err := e.open(ctx, cfg)
	if err != nil {
		return Stats{}, err
	}
	defer session.Close()

	headers, err := session.ListRecentHeaders(ctx, limit)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Fetched: len(headers)}
	for _, h := range headers {
		msg := &models.Message{
			AccountID: account.ID,
			FolderID:  folder.ID,
			RemoteID:  strconv.FormatUint(uint64(h.UID), 10),
			FromAddr:  nullString(h.From),
			Subject:   nullString(h.Subject),
			DateUTC:   parseDateUTC(h.DateRaw),
			IsRead:    h.IsRead,
		}

		err := e.store.InsertMessage(ctx, msg)
		switch {
		case errors.Is(err, database.ErrDuplicateMessage):
			stats.Skipped++
		case err != nil:
			return Stats{}, fmt.Errorf("failed to store header: %w", err)
		default:
			stats.Inserted++
		}
	}

	if err := e.store.TouchSyncState(ctx, account.ID, folder.ID, time.Now()); err != nil {
		e.logger.Warn("failed to record sync state", "account", cfg.Email, "error", err)
	}

	e.logger.Info("sync pass complete",
		"account", cfg.Email,
		"fetched", stats.Fetched,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// parseDateUTC normalizes a protocol-native date header to UTC. An
// unparseable date degrades to NULL rather than failing the pass.
func parseDateUTC(raw string) sql.NullTime {
	if raw == "" {
		return sql.NullTime{}
	}
	t, err := netmail.ParseDate(raw)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
