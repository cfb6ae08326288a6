package syncer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mkravets/messagehub/internal/parser"
	"github.com/mkravets/messagehub/pkg/models"
)

// ErrNoAccount is returned when no account configuration is registered for
// a message's owning account
var ErrNoAccount = errors.New("no account configured for message")

// ResolverStore is the persistence surface body resolution writes through
type ResolverStore interface {
	GetMessageByID(ctx context.Context, id int64) (*models.Message, error)
	GetAccountEmailForMessage(ctx context.Context, id int64) (string, error)
	UpdateMessageBody(ctx context.Context, id int64, bodyText, bodyHTML, snippet sql.NullString) error
	UpdateMessageRemoteID(ctx context.Context, id int64, remoteID string) error
	MarkMessageRead(ctx context.Context, id int64) error
}

// BodyResolver lazily fetches and caches full message bodies on first open,
// self-healing drifted remote identifiers along the way.
type BodyResolver struct {
	store    ResolverStore
	registry *Registry
	open     SessionOpener
	snippets *parser.Extractor
	logger   *slog.Logger
}

// NewBodyResolver creates a body resolver
func NewBodyResolver(store ResolverStore, registry *Registry, open SessionOpener, logger *slog.Logger) *BodyResolver {
	return &BodyResolver{
		store:    store,
		registry: registry,
		open:     open,
		snippets: parser.NewExtractor(),
		logger:   logger.With("component", "body_resolver"),
	}
}

// EnsureBody fetches and persists the body of a stored message. It is a
// no-op when a fetch already completed (either body column non-NULL, empty
// string included). Any failure leaves stored state exactly as before, so
// the fetch is retried on the next open.
func (r *BodyResolver) EnsureBody(ctx context.Context, messageID int64) error {
	msg, err := r.store.GetMessageByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.BodyFetched() {
		return nil
	}

	addr, err := r.store.GetAccountEmailForMessage(ctx, messageID)
	if err != nil {
		return err
	}
	cfg, ok := r.registry.ConfigFor(addr)
	if !ok {
		return ErrNoAccount
	}

	session, err := r.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	uid, err := r.resolveUID(ctx, session, msg.RemoteID)
	if err != nil {
		return err
	}

	full, err := session.FetchFullMessage(ctx, uid)
	if err != nil {
		return err
	}

	var snippet sql.NullString
	if s, ok := r.snippets.Snippet(full.BodyText, full.BodyHTML); ok {
		snippet = sql.NullString{String: s, Valid: true}
	}
	if err := r.store.UpdateMessageBody(ctx, messageID, nullBody(full.BodyText), nullBody(full.BodyHTML), snippet); err != nil {
		return err
	}

	// Self-heal: store the identifier the fetch actually used so the next
	// open skips fallback resolution.
	resolved := strconv.FormatUint(uint64(full.UID), 10)
	if resolved != msg.RemoteID {
		if err := r.store.UpdateMessageRemoteID(ctx, messageID, resolved); err != nil {
			return err
		}
		r.logger.Info("healed remote identifier", "message_id", messageID, "old", msg.RemoteID, "new", resolved)
	}

	if !msg.IsRead {
		if err := r.store.MarkMessageRead(ctx, messageID); err != nil {
			return err
		}
	}

	return nil
}

// resolveUID determines the identifier to fetch with: an all-digit remote
// identifier is used directly as a UID, anything else is treated as a
// Message-ID token and resolved through a header search.
func (r *BodyResolver) resolveUID(ctx context.Context, session MailboxSession, remoteID string) (uint32, error) {
	if isAllDigits(remoteID) {
		uid, err := strconv.ParseUint(remoteID, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid remote identifier %q: %w", remoteID, err)
		}
		return uint32(uid), nil
	}
	return session.ResolveMessageID(ctx, remoteID)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func nullBody(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
