package hub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mkravets/messagehub/internal/database"
	"github.com/mkravets/messagehub/internal/email"
	"github.com/mkravets/messagehub/internal/syncer"
	"github.com/mkravets/messagehub/pkg/models"
)

// Service is the engine façade consumed by presentation layers. It exposes
// exactly the operations a message list and detail view need: trigger a
// sync pass, ensure a body is cached, list recent messages, fetch one, and
// mark one read.
type Service struct {
	db       *database.DB
	registry *syncer.Registry
	engine   *syncer.Engine
	resolver *syncer.BodyResolver
	window   int
	logger   *slog.Logger

	// Guards the process-wide "one sync pass at a time" rule.
	syncMu sync.Mutex
}

// New creates the service with its engine and resolver wired to real IMAP
// sessions and the given store.
func New(db *database.DB, window int, logger *slog.Logger) *Service {
	open := func(ctx context.Context, cfg email.AccountConfig) (syncer.MailboxSession, error) {
		return email.Open(ctx, cfg, logger)
	}
	return newService(db, window, logger, open)
}

func newService(db *database.DB, window int, logger *slog.Logger, open syncer.SessionOpener) *Service {
	registry := syncer.NewRegistry()

	return &Service{
		db:       db,
		registry: registry,
		engine:   syncer.NewEngine(db, open, logger),
		resolver: syncer.NewBodyResolver(db, registry, open, logger),
		window:   window,
		logger:   logger.With("component", "hub"),
	}
}

// AddAccount registers an account configuration for sync and body resolution
func (s *Service) AddAccount(cfg email.AccountConfig) {
	s.registry.Add(cfg)
}

// TriggerSync runs one sync pass over all registered accounts and returns
// the aggregated stats. Only one pass may be in flight process-wide: a
// trigger during a running pass is a no-op and returns ran=false.
func (s *Service) TriggerSync(ctx context.Context) (stats syncer.Stats, ran bool, err error) {
	if !s.syncMu.TryLock() {
		s.logger.Debug("sync pass already in flight")
		return syncer.Stats{}, false, nil
	}
	defer s.syncMu.Unlock()

	for _, cfg := range s.registry.All() {
		passStats, err := s.engine.Sync(ctx, cfg, s.window)
		if err != nil {
			return syncer.Stats{}, true, fmt.Errorf("sync failed for %s: %w", cfg.Email, err)
		}
		stats = stats.Add(passStats)
	}
	return stats, true, nil
}

// EnsureBody fetches and caches the body of a message on first open.
// Failures are non-fatal: stored state is unchanged and the fetch is
// retried the next time the message is opened.
func (s *Service) EnsureBody(ctx context.Context, messageID int64) error {
	if err := s.resolver.EnsureBody(ctx, messageID); err != nil {
		s.logger.Warn("body fetch failed", "message_id", messageID, "error", err)
		return err
	}
	return nil
}

// ListRecent returns up to limit stored messages, newest first
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*models.Message, error) {
	return s.db.ListRecentMessages(ctx, limit)
}

// GetMessage returns one stored message by id
func (s *Service) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	return s.db.GetMessageByID(ctx, id)
}

// MarkRead flips the read flag of a message
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.db.MarkMessageRead(ctx, id)
}
