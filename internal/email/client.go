package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Session is an authenticated, mailbox-selected IMAP connection. Sessions
// are single-use: open, run one or more operations, close. Callers must
// close the session on every exit path.
type Session struct {
	c       *client.Client
	mailbox string
	logger  *slog.Logger
}

// Open connects to the IMAP server, authenticates and selects the target
// mailbox. Failures map onto the error taxonomy: ConnectionError for
// transport/TLS, AuthError for rejected credentials, FolderError for a bad
// mailbox name.
func Open(ctx context.Context, cfg AccountConfig, logger *slog.Logger) (*Session, error) {
	timeout := cfg.DialTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", cfg.Server, nil)
	if err != nil {
		return nil, &ConnectionError{Server: cfg.Server, Err: err}
	}

	imapClient, err := client.New(conn)
	if err != nil {
		conn.Close()
		return nil, &ConnectionError{Server: cfg.Server, Err: err}
	}

	if err := imapClient.Login(cfg.Email, cfg.Password); err != nil {
		imapClient.Logout()
		return nil, &AuthError{Account: cfg.Email, Err: err}
	}

	mailbox := cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}
	if _, err := imapClient.Select(mailbox, false); err != nil {
		imapClient.Logout()
		return nil, &FolderError{Mailbox: mailbox, Err: err}
	}

	return &Session{
		c:       imapClient,
		mailbox: mailbox,
		logger:  logger.With("email", cfg.Email, "mailbox", mailbox),
	}, nil
}

// Close logs out and drops the connection
func (s *Session) Close() error {
	return s.c.Logout()
}

// ListRecentHeaders returns header records for the most recent limit
// messages in the selected mailbox, newest first. UID search order is
// ascending by arrival, so "most recent" is the tail of the search result.
// A header whose individual fetch fails is skipped, not fatal to the batch.
func (s *Session) ListRecentHeaders(ctx context.Context, limit int) ([]HeaderRecord, error) {
	uids, err := s.c.UidSearch(imap.NewSearchCriteria())
	if err != nil {
		return nil, &ProtocolError{Op: "search", Err: err}
	}
	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	records := make([]HeaderRecord, 0, len(uids))
	for i := len(uids) - 1; i >= 0; i-- {
		rec, err := s.fetchHeader(uids[i])
		if err != nil {
			s.logger.Warn("skipping header", "uid", uids[i], "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// fetchHeader fetches header fields and flags for a single UID
func (s *Session) fetchHeader(uid uint32) (HeaderRecord, error) {
	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.HeaderSpecifier},
		Peek:         true,
	}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchFlags, imap.FetchUid}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.c.UidFetch(seqSet, items, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return HeaderRecord{}, fmt.Errorf("fetch failed: %w", err)
	}
	if msg == nil {
		return HeaderRecord{}, fmt.Errorf("no data for uid %d", uid)
	}

	body := msg.GetBody(section)
	if body == nil {
		return HeaderRecord{}, fmt.Errorf("no header section for uid %d", uid)
	}

	subject, from, dateRaw, err := parseHeader(body)
	if err != nil {
		return HeaderRecord{}, err
	}

	return HeaderRecord{
		UID:     uid,
		Subject: subject,
		From:    from,
		DateRaw: dateRaw,
		IsRead:  hasSeenFlag(msg.Flags),
	}, nil
}

// FetchFullMessage fetches one complete message by UID and extracts its
// text and HTML bodies via the MIME part walk.
func (s *Session) FetchFullMessage(ctx context.Context, uid uint32) (*FullMessage, error) {
	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchFlags, imap.FetchUid}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.c.UidFetch(seqSet, items, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return nil, &ProtocolError{Op: "fetch", Err: err}
	}
	if msg == nil {
		return nil, &ProtocolError{Op: "fetch", Err: fmt.Errorf("no data for uid %d", uid)}
	}

	body := msg.GetBody(section)
	if body == nil {
		return nil, &ProtocolError{Op: "fetch", Err: fmt.Errorf("no body section for uid %d", uid)}
	}

	full, err := parseFullMessage(body)
	if err != nil {
		return nil, &ProtocolError{Op: "fetch", Err: err}
	}
	full.UID = uid
	full.IsRead = hasSeenFlag(msg.Flags)

	return full, nil
}

// ResolveMessageID searches the mailbox for a message whose Message-ID
// header equals stableID and returns its current UID. When several messages
// match, the most recent one wins. Returns ErrNoMatch when nothing matches.
func (s *Session) ResolveMessageID(ctx context.Context, stableID string) (uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("Message-Id", strings.TrimSpace(stableID))

	uids, err := s.c.UidSearch(criteria)
	if err != nil {
		return 0, &ProtocolError{Op: "search", Err: err}
	}
	if len(uids) == 0 {
		return 0, ErrNoMatch
	}
	return uids[len(uids)-1], nil
}

func hasSeenFlag(flags []string) bool {
	for _, f := range flags {
		if f == imap.SeenFlag {
			return true
		}
	}
	return false
}
