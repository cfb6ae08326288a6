package email

import "time"

// AccountConfig holds the credentials and target mailbox for one IMAP account
type AccountConfig struct {
	Server      string // host:port
	Email       string
	Password    string
	Mailbox     string // defaults to INBOX
	DialTimeout time.Duration
}

// HeaderRecord is the metadata of one message as returned by a header sync
// pass. The date is kept protocol-native; normalization happens at insert
// time so an unparseable date degrades to NULL instead of failing the pass.
type HeaderRecord struct {
	UID     uint32
	Subject string
	From    string
	DateRaw string
	IsRead  bool
}

// FullMessage is the result of fetching one complete message. BodyText and
// BodyHTML are independently optional: nil means the message had no part of
// that type, while an empty string is a present-but-empty part. UID is the
// identifier the fetch actually used, which may differ from what the caller
// started with when resolution went through a Message-ID search.
type FullMessage struct {
	UID      uint32
	Subject  string
	From     string
	DateRaw  string
	BodyText *string
	BodyHTML *string
	IsRead   bool
}
