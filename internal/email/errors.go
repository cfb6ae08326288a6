package email

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned when a Message-ID search finds nothing
var ErrNoMatch = errors.New("no message matches the given identifier")

// AuthError indicates the server rejected the account credentials
type AuthError struct {
	Account string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %v", e.Account, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ConnectionError indicates a transport or TLS failure
type ConnectionError struct {
	Server string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Server, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// FolderError indicates the target mailbox could not be selected
type FolderError struct {
	Mailbox string
	Err     error
}

func (e *FolderError) Error() string {
	return fmt.Sprintf("failed to select mailbox %q: %v", e.Mailbox, e.Err)
}

func (e *FolderError) Unwrap() error { return e.Err }

// ProtocolError indicates an unexpected response to a search or fetch
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("imap %s failed: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
