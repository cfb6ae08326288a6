package syncer

import (
	"sync"

	"github.com/mkravets/messagehub/internal/email"
)

// Registry is the session-scoped set of account configurations available to
// sync passes and body resolution, keyed by account email. It is owned by
// the orchestration layer and passed in explicitly rather than living in
// process-global state.
type Registry struct {
	mu      sync.RWMutex
	configs []email.AccountConfig
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a configuration, replacing any existing entry for the same
// address and making it the most recently added.
func (r *Registry) Add(cfg email.AccountConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := make([]email.AccountConfig, 0, len(r.configs)+1)
	for _, c := range r.configs {
		if c.Email != cfg.Email {
			filtered = append(filtered, c)
		}
	}
	r.configs = append(filtered, cfg)
}

// Remove drops the configuration for an address, if present
func (r *Registry) Remove(address string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := r.configs[:0]
	for _, c := range r.configs {
		if c.Email != address {
			filtered = append(filtered, c)
		}
	}
	r.configs = filtered
}

// ConfigFor returns the configuration whose address matches, falling back
// to the most recently added one. The fallback is best effort: with
// overlapping addresses or rotated credentials it may pick a configuration
// that no longer maps to the message's account.
func (r *Registry) ConfigFor(address string) (email.AccountConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.configs {
		if c.Email == address {
			return c, true
		}
	}
	if len(r.configs) > 0 {
		return r.configs[len(r.configs)-1], true
	}
	return email.AccountConfig{}, false
}

// All returns a snapshot of the registered configurations in insertion order
func (r *Registry) All() []email.AccountConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]email.AccountConfig, len(r.configs))
	copy(out, r.configs)
	return out
}
