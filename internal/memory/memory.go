// Package memory keeps short per-user conversation transcripts used to
// give the assistant context. Bounded and in-process only; a restart
// starts every conversation fresh.
package memory

import "sync"

// DefaultLimit is how many transcript entries are retained per user.
const DefaultLimit = 6

// Roles recognised in transcript entries.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is a single transcript line.
type Entry struct {
	Role    string
	Content string
}

// Transcript stores bounded histories keyed by user ID.
type Transcript struct {
	limit int

	mu      sync.RWMutex
	history map[int64][]Entry
}

// NewTranscript creates a transcript store keeping at most limit entries
// per user. Non-positive limits fall back to DefaultLimit.
func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Transcript{
		limit:   limit,
		history: make(map[int64][]Entry),
	}
}

// Remember appends an entry, evicting the oldest once over the limit.
func (t *Transcript) Remember(userID int64, role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := append(t.history[userID], Entry{Role: role, Content: content})
	if len(h) > t.limit {
		h = h[len(h)-t.limit:]
	}
	t.history[userID] = h
}

// Snapshot returns a copy of the user's history, oldest first.
func (t *Transcript) Snapshot(userID int64) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := t.history[userID]
	out := make([]Entry, len(h))
	copy(out, h)
	return out
}

// Forget drops the user's history.
func (t *Transcript) Forget(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.history, userID)
}
