package history

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hearthlabs/clawbridge/core"
)

// DefaultMaxSessions bounds how many distinct sessions the in-memory store
// retains before the least recently written one is evicted.
const DefaultMaxSessions = 256

// Options configure the InMemoryStore.
type Options struct {
	// MaxSessions caps the number of retained sessions. Values < 1 fall
	// back to DefaultMaxSessions.
	MaxSessions int
}

// InMemoryStore is a volatile HistoryStore keeping per-session turn sequences
// in a process-local LRU map. It is safe for concurrent access and best suited
// for a single long-running agent process. Session count is bounded by LRU
// eviction over session identifiers; turn count per session is bounded by the
// orchestrator calling Trim after each committed exchange.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *sessionEntry]
}

// sessionEntry holds one session's ordered turns. The entry mutex guards the
// slice so reads never observe a partially appended state.
type sessionEntry struct {
	mu    sync.Mutex
	turns []core.Turn
}

// NewInMemoryStore constructs an empty in-memory history store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{MaxSessions: DefaultMaxSessions}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxSessions < 1 {
		opts.MaxSessions = DefaultMaxSessions
	}
	// lru.New only fails for a non-positive size, which is excluded above.
	cache, _ := lru.New[string, *sessionEntry](opts.MaxSessions)
	return &InMemoryStore{sessions: cache}
}

// Append adds a turn to the session's sequence, creating the session if
// absent. Appending marks the session most recently used.
func (s *InMemoryStore) Append(sessionID string, turn core.Turn) {
	entry := s.getOrCreate(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.turns = append(entry.turns, turn)
}

// Recent returns up to limit trailing turns in original order (oldest first
// among the returned subset). The result is a copy; mutating it does not
// affect the store. Reads do not refresh LRU recency.
func (s *InMemoryStore) Recent(sessionID string, limit int) []core.Turn {
	if limit <= 0 {
		return nil
	}
	entry, ok := s.peek(sessionID)
	if !ok {
		return nil
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	start := len(entry.turns) - limit
	if start < 0 {
		start = 0
	}
	out := make([]core.Turn, len(entry.turns)-start)
	copy(out, entry.turns[start:])
	return out
}

// Trim retains only the most recent limit turns, preserving the order of the
// kept suffix. A limit <= 0 clears the session.
func (s *InMemoryStore) Trim(sessionID string, limit int) {
	entry, ok := s.peek(sessionID)
	if !ok {
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if limit <= 0 {
		entry.turns = nil
		return
	}
	if excess := len(entry.turns) - limit; excess > 0 {
		// Reallocate so the discarded prefix becomes collectable.
		kept := make([]core.Turn, limit)
		copy(kept, entry.turns[excess:])
		entry.turns = kept
	}
}

// Len reports the number of turns currently held for the session.
func (s *InMemoryStore) Len(sessionID string) int {
	entry, ok := s.peek(sessionID)
	if !ok {
		return 0
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return len(entry.turns)
}

// Sessions reports how many sessions are currently retained.
func (s *InMemoryStore) Sessions() int { return s.sessions.Len() }

// getOrCreate returns the session entry, allocating it under the store lock
// so concurrent first appends cannot race on creation.
func (s *InMemoryStore) getOrCreate(sessionID string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.sessions.Get(sessionID); ok {
		return entry
	}
	entry := &sessionEntry{}
	s.sessions.Add(sessionID, entry)
	return entry
}

// peek looks up a session without refreshing its LRU recency.
func (s *InMemoryStore) peek(sessionID string) (*sessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Peek(sessionID)
}
