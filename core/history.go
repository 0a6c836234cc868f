package core

// HistoryStore persists ordered per-session conversation turns. Implementations
// must be safe for concurrent use across sessions; the orchestrator serializes
// mutations within a single session.
//
// Contract:
//   - Append never fails and creates the session lazily
//   - Recent returns the last limit turns oldest-first as a defensive copy
//   - Trim discards everything older than the most recent limit turns, so the
//     store itself stays bounded rather than only the outbound payload
type HistoryStore interface {
	// Append adds a turn to the end of the session's sequence, creating the
	// session if absent.
	Append(sessionID string, turn Turn)

	// Recent returns up to limit trailing turns in original order. A limit
	// <= 0 returns nil. Pure read; no side effects.
	Recent(sessionID string, limit int) []Turn

	// Trim retains only the most recent limit turns of the session,
	// preserving the order of the kept suffix. A limit <= 0 clears the
	// session.
	Trim(sessionID string, limit int)

	// Len reports the number of turns currently held for the session.
	Len(sessionID string) int
}
