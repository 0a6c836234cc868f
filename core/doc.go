// Package core provides the foundational domain types and contracts used by
// clawbridge. It defines:
//
//   - Turns (ordered user/assistant messages within a session)
//   - Faults (typed failures drawn from a small closed kind set)
//   - HistoryStore (pluggable bounded per-session conversation history)
//
// The package intentionally keeps implementation concerns (persistence,
// transport, orchestration) out of scope, exposing small interfaces so that
// higher layers and custom backends depend only on domain contracts.
package core
