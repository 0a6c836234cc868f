package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a Turn.
type Role string

const (
	// RoleUser marks a turn containing a transcribed user utterance.
	RoleUser Role = "user"
	// RoleAssistant marks a turn containing a gateway reply.
	RoleAssistant Role = "assistant"
)

// Turn is one message within a session. Turns are strictly ordered by
// occurrence; the store preserves insertion order and tolerates irregular
// role sequences (e.g. two consecutive user turns after a failed exchange).
// After creation a Turn should be treated as immutable.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a Turn authored by role with a fresh ID and UTC timestamp.
func NewTurn(role Role, text string) Turn {
	return Turn{
		ID:        NewID(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserTurn is a convenience wrapper for a user-authored Turn.
func NewUserTurn(text string) Turn { return NewTurn(RoleUser, text) }

// NewAssistantTurn is a convenience wrapper for an assistant-authored Turn.
func NewAssistantTurn(text string) Turn { return NewTurn(RoleAssistant, text) }

// NewID generates a new unique identifier for turns and invocations.
func NewID() string { return uuid.NewString() }
