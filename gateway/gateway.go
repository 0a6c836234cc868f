package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hearthlabs/clawbridge/core"
)

// Role values used on the wire. They match the OpenAI chat-completion schema
// and deliberately mirror core.Role for the two conversational roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged message of an outbound request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the ephemeral outbound value built per call: the resolved model
// string plus the ordered messages (system prompt first, bounded history, new
// user utterance last). It is never persisted.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream"`
	MaxTokens int64     `json:"max_tokens,omitempty"`
}

// Gateway is the minimal interface the orchestrator needs from a remote
// completion backend. Complete returns the assistant reply text with
// surrounding whitespace trimmed, or a *core.Fault describing the failure.
// Implementations must honor ctx cancellation and issue exactly one attempt.
type Gateway interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Streamer is implemented by gateways that can stream a completion and
// collect it into the full reply. Callers fall back to Complete when the
// backend does not support streaming.
type Streamer interface {
	CompleteStream(ctx context.Context, req Request) (string, error)
}

// Validator is implemented by gateways that can probe reachability and
// credentials ahead of conversational use (setup-time checks).
type Validator interface {
	Validate(ctx context.Context) error
}

// Mock is a lightweight in-memory Gateway useful for tests and examples.
// It is not safe for concurrent reconfiguration; configure before use.
type Mock struct {
	responses map[string]string
	fault     *core.Fault
	delay     time.Duration
}

// NewMock constructs an empty Mock gateway.
func NewMock() *Mock {
	return &Mock{responses: make(map[string]string)}
}

// AddResponse registers a deterministic canned reply for a user utterance.
func (m *Mock) AddResponse(utterance, reply string) { m.responses[utterance] = reply }

// FailWith makes every subsequent Complete call return the given fault.
func (m *Mock) FailWith(f *core.Fault) { m.fault = f }

// SetDelay makes Complete block for d (or until ctx is done) before
// answering, for deadline tests.
func (m *Mock) SetDelay(d time.Duration) { m.delay = d }

// Complete implements Gateway.
func (m *Mock) Complete(ctx context.Context, req Request) (string, error) {
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return "", core.NewFault(core.FaultTimeout, "mock deadline", ctx.Err())
		case <-time.After(m.delay):
		}
	}
	if m.fault != nil {
		return "", m.fault
	}
	if len(req.Messages) == 0 {
		return "", core.NewFault(core.FaultInvalidInput, "no messages", nil)
	}
	last := req.Messages[len(req.Messages)-1]
	if reply, ok := m.responses[last.Content]; ok {
		return strings.TrimSpace(reply), nil
	}
	return fmt.Sprintf("Mock reply to: %s", last.Content), nil
}
