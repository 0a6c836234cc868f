package conversation

import (
	"strings"

	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
)

// BuildMessages assembles the ordered outbound messages: configured system
// prompt first, stored history in original order with roles preserved, the
// new utterance as the final user message. Pure data transformation; the new
// utterance is NOT committed to history here; the orchestrator commits only
// once a reply is known, so an unanswered utterance never lingers as an
// orphan user message.
func BuildMessages(systemPrompt string, history []core.Turn, utterance string) []gateway.Message {
	messages := make([]gateway.Message, 0, len(history)+2)
	messages = append(messages, gateway.Message{Role: gateway.RoleSystem, Content: systemPrompt})
	for _, turn := range history {
		if turn.Text == "" {
			continue
		}
		messages = append(messages, gateway.Message{Role: string(turn.Role), Content: turn.Text})
	}
	return append(messages, gateway.Message{Role: gateway.RoleUser, Content: utterance})
}

// ResolveModel resolves the model string for the gateway's chat-completions
// routing:
//   - agent names need the "agent:" prefix (e.g. "voice" becomes "agent:voice")
//   - full model refs like "openai-codex/gpt-5.2-codex" pass through as-is
//   - an empty override falls back to the configured agent ID, prefixed
func ResolveModel(override, agentID string) string {
	raw := strings.TrimSpace(override)
	if raw == "" {
		return "agent:" + agentID
	}
	if strings.Contains(raw, "/") || strings.HasPrefix(raw, "agent:") || strings.HasPrefix(raw, "openclaw/") {
		return raw
	}
	// Bare name, treat as agent ID.
	return "agent:" + raw
}
