// Package anthropic provides a gateway.Gateway backed by the official
// Anthropic SDK, for hosts that bridge straight to Claude instead of an
// OpenClaw gateway. The system message travels in the Messages API system
// field; user/assistant history maps one-to-one. Same contract as the other
// backends: one attempt, trimmed text, *core.Fault errors.
package anthropic

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
)

// defaultMaxTokens applies when the request carries no max-output setting;
// the Messages API requires one.
const defaultMaxTokens = 1024

// Options configure the Anthropic gateway adapter.
type Options struct {
	// Model names the Claude model to use; the Request's model string is
	// an OpenClaw routing concern and is not forwarded here.
	Model anthropic.Model
	// APIKey overrides the environment-provided credential.
	APIKey string
	// Temperature is passed through to the message call.
	Temperature float64
}

// Gateway adapts the Anthropic Messages API to the gateway.Gateway interface.
type Gateway struct {
	client *anthropic.Client
	opts   Options
}

var _ gateway.Gateway = (*Gateway)(nil)

// New creates a Gateway using the official client.
func New(optFns ...func(o *Options)) *Gateway {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)
	return &Gateway{client: &client, opts: opts}
}

// NewFromClient creates a Gateway from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Gateway {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gateway{client: client, opts: opts}
}

// Complete implements gateway.Gateway.
func (g *Gateway) Complete(ctx context.Context, req gateway.Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:       g.opts.Model,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(g.opts.Temperature),
	}
	if system := systemBlocks(req.Messages); len(system) > 0 {
		params.System = system
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", core.NewFault(core.FaultMalformedResponse, "message carried no text content", nil)
	}
	return text, nil
}

// buildMessages converts wire-neutral conversational messages to Messages
// API params; the system message is handled separately.
func buildMessages(messages []gateway.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case gateway.RoleSystem:
			continue
		case gateway.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}

// systemBlocks collects system messages into Messages API system blocks.
func systemBlocks(messages []gateway.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, m := range messages {
		if m.Role == gateway.RoleSystem && m.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: m.Content})
		}
	}
	return blocks
}

// classify turns SDK errors into faults: API status errors map through
// FaultFromStatus, everything else goes through transport classification.
func classify(err error) *core.Fault {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return gateway.FaultFromStatus(apiErr.StatusCode, "")
	}
	return gateway.ClassifyTransport(err)
}
