// Package openai provides a gateway.Gateway backed by the official OpenAI
// SDK, for hosts that point the bridge directly at OpenAI (or any endpoint
// the SDK can target via a custom base URL) instead of an OpenClaw gateway.
// Reply extraction and failure classification follow the same contract as
// the openclaw client: one attempt, trimmed text, *core.Fault errors.
package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
)

// Options configure the OpenAI gateway adapter.
type Options struct {
	// APIKey overrides the environment-provided credential.
	APIKey string
	// BaseURL points the SDK at an OpenAI-compatible server.
	BaseURL string
	// Temperature is passed through to the completion call.
	Temperature float64
}

// Gateway adapts the OpenAI chat-completions SDK to the gateway.Gateway
// interface. The Request's model string is passed through verbatim.
type Gateway struct {
	client *openai.Client
	opts   Options
}

var _ gateway.Gateway = (*Gateway)(nil)

// New creates a Gateway using the official client.
func New(optFns ...func(o *Options)) *Gateway {
	opts := Options{Temperature: 0.7}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(clientOpts...)
	return &Gateway{client: &client, opts: opts}
}

// NewFromClient creates a Gateway from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Gateway {
	opts := Options{Temperature: 0.7}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gateway{client: client, opts: opts}
}

// Complete implements gateway.Gateway.
func (g *Gateway) Complete(ctx context.Context, req gateway.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       req.Model,
		Messages:    buildMessages(req.Messages),
		Temperature: openai.Float(g.opts.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", core.NewFault(core.FaultMalformedResponse, "completion carried no choices", nil)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", core.NewFault(core.FaultMalformedResponse, "completion carried empty reply", nil)
	}
	return text, nil
}

// buildMessages converts the wire-neutral messages into SDK message params.
func buildMessages(messages []gateway.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case gateway.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case gateway.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// classify turns SDK errors into faults: API status errors map through
// FaultFromStatus, everything else goes through transport classification.
func classify(err error) *core.Fault {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return gateway.FaultFromStatus(apiErr.StatusCode, apiErr.Message)
	}
	return gateway.ClassifyTransport(err)
}
