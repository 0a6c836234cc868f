// Package clawbridge provides a high-level façade over the conversation
// orchestrator and its services (history, gateway clients & logging) for
// bridging a voice-assistant host to an OpenClaw chat-completion gateway.
// Most hosts interact with this package by:
//  1. Creating a Bridge via New() with their gateway configuration
//  2. Optionally calling Validate() at setup time to surface credential or
//     reachability problems early
//  3. Calling Converse() per transcribed utterance and speaking the returned
//     text
//
// The façade delegates orchestration to conversation.Orchestrator while
// keeping setup ergonomics concise. All defaults are safe for local use;
// hosts typically supply a structured logger and may swap the gateway or
// history backends.
package clawbridge

import (
	"context"
	"time"

	"github.com/hearthlabs/clawbridge/conversation"
	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
	"github.com/hearthlabs/clawbridge/gateway/openclaw"
	"github.com/hearthlabs/clawbridge/logging"
)

// Config is the immutable per-agent configuration. It is supplied once at
// construction and never mutated by the bridge; reconfiguration means
// building a new Bridge.
type Config struct {
	// BaseURL locates the gateway, e.g. "https://clawd.example.com".
	BaseURL string
	// APIKey is the bearer credential sent on every request.
	APIKey string
	// AgentID selects the gateway-side agent (default "main").
	AgentID string
	// ModelOverride, when set, routes to a specific agent or model instead
	// of AgentID; see conversation.ResolveModel for the prefix rules.
	ModelOverride string
	// SystemPrompt overrides the default voice-assistant prompt.
	SystemPrompt string
	// Timeout bounds each gateway call end to end (default 30s).
	Timeout time.Duration
	// MaxHistory caps retained and forwarded prior turns per session
	// (default 10).
	MaxHistory int
	// MaxOutputTokens, when > 0, asks the gateway to bound reply length.
	MaxOutputTokens int64
	// InsecureSkipVerify disables TLS certificate verification for
	// self-signed local gateways.
	InsecureSkipVerify bool
	// Streaming prefers streamed completions when the gateway supports it.
	Streaming bool
}

// Options configure service overrides for the Bridge.
type Options struct {
	// Store overrides the default in-memory history store.
	Store core.HistoryStore
	// Logger receives diagnostics (defaults to NoOp).
	Logger logging.Logger
	// Gateway replaces the openclaw client built from Config, e.g. a mock
	// or one of the SDK-backed backends.
	Gateway gateway.Gateway
}

// Bridge is the single entry point exposed to the host: utterances in,
// speakable text out. Safe for concurrent use across sessions.
type Bridge struct {
	config Config
	gw     gateway.Gateway
	orch   *conversation.Orchestrator
}

// New creates a Bridge from cfg with optional service overrides. Any unset
// service is initialized with its in-memory or openclaw default.
func New(cfg Config, optFns ...func(o *Options)) *Bridge {
	if cfg.AgentID == "" {
		cfg.AgentID = conversation.DefaultAgentID
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = conversation.DefaultSystemPrompt
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = openclaw.DefaultTimeout
	}
	if cfg.MaxHistory == 0 {
		cfg.MaxHistory = conversation.DefaultMaxHistory
	}

	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	gw := opts.Gateway
	if gw == nil {
		gw = openclaw.New(cfg.BaseURL, cfg.APIKey, func(o *openclaw.Options) {
			o.Timeout = cfg.Timeout
			o.VerifySSL = !cfg.InsecureSkipVerify
		})
	}

	orch := conversation.New(gw, func(o *conversation.Options) {
		o.AgentID = cfg.AgentID
		o.ModelOverride = cfg.ModelOverride
		o.SystemPrompt = cfg.SystemPrompt
		o.MaxHistory = cfg.MaxHistory
		o.MaxOutputTokens = cfg.MaxOutputTokens
		o.Streaming = cfg.Streaming
		if opts.Store != nil {
			o.Store = opts.Store
		}
		if opts.Logger != nil {
			o.Logger = opts.Logger
		}
	})

	return &Bridge{config: cfg, gw: gw, orch: orch}
}

// Converse handles one utterance for the given session and always returns
// text fit for speech: the gateway reply on success, a fixed speakable
// sentence on any failure. It never returns an error to the host.
func (b *Bridge) Converse(ctx context.Context, sessionID, utterance string) string {
	return b.orch.Converse(ctx, sessionID, utterance)
}

// Validate probes the gateway's reachability and credentials. Backends
// without a setup-time probe validate trivially.
func (b *Bridge) Validate(ctx context.Context) error {
	if v, ok := b.gw.(gateway.Validator); ok {
		return v.Validate(ctx)
	}
	return nil
}
