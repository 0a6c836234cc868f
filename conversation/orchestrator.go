package conversation

import (
	"context"
	"strings"
	"sync"

	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
	"github.com/hearthlabs/clawbridge/history"
	"github.com/hearthlabs/clawbridge/logging"
)

// Defaults applied when the corresponding option is unset. The system prompt
// matches the bridge's purpose: replies are spoken aloud, so the remote side
// is asked to keep them speech-friendly.
const (
	DefaultAgentID    = "main"
	DefaultMaxHistory = 10

	DefaultSystemPrompt = "You are a helpful voice assistant. Keep responses brief and natural — " +
		"they will be spoken aloud. Avoid markdown, bullet points, or formatting. " +
		"Use short sentences."
)

// Options configure the Orchestrator.
type Options struct {
	// AgentID selects the gateway-side agent when no override is set.
	AgentID string
	// ModelOverride, when non-empty, is resolved per ResolveModel rules
	// instead of the agent ID.
	ModelOverride string
	// SystemPrompt is prepended to every outbound request.
	SystemPrompt string
	// MaxHistory caps retained and forwarded prior turns per session
	// (turn count, not bytes).
	MaxHistory int
	// MaxOutputTokens, when > 0, asks the gateway to bound the reply.
	MaxOutputTokens int64
	// Streaming prefers a streamed completion when the gateway supports it.
	Streaming bool
	// Store overrides the default in-memory history store.
	Store core.HistoryStore
	// Logger receives diagnostics for failed exchanges (defaults to NoOp).
	Logger logging.Logger
}

// Orchestrator drives one conversational exchange end to end. It owns the
// immutable configuration, holds the history store and gateway by reference,
// and serializes history mutation per session while letting cross-session
// calls proceed fully in parallel. Safe for concurrent use.
type Orchestrator struct {
	gw     gateway.Gateway
	store  core.HistoryStore
	logger logging.Logger

	agentID         string
	model           string
	systemPrompt    string
	maxHistory      int
	maxOutputTokens int64
	streaming       bool

	// locks holds one mutex per session guarding commit+trim.
	locks sync.Map // string -> *sync.Mutex
}

// New constructs an Orchestrator talking to gw with optional overrides.
func New(gw gateway.Gateway, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		AgentID:      DefaultAgentID,
		SystemPrompt: DefaultSystemPrompt,
		MaxHistory:   DefaultMaxHistory,
		Store:        history.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxHistory < 0 {
		opts.MaxHistory = 0
	}

	return &Orchestrator{
		gw:              gw,
		store:           opts.Store,
		logger:          opts.Logger,
		agentID:         opts.AgentID,
		model:           ResolveModel(opts.ModelOverride, opts.AgentID),
		systemPrompt:    opts.SystemPrompt,
		maxHistory:      opts.MaxHistory,
		maxOutputTokens: opts.MaxOutputTokens,
		streaming:       opts.Streaming,
	}
}

// Converse handles one utterance: read bounded history, build the request,
// one gateway attempt, commit on success. It always returns speakable text
// (the reply on success, the fault's fixed sentence otherwise) and never
// panics or returns an error past this boundary.
func (o *Orchestrator) Converse(ctx context.Context, sessionID, utterance string) string {
	reply, err := o.converse(ctx, sessionID, utterance)
	if err != nil {
		kind := core.KindOf(err)
		o.logger.Error("exchange failed",
			"session_id", sessionID,
			"fault_kind", string(kind),
			"error", err.Error(),
		)
		return Speak(kind)
	}
	return reply
}

// converse is the fallible inner path; Converse absorbs its errors.
func (o *Orchestrator) converse(ctx context.Context, sessionID, utterance string) (string, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "", core.NewFault(core.FaultInvalidInput, "empty utterance", nil)
	}

	recent := o.store.Recent(sessionID, o.maxHistory)
	req := gateway.Request{
		Model:     o.model,
		Messages:  BuildMessages(o.systemPrompt, recent, utterance),
		MaxTokens: o.maxOutputTokens,
	}

	reply, err := o.send(ctx, req)
	if err != nil {
		// Failed exchanges are logged by the caller but never committed;
		// a retry by the user starts from unpoisoned context.
		return "", err
	}

	o.commit(sessionID, utterance, reply)
	o.logger.Debug("exchange committed",
		"session_id", sessionID,
		"history_len", o.store.Len(sessionID),
	)
	return reply, nil
}

// send performs the single gateway attempt, streaming when configured and
// supported. Retry policy belongs to the host: a new call re-reads history.
func (o *Orchestrator) send(ctx context.Context, req gateway.Request) (string, error) {
	if o.streaming {
		if streamer, ok := o.gw.(gateway.Streamer); ok {
			return streamer.CompleteStream(ctx, req)
		}
	}
	return o.gw.Complete(ctx, req)
}

// commit appends the user turn then the assistant turn and trims, all under
// the session lock so concurrent exchanges in one session never interleave
// partial pairs.
func (o *Orchestrator) commit(sessionID, utterance, reply string) {
	mu := o.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()
	o.store.Append(sessionID, core.NewUserTurn(utterance))
	o.store.Append(sessionID, core.NewAssistantTurn(reply))
	o.store.Trim(sessionID, o.maxHistory)
}

// sessionLock returns the mutex guarding sessionID's history mutations.
func (o *Orchestrator) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := o.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
