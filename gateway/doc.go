// Package gateway defines the provider-neutral contract for remote
// chat-completion backends plus the outbound wire schema shared by all
// implementations. Concrete backends live in sub-packages:
//
//   - gateway/openclaw: raw HTTP client for an OpenClaw (OpenAI-compatible)
//     gateway, including transport fault classification and strict response
//     interpretation
//   - gateway/openai: adapter over the official OpenAI SDK
//   - gateway/anthropic: adapter over the official Anthropic SDK
//
// The orchestrator treats every backend as a stateless text-completion
// function behind a network boundary; reasoning, memory and tool use are the
// remote side's concern and opaque here.
package gateway
