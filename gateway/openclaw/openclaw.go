// Package openclaw provides the HTTP Gateway implementation for an OpenClaw
// (OpenAI-compatible) chat-completion endpoint. It owns the two failure-prone
// halves of a call: the transport (single POST with a hard deadline and
// network fault classification) and the interpreter (strict decoding of the
// completion schema with remote/auth/malformed classification). Every error
// it returns is a *core.Fault.
package openclaw

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
)

const (
	// DefaultTimeout bounds one complete call: connection, request and the
	// full response body.
	DefaultTimeout = 30 * time.Second

	completionsPath = "/v1/chat/completions"
	modelsPath      = "/v1/models"

	// maxBodyBytes caps how much of a response body is read; a completion
	// reply fitting for speech is far below this.
	maxBodyBytes = 1 << 20
)

// Options configure the Client.
type Options struct {
	// Timeout is the hard deadline covering the entire call. Values <= 0
	// fall back to DefaultTimeout.
	Timeout time.Duration
	// VerifySSL controls TLS certificate verification. Disable only for
	// self-signed local gateways.
	VerifySSL bool
	// HTTPClient overrides the underlying client. When set, VerifySSL is
	// ignored and the caller owns transport configuration.
	HTTPClient *http.Client
}

// Client talks to one OpenClaw gateway. It is stateless apart from immutable
// configuration and safe for concurrent use. No retries are issued; each
// conversational call maps to exactly one HTTP request.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// Compile-time interface checks.
var (
	_ gateway.Gateway   = (*Client)(nil)
	_ gateway.Streamer  = (*Client)(nil)
	_ gateway.Validator = (*Client)(nil)
)

// New creates a Client for the gateway at baseURL authenticating with apiKey.
func New(baseURL, apiKey string, optFns ...func(o *Options)) *Client {
	opts := Options{Timeout: DefaultTimeout, VerifySSL: true}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if !opts.VerifySSL {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicit opt-out
		}
		httpClient = &http.Client{Transport: transport}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: opts.Timeout,
		http:    httpClient,
	}
}

// Complete implements gateway.Gateway: one POST to /v1/chat/completions,
// interpreted strictly. The configured timeout applies on top of any deadline
// already present on ctx; cancellation aborts the in-flight request and
// releases the connection.
func (c *Client) Complete(ctx context.Context, req gateway.Request) (string, error) {
	req.Stream = false
	status, body, err := c.post(ctx, req)
	if err != nil {
		return "", err
	}
	return interpret(status, body)
}

// CompleteStream implements gateway.Streamer: requests a streamed completion
// and collects the delta chunks into the full reply text. Offered for hosts
// whose gateway answers noticeably earlier in stream mode; the bridge still
// returns a single final string.
func (c *Client) CompleteStream(ctx context.Context, req gateway.Request) (string, error) {
	req.Stream = true

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newRequest(ctx, http.MethodPost, completionsPath, req)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if !is2xx(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return "", statusFault(resp.StatusCode, body)
	}

	text, err := collectStream(resp.Body)
	if err != nil {
		return "", classifyTransport(err)
	}
	if text == "" {
		return "", core.NewFault(core.FaultMalformedResponse, "stream carried no content", nil)
	}
	return text, nil
}

// Validate implements gateway.Validator by probing GET /v1/models, the
// cheapest authenticated endpoint. Intended for setup-time checks so a bad
// credential or URL surfaces before the first utterance.
func (c *Client) Validate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newRequest(ctx, http.MethodGet, modelsPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if !is2xx(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return statusFault(resp.StatusCode, body)
	}
	return nil
}

// post issues the completion request and returns status plus the full body.
// Transport failures (including deadline expiry while reading the body) come
// back classified; status interpretation is the caller's concern.
func (c *Client) post(ctx context.Context, req gateway.Request) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newRequest(ctx, http.MethodPost, completionsPath, req)
	if err != nil {
		return 0, nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, classifyTransport(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, classifyTransport(err)
	}
	return resp.StatusCode, body, nil
}

// newRequest builds an authenticated request; a non-nil payload is JSON
// encoded.
func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, core.NewFault(core.FaultUnknown, "encode request", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, core.NewFault(core.FaultUnknown, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func is2xx(status int) bool { return status >= 200 && status < 300 }

// classifyTransport delegates to the shared gateway classifier; kept as a
// local name so call sites read in terms of this client's contract.
func classifyTransport(err error) *core.Fault { return gateway.ClassifyTransport(err) }

// statusFault maps a non-2xx status to an auth or remote fault, pulling the
// gateway's own message out of the body when one is present.
func statusFault(status int, body []byte) *core.Fault {
	return gateway.FaultFromStatus(status, remoteMessage(body))
}
