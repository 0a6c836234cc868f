package openclaw

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
)

func testRequest() gateway.Request {
	return gateway.Request{
		Model: "agent:main",
		Messages: []gateway.Message{
			{Role: gateway.RoleSystem, Content: "Be brief."},
			{Role: gateway.RoleUser, Content: "What time is it?"},
		},
	}
}

func completionBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"id": "cmpl-1",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]string{"role": "assistant", "content": text}, "finish_reason": "stop"},
		},
	})
	return string(body)
}

func TestClient_Complete_HappyPath(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq gateway.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, completionBody("  It's three o'clock.\n"))
	}))
	defer server.Close()

	client := New(server.URL, "test-token")
	text, err := client.Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "It's three o'clock.", text)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "agent:main", gotReq.Model)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, gateway.RoleSystem, gotReq.Messages[0].Role)
}

func TestClient_Complete_MalformedResponses(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty choices", body: `{"choices": []}`},
		{name: "empty content", body: completionBody("   ")},
		{name: "not json", body: `<html>gateway error</html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			defer server.Close()

			client := New(server.URL, "token")
			_, err := client.Complete(context.Background(), testRequest())
			assert.Equal(t, core.FaultMalformedResponse, core.KindOf(err))
		})
	}
}

func TestClient_Complete_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"internal"}`)
	}))
	defer server.Close()

	client := New(server.URL, "token")
	_, err := client.Complete(context.Background(), testRequest())

	var fault *core.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, core.FaultRemoteError, fault.Kind)
	assert.Equal(t, http.StatusInternalServerError, fault.Status)
	assert.Equal(t, "internal", fault.Message)
}

func TestClient_Complete_RemoteErrorObjectMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":{"message":"upstream unavailable"}}`)
	}))
	defer server.Close()

	client := New(server.URL, "token")
	_, err := client.Complete(context.Background(), testRequest())

	var fault *core.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, core.FaultRemoteError, fault.Kind)
	assert.Equal(t, "upstream unavailable", fault.Message)
}

func TestClient_Complete_RemoteErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "token")
	_, err := client.Complete(context.Background(), testRequest())

	var fault *core.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, core.FaultRemoteError, fault.Kind)
	assert.Contains(t, fault.Message, "503")
}

func TestClient_Complete_AuthFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer server.Close()

			client := New(server.URL, "bad-token")
			_, err := client.Complete(context.Background(), testRequest())

			var fault *core.Fault
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, core.FaultAuthFailure, fault.Kind)
			assert.Equal(t, status, fault.Status)
		})
	}
}

func TestClient_Complete_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := New(server.URL, "token", func(o *Options) { o.Timeout = 100 * time.Millisecond })

	start := time.Now()
	_, err := client.Complete(context.Background(), testRequest())
	elapsed := time.Since(start)

	assert.Equal(t, core.FaultTimeout, core.KindOf(err))
	assert.Less(t, elapsed, time.Second, "deadline must cancel the in-flight call promptly")
}

func TestClient_Complete_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client := New("http://"+addr, "token")
	_, err = client.Complete(context.Background(), testRequest())
	assert.Equal(t, core.FaultConnectionRefused, core.KindOf(err))
}

func TestClient_Complete_DNSFailure(t *testing.T) {
	client := New("http://gateway.invalid", "token", func(o *Options) { o.Timeout = 5 * time.Second })
	_, err := client.Complete(context.Background(), testRequest())
	assert.Equal(t, core.FaultDNSFailure, core.KindOf(err))
}

func TestClient_Complete_TLSFailure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("never reached"))
	}))
	defer server.Close()

	// Default client verifies certificates; the httptest cert is self-signed.
	client := New(server.URL, "token")
	_, err := client.Complete(context.Background(), testRequest())
	assert.Equal(t, core.FaultTLSFailure, core.KindOf(err))
}

func TestClient_Complete_SkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("trusted anyway"))
	}))
	defer server.Close()

	client := New(server.URL, "token", func(o *Options) { o.VerifySSL = false })
	text, err := client.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "trusted anyway", text)
}

func TestClient_Validate(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/models", r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)
			fmt.Fprint(w, `{"data":[]}`)
		}))
		defer server.Close()

		client := New(server.URL, "token")
		assert.NoError(t, client.Validate(context.Background()))
	})

	t.Run("bad credential", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := New(server.URL, "token")
		err := client.Validate(context.Background())
		assert.Equal(t, core.FaultAuthFailure, core.KindOf(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := listener.Addr().String()
		require.NoError(t, listener.Close())

		client := New("http://"+addr, "token")
		err = client.Validate(context.Background())
		assert.Equal(t, core.FaultConnectionRefused, core.KindOf(err))
	})
}

func TestClient_CompleteStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gateway.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"It's \"}}]}\n\n")
		fmt.Fprint(w, "data: not-json\n\n") // malformed chunk is skipped
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"three o'clock.\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := New(server.URL, "token")
	text, err := client.CompleteStream(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "It's three o'clock.", text)
}

func TestClient_CompleteStream_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := New(server.URL, "token")
	_, err := client.CompleteStream(context.Background(), testRequest())
	assert.Equal(t, core.FaultMalformedResponse, core.KindOf(err))
}

func TestInterpret_TrimsWhitespace(t *testing.T) {
	text, err := interpret(http.StatusOK, []byte(completionBody("\n  hello there  \t")))
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}
