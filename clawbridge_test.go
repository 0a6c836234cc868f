package clawbridge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthlabs/clawbridge/conversation"
	"github.com/hearthlabs/clawbridge/core"
	"github.com/hearthlabs/clawbridge/gateway"
	"github.com/hearthlabs/clawbridge/history"
)

func TestBridge_ConverseWithMockGateway(t *testing.T) {
	mock := gateway.NewMock()
	mock.AddResponse("turn on the lights", "Done, lights are on.")
	store := history.NewInMemoryStore()

	bridge := New(Config{AgentID: "voice"}, func(o *Options) {
		o.Gateway = mock
		o.Store = store
	})

	reply := bridge.Converse(context.Background(), "living-room", "turn on the lights")
	assert.Equal(t, "Done, lights are on.", reply)
	assert.Equal(t, 2, store.Len("living-room"))
}

func TestBridge_ConverseAgainstGatewayServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Hello from the claw."}}]}`)
	}))
	defer server.Close()

	bridge := New(Config{BaseURL: server.URL, APIKey: "secret"})
	reply := bridge.Converse(context.Background(), "s1", "hello")
	assert.Equal(t, "Hello from the claw.", reply)
}

func TestBridge_FailureStaysSpeakable(t *testing.T) {
	mock := gateway.NewMock()
	mock.FailWith(core.NewFault(core.FaultRemoteError, "boom", nil))

	bridge := New(Config{}, func(o *Options) { o.Gateway = mock })
	reply := bridge.Converse(context.Background(), "s1", "hello")
	assert.Equal(t, conversation.SpeakRemoteError, reply)
}

func TestBridge_Validate(t *testing.T) {
	t.Run("openclaw backend probes models endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/models", r.URL.Path)
			fmt.Fprint(w, `{"data":[]}`)
		}))
		defer server.Close()

		bridge := New(Config{BaseURL: server.URL, APIKey: "secret"})
		assert.NoError(t, bridge.Validate(context.Background()))
	})

	t.Run("gateway without probe validates trivially", func(t *testing.T) {
		bridge := New(Config{}, func(o *Options) { o.Gateway = gateway.NewMock() })
		assert.NoError(t, bridge.Validate(context.Background()))
	})
}

func TestNew_Defaults(t *testing.T) {
	bridge := New(Config{}, func(o *Options) { o.Gateway = gateway.NewMock() })
	assert.Equal(t, conversation.DefaultAgentID, bridge.config.AgentID)
	assert.Equal(t, conversation.DefaultMaxHistory, bridge.config.MaxHistory)
	assert.NotEmpty(t, bridge.config.SystemPrompt)
	assert.NotZero(t, bridge.config.Timeout)
}
