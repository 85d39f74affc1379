package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techflow/launchpad/pkg/protocol"
)

func TestWebSocket_OriginValidation(t *testing.T) {
	tests := []struct {
		name          string
		wsConfig      *WebSocketConfig
		origin        string
		host          string
		expectAllowed bool
	}{
		{"same-origin allowed", &WebSocketConfig{}, "https://example.com", "example.com", true},
		{"no origin allowed", &WebSocketConfig{}, "", "example.com", true},
		{"explicit origin allowed", &WebSocketConfig{AllowedOrigins: []string{"https://allowed.com"}}, "https://allowed.com", "example.com", true},
		{"bare host allowed", &WebSocketConfig{AllowedOrigins: []string{"allowed.com"}}, "https://allowed.com", "example.com", true},
		{"origin not in list blocked", &WebSocketConfig{AllowedOrigins: []string{"https://allowed.com"}}, "https://attacker.com", "example.com", false},
		{"wildcard allows all", &WebSocketConfig{AllowedOrigins: []string{"*"}}, "https://any-site.com", "example.com", true},
		{"insecure dev mode allows all", &WebSocketConfig{InsecureDevMode: true}, "https://attacker.com", "example.com", true},
		{"cross-origin blocked by default", &WebSocketConfig{}, "https://other-site.com", "example.com", false},
		{"malformed origin blocked", &WebSocketConfig{}, "null", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := NewWebSocketTransport(nil, WithSecurity(tt.wsConfig))
			assert.Equal(t, tt.expectAllowed, transport.isOriginAllowed(tt.origin, tt.host))
		})
	}
}

func TestWebSocket_AcceptOptions(t *testing.T) {
	tr := NewWebSocketTransport(nil, WithSecurity(&WebSocketConfig{
		AllowedOrigins: []string{"https://techflow.dev", "staging.techflow.dev"},
	}))
	opts := tr.acceptOptions()
	assert.False(t, opts.InsecureSkipVerify)
	assert.Equal(t, []string{"techflow.dev", "staging.techflow.dev"}, opts.OriginPatterns)

	tr = NewWebSocketTransport(nil, WithSecurity(&WebSocketConfig{AllowedOrigins: []string{"*"}}))
	assert.True(t, tr.acceptOptions().InsecureSkipVerify)
}

func TestWebSocket_RejectsInvalidOrigin(t *testing.T) {
	transport := NewWebSocketTransport(nil, WithSecurity(&WebSocketConfig{
		AllowedOrigins: []string{"https://allowed.com"},
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://attacker.com")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Connection", "Upgrade")
	req.Host = "example.com"
	w := httptest.NewRecorder()

	err := transport.Upgrade(w, req)
	assert.ErrorIs(t, err, ErrOriginNotAllowed)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, transport.IsConnected())
}

func TestWebSocket_UpgradeRequiresHandshake(t *testing.T) {
	transport := NewWebSocketTransport(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	assert.Error(t, transport.Upgrade(w, req))
	assert.False(t, transport.IsConnected())
}

// echoServer replies ok to every message, echoing the event name.
func echoServer(t *testing.T, codec protocol.Codec) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tr := NewWebSocketTransport(nil, WithCodec(codec))
		if err := tr.Upgrade(w, r); err != nil {
			return
		}
		go func() {
			for {
				select {
				case msg := <-tr.Receive():
					_ = tr.Send(protocol.OkReply(msg.Ref, msg.Topic, map[string]any{"event": msg.Event}))
				case <-tr.Done():
					return
				}
			}
		}()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func receive(t *testing.T, tr Transport) *protocol.Message {
	t.Helper()
	select {
	case msg := <-tr.Receive():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestWebSocket_Roundtrip(t *testing.T) {
	for _, codec := range []protocol.Codec{protocol.NewJSONCodec(), protocol.NewMsgPackCodec(), protocol.NewPhoenixCodec()} {
		t.Run(codec.Name(), func(t *testing.T) {
			srv := echoServer(t, codec)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			client, err := Dial(ctx, wsURL(srv), nil, WithCodec(codec))
			require.NoError(t, err)
			defer client.Close()
			assert.True(t, client.IsConnected())

			require.NoError(t, client.Send(protocol.EventMessage("lv:abc", "navigate", map[string]any{"cta": "primary"}).WithRef("4")))

			reply := receive(t, client)
			assert.Equal(t, protocol.MsgReply, reply.Type)
			assert.Equal(t, "4", reply.Ref)
			assert.Equal(t, "ok", reply.GetPayloadString("status"))
			assert.Equal(t, "navigate", reply.GetPayloadMap("response")["event"])
		})
	}
}

func TestWebSocket_DropsUndecodableFrames(t *testing.T) {
	srv := echoServer(t, protocol.NewJSONCodec())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Dial(ctx, wsURL(srv), nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.currentConn().Write(ctx, websocket.MessageText, []byte("garbage")))
	require.NoError(t, client.Send(protocol.HeartbeatMessage().WithRef("1")))

	reply := receive(t, client)
	assert.Equal(t, "1", reply.Ref)
}

func TestWebSocket_SendAfterClose(t *testing.T) {
	srv := echoServer(t, protocol.NewJSONCodec())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Dial(ctx, wsURL(srv), nil)
	require.NoError(t, err)
	client.Close()

	select {
	case <-client.Done():
	default:
		t.Fatal("done not closed")
	}
	assert.ErrorIs(t, client.Send(protocol.HeartbeatMessage()), ErrNotConnected)
	assert.NoError(t, client.Close())
}

func TestDefaultWebSocketConfig(t *testing.T) {
	config := DefaultWebSocketConfig()
	assert.False(t, config.InsecureDevMode)
	assert.Nil(t, config.AllowedOrigins)
}
