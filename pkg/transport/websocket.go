package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/techflow/launchpad/pkg/logging"
	"github.com/techflow/launchpad/pkg/protocol"
)

// WebSocket security errors
var (
	ErrOriginNotAllowed = errors.New("origin not allowed")
)

// WebSocketConfig configures WebSocket security settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of allowed origins for WebSocket connections.
	// If empty and InsecureDevMode is false, only same-origin connections are allowed.
	AllowedOrigins []string

	// InsecureDevMode disables origin validation (ONLY for development).
	InsecureDevMode bool
}

// DefaultWebSocketConfig returns secure default configuration.
func DefaultWebSocketConfig() *WebSocketConfig {
	return &WebSocketConfig{}
}

// WebSocketTransport implements Transport over a websocket, framing each
// message with its codec. Binary codecs use binary frames.
type WebSocketTransport struct {
	*BaseTransport
	conn     *websocket.Conn
	codec    protocol.Codec
	wsConfig *WebSocketConfig
	logger   logging.Logger
	mu       sync.Mutex
}

// Option configures a WebSocketTransport.
type Option func(*WebSocketTransport)

// WithCodec sets the framing codec. JSON is used otherwise.
func WithCodec(codec protocol.Codec) Option {
	return func(t *WebSocketTransport) {
		if codec != nil {
			t.codec = codec
		}
	}
}

// WithSecurity sets the origin policy.
func WithSecurity(wsConfig *WebSocketConfig) Option {
	return func(t *WebSocketTransport) {
		if wsConfig != nil {
			t.wsConfig = wsConfig
		}
	}
}

// WithLogger sets the logger for dropped frames and connection errors.
func WithLogger(logger logging.Logger) Option {
	return func(t *WebSocketTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewWebSocketTransport creates a new WebSocket transport.
func NewWebSocketTransport(config *Config, opts ...Option) *WebSocketTransport {
	t := &WebSocketTransport{
		BaseTransport: NewBaseTransport(config),
		codec:         protocol.NewJSONCodec(),
		wsConfig:      DefaultWebSocketConfig(),
		logger:        logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Codec returns the framing codec.
func (t *WebSocketTransport) Codec() protocol.Codec {
	return t.codec
}

// isOriginAllowed checks if the origin is allowed for WebSocket connections.
func (t *WebSocketTransport) isOriginAllowed(origin string, requestHost string) bool {
	if t.wsConfig.InsecureDevMode {
		return true
	}

	// No Origin header: not a browser cross-site request.
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil || originURL.Host == "" {
		return false
	}

	if strings.EqualFold(originURL.Host, requestHost) {
		return true
	}

	for _, allowed := range t.wsConfig.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if strings.EqualFold(allowedHost(allowed), originURL.Host) {
			return true
		}
	}
	return false
}

// allowedHost returns the host part of an allowed origin, accepting bare
// hosts as well as full origins.
func allowedHost(allowed string) string {
	if u, err := url.Parse(allowed); err == nil && u.Host != "" {
		return u.Host
	}
	return allowed
}

// acceptOptions mirrors the origin policy for the websocket handshake,
// which runs its own same-origin check.
func (t *WebSocketTransport) acceptOptions() *websocket.AcceptOptions {
	opts := &websocket.AcceptOptions{InsecureSkipVerify: t.wsConfig.InsecureDevMode}
	for _, allowed := range t.wsConfig.AllowedOrigins {
		if allowed == "*" {
			opts.InsecureSkipVerify = true
			continue
		}
		opts.OriginPatterns = append(opts.OriginPatterns, allowedHost(allowed))
	}
	return opts
}

// Upgrade upgrades an HTTP connection to WebSocket (server-side).
// Validates origin header to prevent WebSocket hijacking attacks.
func (t *WebSocketTransport) Upgrade(w http.ResponseWriter, r *http.Request) error {
	if !t.isOriginAllowed(r.Header.Get("Origin"), r.Host) {
		http.Error(w, "Forbidden: Origin not allowed", http.StatusForbidden)
		return ErrOriginNotAllowed
	}

	// Accept writes its own error response.
	conn, err := websocket.Accept(w, r, t.acceptOptions())
	if err != nil {
		return fmt.Errorf("accept websocket: %w", err)
	}

	t.start(conn)
	return nil
}

// Dial connects to a live endpoint as a client. Used by tools and tests
// that drive a session without a browser.
func Dial(ctx context.Context, rawURL string, config *Config, opts ...Option) (*WebSocketTransport, error) {
	t := NewWebSocketTransport(config, opts...)

	conn, _, err := websocket.Dial(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}

	t.start(conn)
	return t, nil
}

func (t *WebSocketTransport) start(conn *websocket.Conn) {
	conn.SetReadLimit(t.config.MaxMessageSize)

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
	t.SetConnected(true)

	go t.readLoop()
	go t.writeLoop()
	go t.pingLoop()
}

// Send queues a message for the write loop.
func (t *WebSocketTransport) Send(msg *protocol.Message) error {
	if !t.IsConnected() {
		return ErrNotConnected
	}

	timer := time.NewTimer(t.config.WriteTimeout)
	defer timer.Stop()

	select {
	case t.sendCh <- msg:
		return nil
	case <-t.closeCh:
		return ErrConnectionClosed
	case <-timer.C:
		return ErrSendTimeout
	}
}

// Close closes the WebSocket connection.
func (t *WebSocketTransport) Close() error {
	t.BaseTransport.Close()

	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if conn != nil {
		return conn.Close(websocket.StatusNormalClosure, "closing")
	}
	return nil
}

func (t *WebSocketTransport) currentConn() *websocket.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}

// readLoop decodes client frames until the connection ends. Frames the
// codec rejects are dropped.
func (t *WebSocketTransport) readLoop() {
	defer t.Close()

	for {
		conn := t.currentConn()
		if conn == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), t.config.ReadTimeout)
		_, data, err := conn.Read(ctx)
		cancel()

		if err != nil {
			if websocket.CloseStatus(err) == -1 {
				t.logger.Debug("websocket read ended", logging.Err(err))
			}
			return
		}

		msg, err := t.codec.Decode(data)
		if err != nil {
			t.logger.Debug("dropping undecodable frame",
				logging.String("codec", t.codec.Name()),
				logging.Int("bytes", len(data)),
				logging.Err(err),
			)
			continue
		}

		if err := t.Deliver(msg); err != nil {
			return
		}
	}
}

// writeLoop encodes and writes queued messages.
func (t *WebSocketTransport) writeLoop() {
	frame := websocket.MessageText
	if protocol.IsBinary(t.codec) {
		frame = websocket.MessageBinary
	}

	for {
		select {
		case msg := <-t.sendCh:
			conn := t.currentConn()
			if conn == nil {
				return
			}

			data, err := t.codec.Encode(msg)
			if err != nil {
				t.logger.Warn("dropping unencodable message",
					logging.String("event", msg.Event),
					logging.Err(err),
				)
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			err = conn.Write(ctx, frame, data)
			cancel()

			if err != nil {
				t.logger.Debug("websocket write failed", logging.Err(err))
				t.Close()
				return
			}

		case <-t.closeCh:
			return
		}
	}
}

// pingLoop sends periodic pings to keep the connection alive.
func (t *WebSocketTransport) pingLoop() {
	ticker := time.NewTicker(t.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn := t.currentConn()
			if conn == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			err := conn.Ping(ctx)
			cancel()
			if err != nil {
				t.logger.Debug("websocket ping failed", logging.Err(err))
			}
		case <-t.closeCh:
			return
		}
	}
}
