// Package router serves live components over chi: the first render is a
// plain HTTP response and the same path upgrades to a websocket session.
package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/techflow/launchpad/pkg/core"
	"github.com/techflow/launchpad/pkg/limits"
	"github.com/techflow/launchpad/pkg/logging"
	"github.com/techflow/launchpad/pkg/pool"
	"github.com/techflow/launchpad/pkg/protocol"
	"github.com/techflow/launchpad/pkg/transport"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Common router errors.
var (
	ErrNilRenderer  = errors.New("component returned nil renderer")
	ErrNotJoined    = errors.New("session not joined")
	ErrTooManyLives = errors.New("live session limit reached")
)

// RootID is the element id of the live container.
const RootID = "lv-root"

// Observer is told about session lifecycle, events and render timings.
type Observer interface {
	SessionOpened()
	SessionClosed()
	EventHandled(event string, err error)
	Rendered(d time.Duration)
}

type nopObserver struct{}

func (nopObserver) SessionOpened()              {}
func (nopObserver) SessionClosed()              {}
func (nopObserver) EventHandled(string, error) {}
func (nopObserver) Rendered(time.Duration)      {}

// Layout wraps a route's live root in a full page.
type Layout func(ctx context.Context, root g.Node) g.Node

// Options configures a Router.
type Options struct {
	Config   *core.Config
	Logger   logging.Logger
	Observer Observer
	Codecs   *protocol.CodecRegistry
}

// Router handles HTTP routing for live components.
type Router struct {
	mux        chi.Router
	config     *core.Config
	logger     logging.Logger
	observer   Observer
	codecs     *protocol.CodecRegistry
	dispatcher *protocol.Dispatcher
	sessions   *SessionManager
	sockets    *core.SocketManager
	events     limits.RateLimiter
	transport  *transport.Config
	wsConfig   *transport.WebSocketConfig
}

// LiveRoute defines a route that renders a live component.
type LiveRoute struct {
	// Path is the URL path pattern.
	Path string

	// Component creates one component instance per request or session.
	Component func() core.Component

	// Layout is an optional page layout.
	Layout Layout
}

// RouteOption configures a LiveRoute.
type RouteOption func(*LiveRoute)

// WithLayout sets the page layout.
func WithLayout(layout Layout) RouteOption {
	return func(r *LiveRoute) {
		r.Layout = layout
	}
}

// New creates a router with request IDs, real IPs, request logging and
// panic recovery installed.
func New(opts Options) *Router {
	if opts.Config == nil {
		cfg := core.DefaultConfig()
		opts.Config = &cfg
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Codecs == nil {
		opts.Codecs = protocol.NewCodecRegistry()
	}

	cfg := opts.Config
	tc := transport.DefaultConfig()
	tc.ReadTimeout = cfg.Timeouts.WebSocketRead
	tc.WriteTimeout = cfg.Timeouts.WebSocketWrite
	tc.MaxMessageSize = cfg.MaxMessageSize

	r := &Router{
		mux:       chi.NewRouter(),
		config:    cfg,
		logger:    opts.Logger,
		observer:  opts.Observer,
		codecs:    opts.Codecs,
		sessions:  NewSessionManager(),
		sockets:   core.NewSocketManager(),
		transport: tc,
		wsConfig: &transport.WebSocketConfig{
			AllowedOrigins:  cfg.Security.AllowedOrigins,
			InsecureDevMode: cfg.Security.InsecureDevMode,
		},
	}
	r.dispatcher = r.newDispatcher()
	r.events = limits.Unlimited{}
	if cfg.EventRate > 0 {
		r.events = limits.NewTokenBucket(cfg.EventRate, cfg.EventBurst)
	}

	r.mux.Use(middleware.RequestID)
	r.mux.Use(middleware.RealIP)
	r.mux.Use(logging.RequestLogger(r.logger))
	r.mux.Use(middleware.Recoverer)
	if cfg.Security.SecureHeaders {
		r.mux.Use(SecureHeaders(DefaultSecureHeadersConfig()))
	}
	return r
}

// Use adds middleware. It must be called before any route is registered.
func (r *Router) Use(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// Handle registers a standard HTTP handler.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Get registers a GET handler.
func (r *Router) Get(pattern string, handler http.HandlerFunc) {
	r.mux.Get(pattern, handler)
}

// Mount attaches a sub-handler under a prefix.
func (r *Router) Mount(pattern string, handler http.Handler) {
	r.mux.Mount(pattern, handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Sessions returns the live session manager.
func (r *Router) Sessions() *SessionManager {
	return r.sessions
}

// Sockets returns the socket manager.
func (r *Router) Sockets() *core.SocketManager {
	return r.sockets
}

// Live registers a live route. GET requests get the first render; websocket
// upgrades on the same path start a session.
func (r *Router) Live(path string, component func() core.Component, opts ...RouteOption) {
	route := &LiveRoute{Path: path, Component: component}
	for _, opt := range opts {
		opt(route)
	}

	r.mux.Get(path, func(w http.ResponseWriter, req *http.Request) {
		if isWebSocketRequest(req) {
			r.handleWebSocket(w, req, route)
			return
		}
		r.renderLive(w, req, route)
	})
}

// renderLive renders a disconnected instance of the route's component.
func (r *Router) renderLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	ctx, cancel := context.WithTimeout(req.Context(), r.config.Timeouts.ComponentMount)
	defer cancel()

	component := route.Component()
	if err := component.Mount(ctx, extractParams(req), extractSession(req)); err != nil {
		r.fail(w, req, fmt.Errorf("mount %s: %w", component.Name(), err))
		return
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)
	if err := r.render(ctx, component, buf); err != nil {
		r.fail(w, req, err)
		return
	}

	var page g.Node = r.root(route, buf.String())
	if route.Layout != nil {
		page = route.Layout(ctx, page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		logging.L(req.Context()).Warn("page write failed", logging.Err(err))
	}
}

// root is the container the client runtime attaches to.
func (r *Router) root(route *LiveRoute, html string) g.Node {
	codec := r.codecs.Default()
	if protocol.IsBinary(codec) {
		codec = protocol.NewJSONCodec()
	}
	return h.Div(
		h.ID(RootID),
		g.Attr("data-lv-path", route.Path),
		g.Attr("data-lv-codec", codec.Name()),
		g.Raw(html),
	)
}

func (r *Router) render(ctx context.Context, component core.Component, buf *bytes.Buffer) error {
	start := time.Now()
	renderer := component.Render(ctx)
	if renderer == nil {
		return ErrNilRenderer
	}
	if err := renderer.Render(ctx, buf); err != nil {
		return fmt.Errorf("render %s: %w", component.Name(), err)
	}
	r.observer.Rendered(time.Since(start))
	return nil
}

func (r *Router) fail(w http.ResponseWriter, req *http.Request, err error) {
	logging.L(req.Context()).Error("live render failed", logging.Err(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// handleWebSocket upgrades the request and starts the session loop.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	log := logging.L(req.Context())

	if limit := r.config.MaxConnections; limit > 0 && r.sessions.Count() >= limit {
		log.Warn("rejecting live session", logging.Err(ErrTooManyLives), logging.Int("max", limit))
		http.Error(w, ErrTooManyLives.Error(), http.StatusServiceUnavailable)
		return
	}

	codec, err := r.codecs.Lookup(req.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	logger := r.logger.With(logging.String("session", id), logging.String("codec", codec.Name()))

	tr := transport.NewWebSocketTransport(r.transport,
		transport.WithCodec(codec),
		transport.WithSecurity(r.wsConfig),
		transport.WithLogger(logger),
	)
	if err := tr.Upgrade(w, req); err != nil {
		log.Warn("websocket upgrade failed", logging.Err(err))
		return
	}

	socket := core.NewSocket(id, newTransportAdapter(tr))
	component := route.Component()
	if ss, ok := component.(core.SocketSetter); ok {
		ss.SetSocket(socket)
	}

	s := newSession(socket, component, tr, extractParams(req), extractSession(req), logger)
	r.sessions.Add(s)
	r.sockets.Add(socket)
	r.observer.SessionOpened()
	logger.Info("live session opened", logging.String("path", route.Path))

	// The session outlives the upgrade request, so it gets its own context.
	go r.serve(s)
}

// Shutdown stops every live session and waits for their teardown.
func (r *Router) Shutdown(ctx context.Context) error {
	for _, s := range r.sessions.All() {
		s.Stop(core.TerminateShutdown)
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for r.sessions.Count() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// SweepIdle stops sessions without client traffic for longer than maxIdle.
func (r *Router) SweepIdle(maxIdle time.Duration) int {
	idle := r.sessions.Idle(maxIdle)
	for _, s := range idle {
		s.Stop(core.TerminateTimeout)
	}
	return len(idle)
}

// StartSweeper runs SweepIdle every interval until ctx is done.
func (r *Router) StartSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := r.SweepIdle(maxIdle); n > 0 {
					r.logger.Info("swept idle sessions", logging.Int("count", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// extractSession collects cookies into the session map.
func extractSession(req *http.Request) core.Session {
	session := make(core.Session)
	for _, cookie := range req.Cookies() {
		session["cookie:"+cookie.Name] = cookie.Value
	}
	return session
}

// extractParams merges chi URL parameters and the query string.
func extractParams(req *http.Request) core.Params {
	params := make(core.Params)
	for key, values := range req.URL.Query() {
		if key == "codec" || len(values) == 0 {
			continue
		}
		params[key] = values[0]
	}
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key != "*" {
				params[key] = rctx.URLParams.Values[i]
			}
		}
	}
	return params
}

// isWebSocketRequest checks if this is a WebSocket upgrade request.
func isWebSocketRequest(req *http.Request) bool {
	return strings.EqualFold(req.Header.Get("Upgrade"), "websocket")
}
