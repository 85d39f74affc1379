// Package core provides the live component runtime shared by Launchpad views:
// the component contract, sockets, assigns and socket-bound timers.
package core

import (
	"context"
	"io"
)

// Component is a stateful server-side view. The router mounts it for the
// first HTTP render and again for each live session, then feeds it client
// events and timer messages one at a time.
type Component interface {
	// Name returns the unique identifier for this component type.
	Name() string

	// Mount is called once per render context with the route's params.
	Mount(ctx context.Context, params Params, session Session) error

	// Render returns the current HTML representation of the component.
	Render(ctx context.Context) Renderer

	// HandleEvent processes a client interaction.
	HandleEvent(ctx context.Context, event string, payload map[string]any) error

	// HandleInfo processes a message scheduled with the socket's timers.
	HandleInfo(ctx context.Context, msg any) error

	// Terminate is called when the component is being destroyed. It runs on
	// every teardown path.
	Terminate(ctx context.Context, reason TerminateReason) error
}

// Renderer is the interface for rendering HTML content.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// RendererFunc is an adapter to allow ordinary functions to be used as Renderers.
type RendererFunc func(ctx context.Context, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// Params contains URL parameters and query strings from the connection.
type Params map[string]string

// Session contains per-connection data passed from the HTTP handler.
type Session map[string]any

// TerminateReason indicates why a component is being terminated.
type TerminateReason int

const (
	// TerminateNormal indicates clean disconnection.
	TerminateNormal TerminateReason = iota
	// TerminateShutdown indicates server shutdown.
	TerminateShutdown
	// TerminateError indicates termination due to an error.
	TerminateError
	// TerminateTimeout indicates termination due to inactivity.
	TerminateTimeout
)

func (r TerminateReason) String() string {
	switch r {
	case TerminateNormal:
		return "normal"
	case TerminateShutdown:
		return "shutdown"
	case TerminateError:
		return "error"
	case TerminateTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// SocketSetter is implemented by components that want their live socket.
type SocketSetter interface {
	SetSocket(s *Socket)
}

// BaseComponent provides default implementations for Component methods.
// Embed it to get socket wiring and an assigns store.
type BaseComponent struct {
	socket  *Socket
	assigns *Assigns
}

// SetSocket sets the socket for the component (called by the router).
func (bc *BaseComponent) SetSocket(s *Socket) {
	bc.socket = s
}

// Socket returns the component's socket, nil during the HTTP render.
func (bc *BaseComponent) Socket() *Socket {
	return bc.socket
}

// Connected reports whether the component runs inside a live session.
func (bc *BaseComponent) Connected() bool {
	return bc.socket != nil && bc.socket.IsConnected()
}

// Assigns returns the component's assigns store.
func (bc *BaseComponent) Assigns() *Assigns {
	if bc.assigns == nil {
		bc.assigns = NewAssigns()
	}
	return bc.assigns
}

// Name returns an empty string (override in your component).
func (bc *BaseComponent) Name() string {
	return ""
}

// Mount does nothing by default.
func (bc *BaseComponent) Mount(ctx context.Context, params Params, session Session) error {
	return nil
}

// HandleEvent does nothing by default.
func (bc *BaseComponent) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	return nil
}

// HandleInfo does nothing by default.
func (bc *BaseComponent) HandleInfo(ctx context.Context, msg any) error {
	return nil
}

// Terminate cancels the socket's timers.
func (bc *BaseComponent) Terminate(ctx context.Context, reason TerminateReason) error {
	if bc.socket != nil {
		bc.socket.CancelTimers()
	}
	return nil
}
