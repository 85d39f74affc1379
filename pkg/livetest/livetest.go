// Package livetest drives live components in tests without a browser or a
// websocket: a real core.Socket runs over a recording MockTransport, and
// timer messages are pulled from the socket and handled on demand.
package livetest

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/techflow/launchpad/pkg/core"
)

// LiveTest is a mounted component under test.
type LiveTest struct {
	component core.Component
	transport *MockTransport
	socket    *core.Socket
	rendered  string
	t         testing.TB
}

type mountConfig struct {
	params       core.Params
	session      core.Session
	disconnected bool
}

// MountOption configures the test mount.
type MountOption func(*mountConfig)

// WithParams sets mount parameters.
func WithParams(params core.Params) MountOption {
	return func(c *mountConfig) {
		c.params = params
	}
}

// WithSession sets session data.
func WithSession(session core.Session) MountOption {
	return func(c *mountConfig) {
		c.session = session
	}
}

// Disconnected mounts the component the way the first HTTP render does,
// with no socket.
func Disconnected() MountOption {
	return func(c *mountConfig) {
		c.disconnected = true
	}
}

// Mount mounts comp and renders it once. The socket is closed when the
// test ends.
func Mount(t testing.TB, comp core.Component, opts ...MountOption) *LiveTest {
	t.Helper()

	cfg := mountConfig{params: core.Params{}, session: core.Session{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	lt := &LiveTest{component: comp, t: t}
	if !cfg.disconnected {
		lt.transport = NewMockTransport()
		lt.socket = core.NewSocket(lt.transport.ID, lt.transport)
		if setter, ok := comp.(core.SocketSetter); ok {
			setter.SetSocket(lt.socket)
		}
		t.Cleanup(func() { _ = lt.socket.Close() })
	}

	if err := comp.Mount(context.Background(), cfg.params, cfg.session); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	lt.render()
	return lt
}

// Event sends a client event and re-renders. The handler's error is
// returned untouched.
func (lt *LiveTest) Event(event string, payload map[string]any) error {
	lt.t.Helper()
	if err := lt.component.HandleEvent(context.Background(), event, payload); err != nil {
		return err
	}
	lt.render()
	return nil
}

// Info hands msg to the component as if a timer had fired.
func (lt *LiveTest) Info(msg any) error {
	lt.t.Helper()
	if err := lt.component.HandleInfo(context.Background(), msg); err != nil {
		return err
	}
	lt.render()
	return nil
}

// NextInfo waits up to timeout for the next timer message, handles it and
// returns it.
func (lt *LiveTest) NextInfo(timeout time.Duration) any {
	lt.t.Helper()
	if lt.socket == nil {
		lt.t.Fatalf("NextInfo on a disconnected mount")
	}
	select {
	case msg := <-lt.socket.Info():
		if err := lt.Info(msg); err != nil {
			lt.t.Fatalf("HandleInfo(%T) failed: %v", msg, err)
		}
		return msg
	case <-time.After(timeout):
		lt.t.Fatalf("no timer message within %s", timeout)
		return nil
	}
}

// Terminate tears the component down and closes the socket, like a
// disconnect does.
func (lt *LiveTest) Terminate(reason core.TerminateReason) error {
	err := lt.component.Terminate(context.Background(), reason)
	if lt.socket != nil {
		_ = lt.socket.Close()
	}
	return err
}

func (lt *LiveTest) render() {
	ctx := context.Background()
	var buf bytes.Buffer
	if err := lt.component.Render(ctx).Render(ctx, &buf); err != nil {
		lt.t.Fatalf("Render failed: %v", err)
	}
	lt.rendered = buf.String()
}

// Rendered returns the current rendered HTML.
func (lt *LiveTest) Rendered() string {
	return lt.rendered
}

// Contains reports whether the rendered HTML contains s.
func (lt *LiveTest) Contains(s string) bool {
	return strings.Contains(lt.rendered, s)
}

// Socket returns the live socket, nil for a disconnected mount.
func (lt *LiveTest) Socket() *core.Socket {
	return lt.socket
}

// Transport returns the recording transport, nil for a disconnected mount.
func (lt *LiveTest) Transport() *MockTransport {
	return lt.transport
}

// Component returns the component under test.
func (lt *LiveTest) Component() core.Component {
	return lt.component
}
