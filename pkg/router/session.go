package router

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/techflow/launchpad/pkg/core"
	"github.com/techflow/launchpad/pkg/limits"
	"github.com/techflow/launchpad/pkg/logging"
	"github.com/techflow/launchpad/pkg/protocol"
	"github.com/techflow/launchpad/pkg/transport"
)

// Session binds one websocket connection to one component instance. Only
// the session loop touches the component, so its handlers never run
// concurrently.
type Session struct {
	// ID is the socket ID, a UUID.
	ID string

	Component core.Component
	Socket    *core.Socket
	Transport transport.Transport
	Params    core.Params
	Data      core.Session
	CreatedAt time.Time

	logger       logging.Logger
	lastActivity atomic.Int64

	// Loop-owned state.
	mounted    bool
	leaving    bool
	version    uint64
	slotHashes map[string]uint64

	stop     chan struct{}
	stopOnce sync.Once
	reason   atomic.Int32
}

func newSession(socket *core.Socket, comp core.Component, tr transport.Transport, params core.Params, data core.Session, logger logging.Logger) *Session {
	now := time.Now()
	s := &Session{
		ID:        socket.ID(),
		Component: comp,
		Socket:    socket,
		Transport: tr,
		Params:    params,
		Data:      data,
		CreatedAt: now,
		logger:    logger,
		stop:      make(chan struct{}),
	}
	s.lastActivity.Store(now.UnixNano())
	return s
}

// Topic is the channel topic of the session's socket.
func (s *Session) Topic() string {
	return s.Socket.Topic()
}

// UpdateActivity records client traffic.
func (s *Session) UpdateActivity() {
	s.lastActivity.Store(time.Now().UnixNano())
}

// LastActivity returns the time of the last client message.
func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

// Stop asks the session loop to tear down with reason. Only the first call
// counts.
func (s *Session) Stop(reason core.TerminateReason) {
	s.stopOnce.Do(func() {
		s.reason.Store(int32(reason))
		close(s.stop)
	})
}

func (s *Session) stopReason() core.TerminateReason {
	return core.TerminateReason(s.reason.Load())
}

// SessionManager tracks live sessions by ID.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewSessionManager creates an empty manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Add registers a session.
func (m *SessionManager) Add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get returns a session by ID.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove unregisters a session.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// All returns every live session.
func (m *SessionManager) All() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	return result
}

// Idle returns sessions without client traffic for longer than maxIdle.
func (m *SessionManager) Idle(maxIdle time.Duration) []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := time.Now().Add(-maxIdle)
	var idle []*Session
	for _, s := range m.sessions {
		if s.LastActivity().Before(cutoff) {
			idle = append(idle, s)
		}
	}
	return idle
}

// serve is the session loop. Client messages and fired timers are handled
// one at a time; the loop ends when the client leaves, the connection
// drops, or the session is stopped.
func (r *Router) serve(s *Session) {
	ctx := withSession(context.Background(), s)
	ctx = logging.ContextWithLogger(ctx, s.logger)

	reason := core.TerminateNormal
	defer func() { r.handleDisconnect(s, reason) }()

	for {
		select {
		case msg := <-s.Transport.Receive():
			s.UpdateActivity()
			s.Socket.UpdateActivity()

			if msg.Type == protocol.MsgEvent && !r.events.Allow(s.ID) {
				s.logger.Debug("event dropped", logging.String("event", msg.Event))
				r.send(s, protocol.ErrorReply(msg.Ref, msg.Topic, limits.ErrRateLimitExceeded.Error()))
				continue
			}

			reply, err := r.dispatcher.Dispatch(ctx, msg)
			if err != nil {
				r.sendError(s, msg.Ref, msg.Topic, err)
			} else if reply != nil {
				r.send(s, reply)
			}
			if s.leaving {
				return
			}

		case info := <-s.Socket.Info():
			r.handleInfo(ctx, s, info)

		case <-s.Transport.Done():
			return

		case <-s.stop:
			reason = s.stopReason()
			return
		}
	}
}

// handleInfo delivers a fired timer message to the component and re-renders
// only if it changed assigns. Motion is pushed by the component itself.
func (r *Router) handleInfo(ctx context.Context, s *Session, msg any) {
	if err := s.Component.HandleInfo(ctx, msg); err != nil {
		s.logger.Warn("info handler failed", logging.Err(err))
		return
	}

	assigns := getAssigns(s.Component)
	if assigns == nil || !assigns.Tracker().HasChanges() {
		return
	}
	r.renderAndSendDiff(ctx, s)
}

// handleDisconnect tears a session down. Terminate runs on every path and
// closing the socket cancels any timer the component left behind.
func (r *Router) handleDisconnect(s *Session, reason core.TerminateReason) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeouts.ComponentEvent)
	defer cancel()

	if err := s.Component.Terminate(ctx, reason); err != nil {
		s.logger.Warn("terminate failed", logging.Err(err))
	}
	if err := s.Socket.Close(); err != nil {
		s.logger.Debug("socket close", logging.Err(err))
	}

	r.sessions.Remove(s.ID)
	r.sockets.Remove(s.ID)
	r.events.Forget(s.ID)
	r.observer.SessionClosed()

	s.logger.Info("live session closed",
		logging.String("reason", reason.String()),
		logging.Duration("duration", time.Since(s.CreatedAt)),
	)
}

type sessionKey struct{}

func withSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// getAssigns gets the assigns from a component if available.
func getAssigns(component core.Component) *core.Assigns {
	if a, ok := component.(interface{ Assigns() *core.Assigns }); ok {
		return a.Assigns()
	}
	return nil
}
