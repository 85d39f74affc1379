package core

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Common socket errors.
var (
	ErrSocketClosed = errors.New("socket is closed")
	ErrSendFailed   = errors.New("failed to send message")
)

// InfoBufferSize bounds timer messages waiting for the session loop.
const InfoBufferSize = 64

// Socket is one live connection to a browser. Besides sending messages it
// owns the connection's timers: every timer is cancelled when the socket
// closes, and fired timers are delivered through Info so the session loop
// handles them one at a time alongside client events.
type Socket struct {
	id string

	connected bool

	// lastActivity as atomic int64 (Unix nanoseconds)
	lastActivity atomic.Int64

	assigns   *Assigns
	transport Transport

	info      chan any
	done      chan struct{}
	closeOnce sync.Once

	timers    map[TimerRef]func()
	nextTimer TimerRef
	timersOff bool
	timerMu   sync.Mutex

	mu sync.RWMutex
}

// Transport is the interface for underlying connection transports.
type Transport interface {
	Send(msg Message) error
	Close() error
	IsConnected() bool
}

// Message represents a message sent over the socket.
type Message struct {
	Ref     string         `json:"ref,omitempty"`
	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

// TimerRef identifies a scheduled timer. The zero value is never issued.
type TimerRef uint64

// NewSocket creates a new socket with the given ID and transport.
func NewSocket(id string, transport Transport) *Socket {
	now := time.Now()
	s := &Socket{
		id:        id,
		connected: true,
		assigns:   NewAssigns(),
		transport: transport,
		info:      make(chan any, InfoBufferSize),
		done:      make(chan struct{}),
		timers:    make(map[TimerRef]func()),
	}
	s.lastActivity.Store(now.UnixNano())
	return s
}

// ID returns the socket's unique identifier.
func (s *Socket) ID() string {
	return s.id
}

// Topic is the channel topic used for pushes to this socket.
func (s *Socket) Topic() string {
	return "lv:" + s.id
}

// IsConnected returns true if the socket is connected.
func (s *Socket) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected && s.transport != nil && s.transport.IsConnected()
}

// LastActivity returns the time of last activity.
func (s *Socket) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

// UpdateActivity updates the last activity timestamp.
func (s *Socket) UpdateActivity() {
	s.lastActivity.Store(time.Now().UnixNano())
}

// Assigns returns the socket's assigns store.
func (s *Socket) Assigns() *Assigns {
	return s.assigns
}

// Send sends a message to the client.
func (s *Socket) Send(msg Message) error {
	s.mu.RLock()
	connected := s.connected
	transport := s.transport
	s.mu.RUnlock()

	if !connected || transport == nil || !transport.IsConnected() {
		return ErrSocketClosed
	}

	s.lastActivity.Store(time.Now().UnixNano())

	if err := transport.Send(msg); err != nil {
		s.mu.RLock()
		stillConnected := s.connected
		s.mu.RUnlock()
		if !stillConnected {
			return ErrSocketClosed
		}
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Push sends an event to the client.
func (s *Socket) Push(event string, payload map[string]any) error {
	return s.Send(Message{
		Topic:   s.Topic(),
		Event:   event,
		Payload: payload,
	})
}

// DiffPayload is the diff format sent to clients: changed text slots (s),
// changed HTML slots (h), or a full render (f) when the view has no slots.
type DiffPayload struct {
	Version   uint64            `json:"v"`
	Slots     map[string]string `json:"s,omitempty"`
	HTMLSlots map[string]string `json:"h,omitempty"`
	Full      string            `json:"f,omitempty"`
}

// IsEmpty returns true if the payload has no changes.
func (d *DiffPayload) IsEmpty() bool {
	return len(d.Slots) == 0 && len(d.HTMLSlots) == 0 && d.Full == ""
}

// Size returns the total size of the payload in bytes.
func (d *DiffPayload) Size() int {
	size := len(d.Full)
	for _, content := range d.Slots {
		size += len(content)
	}
	for _, content := range d.HTMLSlots {
		size += len(content)
	}
	return size
}

// SendDiff sends a diff payload to the client. Empty payloads are skipped.
func (s *Socket) SendDiff(payload *DiffPayload) error {
	if payload == nil || payload.IsEmpty() {
		return nil
	}
	return s.Push("diff", map[string]any{
		"v": payload.Version,
		"s": payload.Slots,
		"h": payload.HTMLSlots,
		"f": payload.Full,
	})
}

// Assign sets a value in assigns (convenience method).
func (s *Socket) Assign(key string, value any) {
	s.assigns.Set(key, value)
}

// Info returns the channel fired timers are delivered on.
func (s *Socket) Info() <-chan any {
	return s.info
}

// Done is closed when the socket closes.
func (s *Socket) Done() <-chan struct{} {
	return s.done
}

// SendAfter delivers msg on Info once d has elapsed. It returns 0 if the
// socket is already closed.
func (s *Socket) SendAfter(d time.Duration, msg any) TimerRef {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timersOff {
		return 0
	}

	s.nextTimer++
	ref := s.nextTimer
	stop := make(chan struct{})
	t := time.AfterFunc(d, func() {
		s.forgetTimer(ref)
		s.deliver(msg, stop)
	})

	var once sync.Once
	s.timers[ref] = func() {
		once.Do(func() {
			t.Stop()
			close(stop)
		})
	}
	return ref
}

// Every delivers msg on Info at each interval until cancelled.
func (s *Socket) Every(interval time.Duration, msg any) TimerRef {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timersOff {
		return 0
	}

	s.nextTimer++
	ref := s.nextTimer
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !s.deliver(msg, stop) {
					return
				}
			case <-stop:
				return
			case <-s.done:
				return
			}
		}
	}()

	var once sync.Once
	s.timers[ref] = func() {
		once.Do(func() { close(stop) })
	}
	return ref
}

func (s *Socket) deliver(msg any, stop <-chan struct{}) bool {
	select {
	case s.info <- msg:
		return true
	case <-stop:
		return false
	case <-s.done:
		return false
	}
}

func (s *Socket) forgetTimer(ref TimerRef) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	delete(s.timers, ref)
}

// CancelTimer stops one timer. Unknown or fired refs are ignored.
func (s *Socket) CancelTimer(ref TimerRef) {
	s.timerMu.Lock()
	cancel, ok := s.timers[ref]
	delete(s.timers, ref)
	s.timerMu.Unlock()
	if ok {
		cancel()
	}
}

// CancelTimers stops every pending timer.
func (s *Socket) CancelTimers() {
	s.timerMu.Lock()
	cancels := make([]func(), 0, len(s.timers))
	for ref, cancel := range s.timers {
		cancels = append(cancels, cancel)
		delete(s.timers, ref)
	}
	s.timerMu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// TimerCount returns the number of pending timers.
func (s *Socket) TimerCount() int {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	return len(s.timers)
}

// Close cancels all timers and closes the connection. No timer can be
// scheduled afterwards.
func (s *Socket) Close() error {
	s.timerMu.Lock()
	s.timersOff = true
	s.timerMu.Unlock()
	s.CancelTimers()
	s.closeOnce.Do(func() { close(s.done) })

	s.mu.Lock()
	s.connected = false
	transport := s.transport
	s.mu.Unlock()

	if transport != nil {
		return transport.Close()
	}
	return nil
}

// SocketManager tracks every live socket.
type SocketManager struct {
	sockets map[string]*Socket
	mu      sync.RWMutex
}

// NewSocketManager creates a new socket manager.
func NewSocketManager() *SocketManager {
	return &SocketManager{
		sockets: make(map[string]*Socket),
	}
}

// Add registers a socket.
func (sm *SocketManager) Add(socket *Socket) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sockets[socket.ID()] = socket
}

// Remove unregisters a socket.
func (sm *SocketManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sockets, id)
}

// Get retrieves a socket by ID.
func (sm *SocketManager) Get(id string) (*Socket, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sockets[id]
	return s, ok
}

// Count returns the number of active sockets.
func (sm *SocketManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sockets)
}

// All returns all sockets.
func (sm *SocketManager) All() []*Socket {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	result := make([]*Socket, 0, len(sm.sockets))
	for _, s := range sm.sockets {
		result = append(result, s)
	}
	return result
}

// CleanupInactive closes and removes sockets idle for longer than maxInactive.
func (sm *SocketManager) CleanupInactive(maxInactive time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, s := range sm.sockets {
		if now.Sub(s.LastActivity()) > maxInactive {
			s.Close()
			delete(sm.sockets, id)
			removed++
		}
	}
	return removed
}
