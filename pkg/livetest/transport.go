package livetest

import (
	"sync"

	"github.com/google/uuid"
	"github.com/techflow/launchpad/pkg/core"
)

// MockTransport implements core.Transport and records every message.
type MockTransport struct {
	ID          string
	Connected   bool
	Closed      bool
	Sent        []core.Message
	errorToSend error

	mu sync.Mutex
}

// NewMockTransport creates a connected mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		ID:        "test-" + uuid.NewString()[:8],
		Connected: true,
	}
}

// Send records a sent message.
func (mt *MockTransport) Send(msg core.Message) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.errorToSend != nil {
		return mt.errorToSend
	}
	if mt.Closed {
		return core.ErrSocketClosed
	}
	mt.Sent = append(mt.Sent, msg)
	return nil
}

// Close marks the transport as closed.
func (mt *MockTransport) Close() error {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.Closed = true
	mt.Connected = false
	return nil
}

// IsConnected returns the connection status.
func (mt *MockTransport) IsConnected() bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.Connected && !mt.Closed
}

// SentMessages returns all sent messages.
func (mt *MockTransport) SentMessages() []core.Message {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	result := make([]core.Message, len(mt.Sent))
	copy(result, mt.Sent)
	return result
}

// Pushed returns the messages sent with event, in order.
func (mt *MockTransport) Pushed(event string) []core.Message {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var result []core.Message
	for _, msg := range mt.Sent {
		if msg.Event == event {
			result = append(result, msg)
		}
	}
	return result
}

// LastPushed returns the most recent message with event and whether one
// was found.
func (mt *MockTransport) LastPushed(event string) (core.Message, bool) {
	msgs := mt.Pushed(event)
	if len(msgs) == 0 {
		return core.Message{}, false
	}
	return msgs[len(msgs)-1], true
}

// SetError makes every following Send fail with err.
func (mt *MockTransport) SetError(err error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.errorToSend = err
}

// Reset clears recorded messages and errors.
func (mt *MockTransport) Reset() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.Sent = nil
	mt.errorToSend = nil
}
