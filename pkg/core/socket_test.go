package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTransport implements Transport for testing.
type MockTransport struct {
	connected bool
	messages  []Message
	failWith  error
	mu        sync.Mutex
}

func NewMockTransport() *MockTransport {
	return &MockTransport{connected: true}
}

func (m *MockTransport) Send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return ErrSocketClosed
	}
	if m.failWith != nil {
		return m.failWith
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *MockTransport) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Message, len(m.messages))
	copy(result, m.messages)
	return result
}

func TestSocket_Push(t *testing.T) {
	transport := NewMockTransport()
	s := NewSocket("abc", transport)

	require.NoError(t, s.Push("motion", map[string]any{"target": "orb"}))

	msgs := transport.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "lv:abc", msgs[0].Topic)
	assert.Equal(t, "motion", msgs[0].Event)
	assert.Equal(t, "orb", msgs[0].Payload["target"])
}

func TestSocket_SendAfterClose(t *testing.T) {
	transport := NewMockTransport()
	s := NewSocket("abc", transport)
	require.NoError(t, s.Close())

	err := s.Push("diff", nil)
	assert.ErrorIs(t, err, ErrSocketClosed)
	assert.False(t, s.IsConnected())
}

func TestSocket_SendFailureWrapped(t *testing.T) {
	transport := NewMockTransport()
	transport.failWith = errors.New("broken pipe")
	s := NewSocket("abc", transport)

	err := s.Push("diff", nil)
	assert.ErrorIs(t, err, ErrSendFailed)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestSocket_SendDiffSkipsEmpty(t *testing.T) {
	transport := NewMockTransport()
	s := NewSocket("abc", transport)

	require.NoError(t, s.SendDiff(&DiffPayload{Version: 1}))
	require.NoError(t, s.SendDiff(nil))
	assert.Empty(t, transport.Messages())

	require.NoError(t, s.SendDiff(&DiffPayload{Version: 2, Slots: map[string]string{"typed": "Fast"}}))
	msgs := transport.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "diff", msgs[0].Event)
	assert.Equal(t, map[string]string{"typed": "Fast"}, msgs[0].Payload["s"])
}

func TestDiffPayload_Size(t *testing.T) {
	d := DiffPayload{
		Slots:     map[string]string{"a": "abc"},
		HTMLSlots: map[string]string{"b": "<i>x</i>"},
	}
	assert.Equal(t, 11, d.Size())
	assert.False(t, d.IsEmpty())
}

func TestSocket_SendAfterDelivers(t *testing.T) {
	s := NewSocket("abc", NewMockTransport())
	defer s.Close()

	ref := s.SendAfter(5*time.Millisecond, "tick")
	assert.NotZero(t, ref)
	assert.Equal(t, 1, s.TimerCount())

	select {
	case msg := <-s.Info():
		assert.Equal(t, "tick", msg)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Eventually(t, func() bool { return s.TimerCount() == 0 }, time.Second, time.Millisecond)
}

func TestSocket_EveryRepeats(t *testing.T) {
	s := NewSocket("abc", NewMockTransport())
	defer s.Close()

	ref := s.Every(2*time.Millisecond, "frame")
	for i := 0; i < 3; i++ {
		select {
		case msg := <-s.Info():
			assert.Equal(t, "frame", msg)
		case <-time.After(time.Second):
			t.Fatalf("tick %d missing", i)
		}
	}

	s.CancelTimer(ref)
	assert.Equal(t, 0, s.TimerCount())
}

func TestSocket_CancelTimerPreventsDelivery(t *testing.T) {
	s := NewSocket("abc", NewMockTransport())
	defer s.Close()

	ref := s.SendAfter(20*time.Millisecond, "late")
	s.CancelTimer(ref)
	s.CancelTimer(ref)
	s.CancelTimer(TimerRef(999))

	select {
	case msg := <-s.Info():
		t.Fatalf("unexpected delivery %v", msg)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestSocket_CloseCancelsTimers(t *testing.T) {
	s := NewSocket("abc", NewMockTransport())

	s.SendAfter(time.Hour, "countdown")
	s.Every(time.Hour, "frame")
	require.Equal(t, 2, s.TimerCount())

	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.TimerCount())

	assert.Zero(t, s.SendAfter(time.Millisecond, "x"))
	assert.Zero(t, s.Every(time.Millisecond, "x"))
	assert.Equal(t, 0, s.TimerCount())

	select {
	case <-s.Done():
	default:
		t.Fatal("done channel should be closed")
	}

	// Closing twice is harmless.
	assert.NoError(t, s.Close())
}

func TestBaseComponent_TerminateCancelsTimers(t *testing.T) {
	s := NewSocket("abc", NewMockTransport())
	defer s.Close()

	var bc BaseComponent
	assert.False(t, bc.Connected())
	bc.SetSocket(s)
	assert.True(t, bc.Connected())

	s.Every(time.Hour, "countdown")
	require.NoError(t, bc.Terminate(context.Background(), TerminateNormal))
	assert.Equal(t, 0, s.TimerCount())
}

func TestAssigns_TracksOnlyRealChanges(t *testing.T) {
	a := NewAssigns()
	a.Set("typed", "Fast")
	assert.True(t, a.Tracker().HasChanges())
	assert.Equal(t, []string{"typed"}, a.Tracker().GetChanged())
	assert.False(t, a.Tracker().HasChanges())

	a.Set("typed", "Fast")
	assert.False(t, a.Tracker().HasChanges())

	a.Set("typed", "Faste")
	assert.True(t, a.Tracker().HasChanges())
	assert.Equal(t, "Faste", a.GetString("typed"))
	assert.Equal(t, uint64(1), a.Tracker().Version())
}

func TestSocketManager_CleanupInactive(t *testing.T) {
	sm := NewSocketManager()
	active := NewSocket("active", NewMockTransport())
	stale := NewSocket("stale", NewMockTransport())
	stale.lastActivity.Store(time.Now().Add(-time.Hour).UnixNano())

	sm.Add(active)
	sm.Add(stale)
	require.Equal(t, 2, sm.Count())

	assert.Equal(t, 1, sm.CleanupInactive(time.Minute))
	_, ok := sm.Get("stale")
	assert.False(t, ok)
	assert.False(t, stale.IsConnected())
	assert.Len(t, sm.All(), 1)

	sm.Remove("active")
	assert.Equal(t, 0, sm.Count())
}

func TestTerminateReason_String(t *testing.T) {
	assert.Equal(t, "normal", TerminateNormal.String())
	assert.Equal(t, "shutdown", TerminateShutdown.String())
	assert.Equal(t, "unknown", TerminateReason(42).String())
}
