package protocol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/techflow/launchpad/pkg/logging"
)

// Common handler errors.
var (
	ErrHandlerNotFound = errors.New("handler not found for message type")
	ErrHandlerPanic    = errors.New("handler panicked")
)

// MessageHandler processes protocol messages.
type MessageHandler interface {
	// HandleMessage processes a message and returns an optional reply.
	HandleMessage(ctx context.Context, msg *Message) (*Message, error)
}

// MessageHandlerFunc is an adapter to allow functions as MessageHandler.
type MessageHandlerFunc func(ctx context.Context, msg *Message) (*Message, error)

// HandleMessage implements MessageHandler.
func (f MessageHandlerFunc) HandleMessage(ctx context.Context, msg *Message) (*Message, error) {
	return f(ctx, msg)
}

// MiddlewareFunc is middleware that wraps message handling.
type MiddlewareFunc func(next MessageHandler) MessageHandler

// Dispatcher routes messages to handlers by type. Handlers run on the
// caller's goroutine, so a session dispatching from one loop handles its
// messages one at a time.
type Dispatcher struct {
	handlers   map[MessageType]MessageHandler
	middleware []MiddlewareFunc
	metrics    DispatcherMetrics
	timeout    time.Duration
	mu         sync.RWMutex
}

// DispatcherMetrics tracks dispatcher throughput.
type DispatcherMetrics struct {
	MessagesReceived  int64
	MessagesProcessed int64
	MessagesErrored   int64
	TotalLatency      time.Duration
}

// NewDispatcher creates a new message dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[MessageType]MessageHandler),
		timeout:  30 * time.Second,
	}
}

// SetTimeout sets the deadline given to each handler's context.
func (d *Dispatcher) SetTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeout = timeout
}

// Register adds a handler for a message type.
func (d *Dispatcher) Register(msgType MessageType, handler MessageHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[msgType] = handler
}

// RegisterFunc adds a handler function for a message type.
func (d *Dispatcher) RegisterFunc(msgType MessageType, fn func(ctx context.Context, msg *Message) (*Message, error)) {
	d.Register(msgType, MessageHandlerFunc(fn))
}

// Use adds middleware to the dispatcher.
func (d *Dispatcher) Use(mw MiddlewareFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.middleware = append(d.middleware, mw)
}

// Dispatch routes a message to its handler. Panics become ErrHandlerPanic.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *Message) (*Message, error) {
	d.mu.Lock()
	handler, ok := d.handlers[msg.Type]
	middleware := make([]MiddlewareFunc, len(d.middleware))
	copy(middleware, d.middleware)
	timeout := d.timeout
	d.metrics.MessagesReceived++
	if !ok {
		d.metrics.MessagesErrored++
	}
	d.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, msg.Type)
	}

	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := executeWithRecovery(ctx, handler, msg)

	d.mu.Lock()
	d.metrics.TotalLatency += time.Since(start)
	if err != nil {
		d.metrics.MessagesErrored++
	} else {
		d.metrics.MessagesProcessed++
	}
	d.mu.Unlock()

	return result, err
}

func executeWithRecovery(ctx context.Context, handler MessageHandler, msg *Message) (result *Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return handler.HandleMessage(ctx, msg)
}

// Metrics returns a snapshot of the dispatcher metrics.
func (d *Dispatcher) Metrics() DispatcherMetrics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.metrics
}

// LoggingMiddleware logs message handling at debug level, and failures at
// warn level.
func LoggingMiddleware(logger logging.Logger) MiddlewareFunc {
	return func(next MessageHandler) MessageHandler {
		return MessageHandlerFunc(func(ctx context.Context, msg *Message) (*Message, error) {
			start := time.Now()
			result, err := next.HandleMessage(ctx, msg)

			fields := []logging.Field{
				logging.String("type", msg.Type.String()),
				logging.String("event", msg.Event),
				logging.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Warn("message failed", append(fields, logging.Err(err))...)
			} else {
				logger.Debug("message handled", fields...)
			}
			return result, err
		})
	}
}
