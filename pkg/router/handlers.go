package router

import (
	"context"
	"errors"

	"github.com/techflow/launchpad/pkg/core"
	"github.com/techflow/launchpad/pkg/logging"
	"github.com/techflow/launchpad/pkg/pool"
	"github.com/techflow/launchpad/pkg/protocol"
	"github.com/techflow/launchpad/pkg/transport"
)

// newDispatcher wires the protocol handlers every session shares. The
// session travels in the context.
func (r *Router) newDispatcher() *protocol.Dispatcher {
	d := protocol.NewDispatcher()
	d.SetTimeout(r.config.Timeouts.ComponentEvent)
	d.Use(protocol.LoggingMiddleware(r.logger))
	d.RegisterFunc(protocol.MsgJoin, r.handleJoin)
	d.RegisterFunc(protocol.MsgEvent, r.handleEvent)
	d.RegisterFunc(protocol.MsgHeartbeat, r.handleHeartbeat)
	d.RegisterFunc(protocol.MsgLeave, r.handleLeave)
	return d
}

// handleJoin mounts the component on first join and replies with the full
// render. Slot hashes restart from that render.
func (r *Router) handleJoin(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	s := sessionFromContext(ctx)

	if !s.mounted {
		params := s.Params
		for k, v := range msg.GetPayloadMap("params") {
			if str, ok := v.(string); ok {
				params[k] = str
			}
		}
		if err := s.Component.Mount(ctx, params, s.Data); err != nil {
			return nil, err
		}
		s.mounted = true
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)
	if err := r.render(ctx, s.Component, buf); err != nil {
		return nil, err
	}
	html := buf.String()
	_, s.slotHashes = snapshot(html)
	if a := getAssigns(s.Component); a != nil {
		a.Tracker().GetChanged()
	}

	return protocol.OkReply(msg.Ref, msg.Topic, map[string]any{
		"rendered": html,
		"topic":    s.Topic(),
	}), nil
}

// handleEvent runs a component event and sends the resulting diff before
// the reply.
func (r *Router) handleEvent(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	s := sessionFromContext(ctx)
	if !s.mounted {
		return nil, ErrNotJoined
	}

	payload := msg.Payload
	if payload == nil {
		payload = make(map[string]any)
	}

	err := s.Component.HandleEvent(ctx, msg.Event, payload)
	r.observer.EventHandled(msg.Event, err)
	if err != nil {
		return nil, err
	}

	r.renderAndSendDiff(ctx, s)
	return protocol.OkReply(msg.Ref, msg.Topic, nil), nil
}

func (r *Router) handleHeartbeat(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	return protocol.OkReply(msg.Ref, msg.Topic, nil), nil
}

func (r *Router) handleLeave(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	sessionFromContext(ctx).leaving = true
	return protocol.OkReply(msg.Ref, msg.Topic, nil), nil
}

// renderAndSendDiff renders the component and sends the slots that changed
// since the last render.
func (r *Router) renderAndSendDiff(ctx context.Context, s *Session) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)
	if err := r.render(ctx, s.Component, buf); err != nil {
		s.logger.Error("render failed", logging.Err(err))
		return
	}
	if a := getAssigns(s.Component); a != nil {
		a.Tracker().GetChanged()
	}

	s.version++
	payload, hashes := buildDiff(s.version, buf.String(), s.slotHashes)
	s.slotHashes = hashes

	if err := s.Socket.SendDiff(payload); err != nil {
		s.logger.Debug("diff not sent", logging.Err(err))
	}
}

func (r *Router) send(s *Session, msg *protocol.Message) {
	if err := s.Transport.Send(msg); err != nil {
		s.logger.Debug("reply not sent", logging.String("event", msg.Event), logging.Err(err))
	}
}

func (r *Router) sendError(s *Session, ref, topic string, err error) {
	if errors.Is(err, protocol.ErrHandlerPanic) {
		s.logger.Error("handler panicked", logging.Err(err))
	}
	r.send(s, protocol.ErrorReply(ref, topic, err.Error()))
}

// transportAdapter lets a core.Socket push through a websocket transport.
type transportAdapter struct {
	tr transport.Transport
}

func newTransportAdapter(tr transport.Transport) *transportAdapter {
	return &transportAdapter{tr: tr}
}

func (a *transportAdapter) Send(msg core.Message) error {
	return a.tr.Send(protocol.PushMessage(msg.Topic, msg.Event, msg.Payload).WithRef(msg.Ref))
}

func (a *transportAdapter) Close() error {
	return a.tr.Close()
}

func (a *transportAdapter) IsConnected() bool {
	return a.tr.IsConnected()
}
