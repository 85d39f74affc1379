package livetest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techflow/launchpad/pkg/core"
)

type tick struct{}

type ticker struct {
	core.BaseComponent
	count int
}

func (c *ticker) Name() string { return "ticker" }

func (c *ticker) Mount(ctx context.Context, params core.Params, session core.Session) error {
	if c.Connected() {
		c.Socket().Every(time.Millisecond, tick{})
	}
	return nil
}

func (c *ticker) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if event == "fail" {
		return errors.New("nope")
	}
	return c.Socket().Push("pong", payload)
}

func (c *ticker) HandleInfo(ctx context.Context, msg any) error {
	if _, ok := msg.(tick); ok {
		c.count++
	}
	return nil
}

func (c *ticker) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<p>%d</p>", c.count)
		return err
	})
}

func TestMount_Connected(t *testing.T) {
	lt := Mount(t, &ticker{})
	require.NotNil(t, lt.Socket())
	assert.Equal(t, "<p>0</p>", lt.Rendered())
	assert.Equal(t, 1, lt.Socket().TimerCount())

	assert.Equal(t, tick{}, lt.NextInfo(time.Second))
	assert.True(t, lt.Contains("<p>1</p>"))

	require.NoError(t, lt.Event("ping", map[string]any{"n": 1}))
	msg, ok := lt.Transport().LastPushed("pong")
	require.True(t, ok)
	assert.Equal(t, 1, msg.Payload["n"])

	assert.EqualError(t, lt.Event("fail", nil), "nope")

	require.NoError(t, lt.Terminate(core.TerminateNormal))
	assert.Equal(t, 0, lt.Socket().TimerCount())
	assert.True(t, lt.Transport().Closed)
}

func TestMount_Disconnected(t *testing.T) {
	lt := Mount(t, &ticker{}, Disconnected())
	assert.Nil(t, lt.Socket())
	assert.Nil(t, lt.Transport())
	assert.Equal(t, "<p>0</p>", lt.Rendered())
}

func TestMockTransport_Errors(t *testing.T) {
	mt := NewMockTransport()
	assert.Contains(t, mt.ID, "test-")

	boom := errors.New("boom")
	mt.SetError(boom)
	assert.ErrorIs(t, mt.Send(core.Message{Event: "x"}), boom)

	mt.Reset()
	require.NoError(t, mt.Send(core.Message{Event: "x"}))
	assert.Len(t, mt.SentMessages(), 1)

	require.NoError(t, mt.Close())
	assert.ErrorIs(t, mt.Send(core.Message{Event: "x"}), core.ErrSocketClosed)
	assert.False(t, mt.IsConnected())
}
