package hero

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/techflow/launchpad/pkg/core"
	"github.com/techflow/launchpad/pkg/js"
	"github.com/techflow/launchpad/pkg/logging"
)

// Name is the component name registered with the router.
const Name = "hero"

// Client events handled by View.
const (
	EventPointerMove     = "pointermove"
	EventScroll          = "scroll"
	EventNavigate        = "navigate"
	EventScrollHint      = "scroll-hint"
	EventParticlesLoaded = "particles_loaded"
)

// EventMotion is pushed to the client with orb and gradient transforms.
const EventMotion = "motion"

// ScrollHintDuration is the smooth-scroll length for the scroll hint.
const ScrollHintDuration = 500

const (
	assignRemaining = "remaining"
	assignTyped     = "typed"
)

// Timer messages. Each is delivered through the socket's info channel.
type (
	countdownTick struct{}
	typeTick      struct{}
	frameTick     struct{}
)

// Navigator performs a call-to-action navigation.
type Navigator interface {
	Navigate(ctx context.Context, href string) error
}

// SocketNavigator navigates by pushing a js navigate command to the
// browser on the other end of Socket.
type SocketNavigator struct {
	Socket *core.Socket
}

// Navigate implements Navigator.
func (n SocketNavigator) Navigate(_ context.Context, href string) error {
	if n.Socket == nil {
		return ErrNoNavigator
	}
	return n.Socket.Push(js.Event, js.Payload(js.Navigate(href)))
}

// Options configures a View.
type Options struct {
	// Overrides are the page's content overrides. They are never modified.
	Overrides *Overrides

	// Now defaults to time.Now.
	Now func() time.Time

	// Navigator defaults to a SocketNavigator on the live socket.
	Navigator Navigator

	// OnNavigate, if set, observes every successful navigation.
	OnNavigate func(cta, href string)
}

// View is the hero as a live component. Over HTTP it renders once; over a
// live socket it also runs the countdown, the typing cycle and the orb
// springs on socket timers, all of which stop when the session ends.
type View struct {
	core.BaseComponent

	opts     Options
	config   Config
	state    State
	parallax *ParallaxDriver
	typer    *Typer

	countdownRef core.TimerRef
	typeRef      core.TimerRef
	frameRef     core.TimerRef
}

// New creates a hero view.
func New(opts Options) *View {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &View{opts: opts}
}

// Factory returns a constructor producing a fresh View per render context.
func Factory(opts Options) func() core.Component {
	return func() core.Component {
		return New(opts)
	}
}

func (v *View) Name() string {
	return Name
}

// Config returns the resolved configuration.
func (v *View) Config() Config {
	return v.config
}

// State returns the current display state.
func (v *View) State() State {
	return v.state
}

// Mount resolves the configuration and, on a live socket, starts the
// countdown and the typing cycle.
func (v *View) Mount(ctx context.Context, params core.Params, session core.Session) error {
	v.config = Resolve(v.opts.Overrides)
	v.state = InitialState(v.config, v.opts.Now)
	v.parallax = NewParallaxDriver()
	v.typer = NewTyper(v.config.TypedStrings)

	if !v.Connected() {
		v.syncAssigns()
		return nil
	}

	s := v.Socket()
	if !v.typer.Static() {
		v.state.Typed = v.typer.Text()
	}
	v.syncAssigns()

	if !v.state.Remaining.Completed {
		v.countdownRef = s.Every(CountdownInterval, countdownTick{})
	}
	if !v.typer.Static() {
		v.typeRef = s.SendAfter(v.typer.Start(), typeTick{})
	}

	logging.L(ctx).Debug("hero mounted",
		logging.String("pattern", string(v.config.BackgroundPattern)),
		logging.Int("phrases", len(v.config.TypedStrings)),
	)
	return nil
}

func (v *View) syncAssigns() {
	a := v.Assigns()
	a.Set(assignRemaining, v.state.Remaining)
	a.Set(assignTyped, v.state.Typed)
}

// Render returns the hero markup for the current state.
func (v *View) Render(ctx context.Context) core.Renderer {
	return Renderer{Node: Render(v.config, v.state)}
}

// HandleEvent processes a client interaction.
func (v *View) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	switch event {
	case EventPointerMove:
		return v.pointerMove(payload)
	case EventScroll:
		return v.scroll(payload)
	case EventNavigate:
		return v.navigate(ctx, payload)
	case EventScrollHint:
		return v.pushJS(js.ScrollTo("#"+ScrollAnchor, js.Smooth(), js.Duration(ScrollHintDuration)))
	case EventParticlesLoaded:
		logging.L(ctx).Debug("particles loaded")
		return nil
	default:
		logging.L(ctx).Debug("ignoring unknown event", logging.String("event", event))
		return nil
	}
}

func (v *View) pointerMove(payload map[string]any) error {
	nums, err := numbers(payload, "x", "y", "left", "top", "width", "height")
	if err != nil {
		return err
	}
	v.parallax.Move(
		Point{X: nums[0], Y: nums[1]},
		Rect{Left: nums[2], Top: nums[3], Width: nums[4], Height: nums[5]},
	)
	if v.frameRef == 0 && v.Connected() && !v.parallax.Settled() {
		v.frameRef = v.Socket().Every(FrameInterval, frameTick{})
	}
	return nil
}

// scroll only applies to the gradient layer; other patterns have no
// scroll-linked motion.
func (v *View) scroll(payload map[string]any) error {
	if v.config.BackgroundPattern != PatternGradient {
		return nil
	}
	nums, err := numbers(payload, "top", "height")
	if err != nil {
		return err
	}
	v.state.Gradient = GradientAt(ScrollProgress(nums[0], nums[1]))
	return v.pushMotion(map[string]any{
		"target":  MotionGradient,
		"y":       v.state.Gradient.TranslateY,
		"opacity": v.state.Gradient.Opacity,
	})
}

func (v *View) navigate(ctx context.Context, payload map[string]any) error {
	cta, _ := payload["cta"].(string)
	var href string
	switch cta {
	case CTAPrimary:
		href = v.config.PrimaryCTAHref
	case CTASecondary:
		href = v.config.SecondaryCTAHref
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCTA, cta)
	}

	nav := v.opts.Navigator
	if nav == nil {
		nav = SocketNavigator{Socket: v.Socket()}
	}
	if err := nav.Navigate(ctx, href); err != nil {
		return err
	}
	if v.opts.OnNavigate != nil {
		v.opts.OnNavigate(cta, href)
	}
	return nil
}

// HandleInfo advances whichever timer fired.
func (v *View) HandleInfo(ctx context.Context, msg any) error {
	switch msg.(type) {
	case countdownTick:
		v.state.Remaining = Until(v.config.LaunchDate, v.opts.Now())
		v.Assigns().Set(assignRemaining, v.state.Remaining)
		if v.state.Remaining.Completed {
			v.cancel(&v.countdownRef)
		}
	case typeTick:
		v.typeRef = 0
		wait := v.typer.Next()
		v.state.Typed = v.typer.Text()
		v.Assigns().Set(assignTyped, v.state.Typed)
		if s := v.Socket(); s != nil && wait > 0 {
			v.typeRef = s.SendAfter(wait, typeTick{})
		}
	case frameTick:
		v.parallax.Advance()
		v.state.Orb = v.parallax.Position()
		if v.parallax.Settled() {
			v.cancel(&v.frameRef)
		}
		primary, mirror := v.parallax.Orbs()
		return v.pushMotion(
			map[string]any{"target": MotionOrbPrimary, "x": primary.X, "y": primary.Y},
			map[string]any{"target": MotionOrbMirror, "x": mirror.X, "y": mirror.Y},
		)
	}
	return nil
}

// Terminate stops every timer the view started.
func (v *View) Terminate(ctx context.Context, reason core.TerminateReason) error {
	v.countdownRef, v.typeRef, v.frameRef = 0, 0, 0
	return v.BaseComponent.Terminate(ctx, reason)
}

func (v *View) cancel(ref *core.TimerRef) {
	if *ref != 0 && v.Socket() != nil {
		v.Socket().CancelTimer(*ref)
	}
	*ref = 0
}

func (v *View) pushMotion(frames ...map[string]any) error {
	s := v.Socket()
	if s == nil {
		return nil
	}
	return s.Push(EventMotion, map[string]any{"frames": frames})
}

func (v *View) pushJS(cmds ...js.Command) error {
	s := v.Socket()
	if s == nil {
		return nil
	}
	return s.Push(js.Event, js.Payload(cmds...))
}

// numbers reads the named keys of payload as floats, in order.
func numbers(payload map[string]any, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		f, ok := toFloat(payload[k])
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, k)
		}
		out[i] = f
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
