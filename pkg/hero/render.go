package hero

import (
	"context"
	"io"
	"math"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Live-update regions. Their content is diffed per session.
const (
	SlotCountdown = "countdown"
	SlotTyped     = "typed"
)

// Motion targets addressed by pushed motion frames.
const (
	MotionOrbPrimary = "orb-primary"
	MotionOrbMirror  = "orb-mirror"
	MotionGradient   = "gradient"
)

// ScrollAnchor is the page anchor the scroll hint leads to.
const ScrollAnchor = "features"

// TrustPlaceholders is the number of logo blocks in the trust strip.
const TrustPlaceholders = 5

// State is everything the hero shows that is not configuration.
type State struct {
	Remaining Remaining
	Typed     string
	Orb       Point
	Gradient  GradientMotion
}

// InitialState is the state shown before any timer fires.
func InitialState(c Config, now func() time.Time) State {
	return State{
		Remaining: Until(c.LaunchDate, now()),
		Typed:     c.TitleHighlight,
		Gradient:  RestingGradient,
	}
}

// Render builds the hero section. Layers are stacked in a fixed order:
// particles, one pattern layer, two orbs, then the content column.
func Render(c Config, st State) g.Node {
	if !c.BackgroundPattern.Valid() {
		c.BackgroundPattern = PatternGradient
	}
	return h.Section(
		h.ID("hero"),
		h.Class("hero"),
		g.Attr(AttrEditable, SectionKey),
		g.Attr("data-pattern", string(c.BackgroundPattern)),
		g.Attr("lv-pointermove", "pointermove"),
		g.Attr("lv-throttle", "16"),
		g.If(c.BackgroundPattern == PatternGradient, g.Attr("lv-scroll", "scroll")),

		particlesLayer(),
		patternLayer(c.BackgroundPattern, st.Gradient),
		orbLayers(st.Orb),

		h.Div(h.Class("hero-container"),
			h.Div(h.Class("hero-content"),
				g.If(c.ShowAnimatedBadge, badge(c, st.Remaining)),
				headline(c, st.Typed),
				h.P(h.Class("hero-subtitle"), g.Attr(AttrEditable, "subtitle"), g.Text(c.Subtitle)),
				featurePills(c),
				callsToAction(c),
				g.If(c.ShowTrustedLogos, trustStrip(c)),
				scrollHint(),
			),
		),
	)
}

func particlesLayer() g.Node {
	return h.Div(
		h.ID("tsparticles"),
		h.Class("hero-particles"),
		g.Attr("data-particles", DefaultParticleOptions().JSON()),
		g.Attr("lv-hook", "particles"),
	)
}

// patternLayer renders exactly one decorative layer. Only the gradient
// carries scroll motion.
func patternLayer(p Pattern, gm GradientMotion) g.Node {
	switch p {
	case PatternDots:
		return h.Div(h.Class("hero-pattern hero-pattern-dots"), g.Attr("data-layer", "dots"))
	case PatternGrid:
		return h.Div(h.Class("hero-pattern hero-pattern-grid"), g.Attr("data-layer", "grid"))
	default:
		return h.Div(
			h.Class("hero-pattern hero-pattern-gradient"),
			g.Attr("data-layer", "gradient"),
			g.Attr("data-motion", MotionGradient),
			g.Attr("style", gradientStyle(gm)),
		)
	}
}

func orbLayers(orb Point) g.Node {
	mirror := Point{X: -orb.X, Y: -orb.Y}
	return g.Group([]g.Node{
		h.Div(h.Class("hero-orb hero-orb-primary"), g.Attr("data-motion", MotionOrbPrimary), g.Attr("style", translateStyle(orb))),
		h.Div(h.Class("hero-orb hero-orb-accent"), g.Attr("data-motion", MotionOrbMirror), g.Attr("style", translateStyle(mirror))),
	})
}

func badge(c Config, r Remaining) g.Node {
	return h.Div(h.Class("hero-badge-wrap"),
		h.Div(h.Class("hero-badge"),
			h.Span(h.Class("hero-badge-icon"), Rocket.Node("icon icon-sm text-primary")),
			h.Span(h.Class("hero-badge-text"), g.Attr(AttrEditable, "badge"), g.Text(c.Badge)),
			h.Div(h.Class("hero-countdown"), g.Attr("data-slot", SlotCountdown), CountdownView(r)),
		),
	)
}

func headline(c Config, typed string) g.Node {
	return h.H1(h.Class("hero-title"),
		h.Span(h.Class("hero-title-static"), g.Attr(AttrEditable, "title"), g.Text(c.Title)),
		h.Span(h.Class("hero-title-typed"),
			h.Span(h.Class("hero-typed"),
				h.Span(g.Attr("data-slot", SlotTyped), g.Text(typed)),
				h.Span(h.Class("typed-cursor"), g.Attr("aria-hidden", "true"), g.Text(TypedCursor)),
			),
			h.Span(h.Class("hero-star"), Star.Node("icon icon-md")),
		),
	)
}

func featurePills(c Config) g.Node {
	features := c.Features()
	return h.Div(h.Class("hero-features"),
		g.Map(features[:], func(f Feature) g.Node {
			icon := IconFor(f.Icon)
			return h.Div(h.Class("hero-pill"), g.Attr("data-feature-icon", icon.Name()),
				icon.Node("icon icon-sm text-primary"),
				h.Span(g.Attr(AttrEditable, f.Key), g.Text(f.Text)),
			)
		}),
	)
}

// CTA identifiers carried by the navigate event.
const (
	CTAPrimary   = "primary"
	CTASecondary = "secondary"
)

func callsToAction(c Config) g.Node {
	return h.Div(h.Class("hero-ctas"),
		h.Button(h.Type("button"), h.Class("btn btn-lg btn-primary"),
			g.Attr("lv-click", "navigate"),
			g.Attr("lv-value-cta", CTAPrimary),
			g.Attr(AttrEditableHref, "primaryCTAHref"),
			g.Attr(AttrHref, c.PrimaryCTAHref),
			h.Span(g.Attr(AttrEditable, "primaryCTA"), g.Text(c.PrimaryCTA)),
			ArrowRight.Node("icon icon-md btn-arrow"),
		),
		h.Button(h.Type("button"), h.Class("btn btn-lg btn-outline"),
			g.Attr("lv-click", "navigate"),
			g.Attr("lv-value-cta", CTASecondary),
			g.Attr(AttrEditableHref, "secondaryCTAHref"),
			g.Attr(AttrHref, c.SecondaryCTAHref),
			h.Span(g.Attr(AttrEditable, "secondaryCTA"), g.Text(c.SecondaryCTA)),
		),
	)
}

func trustStrip(c Config) g.Node {
	blocks := make([]g.Node, TrustPlaceholders)
	for i := range blocks {
		blocks[i] = h.Div(h.Class("hero-logo-placeholder"))
	}
	return h.Div(h.Class("hero-trust"),
		h.P(h.Class("hero-trust-caption"), g.Attr(AttrEditable, "trustedByText"), g.Text(c.TrustedByText)),
		h.Div(h.Class("hero-logos"), g.Group(blocks)),
	)
}

func scrollHint() g.Node {
	return h.Div(h.Class("hero-scroll-hint"),
		h.A(h.Href("#"+ScrollAnchor), h.Class("hero-scroll-link"),
			g.Attr("lv-click", "scroll-hint"),
			g.Attr("aria-label", "Scroll to "+ScrollAnchor),
			h.Div(h.Class("hero-mouse"), h.Div(h.Class("hero-mouse-wheel"))),
		),
	)
}

func translateStyle(p Point) string {
	return "transform: translate(" + px(p.X) + ", " + px(p.Y) + ")"
}

func gradientStyle(gm GradientMotion) string {
	return "transform: translateY(" + num(gm.TranslateY) + "%); opacity: " + num(gm.Opacity)
}

func px(v float64) string {
	return num(v) + "px"
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100+0, 'f', -1, 64)
}

// Renderer adapts a gomponents node to the live runtime's renderer shape.
type Renderer struct {
	Node g.Node
}

// Render writes the node's HTML to w.
func (r Renderer) Render(_ context.Context, w io.Writer) error {
	return r.Node.Render(w)
}
