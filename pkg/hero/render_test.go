package hero

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func renderConfig(t *testing.T, c Config) string {
	t.Helper()
	return html(t, Render(c, InitialState(c, clock)))
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "zap", IconFor("zap").Name())
	assert.Equal(t, "shield", IconFor("shield").Name())
	assert.Equal(t, "globe", IconFor("globe").Name())
	for _, name := range []string{"", "rocket", "ZAP", "unknown"} {
		assert.Equal(t, "sparkles", IconFor(name).Name(), name)
	}

	out := html(t, Zap.Node("icon"))
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `data-icon="zap"`)
	assert.Contains(t, out, `class="icon"`)
}

func TestRender_Defaults(t *testing.T) {
	c := DefaultsAt(fixedNow)
	out := renderConfig(t, c)

	assert.True(t, strings.HasPrefix(out, `<section id="hero" class="hero" data-editable="hero"`))
	assert.Contains(t, out, `data-pattern="gradient"`)
	assert.Contains(t, out, `lv-scroll="scroll"`)

	// Exactly one pattern layer.
	assert.Equal(t, 1, strings.Count(out, `data-layer=`))
	assert.Contains(t, out, `data-layer="gradient"`)
	assert.Contains(t, out, `style="transform: translateY(0%); opacity: 1"`)

	// Badge with a thirty-day countdown.
	assert.Contains(t, out, `data-editable="badge"`)
	assert.Contains(t, out, `data-slot="countdown"`)
	assert.Contains(t, out, `<span class="countdown-value">30</span><span class="countdown-unit">days</span>`)

	// CTAs carry their hrefs and content keys.
	assert.Contains(t, out, `lv-value-cta="primary" data-editable-href="primaryCTAHref" data-href="/signup"`)
	assert.Contains(t, out, `lv-value-cta="secondary" data-editable-href="secondaryCTAHref" data-href="/demo"`)
	assert.Contains(t, out, `<span data-editable="primaryCTA">Start Free Trial</span>`)

	// Trust strip with five placeholders.
	assert.Contains(t, out, `data-editable="trustedByText"`)
	assert.Equal(t, TrustPlaceholders, strings.Count(out, `class="hero-logo-placeholder"`))

	// First paint shows the highlight phrase in the typed slot.
	assert.Contains(t, out, `<span data-slot="typed">Automation</span>`)

	// Feature pills use the configured glyphs.
	assert.Contains(t, out, `data-feature-icon="zap"`)
	assert.Contains(t, out, `data-feature-icon="shield"`)
	assert.Contains(t, out, `data-feature-icon="globe"`)

	assert.Contains(t, out, `href="#features"`)
	assert.Contains(t, out, `id="tsparticles"`)
}

func TestRender_ScrollHintClosesContentColumn(t *testing.T) {
	for _, trust := range []bool{true, false} {
		c := DefaultsAt(fixedNow)
		c.ShowTrustedLogos = trust
		out := renderConfig(t, c)

		content := strings.Index(out, `<div class="hero-content">`)
		hint := strings.Index(out, `<div class="hero-scroll-hint">`)
		require.Positive(t, content)
		assert.Greater(t, hint, content)
		assert.True(t, strings.HasSuffix(out, `<div class="hero-mouse-wheel"></div></div></a></div></div></div></section>`),
			"hint is the last child of the content column")
	}
}

func TestRender_EveryEditableIsTagged(t *testing.T) {
	c := DefaultsAt(fixedNow)
	out := renderConfig(t, c)
	for _, e := range Editables(c) {
		attr := AttrEditable
		if e.Kind == EditableLink {
			attr = AttrEditableHref
		}
		assert.Contains(t, out, attr+`="`+e.Key+`"`, e.Key)
	}
}

func TestRender_BadgeHidden(t *testing.T) {
	c := DefaultsAt(fixedNow)
	withBadge := renderConfig(t, c)

	c.ShowAnimatedBadge = false
	out := renderConfig(t, c)

	assert.NotContains(t, out, `data-editable="badge"`)
	assert.NotContains(t, out, `data-slot="countdown"`)
	assert.NotContains(t, out, "countdown")
	assert.Contains(t, out, `data-editable="title"`)
	assert.Contains(t, out, `data-editable="trustedByText"`)
	assert.Less(t, len(out), len(withBadge))
}

func TestRender_TrustHidden(t *testing.T) {
	c := DefaultsAt(fixedNow)
	c.ShowTrustedLogos = false
	out := renderConfig(t, c)

	assert.NotContains(t, out, `data-editable="trustedByText"`)
	assert.NotContains(t, out, "hero-logo-placeholder")
}

func TestRender_PatternLayers(t *testing.T) {
	tests := []struct {
		pattern Pattern
		layer   string
		scroll  bool
	}{
		{PatternDots, "dots", false},
		{PatternGrid, "grid", false},
		{PatternGradient, "gradient", true},
		{Pattern("stripes"), "gradient", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			c := DefaultsAt(fixedNow)
			c.BackgroundPattern = tt.pattern
			out := renderConfig(t, c)

			assert.Equal(t, 1, strings.Count(out, "data-layer="))
			assert.Contains(t, out, `data-layer="`+tt.layer+`"`)
			assert.Equal(t, tt.scroll, strings.Contains(out, "lv-scroll"))
			assert.Equal(t, tt.scroll, strings.Contains(out, `data-motion="gradient"`))
		})
	}
}

func TestRender_LaunchedBadge(t *testing.T) {
	c := DefaultsAt(fixedNow)
	c.LaunchDate = fixedNow.Add(-time.Minute)
	out := renderConfig(t, c)
	assert.Contains(t, out, LaunchedText)
	assert.NotContains(t, out, "countdown-value")
}

func TestRender_OrbStyles(t *testing.T) {
	c := DefaultsAt(fixedNow)
	st := InitialState(c, clock)
	st.Orb = Point{X: 3.456, Y: -1}
	out := html(t, Render(c, st))

	assert.Contains(t, out, `data-motion="orb-primary" style="transform: translate(3.46px, -1px)"`)
	assert.Contains(t, out, `data-motion="orb-mirror" style="transform: translate(-3.46px, 1px)"`)
}

func TestRender_EscapesContent(t *testing.T) {
	c := DefaultsAt(fixedNow)
	c.Title = `<script>alert(1)</script>`
	out := renderConfig(t, c)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := Renderer{Node: CountdownView(Remaining{Completed: true})}
	require.NoError(t, r.Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), LaunchedText)
}

func TestParticleOptions(t *testing.T) {
	out := DefaultParticleOptions().JSON()
	assert.Contains(t, out, `"fpsLimit":120`)
	assert.Contains(t, out, `"value":80`)
}
