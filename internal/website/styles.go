package website

import (
	"fmt"
	"sort"
	"strings"
)

// Color palette for the dark landing theme.
var Colors = map[string]string{
	"bg":      "#0B1020",
	"bgAlt":   "#141B2D",
	"surface": "#1E2740",
	"border":  "#2A3552",

	"text":      "#F8FAFC",
	"textMuted": "#CBD5E1",
	"textDim":   "#94A3B8",

	"primary": "#8B5CF6",
	"accent":  "#22D3EE",
	"star":    "#FBBF24",
}

// Typography uses system font stack for instant loading
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif`

// StyleOption allows customizing the generated CSS
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors map[string]string
}

// WithCustomColors overrides default colors
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// RenderStyles generates the page stylesheet.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{customColors: make(map[string]string)}
	for _, opt := range opts {
		opt(cfg)
	}

	colors := make(map[string]string, len(Colors))
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder
	sb.WriteString(cssReset())
	sb.WriteString(cssVariables(colors))
	sb.WriteString(cssBase())
	sb.WriteString(cssButtons())
	sb.WriteString(cssHero())
	sb.WriteString(cssHeroContent())
	sb.WriteString(cssFeatures())
	sb.WriteString(cssAnimations())
	sb.WriteString(cssResponsive())
	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;scroll-behavior:smooth}
body{line-height:1.6;-webkit-font-smoothing:antialiased}
img,svg{display:block;max-width:100%}
button{font:inherit;cursor:pointer}
a{color:inherit;text-decoration:none}
`
}

// cssVariables emits colors in sorted order so the stylesheet is stable.
func cssVariables(colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--color-%s:%s", name, colors[name]))
	}
	return fmt.Sprintf(":root{%s;--font-sans:%s}\n", strings.Join(vars, ";"), FontFamily)
}

func cssBase() string {
	return `
body{font-family:var(--font-sans);background:var(--color-bg);color:var(--color-text);min-height:100vh}
.container{max-width:1200px;margin:0 auto;padding:0 1.5rem}
.icon{display:inline-block;flex-shrink:0}
.icon-sm{width:1rem;height:1rem}
.icon-md{width:1.5rem;height:1.5rem}
.text-primary{color:var(--color-primary)}
.footer{border-top:1px solid var(--color-border);padding:2rem 0;color:var(--color-textDim);font-size:.875rem}
`
}

func cssButtons() string {
	return `
.btn{display:inline-flex;align-items:center;gap:.5rem;border-radius:.75rem;font-weight:600;border:1px solid transparent;transition:transform .2s,box-shadow .2s,background .2s}
.btn-lg{padding:.875rem 1.75rem;font-size:1.0625rem}
.btn-primary{background:var(--color-primary);color:#fff;box-shadow:0 10px 30px -10px var(--color-primary)}
.btn-primary:hover{transform:translateY(-2px)}
.btn-primary:hover .btn-arrow{transform:translateX(4px)}
.btn-arrow{transition:transform .2s}
.btn-outline{background:transparent;color:var(--color-text);border-color:var(--color-border)}
.btn-outline:hover{background:var(--color-surface)}
.btn:focus-visible{outline:2px solid var(--color-accent);outline-offset:2px}
`
}

// cssHero styles the stacked background layers. Orb and gradient transforms
// come from inline styles so they survive re-renders.
func cssHero() string {
	return `
.hero{position:relative;min-height:100vh;display:flex;align-items:center;overflow:hidden;isolation:isolate}
.hero-particles{position:absolute;inset:0;z-index:0}
.hero-particles canvas{width:100%;height:100%}
.hero-pattern{position:absolute;inset:0;z-index:0;pointer-events:none}
.hero-pattern-dots{background-image:radial-gradient(var(--color-border) 1px,transparent 1px);background-size:24px 24px;opacity:.6}
.hero-pattern-grid{background-image:linear-gradient(var(--color-border) 1px,transparent 1px),linear-gradient(90deg,var(--color-border) 1px,transparent 1px);background-size:48px 48px;opacity:.35}
.hero-pattern-gradient{background:radial-gradient(ellipse at top,rgba(139,92,246,.35),transparent 60%),radial-gradient(ellipse at bottom right,rgba(34,211,238,.2),transparent 55%);will-change:transform,opacity}
.hero-orb{position:absolute;width:420px;height:420px;border-radius:50%;filter:blur(80px);opacity:.45;z-index:0;pointer-events:none;will-change:transform}
.hero-orb-primary{top:-120px;left:-100px;background:var(--color-primary)}
.hero-orb-accent{bottom:-140px;right:-120px;background:var(--color-accent)}
.hero-container{position:relative;z-index:1;width:100%;max-width:1200px;margin:0 auto;padding:6rem 1.5rem}
.hero-scroll-hint{position:absolute;bottom:2rem;left:50%;transform:translateX(-50%);z-index:1}
.hero-mouse{width:26px;height:42px;border:2px solid var(--color-textDim);border-radius:14px;display:flex;justify-content:center;padding-top:8px}
.hero-mouse-wheel{width:4px;height:8px;border-radius:2px;background:var(--color-textDim);animation:wheel 1.6s ease-in-out infinite}
`
}

func cssHeroContent() string {
	return `
.hero-content{max-width:820px;margin:0 auto;text-align:center;display:flex;flex-direction:column;align-items:center;gap:1.75rem;animation:fadeUp .8s ease-out both}
.hero-badge{display:inline-flex;align-items:center;gap:.75rem;padding:.5rem 1rem;border-radius:999px;background:var(--color-surface);border:1px solid var(--color-border);font-size:.875rem;color:var(--color-textMuted)}
.hero-countdown{display:inline-flex;gap:.5rem;font-variant-numeric:tabular-nums;color:var(--color-text)}
.countdown{display:inline-flex;align-items:baseline;gap:.375rem}
.countdown-field{display:inline-flex;align-items:baseline}
.countdown-sep{color:var(--color-textDim)}
.countdown-value{font-weight:700}
.countdown-unit{color:var(--color-textDim);margin-left:.125rem}
.countdown-launched{color:var(--color-accent);font-weight:600}
.hero-title{font-size:clamp(2.5rem,6vw,4.5rem);line-height:1.1;font-weight:800;letter-spacing:-.02em}
.hero-title-static{display:block}
.hero-title-typed{display:inline-flex;align-items:center;gap:.5rem}
.hero-typed{background:linear-gradient(90deg,var(--color-primary),var(--color-accent));-webkit-background-clip:text;background-clip:text;color:transparent}
.typed-cursor{color:var(--color-accent);animation:blink 1s step-end infinite}
.hero-star{color:var(--color-star)}
.hero-subtitle{font-size:1.25rem;color:var(--color-textMuted);max-width:640px}
.hero-features{display:flex;flex-wrap:wrap;justify-content:center;gap:.75rem}
.hero-pill{display:inline-flex;align-items:center;gap:.5rem;padding:.5rem 1rem;border-radius:999px;background:rgba(30,39,64,.7);border:1px solid var(--color-border);font-size:.9375rem}
.hero-ctas{display:flex;flex-wrap:wrap;justify-content:center;gap:1rem}
.hero-trust{margin-top:1.5rem;display:flex;flex-direction:column;align-items:center;gap:1rem}
.hero-trust-caption{color:var(--color-textDim);font-size:.875rem;text-transform:uppercase;letter-spacing:.08em}
.hero-logos{display:flex;flex-wrap:wrap;justify-content:center;gap:1.5rem}
.hero-logo-placeholder{width:110px;height:32px;border-radius:.5rem;background:var(--color-surface);opacity:.7}
`
}

func cssFeatures() string {
	return `
.features{padding:6rem 0;background:var(--color-bgAlt)}
.features-title{font-size:2.25rem;font-weight:700;text-align:center;margin-bottom:3rem}
.features-grid{display:grid;gap:1.5rem;grid-template-columns:1fr}
.feature-card{padding:2rem;border-radius:1rem;background:var(--color-surface);border:1px solid var(--color-border)}
.feature-card h3{font-size:1.25rem;margin-bottom:.5rem}
.feature-card p{color:var(--color-textMuted)}
`
}

func cssAnimations() string {
	return `
@keyframes fadeUp{from{opacity:0;transform:translateY(24px)}to{opacity:1;transform:none}}
@keyframes blink{50%{opacity:0}}
@keyframes wheel{0%{transform:translateY(0);opacity:1}100%{transform:translateY(12px);opacity:0}}
@media (prefers-reduced-motion:reduce){*,*::before,*::after{animation:none!important;transition:none!important;scroll-behavior:auto!important}}
`
}

func cssResponsive() string {
	return `
@media (min-width:768px){.features-grid{grid-template-columns:repeat(3,1fr)}}
@media (max-width:480px){.hero-orb{width:260px;height:260px}.hero-ctas{flex-direction:column;width:100%}.btn-lg{justify-content:center}}
`
}
