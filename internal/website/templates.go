// Package website assembles the TechFlow landing page around the live hero:
// document head, stylesheet, the features section the scroll hint lands
// on, and the client runtime.
package website

import (
	"context"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/techflow/launchpad/pkg/router"
)

// PageConfig defines the configuration for a landing page including SEO metadata.
type PageConfig struct {
	// Title is the page title (shown in browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// URL is the canonical URL of the page
	URL string
	// Keywords are SEO keywords for the page
	Keywords []string
	// Author is the author meta tag
	Author string
	// OGImage is the Open Graph image URL (for social sharing)
	OGImage string
	// Language is the page language (default: "en")
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string
	// Favicon is the path to the favicon
	Favicon string
	// ScriptSrc is where the client runtime is served from.
	ScriptSrc string
}

// DefaultScriptSrc is the path the client runtime is mounted at.
const DefaultScriptSrc = "/assets/launchpad.js"

// DefaultPageConfig returns the TechFlow landing page metadata.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Title:       "TechFlow | Automate your workflow",
		Description: "TechFlow connects your tools and automates repetitive work so your team can focus on what matters.",
		Keywords:    []string{"automation", "workflow", "integrations", "productivity"},
		Author:      "TechFlow",
		Language:    "en",
		ScriptSrc:   DefaultScriptSrc,
	}
}

func (c PageConfig) lang() string {
	if c.Language == "" {
		return "en"
	}
	return c.Language
}

func (c PageConfig) themeColor() string {
	if c.ThemeColor == "" {
		return Colors["primary"]
	}
	return c.ThemeColor
}

// Layout returns a router layout that places the live root into the full
// landing page. Inline styles and scripts carry the request's CSP nonce.
func Layout(cfg PageConfig) router.Layout {
	return func(ctx context.Context, root g.Node) g.Node {
		return Document(cfg, router.CSPNonce(ctx), root)
	}
}

// Document renders the whole page around content. nonce may be empty.
func Document(cfg PageConfig, nonce string, content g.Node) g.Node {
	script := cfg.ScriptSrc
	if script == "" {
		script = DefaultScriptSrc
	}
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		h.HTML(h.Lang(cfg.lang()),
			Head(cfg, nonce),
			h.Body(
				h.Main(
					content,
					FeaturesSection(DefaultFeatures()),
				),
				Footer(cfg),
				h.Script(h.Src(script), h.Defer(), nonceAttr(nonce)),
			),
		),
	})
}

// Footer is the page footer.
func Footer(cfg PageConfig) g.Node {
	return h.Footer(h.Class("footer"),
		h.Div(h.Class("container"),
			h.P(h.Class("footer-copy"), g.Textf("© %s", cfg.Author)),
		),
	)
}

func nonceAttr(nonce string) g.Node {
	return g.If(nonce != "", g.Attr("nonce", nonce))
}
