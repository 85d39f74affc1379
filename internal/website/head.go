package website

import (
	"encoding/json"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const inlineFavicon = `data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>🚀</text></svg>`

// Head renders the document head with SEO, Open Graph, Twitter and JSON-LD
// metadata followed by the inline stylesheet.
func Head(cfg PageConfig, nonce string) g.Node {
	favicon := cfg.Favicon
	if favicon == "" {
		favicon = inlineFavicon
	}
	return h.Head(
		h.Meta(h.Charset("UTF-8")),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
		h.TitleEl(g.Text(cfg.Title)),
		g.If(cfg.Description != "", h.Meta(h.Name("description"), h.Content(cfg.Description))),
		g.If(len(cfg.Keywords) > 0, h.Meta(h.Name("keywords"), h.Content(strings.Join(cfg.Keywords, ", ")))),
		g.If(cfg.Author != "", h.Meta(h.Name("author"), h.Content(cfg.Author))),
		g.If(cfg.URL != "", h.Link(h.Rel("canonical"), h.Href(cfg.URL))),
		h.Meta(h.Name("theme-color"), h.Content(cfg.themeColor())),
		h.Meta(h.Name("robots"), h.Content("index, follow")),
		openGraph(cfg),
		twitterCard(cfg),
		jsonLD(cfg, nonce),
		h.Link(h.Rel("icon"), h.Href(favicon)),
		h.StyleEl(nonceAttr(nonce), g.Raw(RenderStyles())),
	)
}

func property(name, content string) g.Node {
	return h.Meta(g.Attr("property", name), h.Content(content))
}

func openGraph(cfg PageConfig) g.Node {
	return g.Group([]g.Node{
		property("og:type", "website"),
		g.If(cfg.Title != "", property("og:title", cfg.Title)),
		g.If(cfg.Description != "", property("og:description", cfg.Description)),
		g.If(cfg.URL != "", property("og:url", cfg.URL)),
		g.If(cfg.OGImage != "", property("og:image", cfg.OGImage)),
		property("og:locale", cfg.lang()),
	})
}

func twitterCard(cfg PageConfig) g.Node {
	return g.Group([]g.Node{
		h.Meta(h.Name("twitter:card"), h.Content("summary_large_image")),
		g.If(cfg.Title != "", h.Meta(h.Name("twitter:title"), h.Content(cfg.Title))),
		g.If(cfg.Description != "", h.Meta(h.Name("twitter:description"), h.Content(cfg.Description))),
		g.If(cfg.OGImage != "", h.Meta(h.Name("twitter:image"), h.Content(cfg.OGImage))),
	})
}

type structuredData struct {
	Context             string `json:"@context"`
	Type                string `json:"@type"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	URL                 string `json:"url,omitempty"`
	ApplicationCategory string `json:"applicationCategory"`
	OperatingSystem     string `json:"operatingSystem"`
}

// jsonLD describes the product as a SoftwareApplication. encoding/json
// escapes <, > and & so the payload cannot close its script element.
func jsonLD(cfg PageConfig, nonce string) g.Node {
	data, err := json.Marshal(structuredData{
		Context:             "https://schema.org",
		Type:                "SoftwareApplication",
		Name:                cfg.Author,
		Description:         cfg.Description,
		URL:                 cfg.URL,
		ApplicationCategory: "BusinessApplication",
		OperatingSystem:     "Web",
	})
	if err != nil {
		return nil
	}
	return h.Script(h.Type("application/ld+json"), nonceAttr(nonce), g.Raw(string(data)))
}
