package hero

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Icon is an inline SVG glyph drawn on a 24x24 stroke grid.
type Icon struct {
	name   string
	shapes func() []g.Node
}

// Name returns the glyph's identifier.
func (i Icon) Name() string {
	return i.name
}

// Node renders the glyph with the given CSS class.
func (i Icon) Node(class string) g.Node {
	return g.El("svg",
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("stroke-width", "2"),
		g.Attr("stroke-linecap", "round"),
		g.Attr("stroke-linejoin", "round"),
		g.Attr("aria-hidden", "true"),
		h.Class(class),
		g.Attr("data-icon", i.name),
		g.Group(i.shapes()),
	)
}

func path(d string) g.Node {
	return g.El("path", g.Attr("d", d))
}

func polygon(points string) g.Node {
	return g.El("polygon", g.Attr("points", points))
}

var (
	Zap = Icon{name: "zap", shapes: func() []g.Node {
		return []g.Node{polygon("13 2 3 14 12 14 11 22 21 10 12 10 13 2")}
	}}

	Shield = Icon{name: "shield", shapes: func() []g.Node {
		return []g.Node{path("M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z")}
	}}

	Globe = Icon{name: "globe", shapes: func() []g.Node {
		return []g.Node{
			g.El("circle", g.Attr("cx", "12"), g.Attr("cy", "12"), g.Attr("r", "10")),
			path("M2 12h20"),
			path("M12 2a15.3 15.3 0 0 1 4 10 15.3 15.3 0 0 1-4 10 15.3 15.3 0 0 1-4-10 15.3 15.3 0 0 1 4-10z"),
		}
	}}

	Sparkles = Icon{name: "sparkles", shapes: func() []g.Node {
		return []g.Node{
			path("m12 3-1.912 5.813a2 2 0 0 1-1.275 1.275L3 12l5.813 1.912a2 2 0 0 1 1.275 1.275L12 21l1.912-5.813a2 2 0 0 1 1.275-1.275L21 12l-5.813-1.912a2 2 0 0 1-1.275-1.275L12 3Z"),
			path("M5 3v4"),
			path("M19 17v4"),
			path("M3 5h4"),
			path("M17 19h4"),
		}
	}}

	Rocket = Icon{name: "rocket", shapes: func() []g.Node {
		return []g.Node{
			path("M4.5 16.5c-1.5 1.26-2 5-2 5s3.74-.5 5-2c.71-.84.7-2.13-.09-2.91a2.18 2.18 0 0 0-2.91-.09z"),
			path("m12 15-3-3a22 22 0 0 1 2-3.95A12.88 12.88 0 0 1 22 2c0 2.72-.78 7.5-6 11a22.35 22.35 0 0 1-4 2z"),
			path("M9 12H4s.55-3.03 2-4c1.62-1.08 5 0 5 0"),
			path("M12 15v5s3.03-.55 4-2c1.08-1.62 0-5 0-5"),
		}
	}}

	Star = Icon{name: "star", shapes: func() []g.Node {
		return []g.Node{polygon("12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2")}
	}}

	ArrowRight = Icon{name: "arrow-right", shapes: func() []g.Node {
		return []g.Node{path("M5 12h14"), path("m12 5 7 7-7 7")}
	}}
)

// IconFor maps a feature icon name to its glyph. Unknown names, including
// the empty string, get Sparkles.
func IconFor(name string) Icon {
	switch name {
	case "zap":
		return Zap
	case "shield":
		return Shield
	case "globe":
		return Globe
	default:
		return Sparkles
	}
}
