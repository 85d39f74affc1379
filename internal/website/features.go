package website

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/techflow/launchpad/pkg/hero"
)

// Feature represents a feature card in the features section.
type Feature struct {
	// Icon names a hero icon, e.g. "zap".
	Icon string
	// Title is the feature title
	Title string
	// Description explains the feature
	Description string
}

// DefaultFeatures are the cards shown below the hero.
func DefaultFeatures() []Feature {
	return []Feature{
		{Icon: "zap", Title: "Lightning fast", Description: "Workflows run in milliseconds, triggered the moment your data changes."},
		{Icon: "shield", Title: "Enterprise security", Description: "SSO, audit trails and encryption at rest come standard on every plan."},
		{Icon: "globe", Title: "Connects everywhere", Description: "Hundreds of integrations keep your tools in sync across every team and region."},
	}
}

// FeaturesSection renders the section the hero's scroll hint targets.
func FeaturesSection(features []Feature) g.Node {
	return h.Section(h.ID(hero.ScrollAnchor), h.Class("features"), h.Aria("labelledby", "features-title"),
		h.Div(h.Class("container"),
			h.H2(h.ID("features-title"), h.Class("features-title"), g.Text("Everything your team needs")),
			h.Div(h.Class("features-grid"),
				g.Map(features, func(f Feature) g.Node {
					return h.Article(h.Class("feature-card"),
						hero.IconFor(f.Icon).Node("icon icon-md text-primary"),
						h.H3(g.Text(f.Title)),
						h.P(g.Text(f.Description)),
					)
				}),
			),
		),
	)
}
