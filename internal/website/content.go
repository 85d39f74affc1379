package website

import (
	"encoding/json"
	"net/http"

	"github.com/techflow/launchpad/pkg/hero"
)

// ContentPath is where ContentHandler is mounted.
const ContentPath = "/_content/hero.json"

// ContentDocument lists the hero's editable nodes for content tools.
type ContentDocument struct {
	Section   string          `json:"section"`
	Editables []hero.Editable `json:"editables"`
}

// ContentHandler serves the editable content of the hero resolved from
// overrides.
func ContentHandler(overrides *hero.Overrides) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := ContentDocument{
			Section:   hero.SectionKey,
			Editables: hero.Editables(hero.Resolve(overrides)),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	})
}
