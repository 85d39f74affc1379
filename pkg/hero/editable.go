package hero

// Content-identity attributes read by external content editors.
const (
	AttrEditable     = "data-editable"
	AttrEditableHref = "data-editable-href"
	AttrHref         = "data-href"

	// SectionKey tags the hero section itself.
	SectionKey = "hero"
)

// EditableKind tells an editor how to rewrite a tagged node.
type EditableKind string

const (
	EditableText EditableKind = "text"
	EditableLink EditableKind = "link"
)

// Editable is one tagged, configuration-driven node.
type Editable struct {
	Key   string       `json:"key"`
	Kind  EditableKind `json:"kind"`
	Value string       `json:"value"`
}

// Editables lists every tagged node of the hero rendered from c, in render
// order. Nodes hidden by c (badge, trust caption) are still listed so an
// editor can fill them in before turning them on.
func Editables(c Config) []Editable {
	out := []Editable{
		{Key: "badge", Kind: EditableText, Value: c.Badge},
		{Key: "title", Kind: EditableText, Value: c.Title},
		{Key: "subtitle", Kind: EditableText, Value: c.Subtitle},
	}
	for _, f := range c.Features() {
		out = append(out, Editable{Key: f.Key, Kind: EditableText, Value: f.Text})
	}
	return append(out,
		Editable{Key: "primaryCTA", Kind: EditableText, Value: c.PrimaryCTA},
		Editable{Key: "primaryCTAHref", Kind: EditableLink, Value: c.PrimaryCTAHref},
		Editable{Key: "secondaryCTA", Kind: EditableText, Value: c.SecondaryCTA},
		Editable{Key: "secondaryCTAHref", Kind: EditableLink, Value: c.SecondaryCTAHref},
		Editable{Key: "trustedByText", Kind: EditableText, Value: c.TrustedByText},
	)
}
