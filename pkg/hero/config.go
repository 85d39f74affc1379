// Package hero implements the TechFlow landing-page hero section: its
// configuration, presenters, motion drivers and the live component that ties
// them together.
package hero

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Pattern selects the decorative layer drawn behind the hero content.
type Pattern string

const (
	PatternDots     Pattern = "dots"
	PatternGrid     Pattern = "grid"
	PatternGradient Pattern = "gradient"
)

// Valid reports whether p is one of the three known patterns.
func (p Pattern) Valid() bool {
	switch p {
	case PatternDots, PatternGrid, PatternGradient:
		return true
	}
	return false
}

// LaunchWindow is how far ahead of construction the default launch date lies.
const LaunchWindow = 30 * 24 * time.Hour

// Config is a fully resolved hero configuration. Every field is set.
type Config struct {
	Badge             string    `json:"badge" yaml:"badge"`
	Title             string    `json:"title" yaml:"title"`
	TitleHighlight    string    `json:"titleHighlight" yaml:"titleHighlight"`
	Subtitle          string    `json:"subtitle" yaml:"subtitle"`
	PrimaryCTA        string    `json:"primaryCTA" yaml:"primaryCTA"`
	SecondaryCTA      string    `json:"secondaryCTA" yaml:"secondaryCTA"`
	PrimaryCTAHref    string    `json:"primaryCTAHref" yaml:"primaryCTAHref"`
	SecondaryCTAHref  string    `json:"secondaryCTAHref" yaml:"secondaryCTAHref"`
	Feature1Icon      string    `json:"feature1Icon" yaml:"feature1Icon"`
	Feature1Text      string    `json:"feature1Text" yaml:"feature1Text"`
	Feature2Icon      string    `json:"feature2Icon" yaml:"feature2Icon"`
	Feature2Text      string    `json:"feature2Text" yaml:"feature2Text"`
	Feature3Icon      string    `json:"feature3Icon" yaml:"feature3Icon"`
	Feature3Text      string    `json:"feature3Text" yaml:"feature3Text"`
	TrustedByText     string    `json:"trustedByText" yaml:"trustedByText"`
	ShowTrustedLogos  bool      `json:"showTrustedLogos" yaml:"showTrustedLogos"`
	BackgroundPattern Pattern   `json:"backgroundPattern" yaml:"backgroundPattern"`
	ShowAnimatedBadge bool      `json:"showAnimatedBadge" yaml:"showAnimatedBadge"`
	LaunchDate        time.Time `json:"launchDate" yaml:"launchDate"`
	TypedStrings      []string  `json:"typedStrings" yaml:"typedStrings"`
}

// Feature is one of the three pills under the subtitle.
type Feature struct {
	Key  string
	Icon string
	Text string
}

// Features returns the three feature pills in display order.
func (c Config) Features() [3]Feature {
	return [3]Feature{
		{Key: "feature1Text", Icon: c.Feature1Icon, Text: c.Feature1Text},
		{Key: "feature2Text", Icon: c.Feature2Icon, Text: c.Feature2Text},
		{Key: "feature3Text", Icon: c.Feature3Icon, Text: c.Feature3Text},
	}
}

// defaultLaunch is computed once when the package is initialized. Every
// mount that relies on the default shares the same target.
var defaultLaunch = time.Now().Add(LaunchWindow)

// DefaultLaunchDate returns the process-wide default launch moment.
func DefaultLaunchDate() time.Time {
	return defaultLaunch
}

// Defaults returns the default table with the process-wide launch date.
func Defaults() Config {
	c := DefaultsAt(time.Time{})
	c.LaunchDate = defaultLaunch
	return c
}

// DefaultsAt returns the default table as if it had been built at now.
func DefaultsAt(now time.Time) Config {
	return Config{
		Badge:             "🚀 Product Launch in",
		Title:             "Build AI-Powered",
		TitleHighlight:    "Automation",
		Subtitle:          "Transform your business with intelligent automation solutions. Join 10,000+ companies already scaling with TechFlow's cutting-edge AI platform.",
		PrimaryCTA:        "Start Free Trial",
		SecondaryCTA:      "Watch Demo",
		PrimaryCTAHref:    "/signup",
		SecondaryCTAHref:  "/demo",
		Feature1Icon:      "zap",
		Feature1Text:      "AI-Powered",
		Feature2Icon:      "shield",
		Feature2Text:      "Enterprise Ready",
		Feature3Icon:      "globe",
		Feature3Text:      "Global Scale",
		TrustedByText:     "Trusted by industry leaders worldwide",
		ShowTrustedLogos:  true,
		BackgroundPattern: PatternGradient,
		ShowAnimatedBadge: true,
		LaunchDate:        now.Add(LaunchWindow),
		TypedStrings:      []string{"Automation", "Intelligence", "Innovation", "Solutions"},
	}
}

// Overrides is a partial configuration. A nil field is left at its default.
// TypedStrings distinguishes nil (absent) from an empty list (supplied).
type Overrides struct {
	Badge             *string    `json:"badge,omitempty" yaml:"badge,omitempty"`
	Title             *string    `json:"title,omitempty" yaml:"title,omitempty"`
	TitleHighlight    *string    `json:"titleHighlight,omitempty" yaml:"titleHighlight,omitempty"`
	Subtitle          *string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	PrimaryCTA        *string    `json:"primaryCTA,omitempty" yaml:"primaryCTA,omitempty"`
	SecondaryCTA      *string    `json:"secondaryCTA,omitempty" yaml:"secondaryCTA,omitempty"`
	PrimaryCTAHref    *string    `json:"primaryCTAHref,omitempty" yaml:"primaryCTAHref,omitempty"`
	SecondaryCTAHref  *string    `json:"secondaryCTAHref,omitempty" yaml:"secondaryCTAHref,omitempty"`
	Feature1Icon      *string    `json:"feature1Icon,omitempty" yaml:"feature1Icon,omitempty"`
	Feature1Text      *string    `json:"feature1Text,omitempty" yaml:"feature1Text,omitempty"`
	Feature2Icon      *string    `json:"feature2Icon,omitempty" yaml:"feature2Icon,omitempty"`
	Feature2Text      *string    `json:"feature2Text,omitempty" yaml:"feature2Text,omitempty"`
	Feature3Icon      *string    `json:"feature3Icon,omitempty" yaml:"feature3Icon,omitempty"`
	Feature3Text      *string    `json:"feature3Text,omitempty" yaml:"feature3Text,omitempty"`
	TrustedByText     *string    `json:"trustedByText,omitempty" yaml:"trustedByText,omitempty"`
	ShowTrustedLogos  *bool      `json:"showTrustedLogos,omitempty" yaml:"showTrustedLogos,omitempty"`
	BackgroundPattern *Pattern   `json:"backgroundPattern,omitempty" yaml:"backgroundPattern,omitempty"`
	ShowAnimatedBadge *bool      `json:"showAnimatedBadge,omitempty" yaml:"showAnimatedBadge,omitempty"`
	LaunchDate        *time.Time `json:"launchDate,omitempty" yaml:"launchDate,omitempty"`
	TypedStrings      []string   `json:"typedStrings,omitempty" yaml:"typedStrings,omitempty"`
}

// overridesFields has the fields of Overrides without its marshal methods.
type overridesFields Overrides

const typedStringsKey = "typedStrings"

// clearedPhrases reports an explicitly empty typedStrings list, which
// omitempty would otherwise drop from a saved file.
func (o Overrides) clearedPhrases() bool {
	return o.TypedStrings != nil && len(o.TypedStrings) == 0
}

// MarshalJSON writes an explicitly empty typedStrings list as [].
func (o Overrides) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(overridesFields(o))
	if err != nil || !o.clearedPhrases() {
		return data, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m[typedStringsKey] = json.RawMessage("[]")
	return json.Marshal(m)
}

// MarshalYAML writes an explicitly empty typedStrings list as [].
func (o Overrides) MarshalYAML() (any, error) {
	var n yaml.Node
	if err := n.Encode(overridesFields(o)); err != nil {
		return nil, err
	}
	if o.clearedPhrases() {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: typedStringsKey},
			&yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle},
		)
	}
	return &n, nil
}

// Resolve fills every unset field of o from Defaults.
func Resolve(o *Overrides) Config {
	return o.Over(Defaults())
}

// Over overlays o on base and returns the result. base is not modified and
// the returned TypedStrings never aliases either input.
func (o *Overrides) Over(base Config) Config {
	c := base
	c.TypedStrings = cloneStrings(base.TypedStrings)
	if o == nil {
		return c
	}

	setString(&c.Badge, o.Badge)
	setString(&c.Title, o.Title)
	setString(&c.TitleHighlight, o.TitleHighlight)
	setString(&c.Subtitle, o.Subtitle)
	setString(&c.PrimaryCTA, o.PrimaryCTA)
	setString(&c.SecondaryCTA, o.SecondaryCTA)
	setString(&c.PrimaryCTAHref, o.PrimaryCTAHref)
	setString(&c.SecondaryCTAHref, o.SecondaryCTAHref)
	setString(&c.Feature1Icon, o.Feature1Icon)
	setString(&c.Feature1Text, o.Feature1Text)
	setString(&c.Feature2Icon, o.Feature2Icon)
	setString(&c.Feature2Text, o.Feature2Text)
	setString(&c.Feature3Icon, o.Feature3Icon)
	setString(&c.Feature3Text, o.Feature3Text)
	setString(&c.TrustedByText, o.TrustedByText)

	if o.ShowTrustedLogos != nil {
		c.ShowTrustedLogos = *o.ShowTrustedLogos
	}
	if o.ShowAnimatedBadge != nil {
		c.ShowAnimatedBadge = *o.ShowAnimatedBadge
	}
	// An unknown pattern keeps the base value so exactly one layer renders.
	if o.BackgroundPattern != nil && o.BackgroundPattern.Valid() {
		c.BackgroundPattern = *o.BackgroundPattern
	}
	if o.LaunchDate != nil {
		c.LaunchDate = *o.LaunchDate
	}
	if o.TypedStrings != nil {
		c.TypedStrings = cloneStrings(o.TypedStrings)
	}
	return c
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// ParseOverrides decodes YAML or JSON bytes. Unknown keys are dropped.
// JSON is a subset of YAML so one decoder serves both.
func ParseOverrides(data []byte) (*Overrides, error) {
	o := &Overrides{}
	if len(bytes.TrimSpace(data)) == 0 {
		return o, nil
	}
	if err := yaml.Unmarshal(data, o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOverrides, err)
	}
	return o, nil
}

// LoadOverrides reads an overrides file from disk.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hero content %s: %w", path, err)
	}
	return ParseOverrides(data)
}

// SaveOverrides writes o back to path. Files ending in .json are written as
// indented JSON, everything else as YAML.
func SaveOverrides(path string, o *Overrides) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(o, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(o)
	}
	if err != nil {
		return fmt.Errorf("encode hero content: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// OverridesFromMap builds overrides from a loosely typed map, such as a
// decoded JSON object. Unknown keys and values of the wrong type are ignored.
func OverridesFromMap(m map[string]any) *Overrides {
	o := &Overrides{}
	for key, raw := range m {
		switch v := raw.(type) {
		case string:
			_ = o.Set(key, v)
		case bool:
			if f := o.boolField(key); f != nil {
				b := v
				*f = &b
			}
		case time.Time:
			if key == "launchDate" {
				t := v
				o.LaunchDate = &t
			}
		case []string:
			if key == "typedStrings" {
				o.TypedStrings = cloneStrings(v)
			}
		case []any:
			if key == "typedStrings" {
				list := make([]string, 0, len(v))
				for _, item := range v {
					if s, ok := item.(string); ok {
						list = append(list, s)
					}
				}
				o.TypedStrings = list
			}
		}
	}
	return o
}

func (o *Overrides) stringField(key string) **string {
	switch key {
	case "badge":
		return &o.Badge
	case "title":
		return &o.Title
	case "titleHighlight":
		return &o.TitleHighlight
	case "subtitle":
		return &o.Subtitle
	case "primaryCTA":
		return &o.PrimaryCTA
	case "secondaryCTA":
		return &o.SecondaryCTA
	case "primaryCTAHref":
		return &o.PrimaryCTAHref
	case "secondaryCTAHref":
		return &o.SecondaryCTAHref
	case "feature1Icon":
		return &o.Feature1Icon
	case "feature1Text":
		return &o.Feature1Text
	case "feature2Icon":
		return &o.Feature2Icon
	case "feature2Text":
		return &o.Feature2Text
	case "feature3Icon":
		return &o.Feature3Icon
	case "feature3Text":
		return &o.Feature3Text
	case "trustedByText":
		return &o.TrustedByText
	}
	return nil
}

func (o *Overrides) boolField(key string) **bool {
	switch key {
	case "showTrustedLogos":
		return &o.ShowTrustedLogos
	case "showAnimatedBadge":
		return &o.ShowAnimatedBadge
	}
	return nil
}

// Set patches a single field from its string form, the way a content editor
// addresses it. Booleans accept strconv-style spellings, launchDate takes
// RFC 3339 and typedStrings a comma-separated list.
func (o *Overrides) Set(key, value string) error {
	if f := o.stringField(key); f != nil {
		v := value
		*f = &v
		return nil
	}
	if f := o.boolField(key); f != nil {
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*f = &b
		return nil
	}
	switch key {
	case "backgroundPattern":
		p := Pattern(strings.ToLower(strings.TrimSpace(value)))
		if !p.Valid() {
			return fmt.Errorf("%s %q: %w", key, value, ErrUnknownPattern)
		}
		o.BackgroundPattern = &p
		return nil
	case "launchDate":
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.LaunchDate = &t
		return nil
	case "typedStrings":
		parts := strings.Split(value, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		o.TypedStrings = list
		return nil
	}
	return fmt.Errorf("%q: %w", key, ErrUnknownKey)
}

// parseBool extends strconv.ParseBool with yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "on":
		return true, nil
	case "0", "f", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
