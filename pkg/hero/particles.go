package hero

import "encoding/json"

// ParticleOptions configures the browser particle engine behind the hero.
// The JSON shape is the engine's own options object.
type ParticleOptions struct {
	Background    particleBackground    `json:"background"`
	FPSLimit      int                   `json:"fpsLimit"`
	Interactivity particleInteractivity `json:"interactivity"`
	Particles     particleSettings      `json:"particles"`
	DetectRetina  bool                  `json:"detectRetina"`
}

type colorValue struct {
	Value string `json:"value"`
}

type particleBackground struct {
	Color colorValue `json:"color"`
}

type toggleMode struct {
	Enable bool   `json:"enable"`
	Mode   string `json:"mode"`
}

type particleInteractivity struct {
	Events struct {
		OnClick toggleMode `json:"onClick"`
		OnHover toggleMode `json:"onHover"`
		Resize  bool       `json:"resize"`
	} `json:"events"`
	Modes struct {
		Push struct {
			Quantity int `json:"quantity"`
		} `json:"push"`
		Repulse struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"repulse"`
	} `json:"modes"`
}

type particleSettings struct {
	Color colorValue `json:"color"`
	Links struct {
		Color    string  `json:"color"`
		Distance float64 `json:"distance"`
		Enable   bool    `json:"enable"`
		Opacity  float64 `json:"opacity"`
		Width    float64 `json:"width"`
	} `json:"links"`
	Move struct {
		Direction string `json:"direction"`
		Enable    bool   `json:"enable"`
		OutModes  struct {
			Default string `json:"default"`
		} `json:"outModes"`
		Random   bool    `json:"random"`
		Speed    float64 `json:"speed"`
		Straight bool    `json:"straight"`
	} `json:"move"`
	Number struct {
		Density struct {
			Enable bool    `json:"enable"`
			Area   float64 `json:"area"`
		} `json:"density"`
		Value int `json:"value"`
	} `json:"number"`
	Opacity struct {
		Value float64 `json:"value"`
	} `json:"opacity"`
	Shape struct {
		Type string `json:"type"`
	} `json:"shape"`
	Size struct {
		Value struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"value"`
	} `json:"size"`
}

// DefaultParticleOptions returns the hero's particle field: 80 slow,
// linked dots that bounce off the edges, scatter from the pointer and
// multiply on click.
func DefaultParticleOptions() ParticleOptions {
	const primary = "hsl(var(--primary))"

	var o ParticleOptions
	o.Background.Color.Value = "transparent"
	o.FPSLimit = 120
	o.DetectRetina = true

	o.Interactivity.Events.OnClick = toggleMode{Enable: true, Mode: "push"}
	o.Interactivity.Events.OnHover = toggleMode{Enable: true, Mode: "repulse"}
	o.Interactivity.Events.Resize = true
	o.Interactivity.Modes.Push.Quantity = 4
	o.Interactivity.Modes.Repulse.Distance = 200
	o.Interactivity.Modes.Repulse.Duration = 0.4

	p := &o.Particles
	p.Color.Value = primary
	p.Links.Color = primary
	p.Links.Distance = 150
	p.Links.Enable = true
	p.Links.Opacity = 0.1
	p.Links.Width = 1
	p.Move.Direction = "none"
	p.Move.Enable = true
	p.Move.OutModes.Default = "bounce"
	p.Move.Speed = 1
	p.Number.Density.Enable = true
	p.Number.Density.Area = 800
	p.Number.Value = 80
	p.Opacity.Value = 0.2
	p.Shape.Type = "circle"
	p.Size.Value.Min = 1
	p.Size.Value.Max = 3
	return o
}

// JSON encodes the options for a data attribute.
func (o ParticleOptions) JSON() string {
	data, err := json.Marshal(o)
	if err != nil {
		return "{}"
	}
	return string(data)
}
