package hero

// Gradient layer motion over the section's scroll span.
const (
	GradientMaxTranslate = 50.0 // percent of the layer height
	GradientFadeEnd      = 0.5  // progress at which the layer is fully faded
)

// ScrollProgress tracks the section from its top meeting the viewport top
// (0) to its bottom meeting the viewport top (1). top is the section's
// bounding-box top relative to the viewport.
func ScrollProgress(top, height float64) float64 {
	if height <= 0 {
		if top < 0 {
			return 1
		}
		return 0
	}
	return clamp01(-top / height)
}

// GradientMotion is the transform applied to the gradient layer.
type GradientMotion struct {
	TranslateY float64 `json:"y"`
	Opacity    float64 `json:"opacity"`
}

// GradientAt maps scroll progress to the gradient layer's motion: it slides
// down to half its height over the full span and fades out over the first
// half, staying hidden afterwards.
func GradientAt(progress float64) GradientMotion {
	p := clamp01(progress)
	return GradientMotion{
		TranslateY: p * GradientMaxTranslate,
		Opacity:    1 - clamp01(p/GradientFadeEnd),
	}
}

// RestingGradient is the gradient motion before any scroll happens.
var RestingGradient = GradientAt(0)

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
