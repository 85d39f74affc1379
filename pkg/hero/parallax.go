package hero

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Spring tuning for the orbs, expressed as stiffness/damping on a unit mass.
const (
	SpringStiffness = 100.0
	SpringDamping   = 30.0
	SpringMass      = 1.0

	// ParallaxDivisor scales the pointer's distance from the section center
	// down to an orb offset in pixels.
	ParallaxDivisor = 20.0

	// FrameRate drives the spring integration while the orbs are moving.
	FrameRate = 60

	settleEpsilon = 0.01
)

// FrameInterval is the wall-clock time of one spring frame.
var FrameInterval = time.Second / FrameRate

// Point is a 2D position or offset in CSS pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// PointerOffset is the raw orb offset for a pointer at p over the section r.
func PointerOffset(p Point, r Rect) Point {
	c := r.Center()
	return Point{
		X: (p.X - c.X) / ParallaxDivisor,
		Y: (p.Y - c.Y) / ParallaxDivisor,
	}
}

type springAxis struct {
	pos, vel, target float64
}

func (a *springAxis) advance(s harmonica.Spring) {
	a.pos, a.vel = s.Update(a.pos, a.vel, a.target)
	if math.Abs(a.pos-a.target) < settleEpsilon && math.Abs(a.vel) < settleEpsilon {
		a.pos, a.vel = a.target, 0
	}
}

func (a springAxis) settled() bool {
	return a.pos == a.target && a.vel == 0
}

// ParallaxDriver smooths pointer offsets through two independent springs,
// one per axis. The pointer leaving the section does not reset the target.
type ParallaxDriver struct {
	spring harmonica.Spring
	x, y   springAxis
}

// NewParallaxDriver returns a driver at rest at the origin.
func NewParallaxDriver() *ParallaxDriver {
	return &ParallaxDriver{
		spring: harmonica.NewSpring(harmonica.FPS(FrameRate), angularFrequency(), dampingRatio()),
	}
}

// angularFrequency is sqrt(k/m).
func angularFrequency() float64 {
	return math.Sqrt(SpringStiffness / SpringMass)
}

// dampingRatio is c / (2*sqrt(k*m)).
func dampingRatio() float64 {
	return SpringDamping / (2 * math.Sqrt(SpringStiffness*SpringMass))
}

// Move retargets the springs for a pointer at p over the section r.
func (d *ParallaxDriver) Move(p Point, r Rect) {
	d.SetTarget(PointerOffset(p, r))
}

// SetTarget retargets the springs directly.
func (d *ParallaxDriver) SetTarget(off Point) {
	d.x.target = off.X
	d.y.target = off.Y
}

// Target returns the current spring targets.
func (d *ParallaxDriver) Target() Point {
	return Point{X: d.x.target, Y: d.y.target}
}

// Advance integrates both springs by one frame.
func (d *ParallaxDriver) Advance() {
	d.x.advance(d.spring)
	d.y.advance(d.spring)
}

// Position returns the smoothed offset.
func (d *ParallaxDriver) Position() Point {
	return Point{X: d.x.pos, Y: d.y.pos}
}

// Orbs returns the offsets of the primary orb and its mirror, which moves
// the opposite way.
func (d *ParallaxDriver) Orbs() (primary, mirrored Point) {
	p := d.Position()
	return p, Point{X: -p.X, Y: -p.Y}
}

// Settled reports whether both springs rest on their targets.
func (d *ParallaxDriver) Settled() bool {
	return d.x.settled() && d.y.settled()
}
