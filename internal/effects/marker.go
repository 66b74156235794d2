package effects

import "github.com/tomz197/oranges/internal/physics"

// MarkerKind identifies the overlay marker type.
type MarkerKind int

const (
	MarkerScore  MarkerKind = iota // "+N" floating score text
	MarkerSplash                   // splash glyph at the contact point
)

// Marker is a short-lived overlay notification. Markers are pure
// presentation: they never enter the particle pools and carry no physics.
type Marker struct {
	Kind     MarkerKind
	Pos      physics.Vec
	Text     string
	Age      float64 // ms
	Lifetime float64 // ms
}

// Opacity fades the marker out linearly over its lifetime.
func (m *Marker) Opacity() float64 {
	if m.Lifetime <= 0 {
		return 0
	}
	o := 1 - m.Age/m.Lifetime
	if o < 0 {
		return 0
	}
	return o
}

// Rise returns how far the marker has floated upward, for rendering.
func (m *Marker) Rise() float64 {
	if m.Lifetime <= 0 {
		return 0
	}
	return 6 * (m.Age / m.Lifetime)
}
