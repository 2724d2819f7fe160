package sketch

import "sketch-constraints/internal/geometry"

// Point is a single draggable vertex.
type Point struct {
	pos    geometry.Vec
	follow func() geometry.Vec
}

// NewPoint creates a free-standing vertex.
func NewPoint(p geometry.Vec) *Point {
	return &Point{pos: p}
}

func (p *Point) Kind() Kind { return KindPoint }
func (p *Point) sealed()    {}

// Position returns the current position.
func (p *Point) Position() geometry.Vec { return p.pos }

// MoveTo relocates the point. A following point is overwritten again on the next Refresh.
func (p *Point) MoveTo(v geometry.Vec) { p.pos = v }

// Shift moves the point by v.
func (p *Point) Shift(v geometry.Vec) { p.pos = p.pos.Add(v) }

// Follow binds the point to a derived position of another entity. The binding is
// one-directional: the source is read on every Refresh and never written.
func (p *Point) Follow(source func() geometry.Vec) {
	p.follow = source
	p.Refresh()
}

// Following reports whether the point tracks a source.
func (p *Point) Following() bool { return p.follow != nil }

// Refresh pulls the followed position, if any.
func (p *Point) Refresh() {
	if p.follow != nil {
		p.pos = p.follow()
	}
}

// Clone copies the position only; a followed source belongs to the owning
// entity and is rebound by that entity's Clone.
func (p *Point) Clone() Entity {
	return &Point{pos: p.pos}
}
