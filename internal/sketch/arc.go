package sketch

import (
	"math"

	"sketch-constraints/internal/geometry"
)

// Arc is a circular arc with vertices at each end and at the center.
//
// The arc is defined by (origin, radius, startAngle, sweep); the three handles
// follow those parameters and are refreshed after every mutation, so
// ‖start - center‖ = ‖end - center‖ = radius always holds.
type Arc struct {
	origin     geometry.Vec
	radius     float64
	startAngle float64
	sweep      float64

	center *Point
	start  *Point
	end    *Point
}

// NewArc creates an arc starting at startAngle and sweeping counter-clockwise
// by sweep radians (negative sweeps run clockwise).
func NewArc(center geometry.Vec, radius, startAngle, sweep float64) (*Arc, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	a := &Arc{
		origin:     center,
		radius:     radius,
		startAngle: startAngle,
		sweep:      sweep,
		center:     &Point{},
		start:      &Point{},
		end:        &Point{},
	}
	a.bind()
	return a, nil
}

func (a *Arc) bind() {
	a.center.Follow(a.arcCenter)
	a.start.Follow(a.arcStart)
	a.end.Follow(a.arcEnd)
}

func (a *Arc) arcCenter() geometry.Vec { return a.origin }
func (a *Arc) arcStart() geometry.Vec  { return a.PointAt(a.startAngle) }
func (a *Arc) arcEnd() geometry.Vec    { return a.PointAt(a.startAngle + a.sweep) }

func (a *Arc) Kind() Kind { return KindArc }
func (a *Arc) sealed()    {}

func (a *Arc) Center() geometry.Vec { return a.center.Position() }
func (a *Arc) Start() geometry.Vec  { return a.start.Position() }
func (a *Arc) End() geometry.Vec    { return a.end.Position() }

func (a *Arc) CenterHandle() *Point { return a.center }
func (a *Arc) StartHandle() *Point  { return a.start }
func (a *Arc) EndHandle() *Point    { return a.end }

func (a *Arc) Radius() float64     { return a.radius }
func (a *Arc) StartAngle() float64 { return a.startAngle }
func (a *Arc) Sweep() float64      { return a.sweep }

// PointAt returns the point of the underlying circle at the given angle.
func (a *Arc) PointAt(angle float64) geometry.Vec {
	return geometry.PointOnCircle(a.origin, a.radius, angle)
}

// Midpoint returns the point halfway along the arc.
func (a *Arc) Midpoint() geometry.Vec {
	return a.PointAt(a.startAngle + a.sweep/2)
}

// SetRadius rescales the arc about its center; end handles keep their angles.
func (a *Arc) SetRadius(r float64) error {
	if err := checkRadius(r); err != nil {
		return err
	}
	a.radius = r
	a.Refresh()
	return nil
}

// MoveCenter drags the arc so that its center lands on p.
func (a *Arc) MoveCenter(p geometry.Vec) {
	a.origin = p
	a.Refresh()
}

// Shift translates the arc.
func (a *Arc) Shift(v geometry.Vec) {
	a.MoveCenter(a.origin.Add(v))
}

// Rotate rotates the arc counter-clockwise about a point.
func (a *Arc) Rotate(angle float64, about geometry.Vec) {
	a.origin = geometry.Rotation(angle, about).Apply(a.origin)
	a.startAngle = math.Remainder(a.startAngle+angle, 2*math.Pi)
	a.Refresh()
}

func (a *Arc) Refresh() {
	a.center.Refresh()
	a.start.Refresh()
	a.end.Refresh()
}

func (a *Arc) Clone() Entity {
	c, _ := NewArc(a.origin, a.radius, a.startAngle, a.sweep)
	return c
}
