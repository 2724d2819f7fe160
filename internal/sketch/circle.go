package sketch

import (
	"fmt"

	"sketch-constraints/internal/geometry"
)

// Circle is a full circle with a vertex at its center.
type Circle struct {
	center *Point
	radius float64
}

// NewCircle creates a circle. The radius must be positive.
func NewCircle(center geometry.Vec, radius float64) (*Circle, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return &Circle{center: NewPoint(center), radius: radius}, nil
}

func (c *Circle) Kind() Kind { return KindCircle }
func (c *Circle) sealed()    {}

func (c *Circle) Center() geometry.Vec { return c.center.Position() }
func (c *Circle) Radius() float64      { return c.radius }
func (c *Circle) CenterHandle() *Point { return c.center }

// SetRadius rescales the circle about its center.
func (c *Circle) SetRadius(r float64) error {
	if err := checkRadius(r); err != nil {
		return err
	}
	c.radius = r
	return nil
}

// MoveCenter drags the circle so that its center lands on p.
func (c *Circle) MoveCenter(p geometry.Vec) { c.center.MoveTo(p) }

// Shift translates the circle.
func (c *Circle) Shift(v geometry.Vec) { c.center.Shift(v) }

// Rotate rotates the center about a point; a circle is otherwise rotation invariant.
func (c *Circle) Rotate(angle float64, about geometry.Vec) {
	c.center.MoveTo(geometry.Rotation(angle, about).Apply(c.Center()))
}

func (c *Circle) Refresh() { c.center.Refresh() }

func (c *Circle) Clone() Entity {
	return &Circle{center: NewPoint(c.Center()), radius: c.radius}
}

func checkRadius(r float64) error {
	if !(r > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidRadius, r)
	}
	return nil
}
