// Package sketch defines sketcher-like entities: points, lines, circles and arcs,
// each made of a primary shape plus draggable handle points.
//
// A handle is a physical vertex of an entity; a point is a piece of data (geometry.Vec).
package sketch

import (
	"fmt"

	"sketch-constraints/internal/geometry"
)

// ============================================================
// Kinds
// ============================================================

// Kind tags the concrete entity variant.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindCircle
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Entity is the closed set {*Point, *Line, *Circle, *Arc}.
type Entity interface {
	Kind() Kind
	// Refresh re-evaluates handles that follow a derived position.
	Refresh()
	// Clone returns a deep copy whose handles follow the copy, not the original.
	Clone() Entity

	sealed()
}

// ============================================================
// Dispatch helpers
// ============================================================

// Center returns the center of a circle or arc.
func Center(e Entity) (geometry.Vec, error) {
	switch s := e.(type) {
	case *Circle:
		return s.Center(), nil
	case *Arc:
		return s.Center(), nil
	}
	return geometry.Vec{}, fmt.Errorf("%w: %s has no center", ErrInvalidKey, e.Kind())
}

// Radius returns the radius of a circle or arc.
func Radius(e Entity) (float64, error) {
	switch s := e.(type) {
	case *Circle:
		return s.Radius(), nil
	case *Arc:
		return s.Radius(), nil
	}
	return 0, fmt.Errorf("%w: %s has no radius", ErrInvalidKey, e.Kind())
}

// SetRadius rescales a circle or arc about its center.
func SetRadius(e Entity, r float64) error {
	switch s := e.(type) {
	case *Circle:
		return s.SetRadius(r)
	case *Arc:
		return s.SetRadius(r)
	}
	return fmt.Errorf("%w: %s has no radius", ErrInvalidKey, e.Kind())
}

// IsRound reports whether e is a circle or an arc.
func IsRound(e Entity) bool {
	k := e.Kind()
	return k == KindCircle || k == KindArc
}

// Shift translates the whole entity.
func Shift(e Entity, v geometry.Vec) {
	switch s := e.(type) {
	case *Point:
		s.Shift(v)
	case *Line:
		s.Shift(v)
	case *Circle:
		s.Shift(v)
	case *Arc:
		s.Shift(v)
	}
}

// Rotate rotates the whole entity counter-clockwise about a point.
func Rotate(e Entity, angle float64, about geometry.Vec) {
	switch s := e.(type) {
	case *Point:
		s.MoveTo(geometry.Rotation(angle, about).Apply(s.Position()))
	case *Line:
		s.Rotate(angle, about)
	case *Circle:
		s.Rotate(angle, about)
	case *Arc:
		s.Rotate(angle, about)
	}
}

// CoincidentTarget returns the point of e's own geometry that p should snap to:
// the point itself, the projection onto a line, or the boundary point of a
// circle/arc along the ray from its center through p.
func CoincidentTarget(e Entity, p geometry.Vec) (geometry.Vec, error) {
	switch s := e.(type) {
	case *Point:
		return s.Position(), nil
	case *Line:
		return s.Projection(p)
	case *Circle:
		return boundaryPoint(s.Center(), s.Radius(), p)
	case *Arc:
		return boundaryPoint(s.Center(), s.Radius(), p)
	}
	return geometry.Vec{}, fmt.Errorf("unsupported entity %T", e)
}

func boundaryPoint(center geometry.Vec, radius float64, p geometry.Vec) (geometry.Vec, error) {
	dir, err := geometry.Direction(center, p)
	if err != nil {
		return geometry.Vec{}, fmt.Errorf("coincident target at circle center: %w", err)
	}
	return center.Add(dir.Mul(radius)), nil
}
