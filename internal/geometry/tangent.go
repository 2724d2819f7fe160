package geometry

import (
	"fmt"
	"math"
)

// ============================================================
// Tangents
// ============================================================

// Side selects one of the two tangent solutions.
type Side int

const (
	// SideLeft is the solution on the left of the travel direction (counter-clockwise side).
	SideLeft Side = iota
	// SideRight is the mirror solution on the clockwise side.
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseSide maps "left"/"right" to a Side. Empty defaults to SideLeft.
func ParseSide(s string) (Side, error) {
	switch s {
	case "", "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return SideLeft, fmt.Errorf("unknown side %q", s)
}

// CircleToCircleTangent returns the points where an outer tangent line touches
// the circle (c1, r1) and the circle (c2, r2). With SideLeft the line lies on the
// left of the direction c1 → c2.
func CircleToCircleTangent(c1 Vec, r1 float64, c2 Vec, r2 float64, side Side) (Vec, Vec, error) {
	d := Distance(c1, c2)
	delta, err := Direction(c1, c2)
	if err != nil {
		return Vec{}, Vec{}, fmt.Errorf("circle tangent: %w", err)
	}

	normal := delta.Perp()
	if side == SideRight {
		normal = normal.Mul(-1)
	}

	alpha := (r1 - r2) / d
	if math.Abs(alpha) > 1 {
		return Vec{}, Vec{}, fmt.Errorf("%w: circle of radius %g contains circle of radius %g",
			ErrNoTangent, math.Max(r1, r2), math.Min(r1, r2))
	}
	beta := math.Sqrt(1 - alpha*alpha)

	offset := delta.Mul(alpha).Add(normal.Mul(beta))
	return c1.Add(offset.Mul(r1)), c2.Add(offset.Mul(r2)), nil
}

// CircleToPointTangent returns the point on the circle where a line through p
// touches it. SideRight rotates the bearing center → p clockwise.
func CircleToPointTangent(center Vec, radius float64, p Vec, side Side) (Vec, error) {
	dist := Distance(center, p)
	if dist < radius {
		return Vec{}, fmt.Errorf("%w: point %s lies inside circle", ErrNoTangent, p)
	}

	angle := math.Acos(radius / dist)
	bearing := p.Sub(center).Angle()
	if side == SideRight {
		return PointOnCircle(center, radius, bearing-angle), nil
	}
	return PointOnCircle(center, radius, bearing+angle), nil
}
