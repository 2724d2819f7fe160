package constraint

import (
	"fmt"
	"math"

	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

// Tangent translates base in a straight line to the closest position where it
// touches target. Supported pairs: line/round, round/line and round/round,
// where round is a circle or an arc.
func Tangent(base, target sketch.Entity) (Result, error) {
	var (
		offset geometry.Vec
		err    error
	)

	switch {
	case base.Kind() == sketch.KindLine && sketch.IsRound(target):
		offset, err = lineToRoundOffset(base.(*sketch.Line), target)
	case sketch.IsRound(base) && target.Kind() == sketch.KindLine:
		offset, err = roundToLineOffset(base, target.(*sketch.Line))
	case sketch.IsRound(base) && sketch.IsRound(target):
		offset, err = roundToRoundOffset(base, target)
	default:
		return Result{}, fmt.Errorf("tangent: %w: %s and %s", ErrTypeMismatch, base.Kind(), target.Kind())
	}
	if err != nil {
		return Result{}, fmt.Errorf("tangent: %w", err)
	}

	return Result{
		Constraint: "tangent",
		Subject:    base,
		Move:       Translate{Offset: offset},
	}, nil
}

// The line moves along the perpendicular from its projection of the center
// until its distance to the center equals the radius.
func lineToRoundOffset(line *sketch.Line, round sketch.Entity) (geometry.Vec, error) {
	center, _ := sketch.Center(round)
	radius, _ := sketch.Radius(round)

	projection, err := line.Projection(center)
	if err != nil {
		return geometry.Vec{}, err
	}
	dir, err := geometry.Direction(projection, center)
	if err != nil {
		return geometry.Vec{}, fmt.Errorf("line passes through the center: %w", err)
	}
	return dir.Mul(geometry.Distance(projection, center) - radius), nil
}

func roundToLineOffset(round sketch.Entity, line *sketch.Line) (geometry.Vec, error) {
	center, _ := sketch.Center(round)
	radius, _ := sketch.Radius(round)

	projection, err := line.Projection(center)
	if err != nil {
		return geometry.Vec{}, err
	}
	dir, err := geometry.Direction(center, projection)
	if err != nil {
		return geometry.Vec{}, fmt.Errorf("line passes through the center: %w", err)
	}
	return dir.Mul(geometry.Distance(center, projection) - radius), nil
}

// Overlapping circles are pushed apart as well, so the result is always an
// external tangency.
func roundToRoundOffset(base, target sketch.Entity) (geometry.Vec, error) {
	bc, _ := sketch.Center(base)
	br, _ := sketch.Radius(base)
	tc, _ := sketch.Center(target)
	tr, _ := sketch.Radius(target)

	vec := tc.Sub(bc)
	dir, err := vec.Normalize()
	if err != nil {
		return geometry.Vec{}, fmt.Errorf("circles share a center: %w", err)
	}
	return dir.Mul(vec.Norm() - br - tr), nil
}

// ============================================================
// Tangent rotate
// ============================================================

// TangentRotate applies a tangent constraint to a line that already touches
// round at one end: the touching end slides along the boundary to the tangent
// point seen from the far end. PathArc carries the signed sweep about the center.
func TangentRotate(line *sketch.Line, round sketch.Entity, side geometry.Side) (Result, error) {
	if !sketch.IsRound(round) {
		return Result{}, fmt.Errorf("tangent rotate: %w: %s", ErrTypeMismatch, round.Kind())
	}
	center, _ := sketch.Center(round)
	radius, _ := sketch.Radius(round)

	role, err := touchingEnd(line, center, radius)
	if err != nil {
		return Result{}, fmt.Errorf("tangent rotate: %w", err)
	}

	near, far := line.Start(), line.End()
	if role == sketch.RoleEnd {
		near, far = far, near
	}

	touch, err := geometry.CircleToPointTangent(center, radius, far, side)
	if err != nil {
		return Result{}, fmt.Errorf("tangent rotate: %w", err)
	}

	return Result{
		Constraint: "tangent_rotate",
		Subject:    line,
		Role:       role,
		Move:       MoveTo{Position: touch},
		PathArc:    geometry.AngleBetweenPoints(near, touch, center),
	}, nil
}

const touchTolerance = 1e-6

func touchingEnd(line *sketch.Line, center geometry.Vec, radius float64) (sketch.Role, error) {
	if math.Abs(geometry.Distance(line.Start(), center)-radius) < touchTolerance {
		return sketch.RoleStart, nil
	}
	if math.Abs(geometry.Distance(line.End(), center)-radius) < touchTolerance {
		return sketch.RoleEnd, nil
	}
	return sketch.RoleNone, ErrNotTouching
}
