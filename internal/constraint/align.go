package constraint

import (
	"fmt"
	"math"

	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

// Axis is the alignment axis for Horizontal/Vertical constraints.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// ============================================================
// Point alignment
// ============================================================

// AlignPoints moves the base handle so that it lines up with target: Vertical
// gives base the target's x, Horizontal gives base the target's y. The other
// coordinate of base is kept.
func AlignPoints(base, target sketch.Selection, axis Axis) (Result, error) {
	from, err := base.Position()
	if err != nil {
		return Result{}, fmt.Errorf("%s base: %w", axis, err)
	}
	anchor, err := target.Position()
	if err != nil {
		return Result{}, fmt.Errorf("%s target: %w", axis, err)
	}

	to := geometry.Point2D(from.X, anchor.Y)
	if axis == AxisVertical {
		to = geometry.Point2D(anchor.X, from.Y)
	}

	return Result{
		Constraint: axis.String(),
		Subject:    base.Entity,
		Role:       base.Role,
		Move:       MoveTo{Position: to},
	}, nil
}

// HorizontalPoints puts base at the same height as target.
func HorizontalPoints(base, target sketch.Selection) (Result, error) {
	return AlignPoints(base, target, AxisHorizontal)
}

// VerticalPoints puts base directly above or below target.
func VerticalPoints(base, target sketch.Selection) (Result, error) {
	return AlignPoints(base, target, AxisVertical)
}

// ============================================================
// Line alignment
// ============================================================

// AlignLine rotates a line about its midpoint onto the x or y axis.
func AlignLine(line *sketch.Line, axis Axis) (Result, error) {
	want := 0.0
	if axis == AxisVertical {
		want = math.Pi / 2
	}
	return rotateLineTo(axis.String(), line, want)
}

// Horizontal rotates a line about its midpoint until it is horizontal.
func Horizontal(line *sketch.Line) (Result, error) {
	return AlignLine(line, AxisHorizontal)
}

// Vertical rotates a line about its midpoint until it is vertical.
func Vertical(line *sketch.Line) (Result, error) {
	return AlignLine(line, AxisVertical)
}

// Parallel rotates base about its midpoint until it is parallel to target.
func Parallel(base, target *sketch.Line) (Result, error) {
	dir, err := target.Direction()
	if err != nil {
		return Result{}, fmt.Errorf("parallel target: %w", err)
	}
	return rotateLineTo("parallel", base, dir.Angle())
}

// Perpendicular rotates base about its midpoint until it is perpendicular to target.
func Perpendicular(base, target *sketch.Line) (Result, error) {
	dir, err := target.Direction()
	if err != nil {
		return Result{}, fmt.Errorf("perpendicular target: %w", err)
	}
	return rotateLineTo("perpendicular", base, dir.Angle()+math.Pi/2)
}

func rotateLineTo(name string, line *sketch.Line, want float64) (Result, error) {
	dir, err := line.Direction()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}

	return Result{
		Constraint: name,
		Subject:    line,
		Move: Rotate{
			Angle: smallestLineRotation(want - dir.Angle()),
			About: line.Midpoint(),
		},
	}, nil
}

// A line is symmetric under a half turn, so any rotation can be reduced into
// (-π/2, π/2].
func smallestLineRotation(delta float64) float64 {
	r := math.Mod(delta, math.Pi)
	if r > math.Pi/2 {
		r -= math.Pi
	} else if r <= -math.Pi/2 {
		r += math.Pi
	}
	return r
}
