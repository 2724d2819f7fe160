package constraint

import (
	"fmt"

	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

// Concentric makes base share target's center. Circles and arcs are addressed
// through their center handle; points and handles are used as they are, so a
// point against a point is a plain coincident constraint.
func Concentric(base, target sketch.Selection) (Result, error) {
	base, err := centerSelection(base)
	if err != nil {
		return Result{}, fmt.Errorf("concentric base: %w", err)
	}
	target, err = centerSelection(target)
	if err != nil {
		return Result{}, fmt.Errorf("concentric target: %w", err)
	}

	to, err := target.Position()
	if err != nil {
		return Result{}, fmt.Errorf("concentric target: %w", err)
	}
	if _, err := base.Position(); err != nil {
		return Result{}, fmt.Errorf("concentric base: %w", err)
	}

	return Result{
		Constraint: "concentric",
		Subject:    base.Entity,
		Role:       base.Role,
		Move:       MoveTo{Position: to},
	}, nil
}

func centerSelection(s sketch.Selection) (sketch.Selection, error) {
	if s.IsWhole() {
		switch s.Entity.Kind() {
		case sketch.KindCircle, sketch.KindArc:
			return sketch.Select(s.Entity, sketch.RoleMiddle), nil
		case sketch.KindLine:
			return s, fmt.Errorf("%w: line has no center", ErrTypeMismatch)
		}
	}
	return s, nil
}

// ============================================================
// Midpoint
// ============================================================

// Midpoint moves the driven handle to the midpoint of either a single whole
// line or exactly two point-valued selections.
func Midpoint(driven sketch.Selection, refs ...sketch.Selection) (Result, error) {
	if _, err := driven.Position(); err != nil {
		return Result{}, fmt.Errorf("midpoint driven: %w", err)
	}

	var to geometry.Vec
	switch {
	case len(refs) == 1 && refs[0].IsWhole() && refs[0].Entity.Kind() == sketch.KindLine:
		to = refs[0].Entity.(*sketch.Line).Midpoint()
	case len(refs) == 2:
		a, err := refs[0].Position()
		if err != nil {
			return Result{}, fmt.Errorf("midpoint: %w", err)
		}
		b, err := refs[1].Position()
		if err != nil {
			return Result{}, fmt.Errorf("midpoint: %w", err)
		}
		to = geometry.Midpoint(a, b)
	default:
		return Result{}, fmt.Errorf("midpoint: %w: want one line or two points, got %d", ErrArity, len(refs))
	}

	return Result{
		Constraint: "midpoint",
		Subject:    driven.Entity,
		Role:       driven.Role,
		Move:       MoveTo{Position: to},
	}, nil
}
