package mapper

import (
	"fmt"

	"sketch-constraints/internal/api/models"
	"sketch-constraints/internal/constraint"
	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

// Lookup resolves an entity id.
type Lookup func(id string) (sketch.Entity, error)

// ============================================================
// Constraint dispatch
// ============================================================

// Resolve runs the resolver named by dto against the referenced entities. It
// also returns the selections in pick order, which is the click order an
// animator should show.
func Resolve(dto models.Constraint, lookup Lookup) (constraint.Result, []sketch.Selection, error) {
	sels, err := selections(dto.Refs, lookup)
	if err != nil {
		return constraint.Result{}, nil, err
	}

	r, err := dispatch(dto, sels)
	if err != nil {
		return constraint.Result{}, nil, err
	}
	return r, sels, nil
}

func dispatch(dto models.Constraint, sels []sketch.Selection) (constraint.Result, error) {
	switch dto.Type {
	case "coincident":
		if err := arity(dto.Type, sels, 2); err != nil {
			return constraint.Result{}, err
		}
		return constraint.Coincident(sels[0], sels[1])

	case "tangent":
		if err := arity(dto.Type, sels, 2); err != nil {
			return constraint.Result{}, err
		}
		return constraint.Tangent(sels[0].Entity, sels[1].Entity)

	case "tangent_rotate":
		if err := arity(dto.Type, sels, 2); err != nil {
			return constraint.Result{}, err
		}
		line, err := asLine(sels[0])
		if err != nil {
			return constraint.Result{}, err
		}
		side, err := geometry.ParseSide(dto.Side)
		if err != nil {
			return constraint.Result{}, fmt.Errorf("%w: %v", sketch.ErrInvalidKey, err)
		}
		return constraint.TangentRotate(line, sels[1].Entity, side)

	case "equal":
		if err := arity(dto.Type, sels, 2); err != nil {
			return constraint.Result{}, err
		}
		return constraint.Equal(sels[0].Entity, sels[1].Entity)

	case "horizontal", "vertical":
		axis := constraint.AxisHorizontal
		if dto.Type == "vertical" {
			axis = constraint.AxisVertical
		}
		switch len(sels) {
		case 1:
			line, err := asLine(sels[0])
			if err != nil {
				return constraint.Result{}, err
			}
			return constraint.AlignLine(line, axis)
		case 2:
			return constraint.AlignPoints(sels[0], sels[1], axis)
		}
		return constraint.Result{}, fmt.Errorf("%s: %w: want 1 or 2 references, got %d", dto.Type, constraint.ErrArity, len(sels))

	case "parallel", "perpendicular":
		if err := arity(dto.Type, sels, 2); err != nil {
			return constraint.Result{}, err
		}
		base, err := asLine(sels[0])
		if err != nil {
			return constraint.Result{}, err
		}
		target, err := asLine(sels[1])
		if err != nil {
			return constraint.Result{}, err
		}
		if dto.Type == "parallel" {
			return constraint.Parallel(base, target)
		}
		return constraint.Perpendicular(base, target)

	case "concentric":
		if err := arity(dto.Type, sels, 2); err != nil {
			return constraint.Result{}, err
		}
		return constraint.Concentric(sels[0], sels[1])

	case "midpoint":
		if len(sels) < 2 {
			return constraint.Result{}, fmt.Errorf("midpoint: %w: got %d references", constraint.ErrArity, len(sels))
		}
		return constraint.Midpoint(sels[0], sels[1:]...)
	}

	return constraint.Result{}, fmt.Errorf("%w: unknown constraint %q", sketch.ErrInvalidKey, dto.Type)
}

func selections(refs []models.Selection, lookup Lookup) ([]sketch.Selection, error) {
	out := make([]sketch.Selection, 0, len(refs))
	for i, ref := range refs {
		e, err := lookup(ref.Entity)
		if err != nil {
			return nil, fmt.Errorf("refs[%d]: %w", i, err)
		}
		role, err := sketch.ParseRole(ref.Role)
		if err != nil {
			return nil, fmt.Errorf("refs[%d]: %w", i, err)
		}
		out = append(out, sketch.Select(e, role))
	}
	return out, nil
}

func arity(name string, sels []sketch.Selection, want int) error {
	if len(sels) != want {
		return fmt.Errorf("%s: %w: want %d references, got %d", name, constraint.ErrArity, want, len(sels))
	}
	return nil
}

func asLine(s sketch.Selection) (*sketch.Line, error) {
	line, ok := s.Entity.(*sketch.Line)
	if !ok || !s.IsWhole() {
		return nil, fmt.Errorf("%w: want a whole line, got %s", constraint.ErrTypeMismatch, s)
	}
	return line, nil
}

// MapLookup resolves ids against a fixed set of entities.
func MapLookup(byID map[string]sketch.Entity) Lookup {
	return func(id string) (sketch.Entity, error) {
		e, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown entity %q", ErrBadReference, id)
		}
		return e, nil
	}
}
