package constraint

import (
	"fmt"

	"sketch-constraints/internal/sketch"
)

// Equal makes target the same size as base. Base is preserved and target is
// modified, whichever was picked first: a line keeps its own midpoint and
// direction and takes base's length; a circle or arc takes base's radius.
func Equal(base, target sketch.Entity) (Result, error) {
	switch {
	case base.Kind() == sketch.KindLine && target.Kind() == sketch.KindLine:
		return equalLines(base.(*sketch.Line), target.(*sketch.Line))
	case sketch.IsRound(base) && sketch.IsRound(target):
		radius, _ := sketch.Radius(base)
		return Result{
			Constraint: "equal",
			Subject:    target,
			Move:       SetRadius{Radius: radius},
		}, nil
	}
	return Result{}, fmt.Errorf("equal: %w: %s and %s", ErrTypeMismatch, base.Kind(), target.Kind())
}

func equalLines(base, target *sketch.Line) (Result, error) {
	dir, err := target.Direction()
	if err != nil {
		return Result{}, fmt.Errorf("equal: %w", err)
	}

	mid := target.Midpoint()
	half := dir.Mul(base.Length() / 2)

	return Result{
		Constraint: "equal",
		Subject:    target,
		Move:       SetEndpoints{Start: mid.Sub(half), End: mid.Add(half)},
	}, nil
}
