package constraint

import (
	"fmt"

	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

// Coincident moves the base handle onto the target. A target handle is matched
// exactly; a whole target entity is matched at its nearest point (see
// sketch.CoincidentTarget).
func Coincident(base, target sketch.Selection) (Result, error) {
	from, err := base.Position()
	if err != nil {
		return Result{}, fmt.Errorf("coincident base: %w", err)
	}

	to, err := coincidentPoint(target, from)
	if err != nil {
		return Result{}, fmt.Errorf("coincident target: %w", err)
	}

	return Result{
		Constraint: "coincident",
		Subject:    base.Entity,
		Role:       base.Role,
		Move:       MoveTo{Position: to},
	}, nil
}

func coincidentPoint(target sketch.Selection, from geometry.Vec) (geometry.Vec, error) {
	if !target.IsWhole() {
		return target.Position()
	}
	return sketch.CoincidentTarget(target.Entity, from)
}
