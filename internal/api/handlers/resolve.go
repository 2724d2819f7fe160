package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sketch-constraints/internal/api/mapper"
	"sketch-constraints/internal/api/models"
	"sketch-constraints/internal/constraint"
	"sketch-constraints/internal/sketch"
)

// ============================================================
// Stateless resolve
// ============================================================

// Resolve computes the target state of a constraint over inline entities.
// Nothing is stored.
func (h *Handler) Resolve(c fiber.Ctx) error {
	var req models.ResolveRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}

	h.log.Debug("resolve", zap.String("constraint", req.Constraint.Type), zap.Int("entities", len(req.Entities)))

	_, byID, err := mapper.ToEntities(req.Entities)
	if err != nil {
		return h.fail(c, err)
	}

	r, _, err := mapper.Resolve(req.Constraint, mapper.MapLookup(byID))
	h.metrics.ConstraintResolved(req.Constraint.Type, err)
	if err != nil {
		return h.fail(c, err)
	}

	target, err := constraint.Preview(r)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(mapper.FromResult(keyOf(byID, r.Subject), r, target))
}

func keyOf(byID map[string]sketch.Entity, e sketch.Entity) string {
	for id, v := range byID {
		if v == e {
			return id
		}
	}
	return ""
}
