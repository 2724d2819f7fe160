package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"sketch-constraints/internal/api/mapper"
	"sketch-constraints/internal/common/validation"
	"sketch-constraints/internal/constraint"
	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/render/repository"
	"sketch-constraints/internal/scene"
	"sketch-constraints/internal/sketch"
)

var errSceneNotFound = errors.New("scene not found")

// ============================================================
// Error mapping
// ============================================================

func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, mapper.ErrBadReference),
		errors.Is(err, sketch.ErrInvalidKey),
		errors.Is(err, sketch.ErrInvalidRadius),
		errors.Is(err, constraint.ErrTypeMismatch),
		errors.Is(err, constraint.ErrArity):
		return fiber.StatusBadRequest

	case errors.Is(err, geometry.ErrDegenerateVector),
		errors.Is(err, geometry.ErrNoTangent),
		errors.Is(err, constraint.ErrNotTouching):
		return fiber.StatusUnprocessableEntity

	case errors.Is(err, errSceneNotFound),
		errors.Is(err, scene.ErrUnknownEntity),
		errors.Is(err, scene.ErrUnknownScene),
		errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// fail writes err as a JSON body. Server errors are logged and hidden from the client.
func (h *Handler) fail(c fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Sugar().Errorw("request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
