package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sketch-constraints/internal/api/models"
	"sketch-constraints/internal/common/validation"
	"sketch-constraints/internal/render"
	"sketch-constraints/internal/render/repository"
	"sketch-constraints/internal/scene"
)

// ============================================================
// Catalog Handlers
// ============================================================

func (h *Handler) ListCatalog(c fiber.Ctx) error {
	entries := scene.Catalog()
	out := make([]models.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.CatalogEntry{Name: e.Name, Title: e.Title})
	}
	return c.JSON(out)
}

// RenderCatalog plays a built-in scene from scratch and stores its keyframes.
func (h *Handler) RenderCatalog(c fiber.Ctx) error {
	entry, err := scene.Lookup(c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}

	rec := render.NewRecorder()
	if err := scene.Play(entry, scene.New(entry.Name, rec)); err != nil {
		return h.fail(c, err)
	}

	saved, err := h.archive.Save(c.Context(), entry.Name, "catalog", rec)
	if err != nil {
		return h.fail(c, err)
	}

	h.metrics.RenderStored(saved.Source, saved.FrameCount)
	h.log.Info("catalog scene rendered", zap.String("scene", entry.Name), zap.String("render", saved.ID), zap.Int("frames", saved.FrameCount))

	return c.Status(fiber.StatusCreated).JSON(mapRender(saved))
}

// ============================================================
// Render Handlers
// ============================================================

func (h *Handler) ListRenders(c fiber.Ctx) error {
	limit := 0
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return h.fail(c, fmt.Errorf("%w: limit must be a non-negative integer", validation.ErrInvalid))
		}
		limit = n
	}

	renders, err := h.repo.ListRenders(c.Context(), limit)
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]models.RenderSummary, 0, len(renders))
	for i := range renders {
		out = append(out, mapRender(&renders[i]))
	}
	return c.JSON(out)
}

func (h *Handler) GetRender(c fiber.Ctx) error {
	ctx := c.Context()
	id := c.Params("id")

	rd, err := h.repo.GetRender(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	frames, err := h.repo.ListFrames(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}

	out := models.RenderDetail{
		RenderSummary: mapRender(rd),
		Frames:        make([]models.FrameSummary, 0, len(frames)),
	}
	for _, f := range frames {
		out.Frames = append(out.Frames, models.FrameSummary{Index: f.Index, AtMS: f.AtMS, Label: f.Label})
	}
	return c.JSON(out)
}

// GetFrame serves one stored keyframe as SVG.
func (h *Handler) GetFrame(c fiber.Ctx) error {
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil || idx < 0 {
		return h.fail(c, fmt.Errorf("%w: frame index must be a non-negative integer", validation.ErrInvalid))
	}

	f, err := h.repo.GetFrame(c.Context(), c.Params("id"), idx)
	if err != nil {
		return h.fail(c, err)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(f.SVG)
}

func mapRender(r *repository.Render) models.RenderSummary {
	return models.RenderSummary{
		ID:         r.ID,
		Scene:      r.Scene,
		Source:     r.Source,
		FrameCount: r.FrameCount,
		DurationMS: r.DurationMS,
		Artifacts:  r.Artifacts,
		CreatedAt:  r.CreatedAt,
	}
}
