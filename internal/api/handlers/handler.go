package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"go.uber.org/zap"

	"sketch-constraints/internal/common/metrics"
	"sketch-constraints/internal/common/validation"
	"sketch-constraints/internal/render"
	"sketch-constraints/internal/render/repository"
	"sketch-constraints/internal/scene"
)

// ============================================================
// Handler
// ============================================================

type Handler struct {
	log      *zap.Logger
	metrics  *metrics.Collector
	db       *sql.DB
	repo     *repository.Repository
	archive  *render.Archive
	sessions *scene.Registry[*session]
}

func New(log *zap.Logger, collector *metrics.Collector, db *sql.DB, archive *render.Archive) *Handler {
	return &Handler{
		log:      log,
		metrics:  collector,
		db:       db,
		repo:     repository.New(db),
		archive:  archive,
		sessions: scene.NewRegistry[*session](),
	}
}

// Register mounts every route on app.
func (h *Handler) Register(app *fiber.App) {
	// ============================================================
	// Health & Ops
	// ============================================================

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)
	app.Get("/health/startup", StartupProbe)
	app.Get("/metrics", adaptor.HTTPHandler(h.metrics.Handler()))
	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)

	// ============================================================
	// Constraints
	// ============================================================

	app.Post("/resolve", h.Resolve)

	// ============================================================
	// Scenes
	// ============================================================

	app.Post("/scenes", h.CreateScene)
	app.Get("/scenes/:id", h.GetScene)
	app.Delete("/scenes/:id", h.DeleteScene)
	app.Post("/scenes/:id/entities", h.AddEntities)
	app.Post("/scenes/:id/constraints", h.Constrain)
	app.Get("/scenes/:id/svg", h.SceneSVG)
	app.Post("/scenes/:id/renders", h.RenderScene)

	// ============================================================
	// Catalog & Renders
	// ============================================================

	app.Get("/catalog", h.ListCatalog)
	app.Post("/catalog/:name/renders", h.RenderCatalog)
	app.Get("/renders", h.ListRenders)
	app.Get("/renders/:id", h.GetRender)
	app.Get("/renders/:id/frames/:idx", h.GetFrame)
}

// bind decodes the JSON body into out and validates it.
func bind(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return fmt.Errorf("%w: empty body", validation.ErrInvalid)
	}
	if err := json.Unmarshal(c.Body(), out); err != nil {
		return fmt.Errorf("%w: invalid json", validation.ErrInvalid)
	}
	return validation.Struct(out)
}
