package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sketch-constraints/internal/api/mapper"
	"sketch-constraints/internal/api/models"
	"sketch-constraints/internal/render"
	"sketch-constraints/internal/render/repository"
	"sketch-constraints/internal/scene"
	"sketch-constraints/internal/sketch"
)

// ============================================================
// Sessions
// ============================================================

// session is a live scene together with the recorder that animates it.
type session struct {
	scene    *scene.Scene
	recorder *render.Recorder
	alias    map[string]string
}

func newSession(name string) *session {
	rec := render.NewRecorder()
	return &session{
		scene:    scene.New(name, rec),
		recorder: rec,
		alias:    make(map[string]string),
	}
}

// introduce adds the entities in request order. Client ids become aliases of
// the scene ids.
func (s *session) introduce(dtos []models.Entity) error {
	ids, byID, err := mapper.ToEntities(dtos)
	if err != nil {
		return err
	}
	for _, dto := range dtos {
		if _, taken := s.alias[dto.ID]; dto.ID != "" && taken {
			return fmt.Errorf("%w: entity id %q already in scene", mapper.ErrBadReference, dto.ID)
		}
	}

	entities := make([]sketch.Entity, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, byID[id])
	}
	sceneIDs := s.scene.Introduce(entities...)

	for i, dto := range dtos {
		if dto.ID != "" {
			s.alias[dto.ID] = sceneIDs[i]
		}
	}
	return nil
}

func (s *session) lookup(id string) (sketch.Entity, error) {
	if sceneID, ok := s.alias[id]; ok {
		id = sceneID
	}
	return s.scene.Entity(id)
}

func (s *session) describe() models.Scene {
	items := s.scene.Items()
	out := models.Scene{
		ID:       s.scene.ID,
		Name:     s.scene.Name,
		Entities: make([]models.Entity, 0, len(items)),
		Frames:   len(s.recorder.Frames()),
		ClockMS:  s.recorder.Clock().Milliseconds(),
	}
	for _, it := range items {
		out.Entities = append(out.Entities, mapper.FromEntity(it.ID, it.Entity))
	}
	if len(s.alias) > 0 {
		out.Aliases = make(map[string]string, len(s.alias))
		for k, v := range s.alias {
			out.Aliases[k] = v
		}
	}
	return out
}

// with runs fn on the scene id taken from the route, or fails with 404.
func (h *Handler) with(c fiber.Ctx, fn func(*session) error) error {
	id := c.Params("id")
	ok, err := h.sessions.With(id, fn)
	if !ok {
		return fmt.Errorf("%w: %s", errSceneNotFound, id)
	}
	return err
}

// ============================================================
// Scene Handlers
// ============================================================

func (h *Handler) CreateScene(c fiber.Ctx) error {
	var req models.CreateSceneRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.Name == "" {
		req.Name = "scene"
	}

	sess := newSession(req.Name)
	if err := sess.introduce(req.Entities); err != nil {
		return h.fail(c, err)
	}

	h.sessions.Store(sess.scene.ID, sess)
	h.metrics.ActiveScenes.Set(float64(h.sessions.Len()))
	h.log.Info("scene created", zap.String("scene", sess.scene.ID), zap.String("name", req.Name), zap.Int("entities", len(req.Entities)))

	return c.Status(fiber.StatusCreated).JSON(sess.describe())
}

func (h *Handler) GetScene(c fiber.Ctx) error {
	var out models.Scene
	err := h.with(c, func(s *session) error {
		out = s.describe()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *Handler) DeleteScene(c fiber.Ctx) error {
	id := c.Params("id")
	if !h.sessions.Delete(id) {
		return h.fail(c, fmt.Errorf("%w: %s", errSceneNotFound, id))
	}
	h.metrics.ActiveScenes.Set(float64(h.sessions.Len()))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddEntities(c fiber.Ctx) error {
	var req models.AddEntitiesRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}

	var out models.Scene
	err := h.with(c, func(s *session) error {
		if err := s.introduce(req.Entities); err != nil {
			return err
		}
		out = s.describe()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Constrain resolves a constraint against scene entities, animates it and
// applies it. The response carries the subject's new state.
func (h *Handler) Constrain(c fiber.Ctx) error {
	var req models.Constraint
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}

	var out models.Result
	err := h.with(c, func(s *session) error {
		r, clicked, err := mapper.Resolve(req, s.lookup)
		h.metrics.ConstraintResolved(req.Type, err)
		if err != nil {
			return err
		}
		if err := s.scene.Constrain(r, clicked...); err != nil {
			return err
		}

		subjectID, _ := s.scene.IDOf(r.Subject)
		out = mapper.FromResult(subjectID, r, r.Subject)
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *Handler) SceneSVG(c fiber.Ctx) error {
	var svg string
	err := h.with(c, func(s *session) error {
		items := s.scene.Items()
		ids := make([]string, 0, len(items))
		entities := make([]sketch.Entity, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
			entities = append(entities, it.Entity)
		}
		svg = render.NewRenderer().RenderEntities(ids, entities)
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// RenderScene tears the scene down, stores its keyframes and ends the session.
// A torn-down scene cannot be played again, so the session ends even when
// storing fails.
func (h *Handler) RenderScene(c fiber.Ctx) error {
	var (
		saved    *repository.Render
		tornDown bool
	)
	err := h.with(c, func(s *session) error {
		s.scene.TearDown()
		tornDown = true

		var err error
		saved, err = h.archive.Save(c.Context(), s.scene.Name, "scene", s.recorder)
		return err
	})
	if tornDown {
		h.sessions.Delete(c.Params("id"))
		h.metrics.ActiveScenes.Set(float64(h.sessions.Len()))
	}
	if err != nil {
		return h.fail(c, err)
	}

	h.metrics.RenderStored(saved.Source, saved.FrameCount)
	h.log.Info("scene rendered", zap.String("render", saved.ID), zap.Int("frames", saved.FrameCount))

	return c.Status(fiber.StatusCreated).JSON(mapRender(saved))
}
