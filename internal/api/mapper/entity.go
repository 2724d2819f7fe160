package mapper

import (
	"errors"
	"fmt"

	"sketch-constraints/internal/api/models"
	"sketch-constraints/internal/constraint"
	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

// ErrBadReference is returned when a request names an entity it did not define.
var ErrBadReference = errors.New("bad reference")

// ============================================================
// DTO -> entity
// ============================================================

func ToVec(p *models.Point) geometry.Vec {
	if p == nil {
		return geometry.Vec{}
	}
	return geometry.Point2D(p.X, p.Y)
}

// ToEntity builds a sketch entity from its DTO.
func ToEntity(dto models.Entity) (sketch.Entity, error) {
	switch dto.Kind {
	case "point":
		return sketch.NewPoint(ToVec(dto.Position)), nil
	case "line":
		return sketch.NewLine(ToVec(dto.Start), ToVec(dto.End)), nil
	case "circle":
		return sketch.NewCircle(ToVec(dto.Center), deref(dto.Radius))
	case "arc":
		return sketch.NewArc(ToVec(dto.Center), deref(dto.Radius), dto.StartAngle, deref(dto.Sweep))
	}
	return nil, fmt.Errorf("%w: unknown entity kind %q", sketch.ErrInvalidKey, dto.Kind)
}

// ToEntities builds every entity and indexes it by its DTO id, or by its
// position in the list when the id is empty.
func ToEntities(dtos []models.Entity) ([]string, map[string]sketch.Entity, error) {
	ids := make([]string, 0, len(dtos))
	byID := make(map[string]sketch.Entity, len(dtos))

	for i, dto := range dtos {
		e, err := ToEntity(dto)
		if err != nil {
			return nil, nil, fmt.Errorf("entities[%d]: %w", i, err)
		}
		id := dto.ID
		if id == "" {
			id = fmt.Sprint(i)
		}
		if _, dup := byID[id]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate entity id %q", ErrBadReference, id)
		}
		ids = append(ids, id)
		byID[id] = e
	}
	return ids, byID, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ============================================================
// entity -> DTO
// ============================================================

func FromVec(v geometry.Vec) *models.Point {
	return &models.Point{X: v.X, Y: v.Y}
}

func FromEntity(id string, e sketch.Entity) models.Entity {
	out := models.Entity{ID: id, Kind: e.Kind().String()}

	switch s := e.(type) {
	case *sketch.Point:
		out.Position = FromVec(s.Position())
	case *sketch.Line:
		out.Start = FromVec(s.Start())
		out.End = FromVec(s.End())
	case *sketch.Circle:
		out.Center = FromVec(s.Center())
		out.Radius = ptr(s.Radius())
	case *sketch.Arc:
		out.Center = FromVec(s.Center())
		out.Radius = ptr(s.Radius())
		out.StartAngle = s.StartAngle()
		out.Sweep = ptr(s.Sweep())
		out.Start = FromVec(s.Start())
		out.End = FromVec(s.End())
	}
	return out
}

func FromMove(m constraint.Move) models.Move {
	switch v := m.(type) {
	case constraint.MoveTo:
		return models.Move{Type: "move_to", Position: FromVec(v.Position)}
	case constraint.Translate:
		return models.Move{Type: "translate", Offset: FromVec(v.Offset)}
	case constraint.Rotate:
		return models.Move{Type: "rotate", Angle: ptr(v.Angle), About: FromVec(v.About)}
	case constraint.SetEndpoints:
		return models.Move{Type: "set_endpoints", Start: FromVec(v.Start), End: FromVec(v.End)}
	case constraint.SetRadius:
		return models.Move{Type: "set_radius", Radius: ptr(v.Radius)}
	}
	return models.Move{Type: "unknown"}
}

// FromResult describes a resolved constraint together with the previewed
// target state of its subject.
func FromResult(subjectID string, r constraint.Result, target sketch.Entity) models.Result {
	out := models.Result{
		Constraint: r.Constraint,
		Subject:    subjectID,
		Move:       FromMove(r.Move),
		PathArc:    r.PathArc,
		Target:     FromEntity(subjectID, target),
	}
	if r.Role != sketch.RoleNone {
		out.Role = r.Role.String()
	}
	return out
}

func ptr(f float64) *float64 { return &f }
