package mapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketch-constraints/internal/api/models"
	"sketch-constraints/internal/constraint"
	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

func f(v float64) *float64 { return &v }

func pt(x, y float64) *models.Point { return &models.Point{X: x, Y: y} }

func fixture(t *testing.T) map[string]sketch.Entity {
	t.Helper()
	_, byID, err := ToEntities([]models.Entity{
		{ID: "a", Kind: "point", Position: pt(0, 0)},
		{ID: "b", Kind: "point", Position: pt(2, 3)},
		{ID: "l", Kind: "line", Start: pt(0, 0), End: pt(2, 2)},
		{ID: "m", Kind: "line", Start: pt(0, 5), End: pt(4, 5)},
		{ID: "c", Kind: "circle", Center: pt(5, 0), Radius: f(1)},
	})
	require.NoError(t, err)
	return byID
}

func TestToEntity(t *testing.T) {
	t.Run("arc fills handles on the way back", func(t *testing.T) {
		e, err := ToEntity(models.Entity{Kind: "arc", Center: pt(1, 1), Radius: f(2), StartAngle: 0, Sweep: f(math.Pi / 2)})
		require.NoError(t, err)

		dto := FromEntity("x", e)
		assert.Equal(t, "arc", dto.Kind)
		assert.InDelta(t, 3, dto.Start.X, 1e-9)
		assert.InDelta(t, 1, dto.Start.Y, 1e-9)
		assert.InDelta(t, 1, dto.End.X, 1e-9)
		assert.InDelta(t, 3, dto.End.Y, 1e-9)
		assert.InDelta(t, math.Pi/2, *dto.Sweep, 1e-12)
	})

	t.Run("bad radius", func(t *testing.T) {
		_, err := ToEntity(models.Entity{Kind: "circle", Center: pt(0, 0), Radius: f(0)})
		assert.ErrorIs(t, err, sketch.ErrInvalidRadius)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ToEntity(models.Entity{Kind: "spline"})
		assert.ErrorIs(t, err, sketch.ErrInvalidKey)
	})
}

func TestToEntities(t *testing.T) {
	ids, byID, err := ToEntities([]models.Entity{
		{Kind: "point", Position: pt(1, 1)},
		{ID: "p", Kind: "point", Position: pt(2, 2)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "p"}, ids)
	assert.Len(t, byID, 2)

	_, _, err = ToEntities([]models.Entity{
		{ID: "p", Kind: "point", Position: pt(1, 1)},
		{ID: "p", Kind: "point", Position: pt(2, 2)},
	})
	assert.ErrorIs(t, err, ErrBadReference)
}

func TestFromMove(t *testing.T) {
	m := FromMove(constraint.Rotate{Angle: 1, About: geometry.Point2D(2, 3)})
	assert.Equal(t, "rotate", m.Type)
	assert.Equal(t, 1.0, *m.Angle)
	assert.Equal(t, &models.Point{X: 2, Y: 3}, m.About)

	m = FromMove(constraint.SetRadius{Radius: 4})
	assert.Equal(t, "set_radius", m.Type)
	assert.Equal(t, 4.0, *m.Radius)
}

func TestResolve(t *testing.T) {
	byID := fixture(t)
	lookup := MapLookup(byID)

	t.Run("coincident moves the first ref", func(t *testing.T) {
		r, sels, err := Resolve(models.Constraint{
			Type: "coincident",
			Refs: []models.Selection{{Entity: "a"}, {Entity: "b"}},
		}, lookup)
		require.NoError(t, err)
		assert.Len(t, sels, 2)
		assert.Same(t, byID["a"], r.Subject)
		assert.Equal(t, constraint.MoveTo{Position: geometry.Point2D(2, 3)}, r.Move)
	})

	t.Run("horizontal with one line rotates it", func(t *testing.T) {
		r, _, err := Resolve(models.Constraint{
			Type: "horizontal",
			Refs: []models.Selection{{Entity: "l"}},
		}, lookup)
		require.NoError(t, err)

		target, err := constraint.Preview(r)
		require.NoError(t, err)
		dto := FromResult("l", r, target)
		assert.Equal(t, "rotate", dto.Move.Type)
		assert.InDelta(t, -math.Pi/4, *dto.Move.Angle, 1e-9)
		assert.InDelta(t, dto.Target.Start.Y, dto.Target.End.Y, 1e-9)
	})

	t.Run("horizontal with two handles aligns points", func(t *testing.T) {
		r, _, err := Resolve(models.Constraint{
			Type: "horizontal",
			Refs: []models.Selection{{Entity: "l", Role: "end"}, {Entity: "b"}},
		}, lookup)
		require.NoError(t, err)
		assert.Equal(t, sketch.RoleEnd, r.Role)
	})

	t.Run("parallel", func(t *testing.T) {
		r, _, err := Resolve(models.Constraint{
			Type: "parallel",
			Refs: []models.Selection{{Entity: "l"}, {Entity: "m"}},
		}, lookup)
		require.NoError(t, err)
		assert.Equal(t, "parallel", r.Constraint)
	})

	t.Run("tangent", func(t *testing.T) {
		r, _, err := Resolve(models.Constraint{
			Type: "tangent",
			Refs: []models.Selection{{Entity: "m"}, {Entity: "c"}},
		}, lookup)
		require.NoError(t, err)
		assert.Equal(t, "tangent", r.Constraint)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			dto  models.Constraint
			want error
		}{
			{"unknown entity", models.Constraint{Type: "equal", Refs: []models.Selection{{Entity: "zz"}, {Entity: "l"}}}, ErrBadReference},
			{"bad role", models.Constraint{Type: "coincident", Refs: []models.Selection{{Entity: "a", Role: "tip"}, {Entity: "b"}}}, sketch.ErrInvalidKey},
			{"arity", models.Constraint{Type: "equal", Refs: []models.Selection{{Entity: "l"}}}, constraint.ErrArity},
			{"align arity", models.Constraint{Type: "vertical", Refs: []models.Selection{{Entity: "a"}, {Entity: "b"}, {Entity: "l"}}}, constraint.ErrArity},
			{"midpoint arity", models.Constraint{Type: "midpoint", Refs: []models.Selection{{Entity: "a"}}}, constraint.ErrArity},
			{"parallel needs lines", models.Constraint{Type: "parallel", Refs: []models.Selection{{Entity: "l"}, {Entity: "c"}}}, constraint.ErrTypeMismatch},
			{"tangent_rotate needs a line", models.Constraint{Type: "tangent_rotate", Refs: []models.Selection{{Entity: "c"}, {Entity: "l"}}}, constraint.ErrTypeMismatch},
			{"bad side", models.Constraint{Type: "tangent_rotate", Side: "up", Refs: []models.Selection{{Entity: "l"}, {Entity: "c"}}}, sketch.ErrInvalidKey},
			{"unknown type", models.Constraint{Type: "fix", Refs: []models.Selection{{Entity: "a"}}}, sketch.ErrInvalidKey},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := Resolve(tt.dto, lookup)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})
}
