package constraint

import (
	"math"
	"testing"

	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func pt(x, y float64) geometry.Vec { return geometry.Point2D(x, y) }

func assertClose(t *testing.T, want, got geometry.Vec) {
	t.Helper()
	assert.True(t, want.IsClose(got, tol), "want %s, got %s", want, got)
}

func mustCircle(t *testing.T, center geometry.Vec, r float64) *sketch.Circle {
	t.Helper()
	c, err := sketch.NewCircle(center, r)
	require.NoError(t, err)
	return c
}

func mustArc(t *testing.T, center geometry.Vec, r, start, sweep float64) *sketch.Arc {
	t.Helper()
	a, err := sketch.NewArc(center, r, start, sweep)
	require.NoError(t, err)
	return a
}

// snapshot flattens the observable state of an entity for comparisons.
func snapshot(e sketch.Entity) []float64 {
	switch s := e.(type) {
	case *sketch.Point:
		p := s.Position()
		return []float64{p.X, p.Y}
	case *sketch.Line:
		return []float64{s.Start().X, s.Start().Y, s.End().X, s.End().Y}
	case *sketch.Circle:
		return []float64{s.Center().X, s.Center().Y, s.Radius()}
	case *sketch.Arc:
		return []float64{
			s.Center().X, s.Center().Y, s.Radius(),
			s.Start().X, s.Start().Y, s.End().X, s.End().Y,
		}
	}
	return nil
}

func assertSameState(t *testing.T, want, got sketch.Entity) {
	t.Helper()
	a, b := snapshot(want), snapshot(got)
	require.Len(t, b, len(a))
	for i := range a {
		assert.InDelta(t, a[i], b[i], tol, "component %d", i)
	}
}

// assertIdempotent applies the resolver once, then checks that resolving again
// leaves the subject where it is.
func assertIdempotent(t *testing.T, resolve func() (Result, error)) {
	t.Helper()

	first, err := resolve()
	require.NoError(t, err)
	require.NoError(t, Apply(first))

	second, err := resolve()
	require.NoError(t, err)
	after, err := Preview(second)
	require.NoError(t, err)
	assertSameState(t, second.Subject, after)
}

// ============================================================
// Apply / Preview
// ============================================================

func TestPreviewLeavesSubjectUntouched(t *testing.T) {
	line := sketch.NewLine(pt(0, 0), pt(1, 0))
	r := Result{Constraint: "test", Subject: line, Role: sketch.RoleEnd, Move: MoveTo{Position: pt(5, 5)}}

	moved, err := Preview(r)
	require.NoError(t, err)

	assertClose(t, pt(1, 0), line.End())
	assertClose(t, pt(5, 5), moved.(*sketch.Line).End())
}

func TestApplyErrors(t *testing.T) {
	circle := mustCircle(t, pt(0, 0), 1)

	err := Apply(Result{})
	assert.Error(t, err)

	err = Apply(Result{Constraint: "x", Subject: circle, Move: SetEndpoints{}})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	err = Apply(Result{Constraint: "x", Subject: circle, Move: SetRadius{Radius: -1}})
	assert.ErrorIs(t, err, sketch.ErrInvalidRadius)

	err = Apply(Result{Constraint: "x", Subject: circle, Role: sketch.RoleStart, Move: MoveTo{}})
	assert.ErrorIs(t, err, sketch.ErrInvalidKey)
}

// ============================================================
// Coincident
// ============================================================

func TestCoincidentOntoCircle(t *testing.T) {
	line := sketch.NewLine(pt(10, 0), pt(10, 5))
	circle := mustCircle(t, pt(0, 0), 2)

	r, err := Coincident(sketch.Select(line, sketch.RoleStart), sketch.Whole(circle))
	require.NoError(t, err)
	require.NoError(t, Apply(r))

	assertClose(t, pt(2, 0), line.Start())
	assertClose(t, pt(10, 5), line.End())
}

func TestCoincident(t *testing.T) {
	tests := []struct {
		name   string
		target func() sketch.Selection
		want   geometry.Vec
	}{
		{
			name:   "point",
			target: func() sketch.Selection { return sketch.Whole(sketch.NewPoint(pt(3, 3))) },
			want:   pt(3, 3),
		},
		{
			name:   "line projection",
			target: func() sketch.Selection { return sketch.Whole(sketch.NewLine(pt(-5, 2), pt(5, 2))) },
			want:   pt(1, 2),
		},
		{
			name:   "line handle",
			target: func() sketch.Selection { return sketch.Select(sketch.NewLine(pt(-5, 2), pt(5, 2)), sketch.RoleEnd) },
			want:   pt(5, 2),
		},
		{
			name: "arc boundary",
			target: func() sketch.Selection {
				a, _ := sketch.NewArc(pt(1, 0), 2, 0, math.Pi)
				return sketch.Whole(a)
			},
			want: pt(1, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sketch.NewPoint(pt(1, 7))
			target := tt.target()
			resolve := func() (Result, error) { return Coincident(sketch.Whole(p), target) }

			r, err := resolve()
			require.NoError(t, err)
			require.NoError(t, Apply(r))
			assertClose(t, tt.want, p.Position())

			assertIdempotent(t, resolve)
		})
	}
}

func TestCoincidentErrors(t *testing.T) {
	circle := mustCircle(t, pt(0, 0), 1)
	line := sketch.NewLine(pt(0, 0), pt(1, 0))

	_, err := Coincident(sketch.Whole(line), sketch.Whole(circle))
	assert.ErrorIs(t, err, sketch.ErrInvalidKey)

	_, err = Coincident(sketch.Select(line, sketch.RoleStart), sketch.Whole(circle))
	assert.ErrorIs(t, err, geometry.ErrDegenerateVector)
}

// ============================================================
// Tangent
// ============================================================

func TestTangentLineToCircle(t *testing.T) {
	line := sketch.NewLine(pt(-3, 5), pt(3, 5))
	circle := mustCircle(t, pt(0, 0), 2)

	r, err := Tangent(line, circle)
	require.NoError(t, err)
	assert.Same(t, line, r.Subject)
	require.NoError(t, Apply(r))

	assertClose(t, pt(-3, 2), line.Start())
	assertClose(t, pt(3, 2), line.End())

	assertIdempotent(t, func() (Result, error) { return Tangent(line, circle) })
}

func TestTangentCircleToLine(t *testing.T) {
	line := sketch.NewLine(pt(0, -1), pt(10, -1))
	arc := mustArc(t, pt(4, 3), 1, 0, math.Pi)

	r, err := Tangent(arc, line)
	require.NoError(t, err)
	require.NoError(t, Apply(r))

	assertClose(t, pt(4, 0), arc.Center())
	assert.InDelta(t, 1, arc.Radius(), tol)
	assertClose(t, pt(5, 0), arc.Start())

	assertIdempotent(t, func() (Result, error) { return Tangent(arc, line) })
}

func TestTangentCircles(t *testing.T) {
	tests := []struct {
		name string
		base geometry.Vec
		want geometry.Vec
	}{
		{"apart", pt(10, 0), pt(3, 0)},
		{"overlapping", pt(1, 0), pt(3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustCircle(t, tt.base, 1)
			target := mustCircle(t, pt(0, 0), 2)

			r, err := Tangent(base, target)
			require.NoError(t, err)
			require.NoError(t, Apply(r))

			assertClose(t, tt.want, base.Center())
			assert.InDelta(t, 3, geometry.Distance(base.Center(), target.Center()), tol)
			assertIdempotent(t, func() (Result, error) { return Tangent(base, target) })
		})
	}
}

func TestTangentErrors(t *testing.T) {
	a := sketch.NewLine(pt(0, 0), pt(1, 0))
	b := sketch.NewLine(pt(0, 1), pt(1, 1))
	c := mustCircle(t, pt(0, 0), 1)
	d := mustCircle(t, pt(0, 0), 3)

	_, err := Tangent(a, b)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Tangent(sketch.NewPoint(pt(0, 0)), c)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Tangent(c, d)
	assert.ErrorIs(t, err, geometry.ErrDegenerateVector)

	_, err = Tangent(a, c)
	assert.ErrorIs(t, err, geometry.ErrDegenerateVector)
}

func TestTangentRotate(t *testing.T) {
	tests := []struct {
		name    string
		side    geometry.Side
		want    geometry.Vec
		pathArc float64
	}{
		{"left", geometry.SideLeft, pt(0.5, math.Sqrt(3)/2), math.Pi / 3},
		{"right", geometry.SideRight, pt(0.5, -math.Sqrt(3)/2), -math.Pi / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			circle := mustCircle(t, pt(0, 0), 1)
			line := sketch.NewLine(pt(1, 0), pt(2, 0))

			r, err := TangentRotate(line, circle, tt.side)
			require.NoError(t, err)
			assert.Equal(t, sketch.RoleStart, r.Role)
			assert.InDelta(t, tt.pathArc, r.PathArc, tol)

			require.NoError(t, Apply(r))
			assertClose(t, tt.want, line.Start())
			assertClose(t, pt(2, 0), line.End())

			// radius ⟂ line at the touching point
			radial := line.Start().Sub(circle.Center())
			along := line.End().Sub(line.Start())
			assert.InDelta(t, 0, radial.Dot(along), tol)

			assertIdempotent(t, func() (Result, error) { return TangentRotate(line, circle, tt.side) })
		})
	}
}

func TestTangentRotateEndTouching(t *testing.T) {
	circle := mustCircle(t, pt(0, 0), 1)
	line := sketch.NewLine(pt(0, 2), pt(0, 1))

	r, err := TangentRotate(line, circle, geometry.SideLeft)
	require.NoError(t, err)
	assert.Equal(t, sketch.RoleEnd, r.Role)
}

func TestTangentRotateErrors(t *testing.T) {
	circle := mustCircle(t, pt(0, 0), 1)

	_, err := TangentRotate(sketch.NewLine(pt(3, 0), pt(4, 0)), circle, geometry.SideLeft)
	assert.ErrorIs(t, err, ErrNotTouching)

	_, err = TangentRotate(sketch.NewLine(pt(1, 0), pt(0, 0)), circle, geometry.SideLeft)
	assert.ErrorIs(t, err, geometry.ErrNoTangent)

	_, err = TangentRotate(sketch.NewLine(pt(1, 0), pt(2, 0)), sketch.NewPoint(pt(0, 0)), geometry.SideLeft)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

// ============================================================
// Equal
// ============================================================

func TestEqualLines(t *testing.T) {
	a := sketch.NewLine(pt(0, 0), pt(4, 0))
	b := sketch.NewLine(pt(0, 5), pt(0, 7))

	r, err := Equal(a, b)
	require.NoError(t, err)
	assert.Same(t, b, r.Subject)
	require.NoError(t, Apply(r))

	assertClose(t, pt(0, 4), b.Start())
	assertClose(t, pt(0, 8), b.End())
	assertClose(t, pt(0, 6), b.Midpoint())
	assert.InDelta(t, 4, b.Length(), tol)

	// base untouched
	assertClose(t, pt(0, 0), a.Start())
	assertClose(t, pt(4, 0), a.End())

	assertIdempotent(t, func() (Result, error) { return Equal(a, b) })
}

func TestEqualRound(t *testing.T) {
	circle := mustCircle(t, pt(0, 0), 3)
	arc := mustArc(t, pt(5, 5), 1, 0, math.Pi/2)

	r, err := Equal(circle, arc)
	require.NoError(t, err)
	require.NoError(t, Apply(r))

	assert.InDelta(t, 3, arc.Radius(), tol)
	assertClose(t, pt(5, 5), arc.Center())
	assertClose(t, pt(8, 5), arc.Start())
	assertClose(t, pt(5, 8), arc.End())

	assertIdempotent(t, func() (Result, error) { return Equal(circle, arc) })
}

func TestEqualErrors(t *testing.T) {
	line := sketch.NewLine(pt(0, 0), pt(1, 0))
	circle := mustCircle(t, pt(0, 0), 1)

	_, err := Equal(line, circle)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Equal(line, sketch.NewLine(pt(2, 2), pt(2, 2)))
	assert.ErrorIs(t, err, geometry.ErrDegenerateVector)
}

// ============================================================
// Alignment
// ============================================================

func TestAlignPoints(t *testing.T) {
	tests := []struct {
		name string
		axis Axis
		want geometry.Vec
	}{
		{"vertical shares x", AxisVertical, pt(5, 1)},
		{"horizontal shares y", AxisHorizontal, pt(1, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sketch.NewPoint(pt(1, 1))
			b := sketch.NewPoint(pt(5, 9))
			resolve := func() (Result, error) { return AlignPoints(sketch.Whole(a), sketch.Whole(b), tt.axis) }

			r, err := resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.axis.String(), r.Constraint)
			require.NoError(t, Apply(r))

			assertClose(t, tt.want, a.Position())
			assertClose(t, pt(5, 9), b.Position())
			assertIdempotent(t, resolve)
		})
	}
}

func TestAlignHandles(t *testing.T) {
	line := sketch.NewLine(pt(0, 0), pt(3, 4))
	circle := mustCircle(t, pt(7, 1), 1)

	r, err := HorizontalPoints(sketch.Select(line, sketch.RoleEnd), sketch.Select(circle, sketch.RoleMiddle))
	require.NoError(t, err)
	require.NoError(t, Apply(r))
	assertClose(t, pt(3, 1), line.End())

	r, err = VerticalPoints(sketch.Select(circle, sketch.RoleMiddle), sketch.Select(line, sketch.RoleStart))
	require.NoError(t, err)
	require.NoError(t, Apply(r))
	assertClose(t, pt(0, 1), circle.Center())

	_, err = HorizontalPoints(sketch.Whole(line), sketch.Whole(circle))
	assert.ErrorIs(t, err, sketch.ErrInvalidKey)
}

func TestAlignLine(t *testing.T) {
	tests := []struct {
		name    string
		start   geometry.Vec
		end     geometry.Vec
		resolve func(*sketch.Line) (Result, error)
		check   func(t *testing.T, l *sketch.Line)
	}{
		{
			name: "horizontal", start: pt(0, 0), end: pt(2, 2), resolve: Horizontal,
			check: func(t *testing.T, l *sketch.Line) { assert.InDelta(t, l.Start().Y, l.End().Y, tol) },
		},
		{
			name: "horizontal steep", start: pt(0, 0), end: pt(-1, 5), resolve: Horizontal,
			check: func(t *testing.T, l *sketch.Line) { assert.InDelta(t, l.Start().Y, l.End().Y, tol) },
		},
		{
			name: "vertical", start: pt(0, 0), end: pt(4, 1), resolve: Vertical,
			check: func(t *testing.T, l *sketch.Line) { assert.InDelta(t, l.Start().X, l.End().X, tol) },
		},
		{
			name: "vertical reversed", start: pt(4, 1), end: pt(0, 0), resolve: Vertical,
			check: func(t *testing.T, l *sketch.Line) { assert.InDelta(t, l.Start().X, l.End().X, tol) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := sketch.NewLine(tt.start, tt.end)
			mid, length := line.Midpoint(), line.Length()

			r, err := tt.resolve(line)
			require.NoError(t, err)
			rot := r.Move.(Rotate)
			assert.LessOrEqual(t, math.Abs(rot.Angle), math.Pi/2+tol)

			require.NoError(t, Apply(r))
			tt.check(t, line)
			assertClose(t, mid, line.Midpoint())
			assert.InDelta(t, length, line.Length(), tol)

			assertIdempotent(t, func() (Result, error) { return tt.resolve(line) })
		})
	}
}

func TestParallelPerpendicular(t *testing.T) {
	ref := sketch.NewLine(pt(0, 0), pt(1, 1))

	line := sketch.NewLine(pt(5, 0), pt(7, 0))
	r, err := Parallel(line, ref)
	require.NoError(t, err)
	require.NoError(t, Apply(r))
	dir, err := line.Direction()
	require.NoError(t, err)
	assert.InDelta(t, 0, dir.Cross(pt(1, 1)), tol)
	assertIdempotent(t, func() (Result, error) { return Parallel(line, ref) })

	line = sketch.NewLine(pt(5, 0), pt(7, 0))
	r, err = Perpendicular(line, ref)
	require.NoError(t, err)
	require.NoError(t, Apply(r))
	dir, err = line.Direction()
	require.NoError(t, err)
	assert.InDelta(t, 0, dir.Dot(pt(1, 1)), tol)
	assertClose(t, pt(6, 0), line.Midpoint())
	assertIdempotent(t, func() (Result, error) { return Perpendicular(line, ref) })

	_, err = Parallel(line, sketch.NewLine(pt(1, 1), pt(1, 1)))
	assert.ErrorIs(t, err, geometry.ErrDegenerateVector)
}

func TestSmallestLineRotation(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 4, math.Pi / 4},
		{3 * math.Pi / 4, -math.Pi / 4},
		{-3 * math.Pi / 4, math.Pi / 4},
		{math.Pi, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, smallestLineRotation(tt.in), tol, "delta %g", tt.in)
	}
}

// ============================================================
// Concentric / Midpoint
// ============================================================

func TestConcentric(t *testing.T) {
	circle := mustCircle(t, pt(1, 1), 2)
	arc := mustArc(t, pt(-4, 3), 1, 0, math.Pi)

	resolve := func() (Result, error) { return Concentric(sketch.Whole(arc), sketch.Whole(circle)) }
	r, err := resolve()
	require.NoError(t, err)
	assert.Equal(t, sketch.RoleMiddle, r.Role)
	require.NoError(t, Apply(r))

	assertClose(t, pt(1, 1), arc.Center())
	assertClose(t, pt(2, 1), arc.Start())
	assertIdempotent(t, resolve)

	p := sketch.NewPoint(pt(9, 9))
	r, err = Concentric(sketch.Whole(p), sketch.Whole(circle))
	require.NoError(t, err)
	require.NoError(t, Apply(r))
	assertClose(t, pt(1, 1), p.Position())

	_, err = Concentric(sketch.Whole(sketch.NewLine(pt(0, 0), pt(1, 0))), sketch.Whole(circle))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMidpoint(t *testing.T) {
	p := sketch.NewPoint(pt(9, 9))
	line := sketch.NewLine(pt(0, 0), pt(4, 2))

	resolve := func() (Result, error) { return Midpoint(sketch.Whole(p), sketch.Whole(line)) }
	r, err := resolve()
	require.NoError(t, err)
	require.NoError(t, Apply(r))
	assertClose(t, pt(2, 1), p.Position())
	assertIdempotent(t, resolve)

	circle := mustCircle(t, pt(0, 0), 1)
	other := sketch.NewPoint(pt(6, -2))
	r, err = Midpoint(sketch.Select(circle, sketch.RoleMiddle), sketch.Select(line, sketch.RoleEnd), sketch.Whole(other))
	require.NoError(t, err)
	require.NoError(t, Apply(r))
	assertClose(t, pt(5, 0), circle.Center())
}

func TestMidpointErrors(t *testing.T) {
	p := sketch.NewPoint(pt(0, 0))
	line := sketch.NewLine(pt(0, 0), pt(4, 2))

	_, err := Midpoint(sketch.Whole(p))
	assert.ErrorIs(t, err, ErrArity)

	_, err = Midpoint(sketch.Whole(p), sketch.Whole(line), sketch.Whole(line), sketch.Whole(line))
	assert.ErrorIs(t, err, ErrArity)

	_, err = Midpoint(sketch.Whole(p), sketch.Whole(mustCircle(t, pt(0, 0), 1)))
	assert.ErrorIs(t, err, ErrArity)

	_, err = Midpoint(sketch.Whole(line), sketch.Whole(p), sketch.Whole(p))
	assert.ErrorIs(t, err, sketch.ErrInvalidKey)
}
