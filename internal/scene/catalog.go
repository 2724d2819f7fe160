package scene

import (
	"errors"
	"fmt"
	"math"

	"sketch-constraints/internal/constraint"
	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

var ErrUnknownScene = errors.New("unknown scene")

// ============================================================
// Catalog
// ============================================================

// Script builds its entities on a fresh scene and plays its constraint steps.
type Script func(s *Scene) error

// Entry is a built-in demonstration scene.
type Entry struct {
	Name   string
	Title  string
	Script Script
}

var catalog = []Entry{
	{"coincident_points", "Coincident constraint - two points", coincidentPoints},
	{"coincident_point_line", "Coincident constraint - point and edge", coincidentPointLine},
	{"vertical_line", "Vertical constraint - line", verticalLine},
	{"horizontal_line", "Horizontal constraint - line", horizontalLine},
	{"vertical_points", "Vertical constraint - two points", verticalPoints},
	{"horizontal_points", "Horizontal constraint - two points", horizontalPoints},
	{"parallel", "Parallel constraint", parallel},
	{"perpendicular", "Perpendicular constraint", perpendicular},
	{"equal_line", "Equal constraint - lines", equalLine},
	{"equal_circle", "Equal constraint - circles and arcs", equalCircle},
	{"midpoint_line", "Midpoint constraint - point and line", midpointLine},
	{"midpoint_point", "Midpoint constraint - three points", midpointPoint},
	{"tangent_line", "Tangent constraint - line and circle", tangentLine},
	{"tangent_circle", "Tangent constraint - circles and arcs", tangentCircle},
	{"tangent_rotate", "Tangent constraint - attached line", tangentRotate},
	{"concentric_edge", "Concentric constraint - edges", concentricEdge},
	{"concentric_point", "Concentric constraint - center points", concentricPoint},
}

// Catalog returns the built-in scenes in presentation order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(name string) (Entry, error) {
	for _, e := range catalog {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// Play runs the entry's script on s and tears the scene down.
func Play(e Entry, s *Scene) error {
	if err := e.Script(s); err != nil {
		return fmt.Errorf("scene %s: %w", e.Name, err)
	}
	s.TearDown()
	return nil
}

// ============================================================
// Script helpers
// ============================================================

func step(s *Scene, resolve func() (constraint.Result, error), clicked ...sketch.Selection) error {
	r, err := resolve()
	if err != nil {
		return err
	}
	return s.Constrain(r, clicked...)
}

func steps(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func p(x, y float64) geometry.Vec { return geometry.Point2D(x, y) }

func deg(d float64) float64 { return d * math.Pi / 180 }

func start(e sketch.Entity) sketch.Selection  { return sketch.Select(e, sketch.RoleStart) }
func end(e sketch.Entity) sketch.Selection    { return sketch.Select(e, sketch.RoleEnd) }
func center(e sketch.Entity) sketch.Selection { return sketch.Select(e, sketch.RoleMiddle) }
func whole(e sketch.Entity) sketch.Selection  { return sketch.Whole(e) }

// ============================================================
// Coincident
// ============================================================

func coincidentCommon() (*sketch.Circle, *sketch.Line, *sketch.Line, error) {
	circle, err := sketch.NewCircle(p(-4.5, 0), 1.5)
	if err != nil {
		return nil, nil, nil, err
	}
	line := sketch.NewLine(p(5.25, 2), p(5.25, -2))
	move := sketch.NewLine(p(-1.75, 0.75), p(4.25, -1))
	return circle, line, move, nil
}

func coincidentPoints(s *Scene) error {
	circle, line, move, err := coincidentCommon()
	if err != nil {
		return err
	}
	s.Introduce(circle, line, move)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Coincident(start(move), center(circle))
			}, start(move), center(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Coincident(end(move), end(line))
			}, end(move), end(line))
		},
	)
}

func coincidentPointLine(s *Scene) error {
	circle, line, move, err := coincidentCommon()
	if err != nil {
		return err
	}
	s.Introduce(circle, line, move)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Coincident(start(move), whole(circle))
			}, start(move), whole(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Coincident(end(move), whole(line))
			}, end(move), whole(line))
		},
	)
}

// ============================================================
// Horizontal / Vertical
// ============================================================

func diagonal() *sketch.Line {
	return sketch.NewLine(p(-2.3, -2.3), p(2.3, 2.3))
}

func verticalLine(s *Scene) error {
	line := diagonal()
	s.Introduce(line)
	return step(s, func() (constraint.Result, error) { return constraint.Vertical(line) }, whole(line))
}

func horizontalLine(s *Scene) error {
	line := diagonal()
	s.Introduce(line)
	return step(s, func() (constraint.Result, error) { return constraint.Horizontal(line) }, whole(line))
}

func verticalPoints(s *Scene) error {
	circle, err := sketch.NewCircle(p(-4, 1.5), 1.5)
	if err != nil {
		return err
	}
	line := sketch.NewLine(p(0, 2.5), p(5.5, 1.5))
	move := sketch.NewLine(p(-5.5, -2.5), p(3.5, -1.5))
	s.Introduce(circle, line, move)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.VerticalPoints(start(move), center(circle))
			}, start(move), center(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.VerticalPoints(end(move), end(line))
			}, end(move), end(line))
		},
	)
}

func horizontalPoints(s *Scene) error {
	circle, err := sketch.NewCircle(p(-3.5, 1.5), 1.5)
	if err != nil {
		return err
	}
	line := sketch.NewLine(p(-5, -0.75), p(-1, -2.5))
	move := sketch.NewLine(p(2, -1.5), p(4.5, 3))
	s.Introduce(circle, line, move)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.HorizontalPoints(start(move), end(line))
			}, start(move), end(line))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.HorizontalPoints(end(move), center(circle))
			}, end(move), center(circle))
		},
	)
}

// ============================================================
// Parallel / Perpendicular
// ============================================================

func parallel(s *Scene) error {
	line := sketch.NewLine(p(-6, -3), p(6, 0.5))
	dir, err := line.Direction()
	if err != nil {
		return err
	}
	tip := p(5, 3)
	moving := sketch.NewLine(tip.Sub(dir.Mul(10.5)), tip)
	moving.Rotate(-deg(16.26), line.Midpoint())

	s.Introduce(line, moving)
	return step(s, func() (constraint.Result, error) {
		return constraint.Parallel(moving, line)
	}, whole(moving), whole(line))
}

func perpendicular(s *Scene) error {
	line := sketch.NewLine(p(-5, -2.75), p(5.5, 0.5))
	dir, err := line.Direction()
	if err != nil {
		return err
	}
	pivot := line.Start().Add(dir.Mul(2))
	normal := dir.Perp()
	moving := sketch.NewLine(pivot.Add(normal), pivot.Add(normal.Mul(5.25)))
	moving.Rotate(-deg(45), pivot)

	s.Introduce(moving, line)
	return step(s, func() (constraint.Result, error) {
		return constraint.Perpendicular(moving, line)
	}, whole(moving), whole(line))
}

// ============================================================
// Equal
// ============================================================

func equalLine(s *Scene) error {
	base := sketch.NewLine(p(-5.5, -1.5), p(-1.25, 2))
	first := sketch.NewLine(p(-5, -3), p(5, -1))
	second := sketch.NewLine(p(-0.5, 2.75), p(6, 0.5))
	s.Introduce(base, first, second)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Equal(base, first)
			}, whole(base), whole(first))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Equal(base, second)
			}, whole(base), whole(second))
		},
	)
}

func equalCircle(s *Scene) error {
	base, err := sketch.NewCircle(p(0, -1.5), 1.5)
	if err != nil {
		return err
	}
	circle, err := sketch.NewCircle(p(-3.5, 1), 2)
	if err != nil {
		return err
	}
	arc, err := sketch.NewArc(p(3.5, 1), 2, deg(90), deg(-225))
	if err != nil {
		return err
	}
	s.Introduce(base, arc, circle)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Equal(base, circle)
			}, whole(base), whole(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Equal(base, arc)
			}, whole(base), whole(arc))
		},
	)
}

// ============================================================
// Midpoint
// ============================================================

func midpointLine(s *Scene) error {
	top := sketch.NewLine(p(-6, 3), p(6, 1.25))
	bottom := sketch.NewLine(p(-6, -3), p(6, -1.25))
	middle := sketch.NewLine(p(-1, 1.5), p(1, -1.5))
	s.Introduce(top, bottom, middle)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Midpoint(start(middle), whole(top))
			}, start(middle), whole(top))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Midpoint(end(middle), whole(bottom))
			}, end(middle), whole(bottom))
		},
	)
}

func midpointPoint(s *Scene) error {
	line := sketch.NewLine(p(-6, 2.5), p(-6, -2.5))
	circle, err := sketch.NewCircle(p(4.5, 0), 1.5)
	if err != nil {
		return err
	}
	first := sketch.NewLine(p(-1.5, 2), p(0, -2))
	second := sketch.NewLine(p(-5.25, -0.5), p(-1.5, 0.5))

	s.Introduce(line, circle, first)
	err = steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Midpoint(start(first), start(line), center(circle))
			}, start(line), start(first), center(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Midpoint(end(first), end(line), center(circle))
			}, end(line), end(first), center(circle))
		},
	)
	if err != nil {
		return err
	}

	s.Introduce(second)
	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Midpoint(start(second), start(line), end(line))
			}, start(line), start(second), end(line))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Midpoint(end(second), start(first), end(first))
			}, start(first), end(second), end(first))
		},
	)
}

// ============================================================
// Tangent
// ============================================================

func tangentLine(s *Scene) error {
	circle, err := sketch.NewCircle(geometry.Origin, 1.5)
	if err != nil {
		return err
	}
	left := sketch.NewLine(p(-6, 0), p(0, 2.75))
	right := sketch.NewLine(p(2, -2.5), p(6, -2))
	s.Introduce(circle, left, right)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Tangent(left, circle)
			}, whole(left), whole(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Tangent(right, circle)
			}, whole(right), whole(circle))
		},
	)
}

func tangentCircle(s *Scene) error {
	circle, err := sketch.NewCircle(geometry.Origin, 1.5)
	if err != nil {
		return err
	}
	left, err := sketch.NewCircle(p(-4, 1), 1.5)
	if err != nil {
		return err
	}
	right, err := sketch.NewArc(p(6, -1.125), 3.5, deg(105), deg(75))
	if err != nil {
		return err
	}
	s.Introduce(circle, left, right)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Tangent(left, circle)
			}, whole(left), whole(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Tangent(right, circle)
			}, whole(right), whole(circle))
		},
	)
}

func tangentRotate(s *Scene) error {
	circle, err := sketch.NewCircle(geometry.Origin, 1.5)
	if err != nil {
		return err
	}
	line := sketch.NewLine(p(1.5, 0), p(5, 3))
	s.Introduce(circle, line)

	return step(s, func() (constraint.Result, error) {
		return constraint.TangentRotate(line, circle, geometry.SideLeft)
	}, whole(line), whole(circle))
}

// ============================================================
// Concentric
// ============================================================

func concentricCommon() (*sketch.Circle, *sketch.Circle, *sketch.Arc, error) {
	circle, err := sketch.NewCircle(geometry.Origin, 1.5)
	if err != nil {
		return nil, nil, nil, err
	}
	left, err := sketch.NewCircle(p(-4, 0), 2)
	if err != nil {
		return nil, nil, nil, err
	}
	right, err := sketch.NewArc(p(3, 0), 3, deg(70), deg(-140))
	if err != nil {
		return nil, nil, nil, err
	}
	return circle, left, right, nil
}

func concentricEdge(s *Scene) error {
	circle, left, right, err := concentricCommon()
	if err != nil {
		return err
	}
	s.Introduce(circle, left, right)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Concentric(whole(left), whole(circle))
			}, whole(left), whole(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Concentric(whole(right), whole(circle))
			}, whole(right), whole(circle))
		},
	)
}

func concentricPoint(s *Scene) error {
	circle, left, right, err := concentricCommon()
	if err != nil {
		return err
	}
	s.Introduce(circle, left, right)

	return steps(
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Concentric(center(left), whole(circle))
			}, center(left), whole(circle))
		},
		func() error {
			return step(s, func() (constraint.Result, error) {
				return constraint.Concentric(center(right), whole(circle))
			}, center(right), whole(circle))
		},
	)
}
