package sketch

import (
	"fmt"

	"sketch-constraints/internal/geometry"
)

// Line is a segment with a vertex at each end. Both vertices are independent.
type Line struct {
	start *Point
	end   *Point
}

// NewLine creates a line from start to end.
func NewLine(start, end geometry.Vec) *Line {
	return &Line{start: NewPoint(start), end: NewPoint(end)}
}

func (l *Line) Kind() Kind { return KindLine }
func (l *Line) sealed()    {}

func (l *Line) Start() geometry.Vec { return l.start.Position() }
func (l *Line) End() geometry.Vec   { return l.end.Position() }

func (l *Line) StartHandle() *Point { return l.start }
func (l *Line) EndHandle() *Point   { return l.end }

// Length returns ‖end - start‖.
func (l *Line) Length() float64 {
	return geometry.Distance(l.Start(), l.End())
}

// Direction returns the unit vector from start to end. It fails while the
// line is collapsed to a point.
func (l *Line) Direction() (geometry.Vec, error) {
	dir, err := geometry.Direction(l.Start(), l.End())
	if err != nil {
		return geometry.Vec{}, fmt.Errorf("line direction: %w", err)
	}
	return dir, nil
}

// Midpoint returns the middle of the segment.
func (l *Line) Midpoint() geometry.Vec {
	return geometry.Midpoint(l.Start(), l.End())
}

// Projection projects p onto the infinite line through the segment.
func (l *Line) Projection(p geometry.Vec) (geometry.Vec, error) {
	return geometry.ProjectToLine(p, l.Start(), l.End())
}

// MoveStart relocates the start vertex only.
func (l *Line) MoveStart(p geometry.Vec) { l.start.MoveTo(p) }

// MoveEnd relocates the end vertex only.
func (l *Line) MoveEnd(p geometry.Vec) { l.end.MoveTo(p) }

// SetEndpoints relocates both vertices.
func (l *Line) SetEndpoints(start, end geometry.Vec) {
	l.start.MoveTo(start)
	l.end.MoveTo(end)
}

// Shift translates the line.
func (l *Line) Shift(v geometry.Vec) {
	l.start.Shift(v)
	l.end.Shift(v)
}

// Rotate rotates both vertices counter-clockwise about a point.
func (l *Line) Rotate(angle float64, about geometry.Vec) {
	t := geometry.Rotation(angle, about)
	l.SetEndpoints(t.Apply(l.Start()), t.Apply(l.End()))
}

func (l *Line) Refresh() {
	l.start.Refresh()
	l.end.Refresh()
}

func (l *Line) Clone() Entity {
	return NewLine(l.Start(), l.End())
}
