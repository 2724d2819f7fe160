package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

// ============================================================
// Palette
// ============================================================

const (
	Background = "#000000"
	Foreground = "#FFFFFF"
	Sketch     = "#29ABCA"
	Highlight  = "#E8C11C"
)

// ============================================================
// Renderer
// ============================================================

type Renderer struct {
	// Scale is the number of SVG units per sketch unit.
	Scale float64
	// Margin is added around the bounding box, in sketch units.
	Margin float64
	// Bounds fixes the visible area; the zero value fits the shapes.
	Bounds Box
}

type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Box) empty() bool { return b.MaxX <= b.MinX || b.MaxY <= b.MinY }

func NewRenderer() *Renderer {
	return &Renderer{Scale: 50, Margin: 1}
}

// Render draws the shapes as an SVG document. Sketch coordinates are y-up,
// so every y is flipped on the way out.
func (r *Renderer) Render(shapes []Shape) string {
	box := r.Bounds
	if box.empty() {
		box = r.fit(shapes)
	}

	width := (box.MaxX - box.MinX) * r.Scale
	height := (box.MaxY - box.MinY) * r.Scale

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(width), formatFloat(height),
		formatFloat(box.MinX*r.Scale), formatFloat(-box.MaxY*r.Scale),
		formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" />`,
		formatFloat(box.MinX*r.Scale), formatFloat(-box.MaxY*r.Scale),
		formatFloat(width), formatFloat(height), Background))
	builder.WriteString("\n")

	for _, s := range shapes {
		builder.WriteString("  ")
		builder.WriteString(r.renderShape(s))
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

// RenderEntities draws entities in their current state.
func (r *Renderer) RenderEntities(ids []string, entities []sketch.Entity) string {
	shapes := make([]Shape, 0, len(entities))
	for i, e := range entities {
		shapes = append(shapes, Shape{ID: ids[i], Entity: e})
	}
	return r.Render(shapes)
}

// ============================================================
// Sizing
// ============================================================

func (r *Renderer) fit(shapes []Shape) Box {
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	grow := func(p geometry.Vec, pad float64) {
		minX = math.Min(minX, p.X-pad)
		maxX = math.Max(maxX, p.X+pad)
		minY = math.Min(minY, p.Y-pad)
		maxY = math.Max(maxY, p.Y+pad)
	}

	for _, s := range shapes {
		switch e := s.Entity.(type) {
		case *sketch.Point:
			grow(e.Position(), 0)
		case *sketch.Line:
			grow(e.Start(), 0)
			grow(e.End(), 0)
		case *sketch.Circle:
			grow(e.Center(), e.Radius())
		case *sketch.Arc:
			grow(e.Center(), e.Radius())
		}
	}

	if minX == math.MaxFloat64 {
		return Box{MinX: -8, MinY: -4.5, MaxX: 8, MaxY: 4.5}
	}

	return Box{
		MinX: minX - r.Margin,
		MinY: minY - r.Margin,
		MaxX: maxX + r.Margin,
		MaxY: maxY + r.Margin,
	}
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderShape(s Shape) string {
	stroke := Sketch
	if s.Highlight && s.Role == sketch.RoleNone {
		stroke = Highlight
	}
	width := 0.04 * r.Scale
	if s.Highlight && s.Role == sketch.RoleNone {
		width *= 3.5
	}

	var parts []string
	switch e := s.Entity.(type) {
	case *sketch.Point:
		parts = append(parts, r.vertex(e.Position(), stroke))
	case *sketch.Line:
		parts = append(parts,
			fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" />`,
				r.x(e.Start()), r.y(e.Start()), r.x(e.End()), r.y(e.End()), stroke, formatFloat(width)),
			r.vertex(e.Start(), r.handleColor(s, sketch.RoleStart)),
			r.vertex(e.End(), r.handleColor(s, sketch.RoleEnd)),
		)
	case *sketch.Circle:
		parts = append(parts,
			fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" />`,
				r.x(e.Center()), r.y(e.Center()), formatFloat(e.Radius()*r.Scale), stroke, formatFloat(width)),
			r.vertex(e.Center(), r.handleColor(s, sketch.RoleMiddle)),
		)
	case *sketch.Arc:
		parts = append(parts,
			fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="%s" />`, r.arcPath(e), stroke, formatFloat(width)),
			r.vertex(e.Center(), r.handleColor(s, sketch.RoleMiddle)),
			r.vertex(e.Start(), r.handleColor(s, sketch.RoleStart)),
			r.vertex(e.End(), r.handleColor(s, sketch.RoleEnd)),
		)
	}

	return fmt.Sprintf(`<g id="%s" class="%s">%s</g>`, s.ID, s.Entity.Kind(), strings.Join(parts, ""))
}

func (r *Renderer) handleColor(s Shape, role sketch.Role) string {
	if s.Highlight && s.Role == role {
		return Highlight
	}
	return Foreground
}

func (r *Renderer) vertex(p geometry.Vec, fill string) string {
	return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" />`,
		r.x(p), r.y(p), formatFloat(0.08*r.Scale), fill)
}

// Flipping y turns a counter-clockwise sweep into SVG's negative direction.
func (r *Renderer) arcPath(a *sketch.Arc) string {
	radius := formatFloat(a.Radius() * r.Scale)
	sweep := a.Sweep()

	if math.Abs(sweep) >= 2*math.Pi-geometry.Epsilon {
		mid := a.PointAt(a.StartAngle() + math.Pi)
		return fmt.Sprintf("M %s %s A %s %s 0 1 0 %s %s A %s %s 0 1 0 %s %s",
			r.x(a.Start()), r.y(a.Start()),
			radius, radius, r.x(mid), r.y(mid),
			radius, radius, r.x(a.Start()), r.y(a.Start()))
	}

	large := 0
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	flag := 0
	if sweep < 0 {
		flag = 1
	}

	return fmt.Sprintf("M %s %s A %s %s 0 %d %d %s %s",
		r.x(a.Start()), r.y(a.Start()), radius, radius, large, flag, r.x(a.End()), r.y(a.End()))
}

// ============================================================
// Formatting helpers
// ============================================================

func (r *Renderer) x(p geometry.Vec) string { return formatFloat(round(p.X * r.Scale)) }
func (r *Renderer) y(p geometry.Vec) string { return formatFloat(round(-p.Y * r.Scale)) }

// round trims float noise so that identical geometry prints identically.
func round(v float64) float64 {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		return 0
	}
	return v
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
