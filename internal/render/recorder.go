// Package render turns scene animations into SVG keyframes.
package render

import (
	"fmt"
	"sort"
	"time"

	"sketch-constraints/internal/scene"
	"sketch-constraints/internal/sketch"
)

// IntroduceDuration and RemoveDuration are the lengths of the create and
// uncreate animations.
const (
	IntroduceDuration = time.Second
	RemoveDuration    = time.Second
)

// ============================================================
// Shapes & Frames
// ============================================================

// Shape is a snapshot of one entity as it appears in a frame.
type Shape struct {
	ID     string
	Entity sketch.Entity
	Z      int
	// Highlight is set while the entity (or one of its handles) is clicked.
	Highlight bool
	Role      sketch.Role
}

// Frame is the picture at one point of the timeline.
type Frame struct {
	Index  int
	At     time.Duration
	Label  string
	Shapes []Shape
}

// Clip is the Animation a Recorder hands back to the scene.
type Clip struct {
	Label string
	Start time.Duration
	Len   time.Duration
}

func (c Clip) Duration() time.Duration { return c.Len }

// ============================================================
// Recorder
// ============================================================

// Recorder implements scene.Animator by snapshotting a keyframe at the end of
// every visible step and at the peak of every highlight.
type Recorder struct {
	clock  time.Duration
	nextID int
	order  []sketch.Entity
	shapes map[sketch.Entity]*Shape
	frames []Frame
}

var _ scene.Animator = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		shapes: make(map[sketch.Entity]*Shape),
	}
}

func (r *Recorder) Introduce(e sketch.Entity) scene.Animation {
	if _, ok := r.shapes[e]; !ok {
		r.nextID++
		r.order = append(r.order, e)
		r.shapes[e] = &Shape{ID: fmt.Sprintf("e%d", r.nextID)}
	}
	r.shapes[e].Entity = e.Clone()
	return r.advance("introduce "+e.Kind().String(), IntroduceDuration)
}

// Transition moves the recorded shape of from to the state of to.
func (r *Recorder) Transition(from, to sketch.Entity, d time.Duration) scene.Animation {
	if s, ok := r.shapes[from]; ok {
		s.Entity = to.Clone()
	}
	return r.advance("transition "+from.Kind().String(), d)
}

// Highlight records the clicked state half way through d and the restored
// state at the end.
func (r *Recorder) Highlight(e sketch.Entity, role sketch.Role, z int, d time.Duration) scene.Animation {
	s, ok := r.shapes[e]
	if !ok {
		return r.advance("highlight", d)
	}

	start := r.clock
	s.Z = z
	s.Highlight = true
	s.Role = role
	r.clock += d / 2
	r.snapshot("highlight " + sketch.Select(e, role).String())

	s.Highlight = false
	s.Role = sketch.RoleNone
	r.clock = start
	return r.advance("release", d)
}

func (r *Recorder) Remove(e sketch.Entity) scene.Animation {
	if _, ok := r.shapes[e]; ok {
		delete(r.shapes, e)
		for i, o := range r.order {
			if o == e {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	return r.advance("remove "+e.Kind().String(), RemoveDuration)
}

// Wait only moves the clock.
func (r *Recorder) Wait(d time.Duration) scene.Animation {
	c := Clip{Label: "wait", Start: r.clock, Len: d}
	r.clock += d
	return c
}

func (r *Recorder) Clock() time.Duration { return r.clock }

func (r *Recorder) Frames() []Frame {
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Current returns the shapes as they would appear in the next frame.
func (r *Recorder) Current() []Shape {
	return r.visible()
}

func (r *Recorder) advance(label string, d time.Duration) Clip {
	c := Clip{Label: label, Start: r.clock, Len: d}
	r.clock += d
	r.snapshot(label)
	return c
}

func (r *Recorder) snapshot(label string) {
	r.frames = append(r.frames, Frame{
		Index:  len(r.frames),
		At:     r.clock,
		Label:  label,
		Shapes: r.visible(),
	})
}

// visible lists shapes by z, then by introduction order.
func (r *Recorder) visible() []Shape {
	out := make([]Shape, 0, len(r.order))
	for _, e := range r.order {
		s := *r.shapes[e]
		s.Entity = s.Entity.Clone()
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}
