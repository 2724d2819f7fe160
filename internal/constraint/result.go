// Package constraint computes one-shot target states that satisfy a geometric
// relationship between sketch entities.
//
// Resolvers never mutate their inputs. They return a Result describing how the
// subject entity must move; Apply performs the move and Preview performs it on
// a copy, which is what an animator interpolates towards.
package constraint

import (
	"errors"
	"fmt"

	"sketch-constraints/internal/geometry"
	"sketch-constraints/internal/sketch"
)

var (
	// ErrTypeMismatch is returned when a constraint is asked to relate incompatible entity kinds.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrArity is returned when a constraint receives the wrong number of references.
	ErrArity = errors.New("wrong number of references")

	// ErrNotTouching is returned by TangentRotate when neither end of the line lies on the circle.
	ErrNotTouching = errors.New("line does not touch circle")
)

// ============================================================
// Moves
// ============================================================

// Move is one of MoveTo, Translate, Rotate, SetEndpoints, SetRadius.
type Move interface {
	move()
}

// MoveTo relocates the handle selected by Result.Role.
type MoveTo struct {
	Position geometry.Vec `json:"position"`
}

// Translate shifts the whole subject.
type Translate struct {
	Offset geometry.Vec `json:"offset"`
}

// Rotate turns the whole subject counter-clockwise about a point.
type Rotate struct {
	Angle float64      `json:"angle"`
	About geometry.Vec `json:"about"`
}

// SetEndpoints relocates both ends of a line.
type SetEndpoints struct {
	Start geometry.Vec `json:"start"`
	End   geometry.Vec `json:"end"`
}

// SetRadius rescales a circle or arc about its center.
type SetRadius struct {
	Radius float64 `json:"radius"`
}

func (MoveTo) move()       {}
func (Translate) move()    {}
func (Rotate) move()       {}
func (SetEndpoints) move() {}
func (SetRadius) move()    {}

// ============================================================
// Result
// ============================================================

// Result is the target state computed by a resolver.
type Result struct {
	Constraint string
	Subject    sketch.Entity
	Role       sketch.Role
	Move       Move
	// PathArc is a hint for the animator: a non-zero value means the moved
	// handle should travel along an arc of that signed angle instead of a line.
	PathArc float64
}

// Apply performs the move on the subject and refreshes its handles.
func Apply(r Result) error {
	if r.Subject == nil || r.Move == nil {
		return fmt.Errorf("apply %s: empty result", r.Constraint)
	}

	switch m := r.Move.(type) {
	case MoveTo:
		if err := sketch.MoveHandle(r.Subject, r.Role, m.Position); err != nil {
			return fmt.Errorf("apply %s: %w", r.Constraint, err)
		}
	case Translate:
		sketch.Shift(r.Subject, m.Offset)
	case Rotate:
		sketch.Rotate(r.Subject, m.Angle, m.About)
	case SetEndpoints:
		line, ok := r.Subject.(*sketch.Line)
		if !ok {
			return fmt.Errorf("apply %s: %w: endpoints on %s", r.Constraint, ErrTypeMismatch, r.Subject.Kind())
		}
		line.SetEndpoints(m.Start, m.End)
	case SetRadius:
		if err := sketch.SetRadius(r.Subject, m.Radius); err != nil {
			return fmt.Errorf("apply %s: %w", r.Constraint, err)
		}
	default:
		return fmt.Errorf("apply %s: unknown move %T", r.Constraint, r.Move)
	}

	r.Subject.Refresh()
	return nil
}

// Preview returns a copy of the subject with the move applied. The subject is untouched.
func Preview(r Result) (sketch.Entity, error) {
	if r.Subject == nil {
		return nil, fmt.Errorf("preview %s: empty result", r.Constraint)
	}
	target := r.Subject.Clone()
	r.Subject = target
	if err := Apply(r); err != nil {
		return nil, err
	}
	return target, nil
}
