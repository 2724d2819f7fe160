// Package scene drives sketch entities through scripted constraint steps and
// hands every visible change to an Animator.
package scene

import (
	"time"

	"sketch-constraints/internal/sketch"
)

// ============================================================
// Timing
// ============================================================

const (
	// ConstraintDelay is the pause after introducing entities and after each constraint.
	ConstraintDelay = 500 * time.Millisecond
	// ClickDuration is the length of one highlight pulse.
	ClickDuration = 750 * time.Millisecond
	// TransitionDuration is the length of the move towards a constraint target.
	TransitionDuration = time.Second
	// EndDelay is the time a finished sketch stays on screen before tear down.
	EndDelay = 2500 * time.Millisecond

	// FirstHighlightZ is the first z-index handed out for a highlight.
	FirstHighlightZ = 500
)

// ============================================================
// Animator
// ============================================================

// Animation is whatever an Animator produced for a step. The scene only needs
// to know how long it lasts.
type Animation interface {
	Duration() time.Duration
}

// Animator receives every visible change made by a Scene, in order.
// Transition is called before the subject is mutated, so from still holds the
// old state and to is a preview of the new one.
type Animator interface {
	Introduce(e sketch.Entity) Animation
	Transition(from, to sketch.Entity, d time.Duration) Animation
	Highlight(e sketch.Entity, role sketch.Role, z int, d time.Duration) Animation
	Remove(e sketch.Entity) Animation
	Wait(d time.Duration) Animation
}
