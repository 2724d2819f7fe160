package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sketch-constraints/internal/constraint"
	"sketch-constraints/internal/sketch"
)

var ErrUnknownEntity = errors.New("unknown entity")

// ============================================================
// Scene
// ============================================================

// Item is an entity registered in a scene under a stable id.
type Item struct {
	ID     string
	Entity sketch.Entity
}

// Scene owns a set of entities and the highlight z-counter. It is not safe
// for concurrent use; see Registry.
type Scene struct {
	ID   string
	Name string

	animator Animator
	items    []Item
	index    map[string]sketch.Entity
	// introduced entities are removed again on TearDown
	introduced []sketch.Entity
	z          int
	elapsed    Elapsed
}

// Elapsed sums the durations the scene has handed to its animator.
type Elapsed struct {
	Steps int
	Total time.Duration
}

func New(name string, animator Animator) *Scene {
	return &Scene{
		ID:       uuid.NewString(),
		Name:     name,
		animator: animator,
		index:    make(map[string]sketch.Entity),
		z:        FirstHighlightZ,
	}
}

// Add registers an entity without animating it.
func (s *Scene) Add(e sketch.Entity) string {
	id := uuid.NewString()
	s.items = append(s.items, Item{ID: id, Entity: e})
	s.index[id] = e
	return id
}

// Introduce registers the entities, animates their creation and pauses.
func (s *Scene) Introduce(entities ...sketch.Entity) []string {
	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, s.Add(e))
		s.introduced = append(s.introduced, e)
		s.track(s.animator.Introduce(e))
	}
	s.track(s.animator.Wait(ConstraintDelay))
	return ids
}

func (s *Scene) Entity(id string) (sketch.Entity, error) {
	e, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	return e, nil
}

// Items returns the registered entities in insertion order.
func (s *Scene) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// IDOf returns the id an entity was registered under.
func (s *Scene) IDOf(e sketch.Entity) (string, bool) {
	for _, it := range s.items {
		if it.Entity == e {
			return it.ID, true
		}
	}
	return "", false
}

// NextZ hands out the next highlight z-index.
func (s *Scene) NextZ() int {
	z := s.z
	s.z++
	return z
}

// Refresh recomputes every followed handle. It runs after each mutation and
// before the animator reads entity state.
func (s *Scene) Refresh() {
	for _, it := range s.items {
		it.Entity.Refresh()
	}
}

// Constrain plays one constraint group: the clicked selections are
// highlighted, the subject transitions to its target state, the result is
// applied and the scene pauses. Nothing is animated if the target cannot be
// computed.
func (s *Scene) Constrain(r constraint.Result, clicked ...sketch.Selection) error {
	target, err := constraint.Preview(r)
	if err != nil {
		return err
	}

	for _, sel := range clicked {
		s.track(s.animator.Highlight(sel.Entity, sel.Role, s.NextZ(), ClickDuration))
	}
	s.track(s.animator.Transition(r.Subject, target, TransitionDuration))

	if err := constraint.Apply(r); err != nil {
		return err
	}
	s.Refresh()

	s.track(s.animator.Wait(ConstraintDelay))
	return nil
}

// TearDown holds the final sketch on screen, removes everything that was
// introduced and pauses once more.
func (s *Scene) TearDown() {
	s.track(s.animator.Wait(EndDelay - ConstraintDelay))
	for _, e := range s.introduced {
		s.track(s.animator.Remove(e))
	}
	s.introduced = nil
	s.track(s.animator.Wait(ConstraintDelay * 3 / 2))
}

// Elapsed reports how many animations were produced and their total length.
func (s *Scene) Elapsed() Elapsed {
	return s.elapsed
}

func (s *Scene) track(a Animation) {
	if a == nil {
		return
	}
	s.elapsed.Steps++
	s.elapsed.Total += a.Duration()
}
