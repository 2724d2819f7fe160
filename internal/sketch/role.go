package sketch

import (
	"errors"
	"fmt"

	"sketch-constraints/internal/geometry"
)

var (
	// ErrInvalidKey is returned when a role is requested on an entity that has no such handle.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidRadius is returned for a non-positive radius.
	ErrInvalidRadius = errors.New("invalid radius")
)

// ============================================================
// Roles
// ============================================================

// Role selects which handle of a multi-point entity an operation addresses.
type Role int

const (
	RoleNone Role = iota
	RoleStart
	RoleEnd
	RoleMiddle
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	case RoleMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ParseRole maps the wire name of a role. Empty means RoleNone.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", "none":
		return RoleNone, nil
	case "start":
		return RoleStart, nil
	case "end":
		return RoleEnd, nil
	case "middle":
		return RoleMiddle, nil
	}
	return RoleNone, fmt.Errorf("%w: unknown role %q", ErrInvalidKey, s)
}

// Handle returns the handle point addressed by role. A bare Point is its own
// handle under RoleNone.
func Handle(e Entity, role Role) (*Point, error) {
	switch s := e.(type) {
	case *Point:
		if role == RoleNone {
			return s, nil
		}
	case *Line:
		switch role {
		case RoleStart:
			return s.start, nil
		case RoleEnd:
			return s.end, nil
		}
	case *Circle:
		if role == RoleMiddle {
			return s.center, nil
		}
	case *Arc:
		switch role {
		case RoleStart:
			return s.start, nil
		case RoleEnd:
			return s.end, nil
		case RoleMiddle:
			return s.center, nil
		}
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrInvalidKey, role, e.Kind())
}

// MoveHandle relocates the handle addressed by role. Line ends move on their own;
// the center of a circle or arc drags the whole shape; an arc's start/end moves
// the arc rigidly so that the handle lands on to.
func MoveHandle(e Entity, role Role, to geometry.Vec) error {
	switch s := e.(type) {
	case *Point:
		if role == RoleNone {
			s.MoveTo(to)
			return nil
		}
	case *Line:
		switch role {
		case RoleStart:
			s.MoveStart(to)
			return nil
		case RoleEnd:
			s.MoveEnd(to)
			return nil
		}
	case *Circle:
		if role == RoleMiddle {
			s.MoveCenter(to)
			return nil
		}
	case *Arc:
		switch role {
		case RoleStart:
			s.Shift(to.Sub(s.Start()))
			return nil
		case RoleEnd:
			s.Shift(to.Sub(s.End()))
			return nil
		case RoleMiddle:
			s.MoveCenter(to)
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move %s of %s", ErrInvalidKey, role, e.Kind())
}

// ============================================================
// Selections
// ============================================================

// Selection is an entity together with the handle a constraint acts on.
type Selection struct {
	Entity Entity
	Role   Role
}

// Select builds a Selection.
func Select(e Entity, role Role) Selection {
	return Selection{Entity: e, Role: role}
}

// Whole selects the entity itself.
func Whole(e Entity) Selection {
	return Selection{Entity: e, Role: RoleNone}
}

// IsWhole reports whether the selection addresses the entity rather than a handle.
func (s Selection) IsWhole() bool {
	return s.Role == RoleNone
}

// PointValued reports whether the selection resolves to a single handle.
func (s Selection) PointValued() bool {
	_, err := Handle(s.Entity, s.Role)
	return err == nil
}

// Position returns the current position of the selected handle.
func (s Selection) Position() (geometry.Vec, error) {
	h, err := Handle(s.Entity, s.Role)
	if err != nil {
		return geometry.Vec{}, err
	}
	return h.Position(), nil
}

func (s Selection) String() string {
	if s.Role == RoleNone {
		return s.Entity.Kind().String()
	}
	return s.Entity.Kind().String() + "." + s.Role.String()
}
