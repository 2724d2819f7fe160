package geometry

import "errors"

var (
	// ErrDegenerateVector is returned when a direction is requested from a zero-length vector.
	ErrDegenerateVector = errors.New("degenerate vector")

	// ErrNoTangent is returned when no tangent exists, e.g. one circle lies inside the other.
	ErrNoTangent = errors.New("no tangent")
)
