// Package geometry is the 2D vector kernel used by sketch entities and constraint resolvers.
package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance below which a length is treated as zero.
const Epsilon = 1e-9

// ============================================================
// Vec
// ============================================================

// Vec is a 2D point or vector. It carries a Z component so it lines up
// with the 3D coordinate system of the renderer; Z is always 0.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"-"`
}

// Point2D creates a point in the plane.
func Point2D(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Origin is (0, 0).
var Origin = Vec{}

// Add returns the sum of two vectors
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns the difference between two vectors
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Mul scales a vector by a scalar
func (v Vec) Mul(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Dot returns the dot product of two vectors
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }

// Norm returns the Euclidean length of the vector.
func (v Vec) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Perp returns the vector rotated a quarter turn counter-clockwise.
func (v Vec) Perp() Vec { return Vec{X: -v.Y, Y: v.X} }

// Angle returns the bearing of the vector from the +x axis in (-π, π].
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Rotate rotates the vector counter-clockwise by angle radians.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Normalize returns a unit vector in the same direction.
func (v Vec) Normalize() (Vec, error) {
	n := v.Norm()
	if n < Epsilon {
		return Vec{}, fmt.Errorf("%w: normalize (%g, %g)", ErrDegenerateVector, v.X, v.Y)
	}
	return v.Mul(1 / n), nil
}

// IsClose reports whether both coordinates differ by less than tol.
func (v Vec) IsClose(o Vec, tol float64) bool {
	return math.Abs(v.X-o.X) < tol && math.Abs(v.Y-o.Y) < tol
}

func (v Vec) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// ============================================================
// Free functions
// ============================================================

// Norm returns the length of v; 0 for the zero vector.
func Norm(v Vec) float64 { return v.Norm() }

// Normalize fails with ErrDegenerateVector on a (near) zero vector.
func Normalize(v Vec) (Vec, error) { return v.Normalize() }

// Direction returns the unit vector pointing from -> to.
func Direction(from, to Vec) (Vec, error) {
	return to.Sub(from).Normalize()
}

// Distance returns ‖b - a‖.
func Distance(a, b Vec) float64 { return b.Sub(a).Norm() }

// Midpoint returns (a + b) / 2.
func Midpoint(a, b Vec) Vec { return a.Add(b).Mul(0.5) }

// ProjectToLine projects p onto the infinite line through a and b.
func ProjectToLine(p, a, b Vec) (Vec, error) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < Epsilon*Epsilon {
		return Vec{}, fmt.Errorf("%w: line through %s and %s", ErrDegenerateVector, a, b)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	return a.Add(ab.Mul(t)), nil
}

// AngleBetween returns the signed angle from v1 to v2 in (-π, π].
// Counter-clockwise is positive.
func AngleBetween(v1, v2 Vec) float64 {
	return math.Atan2(v1.Cross(v2), v1.Dot(v2))
}

// AngleBetweenPoints returns the signed angle from p1 to p2 as seen from center.
func AngleBetweenPoints(p1, p2, center Vec) float64 {
	return AngleBetween(p1.Sub(center), p2.Sub(center))
}

// PointOnCircle returns center + radius·(cos θ, sin θ).
func PointOnCircle(center Vec, radius, angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{X: center.X + radius*cos, Y: center.Y + radius*sin}
}
