package geometry

import "math"

// Transform is a 2x3 affine matrix: [ A C E ; B D F ].
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Translation moves every point by v.
func Translation(v Vec) Transform {
	return Transform{A: 1, D: 1, E: v.X, F: v.Y}
}

// Rotation rotates counter-clockwise by angle about the given point.
func Rotation(angle float64, about Vec) Transform {
	sin, cos := math.Sincos(angle)
	r := Transform{A: cos, B: sin, C: -sin, D: cos}
	return Translation(about).Mul(r).Mul(Translation(about.Mul(-1)))
}

// Mul composes t ∘ u (apply u, then t).
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		A: t.A*u.A + t.C*u.B,
		B: t.B*u.A + t.D*u.B,
		C: t.A*u.C + t.C*u.D,
		D: t.B*u.C + t.D*u.D,
		E: t.A*u.E + t.C*u.F + t.E,
		F: t.B*u.E + t.D*u.F + t.F,
	}
}

// Apply maps p through the transform.
func (t Transform) Apply(p Vec) Vec {
	return Vec{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}
