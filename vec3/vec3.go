// Package vec3 provides a fixed-length-3 real vector with the arithmetic
// needed by the rest of the printability filter: add/sub/scale, dot, cross,
// norm, normalize (returning a new unit vector), and componentwise equality.
package vec3

import "math"

// epsilon below which a vector is considered to have zero length.
const epsilon = 1e-12

// Vec is a 3D vector of float64 components.
type Vec struct {
	X, Y, Z float64
}

// New returns a Vec with the given components.
func New(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Add returns the componentwise sum a+b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the componentwise difference a-b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a scaled by s.
func (a Vec) Scale(s float64) Vec {
	return Vec{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a.b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm of a.
func (a Vec) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// ErrZeroLength is returned by Normalize when the vector's norm is below
// 1e-12. It is a plain vec3 error, not an amerr.DomainError; vec3 stays
// free of the amerr dependency to avoid a needless import for a leaf
// package.
var ErrZeroLength = vecErr("vec3: cannot normalize a vector with length below 1e-12")

type vecErr string

func (e vecErr) Error() string { return string(e) }

// Normalize returns a/|a|, failing with ErrZeroLength when |a| < 1e-12.
func (a Vec) Normalize() (Vec, error) {
	n := a.Length()
	if n < epsilon {
		return Vec{}, ErrZeroLength
	}
	return a.Scale(1 / n), nil
}

// Equal reports whether a and b are exactly equal, component by component.
func (a Vec) Equal(b Vec) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}

// MinMax returns the componentwise minimum and maximum over a non-empty
// sequence of vectors. Used to compute axis-aligned bounding boxes.
func MinMax(points []Vec) (min, max Vec) {
	if len(points) == 0 {
		return Vec{}, Vec{}
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}
