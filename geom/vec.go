/*package geom contains the small amount of vector geometry needed by the
field and particle code.*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector. The zero value is the additive
// identity, and all operations are pure value operations.
type Vec [3]float64

// Add returns the componentwise sum of v and u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns the componentwise difference of v and u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Mul returns the componentwise product of v and u.
func (v Vec) Mul(u Vec) Vec {
	return Vec{v[0] * u[0], v[1] * u[1], v[2] * u[2]}
}

// Div returns the componentwise quotient of v and u.
func (v Vec) Div(u Vec) Vec {
	return Vec{v[0] / u[0], v[1] / u[1], v[2] / u[2]}
}

// Scale returns v multiplied by the scalar c.
func (v Vec) Scale(c float64) Vec {
	return Vec{v[0] * c, v[1] * c, v[2] * c}
}

// Dot returns the inner product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}
