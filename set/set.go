// Package set implements the convex set algebra used by the reachability
// engine. Every set is known through its support function
//
// rho(d) = sup { <d, x> : x in X }
//
// which is enough to carry out Minkowski sums, linear maps, template
// overapproximations and disjointness tests without materialising the
// geometry. Concrete shapes (intervals, hyperrectangles, zonotopes,
// polygons) and lazy combinators (linear map, Minkowski sum, cartesian
// product) all satisfy the same LazySet interface.
package set

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LazySet is a convex set described by its support function.
type LazySet interface {
	// Dim returns the ambient dimension of the set.
	Dim() int
	// Support evaluates the support function in direction d.
	Support(d mat.Vector) float64
}

// NanOrInf checks if x is not a finite number.
func NanOrInf(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

// checkDim panics unless the direction matches the set dimension.
func checkDim(s LazySet, d mat.Vector) {
	if d.Len() != s.Dim() {
		panic(errors.New("set: direction length doesn't match set dimension"))
	}
}

// negated returns -d.
func negated(d mat.Vector) mat.Vector {
	var res mat.VecDense
	res.ScaleVec(-1, d)
	return &res
}

// unit returns the i-th canonical direction of dimension n, scaled by sign.
func unit(n, i int, sign float64) *mat.VecDense {
	res := mat.NewVecDense(n, nil)
	res.SetVec(i, sign)
	return res
}

// ZeroSet is the singleton {0} of a given dimension. It is the neutral
// element of the Minkowski sum.
type ZeroSet struct {
	N int
}

// Dim returns the ambient dimension.
func (z ZeroSet) Dim() int { return z.N }

// Support of the origin is zero in every direction.
func (z ZeroSet) Support(d mat.Vector) float64 {
	checkDim(z, d)
	return 0
}

// Singleton is a one point set {x}.
type Singleton struct {
	X *mat.VecDense
}

// NewSingleton returns the singleton set of the given point.
func NewSingleton(x []float64) *Singleton {
	return &Singleton{mat.NewVecDense(len(x), x)}
}

// Dim returns the ambient dimension.
func (s *Singleton) Dim() int { return s.X.Len() }

// Support is the inner product with the point.
func (s *Singleton) Support(d mat.Vector) float64 {
	checkDim(s, d)
	return mat.Dot(d, s.X)
}

// EmptySet is the empty set of a given dimension. Its support function is
// -Inf in every direction.
type EmptySet struct {
	N int
}

// Dim returns the ambient dimension.
func (e EmptySet) Dim() int { return e.N }

// Support of the empty set.
func (e EmptySet) Support(d mat.Vector) float64 {
	checkDim(e, d)
	return math.Inf(-1)
}

// IsEmpty reports whether the set is syntactically empty. Lazy expressions
// are empty when any operand is.
func IsEmpty(s LazySet) bool {
	switch v := s.(type) {
	case EmptySet:
		return true
	case *LinearMap:
		return IsEmpty(v.X)
	case *MinkowskiSum:
		return IsEmpty(v.X) || IsEmpty(v.Y)
	case *MinkowskiSumArray:
		for _, t := range v.terms {
			if IsEmpty(t) {
				return true
			}
		}
		return false
	case *CartesianProduct:
		for _, c := range v.components {
			if IsEmpty(c) {
				return true
			}
		}
		return false
	case *Interval:
		return v.Lo > v.Hi
	}
	return false
}
