package set

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearMap is the lazy image M*X of a set under a linear map.
type LinearMap struct {
	M mat.Matrix
	X LazySet
}

// NewLinearMap returns the lazy linear map M*X. The column count of M must
// match the dimension of X.
func NewLinearMap(m mat.Matrix, x LazySet) *LinearMap {
	_, c := m.Dims()
	if c != x.Dim() {
		panic(errors.New("set: matrix columns don't match set dimension"))
	}
	return &LinearMap{m, x}
}

// Dim returns the output dimension of the map.
func (lm *LinearMap) Dim() int {
	r, _ := lm.M.Dims()
	return r
}

// Support of M*X is the support of X in the transposed direction.
func (lm *LinearMap) Support(d mat.Vector) float64 {
	checkDim(lm, d)
	_, c := lm.M.Dims()
	td := mat.NewVecDense(c, nil)
	td.MulVec(lm.M.T(), d)
	return lm.X.Support(td)
}

// MinkowskiSum is the lazy binary sum X + Y.
type MinkowskiSum struct {
	X LazySet
	Y LazySet
}

// NewMinkowskiSum returns the lazy Minkowski sum of two sets of equal
// dimension.
func NewMinkowskiSum(x, y LazySet) *MinkowskiSum {
	if x.Dim() != y.Dim() {
		panic(errors.New("set: Minkowski sum of sets with different dimensions"))
	}
	return &MinkowskiSum{x, y}
}

// Dim returns the ambient dimension.
func (ms *MinkowskiSum) Dim() int { return ms.X.Dim() }

// Support of a Minkowski sum is the sum of supports.
func (ms *MinkowskiSum) Support(d mat.Vector) float64 {
	return ms.X.Support(d) + ms.Y.Support(d)
}

// Projection is the lazy coordinate projection of X onto the contiguous
// coordinate range [Lo, Hi).
type Projection struct {
	X  LazySet
	Lo int
	Hi int
}

// NewProjection returns the projection of x onto coordinates [lo, hi).
func NewProjection(x LazySet, lo, hi int) *Projection {
	if lo < 0 || hi <= lo || hi > x.Dim() {
		panic(errors.New("set: projection range out of bounds"))
	}
	return &Projection{x, lo, hi}
}

// Dim returns the number of projected coordinates.
func (p *Projection) Dim() int { return p.Hi - p.Lo }

// Support lifts the direction with zeros outside the projected range.
func (p *Projection) Support(d mat.Vector) float64 {
	checkDim(p, d)
	lifted := mat.NewVecDense(p.X.Dim(), nil)
	for i := 0; i < d.Len(); i++ {
		lifted.SetVec(p.Lo+i, d.AtVec(i))
	}
	return p.X.Support(lifted)
}

// Intersection is the lazy intersection of a set with a conjunction of half
// spaces. Its support function is an outer bound, which is all the engine
// ever needs.
type Intersection struct {
	X           LazySet
	Constraints []HalfSpace
}

// NewIntersection returns the lazy intersection of x with the given half
// spaces.
func NewIntersection(x LazySet, constraints []HalfSpace) *Intersection {
	for _, c := range constraints {
		if c.Dim() != x.Dim() {
			panic(errors.New("set: constraint dimension doesn't match set"))
		}
	}
	return &Intersection{x, constraints}
}

// Dim returns the ambient dimension.
func (in *Intersection) Dim() int { return in.X.Dim() }

// Support returns min(rho_X(d), rho_H(d)) over the constraints aligned with
// d, an outer approximation of the true support.
func (in *Intersection) Support(d mat.Vector) float64 {
	res := in.X.Support(d)
	for _, c := range in.Constraints {
		// A half space bounds the support only in directions proportional
		// to its normal.
		if lambda, ok := positiveMultiple(d, c.A); ok {
			res = math.Min(res, lambda*c.B)
		}
	}
	return res
}

// positiveMultiple reports whether d = lambda * a for some lambda > 0.
func positiveMultiple(d, a mat.Vector) (float64, bool) {
	const tol = 1e-12
	lambda := 0.
	for i := 0; i < d.Len(); i++ {
		ai, di := a.AtVec(i), d.AtVec(i)
		if math.Abs(ai) < tol {
			if math.Abs(di) > tol {
				return 0, false
			}
			continue
		}
		l := di / ai
		if l <= 0 {
			return 0, false
		}
		if lambda == 0 {
			lambda = l
		} else if math.Abs(l-lambda) > tol*math.Abs(lambda) {
			return 0, false
		}
	}
	if lambda == 0 {
		return 0, false
	}
	return lambda, true
}
