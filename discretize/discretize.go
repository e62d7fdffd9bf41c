// Package discretize converts a continuous time affine system
//
// x'(t) = A x(t) + u(t), u(t) in U
//
// into the discrete recurrence driven by the reachability engine. The state
// transition matrix is the exact exponential Phi = exp(A*delta); the initial
// and input sets are inflated by the remainder e^(|A|delta) - 1 - |A|delta
// of the exponential series, scaled by each set's sup norm. No hull with the
// image after one step is formed, so the discrete sets do not in general
// bound the states strictly between two step times.
package discretize

import (
	"errors"
	"math"

	"github.com/mforets/blockreach/set"
	"gonum.org/v1/gonum/mat"
)

// Discretization is the outcome of a zero order hold conversion.
type Discretization struct {
	// Phi is exp(A*delta).
	Phi *mat.Dense
	// X0 is the bloated initial set.
	X0 set.LazySet
	// U is the per step input contribution, nil for homogeneous systems.
	U set.LazySet
	// Delta is the time step the conversion was made for.
	Delta float64
}

// Discretize performs the zero order hold conversion. u may be nil.
func Discretize(a mat.Matrix, delta float64, x0 set.LazySet, u set.LazySet) (*Discretization, error) {
	r, c := a.Dims()
	if r != c {
		return nil, errors.New("discretize: state matrix is not square")
	}
	if delta <= 0 {
		return nil, errors.New("discretize: time step must be positive")
	}
	if x0.Dim() != r {
		return nil, errors.New("discretize: initial set dimension doesn't match the state matrix")
	}
	if u != nil && u.Dim() != r {
		return nil, errors.New("discretize: input set dimension doesn't match the state matrix")
	}

	var phi mat.Dense
	scaled := mat.NewDense(r, c, nil)
	scaled.Scale(delta, a)
	phi.Exp(scaled)

	normA := mat.Norm(a, math.Inf(1))
	// Remainder of the truncated exponential series over one step.
	remainder := math.Exp(normA*delta) - 1 - normA*delta

	alpha := remainder * supNorm(x0)
	bloated := bloat(x0, alpha)

	var ud set.LazySet
	if u != nil {
		beta := remainder * supNorm(u)
		scaledU := scaleSet(delta, u)
		ud = bloat(scaledU, beta)
	}

	return &Discretization{Phi: &phi, X0: bloated, U: ud, Delta: delta}, nil
}

// supNorm returns the infinity norm of the set, the largest absolute
// coordinate over all its points.
func supNorm(x set.LazySet) float64 {
	n := x.Dim()
	res := 0.
	d := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		d.SetVec(i, 1)
		hi := x.Support(d)
		d.SetVec(i, -1)
		lo := x.Support(d)
		d.SetVec(i, 0)
		res = math.Max(res, math.Max(math.Abs(hi), math.Abs(lo)))
	}
	return res
}

// bloat returns x inflated by the centred infinity ball of radius r. A zero
// radius keeps the set unchanged.
func bloat(x set.LazySet, r float64) set.LazySet {
	if r == 0 {
		return x
	}
	ball := set.NewBallInf(make([]float64, x.Dim()), r)
	return set.NewMinkowskiSum(x, ball)
}

// scaleSet returns the lazy image s*x.
func scaleSet(s float64, x set.LazySet) set.LazySet {
	n := x.Dim()
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, s)
	}
	return set.NewLinearMap(m, x)
}
