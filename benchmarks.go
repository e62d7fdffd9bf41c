package blockreach

import (
	"github.com/mforets/blockreach/set"
	"gonum.org/v1/gonum/mat"
)

// NewRotation returns the planar harmonic oscillator x1' = -x2, x2' = x1
// with the unit ball around (1, 0) as initial states. Its flow rotates the
// initial set around the origin, which makes the expected reach sets easy
// to state in closed form.
func NewRotation() *AffineSystem {
	a := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	x0 := set.NewBall2([]float64{1, 0}, 1)
	sys, err := NewAffineSystem(a, x0, nil)
	if err != nil {
		panic(err)
	}
	return sys
}

// NewIntegratorChain returns the chain x_i' = stageGain * x_{i-1} of size n
// driven by the input set u, with the origin as initial state. u may be
// nil.
func NewIntegratorChain(n int, stageGain float64, u set.LazySet) *AffineSystem {
	data := make([]float64, n*n)
	for row := 1; row < n; row++ {
		data[row*n+row-1] = stageGain
	}
	a := mat.NewDense(n, n, data)
	x0 := set.NewSingleton(make([]float64, n))
	sys, err := NewAffineSystem(a, x0, u)
	if err != nil {
		panic(err)
	}
	return sys
}

// NewTranslation returns the trivial dynamics x' = u over n variables with
// the origin as initial state, a pure per step translation by the input
// set.
func NewTranslation(n int, u set.LazySet) *AffineSystem {
	a := mat.NewDense(n, n, nil)
	x0 := set.NewSingleton(make([]float64, n))
	sys, err := NewAffineSystem(a, x0, u)
	if err != nil {
		panic(err)
	}
	return sys
}

// NewDecoupledBlocks returns a block diagonal system of m independent
// planar rotations with per block frequencies 1, 2, ..., m. The initial
// states are the infinity ball of radius 0.1 around (1, 0, 1, 0, ...).
// Because the
// blocks never couple, the system exercises the selective propagation of
// the engine: reach sets of uninteresting blocks cost nothing unless a
// guard asks for them.
func NewDecoupledBlocks(m int) *AffineSystem {
	n := 2 * m
	a := mat.NewDense(n, n, nil)
	center := make([]float64, n)
	for b := 0; b < m; b++ {
		w := float64(b + 1)
		a.Set(2*b, 2*b+1, -w)
		a.Set(2*b+1, 2*b, w)
		center[2*b] = 1
	}
	x0 := set.NewBallInf(center, 0.1)
	sys, err := NewAffineSystem(a, x0, nil)
	if err != nil {
		panic(err)
	}
	return sys
}
