package matpow

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ExpFunc computes the matrix exponential of its argument. The default uses
// the scaling and squaring implementation of gonum.
type ExpFunc func(m mat.Matrix) *mat.Dense

func gonumExp(m mat.Matrix) *mat.Dense {
	var e mat.Dense
	e.Exp(m)
	return &e
}

// LazyExp advances powers of Phi = exp(A*delta) without ever multiplying
// matrices: it keeps the running logarithm E = A*delta*k and adds A*delta on
// every Advance, so Phi^k = exp(E) stays exact regardless of k. The
// exponential of the current logarithm is materialised at most once per
// exponent, on the first row request after an Advance.
type LazyExp struct {
	step *mat.Dense // A*delta
	log  *mat.Dense // A*delta*k
	k    int

	exp ExpFunc

	cur *mat.Dense // cached exp(log), nil after Advance
	// assumeSparse compresses each materialised power so sub block zero
	// tests reflect the actual sparsity instead of always answering false.
	assumeSparse bool
	curSparse    *csr
	sparseTol    float64
}

// NewLazyExp returns a lazy exponential handle for Phi = exp(A*delta),
// starting at exponent one. A nil exp falls back to gonum's Dense.Exp.
func NewLazyExp(a mat.Matrix, delta float64, assumeSparse bool, exp ExpFunc) *LazyExp {
	r, c := a.Dims()
	if r != c {
		panic(errors.New("matpow: exponential of a non-square matrix"))
	}
	if delta <= 0 {
		panic(errors.New("matpow: time step must be positive"))
	}
	if exp == nil {
		exp = gonumExp
	}
	step := mat.NewDense(r, c, nil)
	step.Scale(delta, a)
	return &LazyExp{
		step:         step,
		log:          mat.DenseCopyOf(step),
		k:            1,
		exp:          exp,
		assumeSparse: assumeSparse,
		sparseTol:    1e-12,
	}
}

// Dim returns the order of Phi.
func (l *LazyExp) Dim() int {
	r, _ := l.step.Dims()
	return r
}

// K returns the current exponent.
func (l *LazyExp) K() int { return l.k }

// materialise computes exp(E) for the current exponent if not cached.
func (l *LazyExp) materialise() *mat.Dense {
	if l.cur == nil {
		l.cur = l.exp(l.log)
		if l.assumeSparse {
			l.curSparse = newCSR(l.cur, l.sparseTol)
		}
	}
	return l.cur
}

// RowBlock returns rows [lo, hi) of exp(A*delta*k).
func (l *LazyExp) RowBlock(lo, hi int) mat.Matrix {
	return l.materialise().Slice(lo, hi, 0, l.Dim())
}

// SubBlock returns the sub block of exp(A*delta*k).
func (l *LazyExp) SubBlock(rlo, rhi, clo, chi int) mat.Matrix {
	return l.materialise().Slice(rlo, rhi, clo, chi)
}

// SubBlockZero reports structural zeros of the current power. Without the
// sparsity assumption every block is treated as potentially nonzero.
func (l *LazyExp) SubBlockZero(rlo, rhi, clo, chi int) bool {
	if !l.assumeSparse {
		return false
	}
	l.materialise()
	return l.curSparse.subBlockZero(rlo, rhi, clo, chi)
}

// Advance adds A*delta to the running logarithm and drops the cached
// exponential.
func (l *LazyExp) Advance() error {
	l.log.Add(l.log, l.step)
	l.k++
	l.cur = nil
	l.curSparse = nil
	return nil
}
