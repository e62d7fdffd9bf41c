package set

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// HalfSpace is the constraint { x : <A, x> <= B }.
type HalfSpace struct {
	A *mat.VecDense
	B float64
}

// NewHalfSpace returns the half space with normal a and offset b.
func NewHalfSpace(a []float64, b float64) HalfSpace {
	if len(a) == 0 {
		panic(errors.New("set: half space with empty normal"))
	}
	return HalfSpace{mat.NewVecDense(len(a), a), b}
}

// Dim returns the ambient dimension.
func (h HalfSpace) Dim() int { return h.A.Len() }

// Disjoint reports whether x and the half space have no point in common,
// which holds exactly when the minimum of <A, .> over x exceeds B.
func (h HalfSpace) Disjoint(x LazySet) bool {
	// min over x of <A, .> is -rho(-A)
	return -x.Support(negated(h.A)) > h.B
}

// DisjointFromUnion reports whether x is disjoint from the union of all
// given half spaces.
func DisjointFromUnion(x LazySet, union []HalfSpace) bool {
	for _, h := range union {
		if !h.Disjoint(x) {
			return false
		}
	}
	return true
}

// DisjointFromIntersection reports whether x is disjoint from the polyhedron
// given by the conjunction of the half spaces. The test is sufficient, not
// complete: it reports true when some single constraint already separates x.
func DisjointFromIntersection(x LazySet, constraints []HalfSpace) bool {
	for _, h := range constraints {
		if h.Disjoint(x) {
			return true
		}
	}
	return false
}
