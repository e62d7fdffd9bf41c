package set

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// MinkowskiSumArray is an append-mostly array of lazy summands representing
// their Minkowski sum. It is the shape the engine uses for every running
// accumulation: appending a term is O(1) and the array supports in-place
// collapsing of the already accumulated prefix into a single
// overapproximated summand, which bounds memory when the accumulation runs
// for many steps.
type MinkowskiSumArray struct {
	terms []LazySet
	n     int
	// prefix counts the leading terms covered by the last collapse. No
	// method reads it: Collapse always overapproximates the whole array.
	prefix int
}

// NewMinkowskiSumArray returns an array sum with the given initial terms.
// At least the dimension must be known, so either pass a term or use
// NewEmptyMinkowskiSumArray.
func NewMinkowskiSumArray(terms ...LazySet) *MinkowskiSumArray {
	if len(terms) == 0 {
		panic(errors.New("set: empty Minkowski sum array needs an explicit dimension"))
	}
	n := terms[0].Dim()
	for _, t := range terms {
		if t.Dim() != n {
			panic(errors.New("set: Minkowski sum array terms with different dimensions"))
		}
	}
	res := &MinkowskiSumArray{n: n}
	res.terms = append(res.terms, terms...)
	return res
}

// NewEmptyMinkowskiSumArray returns an array sum with no terms, representing
// the zero set of dimension n until terms are appended.
func NewEmptyMinkowskiSumArray(n, capacity int) *MinkowskiSumArray {
	return &MinkowskiSumArray{terms: make([]LazySet, 0, capacity), n: n}
}

// Dim returns the ambient dimension.
func (a *MinkowskiSumArray) Dim() int { return a.n }

// Support sums the supports of all terms.
func (a *MinkowskiSumArray) Support(d mat.Vector) float64 {
	checkDim(a, d)
	res := 0.
	for _, t := range a.terms {
		res += t.Support(d)
	}
	return res
}

// Append adds a summand to the array.
func (a *MinkowskiSumArray) Append(t LazySet) {
	if t.Dim() != a.n {
		panic(errors.New("set: appended term dimension doesn't match array"))
	}
	a.terms = append(a.terms, t)
}

// Len returns the current number of summands.
func (a *MinkowskiSumArray) Len() int { return len(a.terms) }

// Terms returns the summands. The returned slice must not be modified.
func (a *MinkowskiSumArray) Terms() []LazySet { return a.terms }

// Collapse overapproximates the whole array by the given policy and, when
// the policy does not depend on the accumulated summands for tightness,
// replaces the terms with the single collapsed set. Policies such as the
// epsilon-close polygon need all prior summands to refine later bounds, so
// for those the terms are retained and only the collapsed value is
// returned.
func (a *MinkowskiSumArray) Collapse(p Policy) LazySet {
	out := p.Apply(a)
	if p.ConstantDirections() {
		a.terms = a.terms[:0]
		a.terms = append(a.terms, out)
		a.prefix = 1
	} else {
		a.prefix = len(a.terms)
	}
	return out
}
