package set

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// CartesianProduct is the product X_1 x X_2 x ... x X_m of lower
// dimensional components, in order. Decomposed reach sets are represented
// this way, one component per partition block.
type CartesianProduct struct {
	components []LazySet
	offsets    []int
	n          int
}

// NewCartesianProduct returns the product of the given components.
func NewCartesianProduct(components ...LazySet) *CartesianProduct {
	if len(components) == 0 {
		panic(errors.New("set: cartesian product of no components"))
	}
	offsets := make([]int, len(components)+1)
	for i, c := range components {
		offsets[i+1] = offsets[i] + c.Dim()
	}
	return &CartesianProduct{components, offsets, offsets[len(components)]}
}

// Dim returns the sum of the component dimensions.
func (cp *CartesianProduct) Dim() int { return cp.n }

// Size returns the number of components.
func (cp *CartesianProduct) Size() int { return len(cp.components) }

// Component returns the i-th component set.
func (cp *CartesianProduct) Component(i int) LazySet { return cp.components[i] }

// Support of a product splits the direction across components.
func (cp *CartesianProduct) Support(d mat.Vector) float64 {
	checkDim(cp, d)
	res := 0.
	for i, c := range cp.components {
		sub := mat.NewVecDense(c.Dim(), nil)
		for j := 0; j < c.Dim(); j++ {
			sub.SetVec(j, d.AtVec(cp.offsets[i]+j))
		}
		res += c.Support(sub)
	}
	return res
}
