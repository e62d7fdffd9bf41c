package set

import (
	"errors"
	"math"
)

// PolicyKind selects how a lazy block set is overapproximated.
type PolicyKind int

const (
	// PassThrough keeps the lazy value unchanged.
	PassThrough PolicyKind = iota
	// IntervalHull overapproximates a one dimensional set by an interval.
	IntervalHull
	// BoxHull overapproximates by the axis aligned bounding box.
	BoxHull
	// EpsPolygon overapproximates a two dimensional set by a polygon within
	// Hausdorff distance Eps.
	EpsPolygon
	// OctagonTemplate evaluates the support in the eight octagonal
	// directions of the plane.
	OctagonTemplate
	// BoxDiagTemplate evaluates the support in the box plus diagonal
	// directions of the plane.
	BoxDiagTemplate
)

// Policy is a per block overapproximation choice.
type Policy struct {
	Kind PolicyKind
	// Eps is the Hausdorff tolerance for EpsPolygon.
	Eps float64
}

// Default returns the policy for a block with no configured choice: an
// interval for one dimensional blocks and a bounding box otherwise.
func Default(dim int) Policy {
	if dim == 1 {
		return Policy{Kind: IntervalHull}
	}
	return Policy{Kind: BoxHull}
}

// ConstantDirections reports whether the policy evaluates a fixed set of
// directions. Accumulators may forget prior summands after collapsing under
// such a policy; the epsilon-close polygon refines data dependent
// directions and must keep them.
func (p Policy) ConstantDirections() bool {
	switch p.Kind {
	case IntervalHull, BoxHull, OctagonTemplate, BoxDiagTemplate:
		return true
	}
	return false
}

// Apply overapproximates x under the policy. The result is always a
// superset of x.
func (p Policy) Apply(x LazySet) LazySet {
	switch p.Kind {
	case PassThrough:
		return x
	case IntervalHull:
		if x.Dim() != 1 {
			panic(errors.New("set: interval hull of a set with dimension above one"))
		}
		return intervalHull(x)
	case BoxHull:
		if x.Dim() == 1 {
			return intervalHull(x)
		}
		return boxHull(x)
	case EpsPolygon:
		if x.Dim() == 1 {
			return intervalHull(x)
		}
		return OverapproximatePolygon(x, p.Eps)
	case OctagonTemplate, BoxDiagTemplate:
		if x.Dim() == 1 {
			return intervalHull(x)
		}
		if x.Dim() == 2 {
			return templateHull(x, p.Kind)
		}
		// Diagonal templates are planar; higher dimensional blocks fall
		// back to the bounding box.
		return boxHull(x)
	}
	panic(errors.New("set: unknown overapproximation policy"))
}

func intervalHull(x LazySet) *Interval {
	hi := x.Support(unit(1, 0, 1))
	lo := -x.Support(unit(1, 0, -1))
	if NanOrInf(lo) || NanOrInf(hi) {
		panic(errors.New("set: non-finite interval hull"))
	}
	return &Interval{lo, hi}
}

func boxHull(x LazySet) *Hyperrectangle {
	n := x.Dim()
	center := make([]float64, n)
	radius := make([]float64, n)
	for i := 0; i < n; i++ {
		hi := x.Support(unit(n, i, 1))
		lo := -x.Support(unit(n, i, -1))
		if NanOrInf(lo) || NanOrInf(hi) {
			panic(errors.New("set: non-finite box hull"))
		}
		center[i] = (hi + lo) / 2
		radius[i] = (hi - lo) / 2
	}
	return &Hyperrectangle{center, radius}
}

// templateHull evaluates the support in the template directions. In the
// plane the octagon and box plus diagonals templates share the same eight
// normals, up to scaling.
func templateHull(x LazySet, kind PolicyKind) *HPolygon {
	dirs := [][2]float64{
		{1, 0}, {0, 1}, {-1, 0}, {0, -1},
		{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
	}
	if kind == OctagonTemplate {
		// Normalised diagonals keep the offsets comparable across normals.
		s := math.Sqrt2 / 2
		for i := 4; i < 8; i++ {
			dirs[i][0] *= s
			dirs[i][1] *= s
		}
	}
	offs := make([]float64, len(dirs))
	for i, d := range dirs {
		offs[i] = support2(x, d)
	}
	return NewHPolygon(dirs, offs)
}
