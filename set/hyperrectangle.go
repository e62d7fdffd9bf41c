package set

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Interval is the one dimensional set [Lo, Hi].
type Interval struct {
	Lo float64
	Hi float64
}

// NewInterval returns the interval [lo, hi].
func NewInterval(lo, hi float64) *Interval {
	if NanOrInf(lo) || NanOrInf(hi) {
		panic(errors.New("set: interval bound is NaN or Inf"))
	}
	return &Interval{lo, hi}
}

// Dim of an interval is one.
func (iv *Interval) Dim() int { return 1 }

// Support of an interval.
func (iv *Interval) Support(d mat.Vector) float64 {
	checkDim(iv, d)
	return math.Max(d.AtVec(0)*iv.Lo, d.AtVec(0)*iv.Hi)
}

// Hyperrectangle is an axis aligned box given by its center and radius
// vectors.
type Hyperrectangle struct {
	Center []float64
	Radius []float64
}

// NewHyperrectangle returns a box from center and radius. The radius must be
// elementwise non-negative.
func NewHyperrectangle(center, radius []float64) *Hyperrectangle {
	if len(center) != len(radius) {
		panic(errors.New("set: center and radius lengths don't agree"))
	}
	for i := range radius {
		if radius[i] < 0 || NanOrInf(center[i]) || NanOrInf(radius[i]) {
			panic(errors.New("set: invalid hyperrectangle data"))
		}
	}
	return &Hyperrectangle{center, radius}
}

// NewBallInf returns the infinity norm ball of the given center and radius.
func NewBallInf(center []float64, r float64) *Hyperrectangle {
	radius := make([]float64, len(center))
	for i := range radius {
		radius[i] = r
	}
	return NewHyperrectangle(center, radius)
}

// Dim returns the ambient dimension.
func (h *Hyperrectangle) Dim() int { return len(h.Center) }

// Support of a box decomposes per coordinate.
func (h *Hyperrectangle) Support(d mat.Vector) float64 {
	checkDim(h, d)
	res := 0.
	for i := range h.Center {
		res += d.AtVec(i)*h.Center[i] + math.Abs(d.AtVec(i))*h.Radius[i]
	}
	return res
}

// Interval returns the projection of the box onto coordinate i.
func (h *Hyperrectangle) Interval(i int) *Interval {
	return &Interval{h.Center[i] - h.Radius[i], h.Center[i] + h.Radius[i]}
}

// Ball2 is the Euclidean ball of a given center and radius.
type Ball2 struct {
	Center []float64
	R      float64
}

// NewBall2 returns the Euclidean ball of the given center and radius.
func NewBall2(center []float64, r float64) *Ball2 {
	if r < 0 {
		panic(errors.New("set: negative ball radius"))
	}
	return &Ball2{center, r}
}

// Dim returns the ambient dimension.
func (b *Ball2) Dim() int { return len(b.Center) }

// Support of a Euclidean ball.
func (b *Ball2) Support(d mat.Vector) float64 {
	checkDim(b, d)
	res, norm := 0., 0.
	for i := range b.Center {
		res += d.AtVec(i) * b.Center[i]
		norm += d.AtVec(i) * d.AtVec(i)
	}
	return res + b.R*math.Sqrt(norm)
}

// Zonotope is a centrally symmetric set given by a center and a list of
// generator vectors.
type Zonotope struct {
	Center     []float64
	Generators []*mat.VecDense
}

// NewZonotope returns a zonotope from its center and generators.
func NewZonotope(center []float64, generators ...[]float64) *Zonotope {
	gens := make([]*mat.VecDense, len(generators))
	for i, g := range generators {
		if len(g) != len(center) {
			panic(errors.New("set: generator length doesn't match center"))
		}
		gens[i] = mat.NewVecDense(len(g), g)
	}
	return &Zonotope{center, gens}
}

// Dim returns the ambient dimension.
func (z *Zonotope) Dim() int { return len(z.Center) }

// Support of a zonotope sums the absolute generator contributions.
func (z *Zonotope) Support(d mat.Vector) float64 {
	checkDim(z, d)
	res := 0.
	for i := range z.Center {
		res += d.AtVec(i) * z.Center[i]
	}
	for _, g := range z.Generators {
		res += math.Abs(mat.Dot(d, g))
	}
	return res
}
