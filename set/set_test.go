package set

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func direction(data ...float64) *mat.VecDense {
	return mat.NewVecDense(len(data), data)
}

func TestSupportOfBasicShapes(t *testing.T) {
	iv := NewInterval(-1, 3)
	if got := iv.Support(direction(1)); math.Abs(got-3) > tol {
		t.Errorf("interval upper support = %g, expected 3", got)
	}
	if got := iv.Support(direction(-2)); math.Abs(got-2) > tol {
		t.Errorf("interval lower support = %g, expected 2", got)
	}

	box := NewHyperrectangle([]float64{1, -1}, []float64{2, 0.5})
	if got := box.Support(direction(1, 1)); math.Abs(got-(3+(-0.5))) > tol {
		t.Errorf("box support = %g, expected 2.5", got)
	}

	ball := NewBall2([]float64{1, 0}, 1)
	d := direction(1/math.Sqrt2, 1/math.Sqrt2)
	if got := ball.Support(d); math.Abs(got-(1/math.Sqrt2+1)) > tol {
		t.Errorf("ball support = %g, expected %g", got, 1/math.Sqrt2+1)
	}

	z := NewZonotope([]float64{0, 0}, []float64{1, 0}, []float64{1, 1})
	if got := z.Support(direction(1, 0)); math.Abs(got-2) > tol {
		t.Errorf("zonotope support = %g, expected 2", got)
	}
}

func TestLazyLinearMapAndSum(t *testing.T) {
	rot := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	ball := NewBall2([]float64{1, 0}, 1)
	mapped := NewLinearMap(rot, ball)
	// Rotation by pi/2 moves the center to (0, 1).
	if got := mapped.Support(direction(0, 1)); math.Abs(got-2) > tol {
		t.Errorf("rotated ball support = %g, expected 2", got)
	}
	sum := NewMinkowskiSum(mapped, NewBallInf([]float64{0, 0}, 0.5))
	if got := sum.Support(direction(0, 1)); math.Abs(got-2.5) > tol {
		t.Errorf("sum support = %g, expected 2.5", got)
	}
}

func TestProjectionSupport(t *testing.T) {
	box := NewHyperrectangle([]float64{0, 5, -3}, []float64{1, 1, 1})
	proj := NewProjection(box, 1, 3)
	if proj.Dim() != 2 {
		t.Fatalf("projection dimension = %d, expected 2", proj.Dim())
	}
	if got := proj.Support(direction(1, 0)); math.Abs(got-6) > tol {
		t.Errorf("projected support = %g, expected 6", got)
	}
	if got := proj.Support(direction(0, -1)); math.Abs(got-4) > tol {
		t.Errorf("projected support = %g, expected 4", got)
	}
}

func TestCartesianProductSupport(t *testing.T) {
	cp := NewCartesianProduct(NewInterval(0, 1), NewInterval(-2, -1))
	if cp.Dim() != 2 {
		t.Fatalf("product dimension = %d, expected 2", cp.Dim())
	}
	if got := cp.Support(direction(1, 1)); math.Abs(got-0) > tol {
		t.Errorf("product support = %g, expected 0", got)
	}
}

func TestBoxHullOfRotatedBall(t *testing.T) {
	angle := math.Pi / 3
	rot := mat.NewDense(2, 2, []float64{
		math.Cos(angle), -math.Sin(angle),
		math.Sin(angle), math.Cos(angle),
	})
	lazy := NewLinearMap(rot, NewBall2([]float64{1, 0}, 1))
	hull := Policy{Kind: BoxHull}.Apply(lazy)
	box, ok := hull.(*Hyperrectangle)
	if !ok {
		t.Fatalf("box hull returned %T", hull)
	}
	// The rotated center is (cos, sin) and the radius stays 1.
	if math.Abs(box.Center[0]-math.Cos(angle)) > tol || math.Abs(box.Center[1]-math.Sin(angle)) > tol {
		t.Errorf("hull center = %v", box.Center)
	}
	if math.Abs(box.Radius[0]-1) > tol || math.Abs(box.Radius[1]-1) > tol {
		t.Errorf("hull radius = %v, expected [1 1]", box.Radius)
	}
}

func TestEpsPolygonTightensWithEps(t *testing.T) {
	ball := NewBall2([]float64{0, 0}, 1)
	coarse := OverapproximatePolygon(ball, 0.5)
	fine := OverapproximatePolygon(ball, 0.001)
	if len(fine.Directions) <= len(coarse.Directions) {
		t.Errorf("finer tolerance produced %d constraints, coarse %d",
			len(fine.Directions), len(coarse.Directions))
	}
	d := direction(1/math.Sqrt2, 1/math.Sqrt2)
	cs := coarse.Support(d)
	fs := fine.Support(d)
	if fs > cs+tol {
		t.Errorf("finer polygon is looser: %g > %g", fs, cs)
	}
	// Both stay supersets of the ball.
	if fs < 1-0.01 {
		t.Errorf("fine polygon support %g dips below the ball", fs)
	}
}

func TestTemplateHullContainsSet(t *testing.T) {
	ball := NewBall2([]float64{0.5, -0.5}, 1)
	for _, kind := range []PolicyKind{OctagonTemplate, BoxDiagTemplate} {
		hull := Policy{Kind: kind}.Apply(ball)
		for _, d := range [][]float64{{1, 0}, {0, 1}, {1, 1}, {-1, 1}, {-0.3, 0.7}} {
			dd := direction(d...)
			if hull.Support(dd) < ball.Support(dd)-tol {
				t.Errorf("template %v not a superset in direction %v", kind, d)
			}
		}
	}
}

func TestHalfSpaceDisjoint(t *testing.T) {
	ball := NewBall2([]float64{0, 0}, 1)
	far := NewHalfSpace([]float64{-1, 0}, -2) // x1 >= 2
	near := NewHalfSpace([]float64{-1, 0}, -0.5)
	if !far.Disjoint(ball) {
		t.Error("unit ball should be disjoint from x1 >= 2")
	}
	if near.Disjoint(ball) {
		t.Error("unit ball intersects x1 >= 0.5")
	}
	if !DisjointFromUnion(ball, []HalfSpace{far}) {
		t.Error("union of one far guard should be disjoint")
	}
	if DisjointFromUnion(ball, []HalfSpace{far, near}) {
		t.Error("union containing a near guard is not disjoint")
	}
}

func TestMinkowskiSumArrayCollapse(t *testing.T) {
	a := NewMinkowskiSumArray(NewInterval(0, 1))
	a.Append(NewInterval(1, 2))
	a.Append(NewInterval(-1, 0))
	if got := a.Support(direction(1)); math.Abs(got-3) > tol {
		t.Fatalf("array support = %g, expected 3", got)
	}
	// Constant direction policies may forget the accumulated terms.
	out := a.Collapse(Policy{Kind: IntervalHull})
	if a.Len() != 1 {
		t.Errorf("collapse under interval hull kept %d terms, expected 1", a.Len())
	}
	if got := out.Support(direction(1)); math.Abs(got-3) > tol {
		t.Errorf("collapsed support = %g, expected 3", got)
	}
	if got := a.Support(direction(1)); math.Abs(got-3) > tol {
		t.Errorf("array support changed by collapse: %g", got)
	}
}

func TestMinkowskiSumArrayCollapseKeepsTermsForEps(t *testing.T) {
	ball := NewBall2([]float64{0, 0}, 1)
	a := NewMinkowskiSumArray(ball)
	a.Append(NewBall2([]float64{1, 1}, 0.5))
	out := a.Collapse(Policy{Kind: EpsPolygon, Eps: 0.1})
	if a.Len() != 2 {
		t.Errorf("collapse under eps polygon dropped terms: %d left", a.Len())
	}
	d := direction(1, 0)
	if out.Support(d) < a.Support(d)-tol {
		t.Errorf("collapsed polygon is not a superset of the array")
	}
}

func TestIsEmpty(t *testing.T) {
	if IsEmpty(NewInterval(0, 1)) {
		t.Error("nonempty interval reported empty")
	}
	if !IsEmpty(EmptySet{N: 2}) {
		t.Error("empty set not reported empty")
	}
	lm := NewLinearMap(mat.NewDense(2, 2, nil), EmptySet{N: 2})
	if !IsEmpty(lm) {
		t.Error("linear map of the empty set not reported empty")
	}
}

func TestIntersectionOuterBound(t *testing.T) {
	box := NewBallInf([]float64{0, 0}, 2)
	cut := NewIntersection(box, []HalfSpace{NewHalfSpace([]float64{1, 0}, 1)})
	if got := cut.Support(direction(1, 0)); math.Abs(got-1) > tol {
		t.Errorf("intersection support = %g, expected 1", got)
	}
	if got := cut.Support(direction(0, 1)); math.Abs(got-2) > tol {
		t.Errorf("orthogonal support changed: %g, expected 2", got)
	}
}
