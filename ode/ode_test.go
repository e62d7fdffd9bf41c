package ode

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRK4RotationPeriod(t *testing.T) {
	// The harmonic oscillator returns to its initial state after 2*pi.
	sys := Affine{A: mat.NewDense(2, 2, []float64{0, -1, 1, 0})}
	rk := NewRK4()
	out, err := rk.Integrate(0, 2*math.Pi, 1000, mat.NewVecDense(2, []float64{1, 0}), sys)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1001 {
		t.Fatalf("expected 1001 samples, got %d", len(out))
	}
	last := out[len(out)-1]
	if math.Abs(last.AtVec(0)-1) > 1e-6 || math.Abs(last.AtVec(1)) > 1e-6 {
		t.Errorf("state after one period = (%g, %g), expected (1, 0)",
			last.AtVec(0), last.AtVec(1))
	}
	// Energy is conserved along the whole trajectory.
	for i, s := range out {
		r := math.Hypot(s.AtVec(0), s.AtVec(1))
		if math.Abs(r-1) > 1e-6 {
			t.Fatalf("sample %d has radius %g, expected 1", i, r)
		}
	}
}

func TestEulerConvergesLinearly(t *testing.T) {
	// x' = -x from 1: the exact solution at t=1 is 1/e.
	sys := Affine{A: mat.NewDense(1, 1, []float64{-1})}
	euler := NewEulerMethod()
	errAt := func(steps int) float64 {
		out, err := euler.Integrate(0, 1, steps, mat.NewVecDense(1, []float64{1}), sys)
		if err != nil {
			t.Fatal(err)
		}
		return math.Abs(out[len(out)-1].AtVec(0) - math.Exp(-1))
	}
	coarse := errAt(100)
	fine := errAt(200)
	if coarse <= fine {
		t.Errorf("halving the step did not reduce the error: %g -> %g", coarse, fine)
	}
	if ratio := coarse / fine; ratio < 1.8 || ratio > 2.2 {
		t.Errorf("error ratio %g, expected about 2 for a first order method", ratio)
	}
}

func TestAffineInputShiftsEquilibrium(t *testing.T) {
	// x' = -x + 1 converges to 1.
	sys := Affine{
		A: mat.NewDense(1, 1, []float64{-1}),
		U: mat.NewVecDense(1, []float64{1}),
	}
	out, err := NewRK4().Integrate(0, 20, 2000, mat.NewVecDense(1, []float64{0}), sys)
	if err != nil {
		t.Fatal(err)
	}
	if got := out[len(out)-1].AtVec(0); math.Abs(got-1) > 1e-6 {
		t.Errorf("equilibrium = %g, expected 1", got)
	}
}

func TestIntegrateRejectsBadArguments(t *testing.T) {
	sys := Affine{A: mat.NewDense(1, 1, []float64{0})}
	x := mat.NewVecDense(1, []float64{0})
	if _, err := NewRK4().Integrate(0, 1, 0, x, sys); err == nil {
		t.Error("zero steps accepted")
	}
	if _, err := NewRK4().Integrate(1, 1, 10, x, sys); err == nil {
		t.Error("empty interval accepted")
	}
}
