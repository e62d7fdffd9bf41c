// Package ode integrates ordinary differential equations with explicit
// Runge-Kutta methods, https://en.wikipedia.org/wiki/Runge–Kutta_methods.
// The reachability engine never needs it; it exists to sample concrete
// trajectories of the same dynamics, which are overlaid on flowpipe plots
// and used by tests as an inner reference: every sampled state must lie
// inside the corresponding reach set.
package ode

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// DifferentiableSystem exposes the state derivative of a dynamical system.
type DifferentiableSystem interface {
	Derivative(t float64, state mat.Vector) mat.Vector
}

// Affine is the system x'(t) = A x(t) + u with a constant input vector.
// A nil input means homogeneous dynamics.
type Affine struct {
	A mat.Matrix
	U mat.Vector
}

// Derivative returns A*state + u.
func (a Affine) Derivative(t float64, state mat.Vector) mat.Vector {
	n, _ := a.A.Dims()
	res := mat.NewVecDense(n, nil)
	res.MulVec(a.A, state)
	if a.U != nil {
		res.AddVec(res, a.U)
	}
	return res
}

// butcherTableau describes an explicit Runge-Kutta method.
type butcherTableau struct {
	stages           int
	weights          []float64
	nodes            []float64
	rungeKuttaMatrix [][]float64
}

// RungeKutta is an explicit fixed step Runge-Kutta integrator.
type RungeKutta struct {
	description butcherTableau
}

// NewRK4 returns the classic fourth order Runge-Kutta method.
func NewRK4() *RungeKutta {
	return &RungeKutta{butcherTableau{
		stages:  4,
		nodes:   []float64{0, 1. / 2., 1. / 2., 1},
		weights: []float64{1. / 6., 1. / 3., 1. / 3., 1. / 6.},
		rungeKuttaMatrix: [][]float64{
			nil,
			{1. / 2.},
			{0, 1. / 2.},
			{0, 0, 1},
		},
	}}
}

// NewEulerMethod returns the explicit Euler method.
func NewEulerMethod() *RungeKutta {
	return &RungeKutta{butcherTableau{
		stages:           1,
		nodes:            []float64{0},
		weights:          []float64{1},
		rungeKuttaMatrix: [][]float64{nil},
	}}
}

// Step advances the state from time t over one step of length h, in place.
func (rk *RungeKutta) Step(t, h float64, state *mat.VecDense, system DifferentiableSystem) {
	n := state.Len()
	k := make([]mat.Vector, rk.description.stages)
	stage := mat.NewVecDense(n, nil)
	for s := 0; s < rk.description.stages; s++ {
		stage.CopyVec(state)
		for s2, a := range rk.description.rungeKuttaMatrix[s] {
			if a != 0 {
				stage.AddScaledVec(stage, h*a, k[s2])
			}
		}
		k[s] = system.Derivative(t+h*rk.description.nodes[s], stage)
	}
	for s, ks := range k {
		state.AddScaledVec(state, h*rk.description.weights[s], ks)
	}
}

// Integrate advances the state from time t0 to t1 in the given number of
// equal steps and returns the sampled states, the initial one included.
func (rk *RungeKutta) Integrate(t0, t1 float64, steps int, initial mat.Vector, system DifferentiableSystem) ([]*mat.VecDense, error) {
	if steps < 1 {
		return nil, errors.New("ode: step count must be positive")
	}
	if t1 <= t0 {
		return nil, errors.New("ode: integration interval is empty")
	}
	h := (t1 - t0) / float64(steps)
	state := mat.NewVecDense(initial.Len(), nil)
	state.CopyVec(initial)
	out := make([]*mat.VecDense, 0, steps+1)
	out = append(out, mat.VecDenseCopyOf(state))
	for s := 0; s < steps; s++ {
		rk.Step(t0+float64(s)*h, h, state, system)
		out = append(out, mat.VecDenseCopyOf(state))
	}
	return out, nil
}
