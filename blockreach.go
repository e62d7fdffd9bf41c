// Package blockreach computes reachable set overapproximations of linear
// time invariant systems
//
// x'(t) = A x(t) + u(t), x(0) in X0, u(t) in U
//
// by decomposing the state space into low dimensional blocks and
// propagating one small set per block and time step. The package is the
// driver facade: it discretises the continuous system, picks a matrix power
// backend and hands everything to the engine.
package blockreach

import (
	"fmt"

	"github.com/mforets/blockreach/discretize"
	"github.com/mforets/blockreach/engine"
	"github.com/mforets/blockreach/matpow"
	"github.com/mforets/blockreach/set"
	"gonum.org/v1/gonum/mat"
)

// AffineSystem is a continuous time LTI system with set valued initial
// states and inputs. U may be nil for homogeneous dynamics.
type AffineSystem struct {
	A  *mat.Dense
	X0 set.LazySet
	U  set.LazySet
}

// NewAffineSystem builds a system and checks that the dimensions agree.
func NewAffineSystem(a *mat.Dense, x0 set.LazySet, u set.LazySet) (*AffineSystem, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("blockreach: state matrix is %dx%d, expected square", r, c)
	}
	if x0.Dim() != r {
		return nil, fmt.Errorf("blockreach: initial set has dimension %d, state dimension is %d", x0.Dim(), r)
	}
	if u != nil && u.Dim() != r {
		return nil, fmt.Errorf("blockreach: input set has dimension %d, state dimension is %d", u.Dim(), r)
	}
	return &AffineSystem{A: a, X0: x0, U: u}, nil
}

// Dim returns the state dimension.
func (s *AffineSystem) Dim() int {
	r, _ := s.A.Dims()
	return r
}

// Backend selects how powers of the transition matrix are produced.
type Backend int

const (
	// BackendDense iterates a dense product with a preallocated scratch.
	BackendDense Backend = iota
	// BackendSparse compresses Phi and iterates sparse products.
	BackendSparse
	// BackendLazyExp keeps the running logarithm A*delta*k and materialises
	// exp of it on demand.
	BackendLazyExp
)

func newHandle(sys *AffineSystem, phi *mat.Dense, backend Backend, cfg *engine.Config) matpow.MatrixPower {
	switch backend {
	case BackendSparse:
		return matpow.NewSparse(phi, matpow.DefaultSparseTol)
	case BackendLazyExp:
		return matpow.NewLazyExp(sys.A, cfg.Delta, cfg.AssumeSpare, nil)
	default:
		return matpow.NewDense(phi)
	}
}

func prepare(sys *AffineSystem, backend Backend, opts *engine.Options) (matpow.MatrixPower, set.LazySet, set.LazySet, *engine.Config, error) {
	cfg, err := opts.Validate()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if cfg.Delta <= 0 {
		return nil, nil, nil, nil, fmt.Errorf("%w: discretisation needs a positive time step", engine.ErrConfig)
	}
	u := sys.U
	if cfg.Homogeneous {
		u = nil
	}
	d, err := discretize.Discretize(sys.A, cfg.Delta, sys.X0, u)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: %v", engine.ErrExternal, err)
	}
	return newHandle(sys, d.Phi, backend, cfg), d.X0, d.U, cfg, nil
}

// Reach computes the flowpipe of the system over the configured horizon.
func Reach(sys *AffineSystem, backend Backend, opts *engine.Options) (*engine.Flowpipe, error) {
	pow, x0, u, cfg, err := prepare(sys, backend, opts)
	if err != nil {
		return nil, err
	}
	return engine.Reach(pow, x0, u, cfg)
}

// Check runs the system in safety checking mode and returns the first step
// at which the property is violated, or zero when it holds throughout.
func Check(sys *AffineSystem, property engine.Property, backend Backend, opts *engine.Options) (int, error) {
	pow, x0, u, cfg, err := prepare(sys, backend, opts)
	if err != nil {
		return 0, err
	}
	return engine.Check(pow, x0, u, property, cfg)
}
