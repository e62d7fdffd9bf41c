// Package engine drives the block decomposed reachability iteration. Given
// a matrix power handle over the discretised transition matrix, a
// decomposable initial set and an optional input set, it produces one low
// dimensional reach set per partition block and per step, either collecting
// them into a flowpipe or checking a property against them as they appear.
package engine

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/mforets/blockreach/matpow"
	"github.com/mforets/blockreach/set"
)

// runner holds the mutable state of one reachability run.
type runner struct {
	cfg   *Config
	pow   matpow.MatrixPower
	xhat0 []set.LazySet
	acc   *accumulator
	// scratch for the block sets of the current step, indexed by block.
	cur []set.LazySet
}

func newRunner(pow matpow.MatrixPower, x0 set.LazySet, u set.LazySet, cfg *Config) (*runner, error) {
	if pow.Dim() != cfg.Part.Dim() {
		return nil, fmt.Errorf("%w: matrix power has order %d, partition covers %d variables",
			ErrShape, pow.Dim(), cfg.Part.Dim())
	}
	if cfg.Homogeneous {
		u = nil
	}
	if u != nil && u.Dim() != cfg.Part.Dim() {
		return nil, fmt.Errorf("%w: input set dimension %d, partition covers %d variables",
			ErrShape, u.Dim(), cfg.Part.Dim())
	}
	xhat0, err := Decompose(x0, cfg)
	if err != nil {
		return nil, err
	}
	r := &runner{cfg: cfg, pow: pow, xhat0: xhat0, cur: make([]set.LazySet, cfg.Part.Size())}
	if u != nil {
		// Splicing needs sound cheap blocks, so with guards in play the
		// accumulator tracks every block, not only the interesting ones.
		tracked := cfg.Interesting
		if len(cfg.Guards) > 0 && len(cfg.Cheap) > 0 {
			tracked = allBlocks(cfg)
		}
		r.acc = newAccumulator(cfg, u, tracked)
	}
	return r, nil
}

func allBlocks(cfg *Config) []int {
	out := make([]int, cfg.Part.Size())
	for i := range out {
		out[i] = i
	}
	return out
}

// propagateBlock computes the step set of one block from the current matrix
// power: the Minkowski sum of the nonzero cross couplings applied to the
// initial block sets, plus the accumulated input, collapsed under the
// block's iteration policy. The sum is always held flat in an array, never
// as a nested binary tree.
func (r *runner) propagateBlock(i int) set.LazySet {
	bi := r.cfg.Part.Block(i)
	capacity := r.cfg.Part.Size()
	if r.acc != nil {
		capacity++
	}
	terms := make([]set.LazySet, 0, capacity)
	for j := 0; j < r.cfg.Part.Size(); j++ {
		bj := r.cfg.Part.Block(j)
		if r.pow.SubBlockZero(bi.Lo, bi.Hi, bj.Lo, bj.Hi) {
			continue
		}
		sub := r.pow.SubBlock(bi.Lo, bi.Hi, bj.Lo, bj.Hi)
		terms = append(terms, set.NewLinearMap(sub, r.xhat0[j]))
	}
	if r.acc != nil {
		terms = append(terms, r.acc.value(i))
	}
	if len(terms) == 0 {
		return set.ZeroSet{N: bi.Len()}
	}
	return r.cfg.IterPolicy(i).Apply(set.NewMinkowskiSumArray(terms...))
}

// propagate fills the listed blocks of the current step, sequentially or
// fanned out over goroutines. Each goroutine writes a distinct slot.
func (r *runner) propagate(blocks []int) {
	if !r.cfg.Parallel || len(blocks) < 2 {
		for _, i := range blocks {
			r.cur[i] = r.propagateBlock(i)
		}
		return
	}
	var wait sync.WaitGroup
	for _, i := range blocks {
		wait.Add(1)
		go func(i int) {
			defer wait.Done()
			r.cur[i] = r.propagateBlock(i)
		}(i)
	}
	wait.Wait()
}

// candidate assembles the cartesian product of the listed blocks of the
// given decomposed set, in ascending block order.
func candidate(sets []set.LazySet, blocks []int) set.LazySet {
	if len(blocks) == 1 {
		return sets[blocks[0]]
	}
	parts := make([]set.LazySet, len(blocks))
	for p, i := range blocks {
		parts[p] = sets[i]
	}
	return set.NewCartesianProduct(parts...)
}

// mayCrossGuard reports whether the candidate set is not disjoint from the
// union of the configured guards.
func (r *runner) mayCrossGuard(cand set.LazySet) bool {
	if len(r.cfg.Guards) == 0 || len(r.cfg.Cheap) == 0 {
		return false
	}
	return !set.DisjointFromUnion(cand, r.cfg.Guards)
}

// record builds the stored reach set of one step, splicing the cheap blocks
// in when asked to.
func (r *runner) record(k int, sets []set.LazySet, stepSet set.LazySet, splice bool) ReachSet {
	blocks := r.cfg.Interesting
	stored := stepSet
	if splice {
		blocks = allBlocks(r.cfg)
		stored = candidate(sets, blocks)
		log.Debugf("engine: step %d spliced %d cheap blocks into the record", k, len(r.cfg.Cheap))
	}
	if r.cfg.Output != nil {
		stored = set.NewLinearMap(r.cfg.Output, stored)
	}
	covered := make([]int, len(blocks))
	copy(covered, blocks)
	return ReachSet{
		Set:    stored,
		TStart: float64(k-1) * r.cfg.Delta,
		TEnd:   float64(k) * r.cfg.Delta,
		Blocks: covered,
	}
}

// recoverFatal converts panics raised by the set algebra, which signals
// misuse and non finite geometry by panicking with an error, into the
// engine's numeric error class.
func recoverFatal(k int, t float64, err *error) {
	if rec := recover(); rec != nil {
		if e, ok := rec.(error); ok {
			*err = stepError(k, t, fmt.Errorf("%w: %v", ErrNumeric, e))
			return
		}
		panic(rec)
	}
}

// Reach runs the block decomposed iteration and collects every stored step
// into a flowpipe. The handle must be fresh, holding the first power of the
// transition matrix.
func Reach(pow matpow.MatrixPower, x0 set.LazySet, u set.LazySet, cfg *Config) (*Flowpipe, error) {
	r, err := newRunner(pow, x0, u, cfg)
	if err != nil {
		return nil, err
	}
	fp := &Flowpipe{Reason: StopHorizon}
	k := 1
	for {
		var stepErr error
		done := func() bool {
			t0 := float64(k-1) * cfg.Delta
			defer recoverFatal(k, t0, &stepErr)

			sets := r.xhat0
			if k > 1 {
				r.propagate(cfg.Interesting)
				sets = r.cur
			}
			cand := candidate(sets, cfg.Interesting)
			out := cfg.Term(k, cand, t0)
			if out.Skip {
				fp.Reason = StopSkip
				return true
			}
			splice := r.mayCrossGuard(cand)
			if splice && k > 1 {
				r.propagate(cfg.Cheap)
			}
			fp.Records = append(fp.Records, r.record(k, sets, out.Set, splice))
			if out.Terminate {
				if k < cfg.N {
					fp.Reason = StopSatisfied
				}
				return true
			}
			if k >= cfg.N {
				return true
			}
			// The first stored step is the decomposed initial set itself;
			// the handle still holds the first power, which step two uses.
			if k > 1 {
				if r.acc != nil {
					r.acc.advance(k+1, r.pow)
				}
				if err := r.pow.Advance(); err != nil {
					stepErr = stepError(k, t0, fmt.Errorf("%w: %v", ErrExternal, err))
					return true
				}
			}
			return false
		}()
		if stepErr != nil {
			return nil, stepErr
		}
		if done {
			break
		}
		k++
	}
	log.Infof("engine: reach run stored %d of %d steps (reason %d)", fp.Len(), cfg.N, fp.Reason)
	return fp, nil
}
