package engine

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mforets/blockreach/matpow"
	"github.com/mforets/blockreach/set"
)

// Property is a predicate over the cartesian product of the interesting
// block sets. It returns true when the state set satisfies the property.
// Properties must reference only coordinates of the interesting blocks;
// rewriting a full dimensional predicate into that subspace is the caller's
// job.
type Property func(x set.LazySet) bool

// Check runs the same iteration as Reach but keeps no flowpipe: each step's
// candidate set is fed to the property and the index of the first violating
// step is returned, or zero when the property holds over the whole run. The
// decomposed initial set counts as step one.
//
// With eager checking (the default) the property is evaluated as each step
// is produced and the run short circuits on the first violation. Deferred
// checking materialises every candidate first and scans them afterwards;
// the returned index is the same.
func Check(pow matpow.MatrixPower, x0 set.LazySet, u set.LazySet, property Property, cfg *Config) (int, error) {
	if property == nil {
		return 0, fmt.Errorf("%w: check mode needs a property", ErrConfig)
	}
	r, err := newRunner(pow, x0, u, cfg)
	if err != nil {
		return 0, err
	}
	var deferred []set.LazySet
	violation := 0
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

			// A violation beats invariant disjointness beats the horizon.
			if cfg.Eager {
				if !property(cand) {
					violation = k
					return true
				}
			} else {
				deferred = append(deferred, cand)
			}
			out := cfg.Term(k, cand, t0)
			if out.Skip || out.Terminate || k >= cfg.N {
				return true
			}
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
			return 0, stepErr
		}
		if done {
			break
		}
		k++
	}
	if !cfg.Eager && violation == 0 {
		for idx, cand := range deferred {
			sat := func() (sat bool) {
				defer recoverFatal(idx+1, float64(idx)*cfg.Delta, &err)
				return property(cand)
			}()
			if err != nil {
				return 0, err
			}
			if !sat {
				violation = idx + 1
				break
			}
		}
	}
	if violation > 0 {
		log.Infof("engine: property violated at step %d", violation)
	} else {
		log.Infof("engine: property holds over %d steps", k)
	}
	return violation, nil
}
