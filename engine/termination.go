package engine

import "github.com/mforets/blockreach/set"

// Outcome is the verdict of a termination policy at one step.
type Outcome struct {
	// Terminate stops the iteration after the current step.
	Terminate bool
	// Skip marks the current step as not reachable, so it is not stored.
	Skip bool
	// Set is the current set intersected with the invariant when one is in
	// effect, the unchanged input otherwise.
	Set set.LazySet
}

// TerminationPolicy decides per step whether the iteration goes on. It is
// also the engine's only cancellation channel: callers wrap a policy to
// express timeouts or external aborts, which take effect at the next step
// boundary.
type TerminationPolicy func(k int, cur set.LazySet, t0 float64) Outcome

// Unbounded never terminates. Pair it with a finite horizon or a wrapped
// cancellation check.
func Unbounded() TerminationPolicy {
	return func(k int, cur set.LazySet, t0 float64) Outcome {
		return Outcome{Set: cur}
	}
}

// Horizon terminates after step n.
func Horizon(n int) TerminationPolicy {
	return func(k int, cur set.LazySet, t0 float64) Outcome {
		return Outcome{Terminate: k >= n, Set: cur}
	}
}

// Invariant terminates with skip as soon as the current set no longer meets
// the invariant polyhedron given by the conjunction of the constraints.
// Non-skipped steps carry the lazy intersection with the invariant.
func Invariant(constraints []set.HalfSpace) TerminationPolicy {
	return func(k int, cur set.LazySet, t0 float64) Outcome {
		if set.DisjointFromIntersection(cur, constraints) {
			return Outcome{Terminate: true, Skip: true, Set: cur}
		}
		return Outcome{Set: set.NewIntersection(cur, constraints)}
	}
}

// InvariantHorizon combines both: the horizon ends the run normally,
// invariant disjointness ends it with skip. Disjointness is checked first.
func InvariantHorizon(n int, constraints []set.HalfSpace) TerminationPolicy {
	inv := Invariant(constraints)
	return func(k int, cur set.LazySet, t0 float64) Outcome {
		out := inv(k, cur, t0)
		if out.Skip {
			return out
		}
		out.Terminate = k >= n
		return out
	}
}
