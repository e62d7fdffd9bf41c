package engine

import "github.com/mforets/blockreach/set"

// ReachSet is one timestamped entry of a flowpipe. Its set covers the time
// interval [TStart, TEnd] and is the cartesian product of the block sets of
// the partition blocks listed in Blocks, in ascending order. When the
// selective propagation is active the record may cover only the interesting
// blocks.
type ReachSet struct {
	Set    set.LazySet
	TStart float64
	TEnd   float64
	Blocks []int
}

// StopReason tells how a reachability run ended.
type StopReason int

const (
	// StopHorizon means the run covered the full requested horizon.
	StopHorizon StopReason = iota
	// StopSatisfied means the termination policy ended the run early and
	// the last computed step was stored.
	StopSatisfied
	// StopSkip means the termination policy ended the run early and asked
	// for the last step to be discarded, typically because the reach set
	// left the invariant.
	StopSkip
)

// Flowpipe is the ordered sequence of reach sets of one run, truncated to
// its actual length when the run ended early.
type Flowpipe struct {
	Records []ReachSet
	Reason  StopReason
}

// Len returns the number of stored steps.
func (f *Flowpipe) Len() int { return len(f.Records) }

// Early reports whether the run ended before its horizon.
func (f *Flowpipe) Early() bool { return f.Reason != StopHorizon }
