package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/mforets/blockreach/partition"
	"github.com/mforets/blockreach/set"
	"gonum.org/v1/gonum/mat"
)

// Options is the user facing configuration of a reachability run. The zero
// value of every optional field means "use the default". Options are
// validated and normalised exactly once, by Validate; the engine hot path
// only ever sees the resulting Config.
type Options struct {
	// Delta is the time step.
	Delta float64
	// T is the time horizon; the step count is ceil(T/Delta). Ignored when
	// N is set directly.
	T float64
	// N is the step count, overriding T when positive.
	N int

	// Partition fixes the block structure of every decomposed set.
	Partition *partition.Partition
	// Vars lists the variables of interest, sorted ascending. Empty means
	// all variables.
	Vars []int

	// BlockOptionsInit and BlockOptionsIter are the uniform approximation
	// policies used when decomposing the initial set and when collapsing
	// per step sets. Nil selects the per dimension default.
	BlockOptionsInit *set.Policy
	BlockOptionsIter *set.Policy
	// BlockMapInit and BlockMapIter override the uniform policies for the
	// named blocks. An explicit entry always wins over the uniform choice.
	BlockMapInit map[int]set.Policy
	BlockMapIter map[int]set.Policy

	// LazyInputsInterval controls when the input accumulator collapses its
	// lazy sum: 0 collapses every step, -1 never, m > 0 every m-th step.
	LazyInputsInterval int
	// CollapsePredicate, when set, replaces LazyInputsInterval entirely.
	CollapsePredicate func(k int) bool

	// AssumeHomogeneous ignores the input set even when one is supplied.
	AssumeHomogeneous bool
	// AssumeSparse lets the lazy exponential backend treat materialised
	// powers as sparse when answering zero block queries.
	AssumeSparse bool
	// LazyX0 keeps the initial set as a single unchanged lazy block. Only
	// valid with the trivial single block partition.
	LazyX0 bool

	// DeferredChecking delays property evaluation in check mode until the
	// iteration has finished. The default is eager, per step evaluation.
	DeferredChecking bool

	// OutputFunction, when set, is a linear map applied to each full
	// dimensional reach set before it is stored.
	OutputFunction mat.Matrix

	// GuardsProj is a union of half spaces over the concatenated
	// coordinates of the interesting blocks; a nonempty intersection with
	// the candidate set triggers cross guard splicing.
	GuardsProj []set.HalfSpace

	// Termination is the per step stop policy. Nil defaults to the horizon
	// policy over N steps.
	Termination TerminationPolicy

	// Parallel fans the per block work of one step out over goroutines.
	// The serial contract is preserved either way.
	Parallel bool
}

// Config is a validated, normalised run configuration.
type Config struct {
	Delta float64
	N     int

	Part *partition.Partition
	Vars []int

	// Interesting and Cheap split the block indices by the variables of
	// interest; both ascending, together covering every block.
	Interesting []int
	Cheap       []int

	initUniform *set.Policy
	iterUniform *set.Policy
	initMap     map[int]set.Policy
	iterMap     map[int]set.Policy

	Collapse    func(k int) bool
	Homogeneous bool
	AssumeSpare bool
	LazyX0      bool
	Eager       bool
	Output      mat.Matrix
	Guards      []set.HalfSpace
	Term        TerminationPolicy
	Parallel    bool
}

// Validate checks the options against each other and against the partition
// and returns the normalised configuration. All failures wrap ErrConfig.
func (o *Options) Validate() (*Config, error) {
	if o.Partition == nil {
		return nil, fmt.Errorf("%w: no partition given", ErrConfig)
	}
	n := o.Partition.Dim()

	steps := o.N
	if steps == 0 {
		if o.Delta <= 0 {
			return nil, fmt.Errorf("%w: time step must be positive, got %g", ErrConfig, o.Delta)
		}
		if o.T <= 0 {
			return nil, fmt.Errorf("%w: time horizon must be positive, got %g", ErrConfig, o.T)
		}
		steps = int(math.Ceil(o.T / o.Delta))
	}
	if steps < 1 {
		return nil, fmt.Errorf("%w: step count must be at least one, got %d", ErrConfig, steps)
	}

	if !sort.IntsAreSorted(o.Vars) {
		return nil, fmt.Errorf("%w: variables of interest must be sorted ascending", ErrConfig)
	}
	for _, v := range o.Vars {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("%w: variable %d out of range [0,%d)", ErrConfig, v, n)
		}
	}

	if err := checkPolicies(o.Partition, o.BlockOptionsInit, o.BlockMapInit); err != nil {
		return nil, err
	}
	if err := checkPolicies(o.Partition, o.BlockOptionsIter, o.BlockMapIter); err != nil {
		return nil, err
	}

	if o.LazyX0 {
		if o.Partition.Size() != 1 {
			return nil, fmt.Errorf("%w: lazy initial set needs the single block partition", ErrConfig)
		}
	}

	if o.LazyInputsInterval < -1 {
		return nil, fmt.Errorf("%w: collapse interval must be -1, 0 or positive, got %d", ErrConfig, o.LazyInputsInterval)
	}
	collapse := o.CollapsePredicate
	if collapse == nil {
		collapse = intervalPredicate(o.LazyInputsInterval)
	}

	interesting := o.Partition.BlocksOf(o.Vars)
	cheap := o.Partition.DiffBlocksOf(o.Vars)

	if o.OutputFunction != nil {
		_, c := o.OutputFunction.Dims()
		if c != n {
			return nil, fmt.Errorf("%w: output function has %d columns, state dimension is %d", ErrConfig, c, n)
		}
		if len(cheap) != 0 {
			return nil, fmt.Errorf("%w: output function needs full dimensional records, drop the variables of interest", ErrConfig)
		}
	}

	width := 0
	for _, i := range interesting {
		width += o.Partition.Block(i).Len()
	}
	for _, g := range o.GuardsProj {
		if g.Dim() != width {
			return nil, fmt.Errorf("%w: guard dimension %d doesn't match the interesting subspace dimension %d", ErrConfig, g.Dim(), width)
		}
	}

	term := o.Termination
	if term == nil {
		term = Horizon(steps)
	}

	return &Config{
		Delta:       o.Delta,
		N:           steps,
		Part:        o.Partition,
		Vars:        o.Vars,
		Interesting: interesting,
		Cheap:       cheap,
		initUniform: o.BlockOptionsInit,
		iterUniform: o.BlockOptionsIter,
		initMap:     o.BlockMapInit,
		iterMap:     o.BlockMapIter,
		Collapse:    collapse,
		Homogeneous: o.AssumeHomogeneous,
		AssumeSpare: o.AssumeSparse,
		LazyX0:      o.LazyX0,
		Eager:       !o.DeferredChecking,
		Output:      o.OutputFunction,
		Guards:      o.GuardsProj,
		Term:        term,
		Parallel:    o.Parallel,
	}, nil
}

func checkPolicies(p *partition.Partition, uniform *set.Policy, perBlock map[int]set.Policy) error {
	if uniform != nil {
		if err := checkPolicy(*uniform); err != nil {
			return err
		}
	}
	for i, pol := range perBlock {
		if i < 0 || i >= p.Size() {
			return fmt.Errorf("%w: policy for block %d, partition has %d blocks", ErrConfig, i, p.Size())
		}
		if err := checkPolicy(pol); err != nil {
			return err
		}
	}
	return nil
}

func checkPolicy(p set.Policy) error {
	if p.Kind == set.EpsPolygon && p.Eps <= 0 {
		return fmt.Errorf("%w: epsilon close polygon needs a positive tolerance", ErrConfig)
	}
	if p.Kind != set.EpsPolygon && p.Eps != 0 {
		return fmt.Errorf("%w: tolerance given for a policy that doesn't refine", ErrConfig)
	}
	return nil
}

func intervalPredicate(m int) func(k int) bool {
	switch {
	case m == -1:
		return func(int) bool { return false }
	case m == 0:
		return func(int) bool { return true }
	default:
		return func(k int) bool { return k%m == 0 }
	}
}

// InitPolicy resolves the decomposition policy of block i: the explicit per
// block entry wins over the uniform policy, and a missing choice falls back
// to the per dimension default.
func (c *Config) InitPolicy(i int) set.Policy {
	return c.resolve(i, c.initMap, c.initUniform)
}

// IterPolicy resolves the per step collapse policy of block i, with the same
// precedence as InitPolicy.
func (c *Config) IterPolicy(i int) set.Policy {
	return c.resolve(i, c.iterMap, c.iterUniform)
}

func (c *Config) resolve(i int, perBlock map[int]set.Policy, uniform *set.Policy) set.Policy {
	if pol, ok := perBlock[i]; ok {
		return pol
	}
	if uniform != nil {
		return *uniform
	}
	return set.Default(c.Part.Block(i).Len())
}
