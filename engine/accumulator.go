package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/mforets/blockreach/matpow"
	"github.com/mforets/blockreach/set"
)

// accumulator carries the per block input contribution across steps. Each
// tracked block owns a cached Minkowski sum array; the collapse schedule
// decides when the array is overapproximated in place to bound its growth.
type accumulator struct {
	cfg    *Config
	u      set.LazySet
	blocks []int
	arrs   []*set.MinkowskiSumArray
	vals   []set.LazySet
	pos    map[int]int
}

// newAccumulator prepares the accumulated input of the second step, the
// input set itself projected onto each tracked block and approximated under
// the block's iteration policy.
func newAccumulator(cfg *Config, u set.LazySet, blocks []int) *accumulator {
	a := &accumulator{
		cfg:    cfg,
		u:      u,
		blocks: blocks,
		arrs:   make([]*set.MinkowskiSumArray, len(blocks)),
		vals:   make([]set.LazySet, len(blocks)),
		pos:    make(map[int]int, len(blocks)),
	}
	for p, i := range blocks {
		b := cfg.Part.Block(i)
		first := cfg.IterPolicy(i).Apply(set.NewProjection(u, b.Lo, b.Hi))
		a.arrs[p] = set.NewMinkowskiSumArray(first)
		a.vals[p] = a.arrs[p]
		a.pos[i] = p
	}
	return a
}

// value returns the accumulated contribution for block i at the current
// step.
func (a *accumulator) value(i int) set.LazySet {
	return a.vals[a.pos[i]]
}

// advance folds the next input term, the current matrix power rows applied
// to the input set, into every tracked block and collapses when the
// schedule fires. pow must still hold the power used for step k; next is
// the step the accumulator is being prepared for.
func (a *accumulator) advance(next int, pow matpow.MatrixPower) {
	collapse := a.cfg.Collapse(next)
	for p, i := range a.blocks {
		b := a.cfg.Part.Block(i)
		row := pow.RowBlock(b.Lo, b.Hi)
		a.arrs[p].Append(set.NewLinearMap(row, a.u))
		if collapse {
			a.vals[p] = a.arrs[p].Collapse(a.cfg.IterPolicy(i))
		} else {
			a.vals[p] = a.arrs[p]
		}
	}
	if collapse {
		log.Debugf("engine: collapsed input accumulator before step %d", next)
	}
}
