package engine

import (
	"fmt"

	"github.com/mforets/blockreach/set"
)

// Decompose splits the initial set into one block set per partition block,
// projecting and overapproximating under the per block init policy. With
// the lazy initial set shortcut (single block partition, passthrough init)
// the original set is retained unchanged.
func Decompose(x0 set.LazySet, cfg *Config) ([]set.LazySet, error) {
	if x0.Dim() != cfg.Part.Dim() {
		return nil, fmt.Errorf("%w: initial set dimension %d, partition covers %d variables",
			ErrShape, x0.Dim(), cfg.Part.Dim())
	}
	if cfg.LazyX0 || (cfg.Part.Size() == 1 && cfg.InitPolicy(0).Kind == set.PassThrough) {
		return []set.LazySet{x0}, nil
	}
	out := make([]set.LazySet, cfg.Part.Size())
	for i := 0; i < cfg.Part.Size(); i++ {
		b := cfg.Part.Block(i)
		proj := set.NewProjection(x0, b.Lo, b.Hi)
		out[i] = cfg.InitPolicy(i).Apply(proj)
		if out[i].Dim() != b.Len() {
			return nil, fmt.Errorf("%w: block %d set has dimension %d, block length is %d",
				ErrShape, i, out[i].Dim(), b.Len())
		}
	}
	return out, nil
}
