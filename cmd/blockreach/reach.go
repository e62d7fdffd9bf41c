package main

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mforets/blockreach"
	"github.com/mforets/blockreach/engine"
	"github.com/mforets/blockreach/partition"
	"github.com/mforets/blockreach/set"
)

var reachCmd = &cobra.Command{
	Use:   "reach",
	Short: "Compute and render the flowpipe of a benchmark system",
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, opts, backend, err := setup(cmd)
		if err != nil {
			return err
		}
		fp, err := blockreach.Reach(sys, backend, opts)
		if err != nil {
			return err
		}
		log.Infof("flowpipe with %d steps (early stop: %v)", fp.Len(), fp.Early())
		return renderOutputs(cmd, fp, opts.Partition)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a variable stays below a bound over the horizon",
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, opts, backend, err := setup(cmd)
		if err != nil {
			return err
		}
		v, _ := cmd.Flags().GetInt("var")
		bound, _ := cmd.Flags().GetFloat64("bound")
		property, err := boundProperty(opts, v, bound)
		if err != nil {
			return err
		}
		k, err := blockreach.Check(sys, property, backend, opts)
		if err != nil {
			return err
		}
		if k == 0 {
			fmt.Println("property holds over the whole horizon")
		} else {
			fmt.Printf("property violated at step %d (t in [%g, %g])\n",
				k, float64(k-1)*opts.Delta, float64(k)*opts.Delta)
		}
		return nil
	},
}

func init() {
	reachCmd.Flags().String("png", "", "write the 2D projection onto variables 0 and 1 to a PNG file (--vars does not change them)")
	reachCmd.Flags().String("html", "", "write the time projection of variable 0 to an HTML file (--vars does not change it)")
	reachCmd.Flags().String("policy", "box", "iteration policy: box, octagon, boxdiag, eps")
	reachCmd.Flags().Float64("eps", 0.01, "tolerance for the eps policy")
	checkCmd.Flags().Int("var", 0, "variable the property constrains")
	checkCmd.Flags().Float64("bound", 1, "upper bound the variable must respect")
	rootCmd.AddCommand(reachCmd, checkCmd)
}

func setup(cmd *cobra.Command) (*blockreach.AffineSystem, *engine.Options, blockreach.Backend, error) {
	name, _ := cmd.Flags().GetString("system")
	size, _ := cmd.Flags().GetInt("size")
	delta, _ := cmd.Flags().GetFloat64("delta")
	horizon, _ := cmd.Flags().GetFloat64("horizon")
	blockSize, _ := cmd.Flags().GetInt("block-size")
	vars, _ := cmd.Flags().GetIntSlice("vars")
	backendName, _ := cmd.Flags().GetString("backend")

	var sys *blockreach.AffineSystem
	switch name {
	case "rotation":
		sys = blockreach.NewRotation()
	case "chain":
		u := set.NewBallInf(unitFirst(size), 0.05)
		sys = blockreach.NewIntegratorChain(size, 1, u)
	case "translation":
		sys = blockreach.NewTranslation(size, set.NewSingleton(unitFirst(size)))
	case "decoupled":
		sys = blockreach.NewDecoupledBlocks(size)
	default:
		return nil, nil, 0, fmt.Errorf("unknown system %q", name)
	}

	var backend blockreach.Backend
	switch backendName {
	case "dense":
		backend = blockreach.BackendDense
	case "sparse":
		backend = blockreach.BackendSparse
	case "exp":
		backend = blockreach.BackendLazyExp
	default:
		return nil, nil, 0, fmt.Errorf("unknown backend %q", backendName)
	}

	sort.Ints(vars)
	opts := &engine.Options{
		Delta:        delta,
		T:            horizon,
		Partition:    partition.Uniform(sys.Dim(), blockSize),
		Vars:         vars,
		AssumeSparse: backend == blockreach.BackendLazyExp,
	}
	if pol, err := iterPolicy(cmd); err != nil {
		return nil, nil, 0, err
	} else if pol != nil {
		opts.BlockOptionsIter = pol
	}
	return sys, opts, backend, nil
}

func iterPolicy(cmd *cobra.Command) (*set.Policy, error) {
	if cmd.Flags().Lookup("policy") == nil {
		return nil, nil
	}
	name, _ := cmd.Flags().GetString("policy")
	eps, _ := cmd.Flags().GetFloat64("eps")
	switch name {
	case "box":
		return &set.Policy{Kind: set.BoxHull}, nil
	case "octagon":
		return &set.Policy{Kind: set.OctagonTemplate}, nil
	case "boxdiag":
		return &set.Policy{Kind: set.BoxDiagTemplate}, nil
	case "eps":
		return &set.Policy{Kind: set.EpsPolygon, Eps: eps}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}

// boundProperty builds the predicate x_v <= bound over the interesting
// subspace, rewriting the variable index into record coordinates.
func boundProperty(opts *engine.Options, v int, bound float64) (engine.Property, error) {
	cfg, err := opts.Validate()
	if err != nil {
		return nil, err
	}
	coord := -1
	offset := 0
	for _, i := range cfg.Interesting {
		b := cfg.Part.Block(i)
		if b.Contains(v) {
			coord = offset + v - b.Lo
			break
		}
		offset += b.Len()
	}
	if coord < 0 {
		return nil, fmt.Errorf("variable %d is not covered by the variables of interest", v)
	}
	return func(x set.LazySet) bool {
		d := make([]float64, x.Dim())
		d[coord] = 1
		return x.Support(vec(d)) <= bound
	}, nil
}

func unitFirst(n int) []float64 {
	out := make([]float64, n)
	out[0] = 1
	return out
}
