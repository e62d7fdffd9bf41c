package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/mforets/blockreach/engine"
	"github.com/mforets/blockreach/partition"
	"github.com/mforets/blockreach/render"
)

func vec(data []float64) *mat.VecDense {
	return mat.NewVecDense(len(data), data)
}

// renderOutputs writes the requested PNG and HTML projections of the
// flowpipe, if any.
func renderOutputs(cmd *cobra.Command, fp *engine.Flowpipe, part *partition.Partition) error {
	png, _ := cmd.Flags().GetString("png")
	html, _ := cmd.Flags().GetString("html")
	if png != "" {
		boxes, err := render.Project2(fp, part, 0, 1)
		if err != nil {
			return err
		}
		if err := render.SavePNG2(boxes, nil, "flowpipe", png); err != nil {
			return err
		}
		log.Infof("wrote %s", png)
	}
	if html != "" {
		series, err := render.Project(fp, part, 0)
		if err != nil {
			return err
		}
		if err := render.SaveHTML(series, "flowpipe", html); err != nil {
			return err
		}
		log.Infof("wrote %s", html)
	}
	return nil
}
