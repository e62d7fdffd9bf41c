package render

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var boxFill = color.RGBA{R: 100, G: 149, B: 237, A: 90}

// SavePNG draws the time projection of one variable as stacked step
// rectangles and writes a PNG file.
func SavePNG(s *Series, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "x"
	for i := range s.T0 {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: s.T0[i], Y: s.Lo[i]},
			{X: s.T1[i], Y: s.Lo[i]},
			{X: s.T1[i], Y: s.Hi[i]},
			{X: s.T0[i], Y: s.Hi[i]},
		})
		if err != nil {
			return err
		}
		poly.Color = boxFill
		p.Add(poly)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// SavePNG2 draws the planar projection onto two variables, one rectangle
// per step, optionally overlaying sampled trajectories, and writes a PNG
// file.
func SavePNG2(boxes []Box2, trajectories [][]*mat.VecDense, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	for _, b := range boxes {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: b.XLo, Y: b.YLo},
			{X: b.XHi, Y: b.YLo},
			{X: b.XHi, Y: b.YHi},
			{X: b.XLo, Y: b.YHi},
		})
		if err != nil {
			return err
		}
		poly.Color = boxFill
		p.Add(poly)
	}
	for _, tr := range trajectories {
		pts := make(plotter.XYs, len(tr))
		for i, v := range tr {
			pts[i] = plotter.XY{X: v.AtVec(0), Y: v.AtVec(1)}
		}
		if err := plotutil.AddLines(p, pts); err != nil {
			return err
		}
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}
