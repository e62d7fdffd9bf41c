package render

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// RenderHTML writes the time projection of one variable as an interactive
// line chart with the lower and upper bound per step.
func RenderHTML(s *Series, title string, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "per step bounds of the reach set projection",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Scale: opts.Bool(true),
		}),
	)
	axis := make([]string, len(s.T0))
	lo := make([]opts.LineData, len(s.T0))
	hi := make([]opts.LineData, len(s.T0))
	for i := range s.T0 {
		axis[i] = fmt.Sprintf("%.3g", (s.T0[i]+s.T1[i])/2)
		lo[i] = opts.LineData{Value: s.Lo[i]}
		hi[i] = opts.LineData{Value: s.Hi[i]}
	}
	line.SetXAxis(axis).
		AddSeries("lower", lo).
		AddSeries("upper", hi)
	return line.Render(w)
}

// SaveHTML writes the chart of RenderHTML to a file.
func SaveHTML(s *Series, title, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return RenderHTML(s, title, f)
}
