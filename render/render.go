// Package render projects flowpipes onto one or two variables and draws
// them, as PNG files through gonum/plot or as interactive HTML line charts
// through go-echarts. Projection queries only the support function of the
// stored sets, so any lazy record can be drawn without materialising it.
package render

import (
	"fmt"
	"sort"

	"github.com/mforets/blockreach/engine"
	"github.com/mforets/blockreach/partition"
	"gonum.org/v1/gonum/mat"
)

// Box2 is an axis aligned rectangle in the plane of two projected
// variables, tagged with the time interval of its record.
type Box2 struct {
	XLo, XHi float64
	YLo, YHi float64
	T0, T1   float64
}

// Series is the time projection of a flowpipe onto one variable: per record
// the time interval and the variable's bounds.
type Series struct {
	T0, T1 []float64
	Lo, Hi []float64
}

// coordinate locates variable v inside a record covering the given blocks,
// returning its offset in the record's concatenated coordinates.
func coordinate(part *partition.Partition, covered []int, v int) (int, bool) {
	b, off := part.BlockOf(v)
	pos := sort.SearchInts(covered, b)
	if pos == len(covered) || covered[pos] != b {
		return 0, false
	}
	offset := 0
	for _, i := range covered[:pos] {
		offset += part.Block(i).Len()
	}
	return offset + off, true
}

// varBounds extracts the interval of variable v from one record.
func varBounds(r engine.ReachSet, part *partition.Partition, v int) (lo, hi float64, ok bool) {
	c, ok := coordinate(part, r.Blocks, v)
	if !ok {
		return 0, 0, false
	}
	n := r.Set.Dim()
	d := mat.NewVecDense(n, nil)
	d.SetVec(c, 1)
	hi = r.Set.Support(d)
	d.SetVec(c, -1)
	lo = -r.Set.Support(d)
	return lo, hi, true
}

// Project computes the time projection of the flowpipe onto variable v.
// Records not covering v are skipped.
func Project(fp *engine.Flowpipe, part *partition.Partition, v int) (*Series, error) {
	if v < 0 || v >= part.Dim() {
		return nil, fmt.Errorf("render: variable %d out of range [0,%d)", v, part.Dim())
	}
	s := &Series{}
	for _, r := range fp.Records {
		lo, hi, ok := varBounds(r, part, v)
		if !ok {
			continue
		}
		s.T0 = append(s.T0, r.TStart)
		s.T1 = append(s.T1, r.TEnd)
		s.Lo = append(s.Lo, lo)
		s.Hi = append(s.Hi, hi)
	}
	if len(s.T0) == 0 {
		return nil, fmt.Errorf("render: no record covers variable %d", v)
	}
	return s, nil
}

// Project2 computes the planar projection of the flowpipe onto the
// variables vx and vy, one bounding rectangle per record covering both.
func Project2(fp *engine.Flowpipe, part *partition.Partition, vx, vy int) ([]Box2, error) {
	var out []Box2
	for _, r := range fp.Records {
		xlo, xhi, ok := varBounds(r, part, vx)
		if !ok {
			continue
		}
		ylo, yhi, ok := varBounds(r, part, vy)
		if !ok {
			continue
		}
		out = append(out, Box2{xlo, xhi, ylo, yhi, r.TStart, r.TEnd})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("render: no record covers variables %d and %d", vx, vy)
	}
	return out, nil
}
