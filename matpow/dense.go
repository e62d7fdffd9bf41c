package matpow

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Dense advances powers of a dense Phi with a preallocated scratch buffer.
// Advance writes Phi^k * Phi into the scratch and swaps, so the loop never
// allocates.
type Dense struct {
	phi     *mat.Dense
	cur     *mat.Dense
	scratch *mat.Dense
	k       int
}

// NewDense returns a dense power handle over phi, starting at exponent one.
func NewDense(phi mat.Matrix) *Dense {
	r, c := phi.Dims()
	if r != c {
		panic(errors.New("matpow: power of a non-square matrix"))
	}
	base := mat.DenseCopyOf(phi)
	cur := mat.DenseCopyOf(phi)
	return &Dense{phi: base, cur: cur, scratch: mat.NewDense(r, c, nil), k: 1}
}

// Dim returns the order of Phi.
func (d *Dense) Dim() int {
	r, _ := d.phi.Dims()
	return r
}

// K returns the current exponent.
func (d *Dense) K() int { return d.k }

// RowBlock returns rows [lo, hi) of Phi^k. The rows are copied: callers
// hold on to them across Advance calls, which recycle the backing buffer.
func (d *Dense) RowBlock(lo, hi int) mat.Matrix {
	return mat.DenseCopyOf(d.cur.Slice(lo, hi, 0, d.Dim()))
}

// SubBlock returns a copy of the sub block of Phi^k.
func (d *Dense) SubBlock(rlo, rhi, clo, chi int) mat.Matrix {
	return mat.DenseCopyOf(d.cur.Slice(rlo, rhi, clo, chi))
}

// SubBlockZero scans the sub block for a nonzero entry.
func (d *Dense) SubBlockZero(rlo, rhi, clo, chi int) bool {
	for i := rlo; i < rhi; i++ {
		for j := clo; j < chi; j++ {
			if d.cur.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

// Advance computes the next power into the scratch buffer and swaps it with
// the current power.
func (d *Dense) Advance() error {
	d.scratch.Mul(d.cur, d.phi)
	d.cur, d.scratch = d.scratch, d.cur
	d.k++
	return nil
}
