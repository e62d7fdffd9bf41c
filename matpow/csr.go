package matpow

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// csr holds a sparse matrix in compressed sparse row format: rowPtr has one
// entry per row plus a terminator, colInd and values hold the nonzeros of
// each row in ascending column order.
type csr struct {
	rows, cols int
	rowPtr     []int
	colInd     []int
	values     []float64
}

// newCSR compresses a dense matrix, dropping entries with magnitude at or
// below tol.
func newCSR(a mat.Matrix, tol float64) *csr {
	r, c := a.Dims()
	m := &csr{rows: r, cols: c, rowPtr: make([]int, r+1)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if v > tol || v < -tol {
				m.colInd = append(m.colInd, j)
				m.values = append(m.values, v)
			}
		}
		m.rowPtr[i+1] = len(m.colInd)
	}
	return m
}

// nnz returns the number of stored nonzeros.
func (m *csr) nnz() int { return len(m.values) }

// mul returns the sparse product m * other. The scatter based row by row
// product keeps a dense workspace of one output row, so the cost is
// proportional to the flops of the sparse product, not to rows*cols.
func (m *csr) mul(other *csr) *csr {
	if m.cols != other.rows {
		panic(errors.New("matpow: sparse product dimensions don't agree"))
	}
	out := &csr{rows: m.rows, cols: other.cols, rowPtr: make([]int, m.rows+1)}
	work := make([]float64, other.cols)
	mark := make([]int, other.cols)
	for i := range mark {
		mark[i] = -1
	}
	for i := 0; i < m.rows; i++ {
		var touched []int
		for p := m.rowPtr[i]; p < m.rowPtr[i+1]; p++ {
			j := m.colInd[p]
			v := m.values[p]
			for q := other.rowPtr[j]; q < other.rowPtr[j+1]; q++ {
				k := other.colInd[q]
				if mark[k] != i {
					mark[k] = i
					work[k] = 0
					touched = append(touched, k)
				}
				work[k] += v * other.values[q]
			}
		}
		sort.Ints(touched)
		for _, k := range touched {
			if work[k] != 0 {
				out.colInd = append(out.colInd, k)
				out.values = append(out.values, work[k])
			}
		}
		out.rowPtr[i+1] = len(out.colInd)
	}
	return out
}

// subBlock materialises rows [rlo, rhi) and columns [clo, chi) as a dense
// matrix.
func (m *csr) subBlock(rlo, rhi, clo, chi int) *mat.Dense {
	out := mat.NewDense(rhi-rlo, chi-clo, nil)
	for i := rlo; i < rhi; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		from := sort.SearchInts(m.colInd[start:end], clo) + start
		for p := from; p < end && m.colInd[p] < chi; p++ {
			out.Set(i-rlo, m.colInd[p]-clo, m.values[p])
		}
	}
	return out
}

// subBlockZero reports whether rows [rlo, rhi) carry no nonzero in columns
// [clo, chi).
func (m *csr) subBlockZero(rlo, rhi, clo, chi int) bool {
	for i := rlo; i < rhi; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		from := sort.SearchInts(m.colInd[start:end], clo) + start
		if from < end && m.colInd[from] < chi {
			return false
		}
	}
	return true
}

// Sparse advances powers of a sparse Phi by iterated sparse products. The
// base matrix is compressed once and the running power replaced on every
// Advance.
type Sparse struct {
	phi *csr
	cur *csr
	k   int
}

// DefaultSparseTol is the magnitude below which dense entries are dropped
// when compressing.
const DefaultSparseTol = 0.0

// NewSparse returns a sparse power handle over phi, starting at exponent
// one.
func NewSparse(phi mat.Matrix, tol float64) *Sparse {
	r, c := phi.Dims()
	if r != c {
		panic(errors.New("matpow: power of a non-square matrix"))
	}
	base := newCSR(phi, tol)
	return &Sparse{phi: base, cur: base, k: 1}
}

// Dim returns the order of Phi.
func (s *Sparse) Dim() int { return s.phi.rows }

// K returns the current exponent.
func (s *Sparse) K() int { return s.k }

// RowBlock returns rows [lo, hi) of Phi^k.
func (s *Sparse) RowBlock(lo, hi int) mat.Matrix {
	return s.cur.subBlock(lo, hi, 0, s.phi.cols)
}

// SubBlock returns the dense sub block of Phi^k.
func (s *Sparse) SubBlock(rlo, rhi, clo, chi int) mat.Matrix {
	return s.cur.subBlock(rlo, rhi, clo, chi)
}

// SubBlockZero reports whether the sub block of Phi^k is structurally zero.
func (s *Sparse) SubBlockZero(rlo, rhi, clo, chi int) bool {
	return s.cur.subBlockZero(rlo, rhi, clo, chi)
}

// Advance replaces Phi^k by Phi^k * Phi.
func (s *Sparse) Advance() error {
	s.cur = s.cur.mul(s.phi)
	s.k++
	return nil
}

// NNZ returns the number of nonzeros of the current power, a fill-in
// indicator for logging.
func (s *Sparse) NNZ() int { return s.cur.nnz() }
