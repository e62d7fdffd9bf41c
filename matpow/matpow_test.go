package matpow

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func densePower(phi mat.Matrix, k int) *mat.Dense {
	out := mat.DenseCopyOf(phi)
	for i := 1; i < k; i++ {
		next := new(mat.Dense)
		next.Mul(out, phi)
		out = next
	}
	return out
}

func matricesEqual(a, b mat.Matrix, tol float64) bool {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != cb {
		return false
	}
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

func TestSparseAndDenseAgree(t *testing.T) {
	phi := mat.NewDense(4, 4, []float64{
		1, 0.1, 0, 0,
		0, 1, 0.1, 0,
		0, 0, 1, 0.1,
		0, 0, 0, 1,
	})
	sp := NewSparse(phi, DefaultSparseTol)
	de := NewDense(phi)
	for k := 1; k <= 6; k++ {
		want := densePower(phi, k)
		if sp.K() != k || de.K() != k {
			t.Fatalf("exponent mismatch at k=%d: sparse %d, dense %d", k, sp.K(), de.K())
		}
		if !matricesEqual(sp.RowBlock(0, 4), want, tol) {
			t.Errorf("sparse power %d differs from reference", k)
		}
		if !matricesEqual(de.RowBlock(1, 3), want.Slice(1, 3, 0, 4), tol) {
			t.Errorf("dense row block of power %d differs from reference", k)
		}
		if !matricesEqual(sp.SubBlock(0, 2, 2, 4), want.Slice(0, 2, 2, 4), tol) {
			t.Errorf("sparse sub block of power %d differs from reference", k)
		}
		if err := sp.Advance(); err != nil {
			t.Fatal(err)
		}
		if err := de.Advance(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSparseZeroBlocks(t *testing.T) {
	// Two decoupled 2x2 blocks: cross blocks stay zero for every power.
	phi := mat.NewDense(4, 4, []float64{
		0, -1, 0, 0,
		1, 0, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 2,
	})
	sp := NewSparse(phi, DefaultSparseTol)
	for k := 1; k <= 5; k++ {
		if !sp.SubBlockZero(0, 2, 2, 4) || !sp.SubBlockZero(2, 4, 0, 2) {
			t.Errorf("cross block not zero at power %d", k)
		}
		if sp.SubBlockZero(0, 2, 0, 2) {
			t.Errorf("diagonal block reported zero at power %d", k)
		}
		if err := sp.Advance(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDenseRowBlockSurvivesAdvance(t *testing.T) {
	phi := mat.NewDense(2, 2, []float64{1, 1, 0, 1})
	de := NewDense(phi)
	row := de.RowBlock(0, 1)
	before := row.At(0, 1)
	if err := de.Advance(); err != nil {
		t.Fatal(err)
	}
	if err := de.Advance(); err != nil {
		t.Fatal(err)
	}
	if row.At(0, 1) != before {
		t.Error("row block mutated by later advances; rows must be copies")
	}
}

func TestLazyExpMatchesDensePowers(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	delta := 0.1
	var phi mat.Dense
	scaled := mat.NewDense(2, 2, nil)
	scaled.Scale(delta, a)
	phi.Exp(scaled)

	le := NewLazyExp(a, delta, false, nil)
	de := NewDense(&phi)
	for k := 1; k <= 8; k++ {
		if !matricesEqual(le.RowBlock(0, 2), de.RowBlock(0, 2), 1e-8) {
			t.Errorf("lazy exponential differs from dense power at k=%d", k)
		}
		if err := le.Advance(); err != nil {
			t.Fatal(err)
		}
		if err := de.Advance(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLazyExpSparsityFlag(t *testing.T) {
	// A diagonal A keeps exp(A*delta*k) diagonal, so off diagonal blocks
	// are zero exactly when sparsity is assumed.
	a := mat.NewDense(2, 2, []float64{-1, 0, 0, -2})
	le := NewLazyExp(a, 0.5, true, nil)
	if !le.SubBlockZero(0, 1, 1, 2) {
		t.Error("off diagonal block of a diagonal exponential should be zero")
	}
	blind := NewLazyExp(a, 0.5, false, nil)
	if blind.SubBlockZero(0, 1, 1, 2) {
		t.Error("without the sparsity assumption no block may be declared zero")
	}
}
