// Package matpow produces row blocks of successive powers of the
// discretised state transition matrix. The reachability engine never asks
// for a whole power, only for the rows of the blocks it is currently
// propagating, so every backend exposes the same narrow handle and is free
// to organise the power computation as it sees fit.
package matpow

import "gonum.org/v1/gonum/mat"

// MatrixPower is a handle over the powers of a square matrix Phi. A fresh
// handle is at exponent one; Advance moves it to the next exponent. After
// k-1 calls to Advance the handle yields rows of Phi^k.
type MatrixPower interface {
	// Dim returns the order of Phi.
	Dim() int
	// K returns the current exponent.
	K() int
	// RowBlock returns the rows [lo, hi) of the current power, all columns.
	RowBlock(lo, hi int) mat.Matrix
	// SubBlock returns the sub matrix with rows [rlo, rhi) and columns
	// [clo, chi) of the current power.
	SubBlock(rlo, rhi, clo, chi int) mat.Matrix
	// SubBlockZero reports whether the sub block holds only zeros, without
	// materialising it. Callers use this to skip vanished cross couplings.
	SubBlockZero(rlo, rhi, clo, chi int) bool
	// Advance moves the handle to the next exponent.
	Advance() error
}
