// Package partition represents ordered partitions of the state variables
// {0,...,n-1} into contiguous blocks. The reachability engine propagates one
// low-dimensional set per block, so the partition fixes the shape of every
// decomposed set in a run.
package partition

import (
	"errors"
	"fmt"
	"sort"
)

// Block is a contiguous, ascending range of variable indices [Lo, Hi).
type Block struct {
	Lo int
	Hi int
}

// Len returns the number of variables in the block.
func (b Block) Len() int {
	return b.Hi - b.Lo
}

// Contains reports whether variable v falls inside the block.
func (b Block) Contains(v int) bool {
	return v >= b.Lo && v < b.Hi
}

// Partition is an ordered sequence of blocks tiling {0,...,n-1} exactly once.
type Partition struct {
	blocks []Block
	n      int
}

// New validates and builds a partition of n variables. The blocks must be
// non-empty, in ascending order and concatenate to exactly [0, n).
func New(n int, blocks []Block) (*Partition, error) {
	if n < 1 {
		return nil, fmt.Errorf("partition: dimension must be positive, got %d", n)
	}
	if len(blocks) == 0 {
		return nil, errors.New("partition: no blocks given")
	}
	next := 0
	for index, b := range blocks {
		if b.Len() < 1 {
			return nil, fmt.Errorf("partition: block %d is empty", index)
		}
		if b.Lo != next {
			return nil, fmt.Errorf("partition: block %d starts at %d, expected %d", index, b.Lo, next)
		}
		next = b.Hi
	}
	if next != n {
		return nil, fmt.Errorf("partition: blocks cover [0,%d), expected [0,%d)", next, n)
	}
	p := Partition{make([]Block, len(blocks)), n}
	copy(p.blocks, blocks)
	return &p, nil
}

// Uniform builds the partition of n variables into blocks of the given size.
// When size does not divide n, the last block is shorter and holds the
// remaining variables.
func Uniform(n, size int) *Partition {
	if size < 1 {
		panic(errors.New("partition: block size must be positive"))
	}
	var blocks []Block
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		blocks = append(blocks, Block{lo, hi})
	}
	p, err := New(n, blocks)
	if err != nil {
		panic(err)
	}
	return p
}

// Singleton builds the finest partition, one variable per block.
func Singleton(n int) *Partition {
	return Uniform(n, 1)
}

// Trivial builds the partition with a single block spanning all n variables.
func Trivial(n int) *Partition {
	return Uniform(n, n)
}

// Dim returns the total number of variables.
func (p *Partition) Dim() int {
	return p.n
}

// Size returns the number of blocks.
func (p *Partition) Size() int {
	return len(p.blocks)
}

// Block returns the i-th block.
func (p *Partition) Block(i int) Block {
	return p.blocks[i]
}

// Blocks returns the blocks in partition order. The returned slice must not
// be modified.
func (p *Partition) Blocks() []Block {
	return p.blocks
}

// BlockOf returns the index of the block containing variable v and the
// offset of v within that block.
func (p *Partition) BlockOf(v int) (block, offset int) {
	if v < 0 || v >= p.n {
		panic(fmt.Errorf("partition: variable %d out of range [0,%d)", v, p.n))
	}
	// Blocks are sorted by construction.
	block = sort.Search(len(p.blocks), func(i int) bool {
		return p.blocks[i].Hi > v
	})
	return block, v - p.blocks[block].Lo
}

// BlocksOf returns the ascending indices of the blocks containing at least
// one of the given variables. vars must be sorted ascending.
func (p *Partition) BlocksOf(vars []int) []int {
	if len(vars) == 0 {
		all := make([]int, len(p.blocks))
		for i := range all {
			all[i] = i
		}
		return all
	}
	var res []int
	last := -1
	for _, v := range vars {
		b, _ := p.BlockOf(v)
		if b != last {
			res = append(res, b)
			last = b
		}
	}
	return res
}

// DiffBlocksOf returns the ascending indices of the blocks containing none
// of the given variables, the complement of BlocksOf.
func (p *Partition) DiffBlocksOf(vars []int) []int {
	in := p.BlocksOf(vars)
	var res []int
	next := 0
	for i := 0; i < len(p.blocks); i++ {
		if next < len(in) && in[next] == i {
			next++
			continue
		}
		res = append(res, i)
	}
	return res
}
