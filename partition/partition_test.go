package partition

import "testing"

func TestNewRejectsBadPartitions(t *testing.T) {
	cases := []struct {
		name   string
		n      int
		blocks []Block
	}{
		{"empty block", 2, []Block{{0, 0}, {0, 2}}},
		{"gap", 4, []Block{{0, 2}, {3, 4}}},
		{"overlap", 4, []Block{{0, 2}, {1, 4}}},
		{"short cover", 4, []Block{{0, 2}}},
		{"over cover", 3, []Block{{0, 2}, {2, 4}}},
		{"no blocks", 3, nil},
		{"bad dimension", 0, []Block{{0, 1}}},
	}
	for _, c := range cases {
		if _, err := New(c.n, c.blocks); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestUniformCoversExactly(t *testing.T) {
	p := Uniform(7, 2)
	if p.Size() != 4 {
		t.Fatalf("expected 4 blocks, got %d", p.Size())
	}
	next := 0
	for i := 0; i < p.Size(); i++ {
		b := p.Block(i)
		if b.Lo != next {
			t.Errorf("block %d starts at %d, expected %d", i, b.Lo, next)
		}
		next = b.Hi
	}
	if next != 7 {
		t.Errorf("blocks cover [0,%d), expected [0,7)", next)
	}
	if last := p.Block(3); last.Len() != 1 {
		t.Errorf("remainder block has length %d, expected 1", last.Len())
	}
}

func TestBlockOf(t *testing.T) {
	p, err := New(5, []Block{{0, 2}, {2, 4}, {4, 5}})
	if err != nil {
		t.Fatal(err)
	}
	for v := 0; v < 5; v++ {
		b, off := p.BlockOf(v)
		if !p.Block(b).Contains(v) {
			t.Errorf("variable %d mapped to block %d which doesn't contain it", v, b)
		}
		if p.Block(b).Lo+off != v {
			t.Errorf("variable %d: offset %d in block %d doesn't recover it", v, off, b)
		}
	}
}

func TestBlocksOfComplement(t *testing.T) {
	p, err := New(5, []Block{{0, 2}, {2, 4}, {4, 5}})
	if err != nil {
		t.Fatal(err)
	}
	in := p.BlocksOf([]int{0, 1})
	out := p.DiffBlocksOf([]int{0, 1})
	if len(in) != 1 || in[0] != 0 {
		t.Errorf("interesting blocks = %v, expected [0]", in)
	}
	if len(out) != 2 || out[0] != 1 || out[1] != 2 {
		t.Errorf("cheap blocks = %v, expected [1 2]", out)
	}
	// Union must cover every block index exactly once, in order.
	seen := make([]bool, p.Size())
	for _, i := range append(append([]int{}, in...), out...) {
		if seen[i] {
			t.Errorf("block %d appears twice", i)
		}
		seen[i] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("block %d missing from the split", i)
		}
	}
}

func TestBlocksOfEmptyMeansAll(t *testing.T) {
	p := Uniform(6, 2)
	in := p.BlocksOf(nil)
	if len(in) != p.Size() {
		t.Fatalf("empty variable list selected %d blocks, expected all %d", len(in), p.Size())
	}
	if len(p.DiffBlocksOf(nil)) != 0 {
		t.Error("empty variable list must leave no cheap blocks")
	}
}
