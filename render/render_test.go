package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mforets/blockreach/engine"
	"github.com/mforets/blockreach/partition"
	"github.com/mforets/blockreach/set"
)

const tol = 1e-9

// flowpipe of three unit boxes drifting along the first variable; the middle
// record covers only the first of the two partition blocks.
func testFlowpipe() (*engine.Flowpipe, *partition.Partition) {
	part := partition.Uniform(4, 2)
	box := func(cx float64, dim int, blocks []int) engine.ReachSet {
		center := make([]float64, dim)
		center[0] = cx
		radius := make([]float64, dim)
		for i := range radius {
			radius[i] = 1
		}
		return engine.ReachSet{
			Set:    set.NewHyperrectangle(center, radius),
			Blocks: blocks,
		}
	}
	fp := &engine.Flowpipe{Records: []engine.ReachSet{
		box(0, 4, []int{0, 1}),
		box(1, 2, []int{0}),
		box(2, 4, []int{0, 1}),
	}}
	for i := range fp.Records {
		fp.Records[i].TStart = float64(i)
		fp.Records[i].TEnd = float64(i + 1)
	}
	return fp, part
}

func TestCoordinateInPartialRecords(t *testing.T) {
	part := partition.Uniform(4, 2)
	if c, ok := coordinate(part, []int{0, 1}, 3); !ok || c != 3 {
		t.Errorf("variable 3 in the full record maps to (%d, %v), expected (3, true)", c, ok)
	}
	if c, ok := coordinate(part, []int{1}, 3); !ok || c != 1 {
		t.Errorf("variable 3 in the tail record maps to (%d, %v), expected (1, true)", c, ok)
	}
	if _, ok := coordinate(part, []int{1}, 0); ok {
		t.Error("variable 0 resolved inside a record that doesn't cover its block")
	}
}

func TestProjectSkipsUncoveredRecords(t *testing.T) {
	fp, part := testFlowpipe()
	s, err := Project(fp, part, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.T0) != 3 {
		t.Fatalf("variable 0 projected onto %d records, expected 3", len(s.T0))
	}
	for i, cx := range []float64{0, 1, 2} {
		if math.Abs(s.Lo[i]-(cx-1)) > tol || math.Abs(s.Hi[i]-(cx+1)) > tol {
			t.Errorf("record %d bounds [%g, %g], expected [%g, %g]",
				i, s.Lo[i], s.Hi[i], cx-1, cx+1)
		}
	}

	s, err = Project(fp, part, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.T0) != 2 {
		t.Fatalf("variable 2 projected onto %d records, expected the 2 full ones", len(s.T0))
	}
	if math.Abs(s.T0[1]-2) > tol {
		t.Errorf("second covered record starts at %g, expected 2", s.T0[1])
	}

	if _, err := Project(fp, part, 7); err == nil {
		t.Error("out of range variable accepted")
	}
}

func TestProject2Boxes(t *testing.T) {
	fp, part := testFlowpipe()
	boxes, err := Project2(fp, part, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 3 {
		t.Fatalf("expected 3 boxes, got %d", len(boxes))
	}
	if math.Abs(boxes[2].XLo-1) > tol || math.Abs(boxes[2].XHi-3) > tol {
		t.Errorf("last box x range [%g, %g], expected [1, 3]", boxes[2].XLo, boxes[2].XHi)
	}
	// Pairing an interesting with a cheap variable drops the partial record.
	boxes, err = Project2(fp, part, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 2 {
		t.Errorf("mixed pair projected onto %d boxes, expected 2", len(boxes))
	}
}

func TestProjectErrorsWhenNothingCovers(t *testing.T) {
	part := partition.Uniform(2, 2)
	fp := &engine.Flowpipe{Records: []engine.ReachSet{{
		Set:    set.NewBallInf([]float64{0}, 1),
		Blocks: []int{7},
	}}}
	if _, err := Project2(fp, part, 0, 1); err == nil {
		t.Error("projection of an uncovered pair did not fail")
	}
}

func TestRenderHTMLContainsSeries(t *testing.T) {
	fp, part := testFlowpipe()
	s, err := Project(fp, part, 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := RenderHTML(s, "drift", &buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{"drift", "lower", "upper"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered chart misses %q", want)
		}
	}
}

func TestSavePNGWritesFile(t *testing.T) {
	fp, part := testFlowpipe()
	s, err := Project(fp, part, 0)
	if err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(t.TempDir(), "series.png")
	if err := SavePNG(s, "drift", name); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("written PNG is empty")
	}
}
