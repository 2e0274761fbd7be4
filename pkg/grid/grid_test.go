package grid

import (
	"testing"

	"github.com/paulmach/orb"
)

func unitSquareMBB() orb.Ring {
	return orb.Ring{
		{0, 0}, {0.00001, 0}, {0.00001, 0.00001}, {0, 0.00001}, {0, 0},
	}
}

func TestBuildMonotoneColumns(t *testing.T) {
	mbb := unitSquareMBB()
	boundary := orb.Polygon{mbb}
	g := Build(mbb, 0.25, 0, boundary, nil)

	if len(g.Cells) == 0 {
		t.Fatal("expected a non-empty grid")
	}

	// Grid monotonicity: within any row, gridCol values form a contiguous
	// range starting at 0 (spec.md §8).
	for r := 0; r < g.Rows; r++ {
		row := g.Row(r)
		for i, c := range row {
			if c.Col != i {
				t.Errorf("row %d: expected col %d at position %d, got %d", r, i, i, c.Col)
			}
		}
	}
}

func TestLabelUnvisitableOutsideBoundary(t *testing.T) {
	mbb := unitSquareMBB()
	// Boundary much smaller than the MBB leaves most cells outside it.
	boundary := orb.Polygon{orb.Ring{
		{0, 0}, {0.000002, 0}, {0.000002, 0.000002}, {0, 0.000002}, {0, 0},
	}}
	g := Build(mbb, 0.1, 0, boundary, nil)

	sawUnvisitable := false
	for _, c := range g.Cells {
		if c.Visited == Unvisitable {
			sawUnvisitable = true
		}
	}
	if !sawUnvisitable {
		t.Error("expected some cells outside the small boundary to be labelled Unvisitable")
	}
}

func TestCoverageFractionExcludesUnvisitable(t *testing.T) {
	g := &Grid{Cells: []Cell{
		{Visited: Visited},
		{Visited: Unvisited},
		{Visited: Unvisitable},
		{Visited: Unvisitable},
	}}
	got := g.CoverageFraction()
	want := 0.5 // 1 visited / (1 visited + 1 unvisited), 2 unvisitable excluded
	if got != want {
		t.Errorf("CoverageFraction = %f, want %f", got, want)
	}
}

func TestFirstUnvisitedScanOrder(t *testing.T) {
	mbb := unitSquareMBB()
	boundary := orb.Polygon{mbb}
	g := Build(mbb, 0.25, 0, boundary, nil)

	c, ok := g.FirstUnvisited()
	if !ok {
		t.Fatal("expected at least one unvisited cell")
	}
	c.Visited = Visited
	c2, ok := g.FirstUnvisited()
	if !ok {
		t.Fatal("expected another unvisited cell")
	}
	if c2 == c {
		t.Error("FirstUnvisited returned the same cell after it was marked visited")
	}
}
