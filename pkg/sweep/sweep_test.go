package sweep

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/grid"
	"github.com/azybler/mowplan/pkg/router"
)

func square(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0},
	}}
}

// degPerMeter converts the meter-sized fixtures below to degrees, at the
// 111,320 m per degree the grid uses for lane width.
const degPerMeter = 1 / 111_320.0

func TestPassCoversAllRowsWithoutObstacles(t *testing.T) {
	boundary := square(0, 0, 4*degPerMeter, 4*degPerMeter)
	mbb := boundary[0]
	g := grid.Build(mbb, 1.0, 0, boundary, nil)
	forbid := router.Forbidden{Boundary: boundary}

	var path orb.LineString
	for i := 0; i < 10; i++ {
		path = Pass(path, g, nil, forbid, 1.0)
		if g.CoverageFraction() >= 0.99 {
			break
		}
	}

	if g.CoverageFraction() < 0.99 {
		t.Fatalf("expected full coverage, got %f", g.CoverageFraction())
	}
	if len(path) == 0 {
		t.Fatal("expected a non-empty path")
	}
}

func TestPassEmitsExitWaypointAtObstacleGap(t *testing.T) {
	// A wide, short boundary (5 x 1 lanes): the grid is built in a frame
	// where the MBB's first (west-east) edge is turned onto the north-south
	// axis, so with column-major emission world x maps onto gridCol and the
	// single usable row, gridRow 0, runs along x. A full-height obstacle
	// band knocks out gridCol 2 in the middle of it.
	boundary := square(0, 0, 5*degPerMeter, 1*degPerMeter)
	obstacle := square(2*degPerMeter, 0, 3*degPerMeter, 1*degPerMeter)
	mbb := boundary[0]
	g := grid.Build(mbb, 1.0, 0, boundary, []orb.Polygon{obstacle})
	forbid := router.Forbidden{Boundary: boundary, Obstacles: []orb.Polygon{obstacle}}

	path := Pass(nil, g, nil, forbid, 1.0)
	if len(path) == 0 {
		t.Fatal("expected a non-empty path")
	}

	col1, ok := g.At(0, 1)
	if !ok {
		t.Fatal("expected a cell at (0,1)")
	}
	last := path[len(path)-1]
	if last != col1.Centroid {
		t.Errorf("expected path to end at the exit waypoint %v (col 1's centroid), got %v", col1.Centroid, last)
	}
}

func TestPruneDropsCloseVertices(t *testing.T) {
	// ~0.111 m per 1e-6 degree of latitude at this scale: deltas of 2e-6 degrees
	// are a few tenths of a meter apart, well under a 1 m laneWidth's 0.5 m
	// threshold; the 1e-5 degree step is a bit over a meter, clearing it.
	path := orb.LineString{{0, 0}, {0, 2e-6}, {0, 1e-5}}
	laneWidth := 1.0

	pruned := Prune(path, laneWidth)
	if pruned[0] != path[0] {
		t.Fatalf("expected first vertex kept, got %v", pruned)
	}
	if len(pruned) != 2 {
		t.Fatalf("expected the close second vertex dropped, got %v", pruned)
	}
}

func TestPruneIdempotent(t *testing.T) {
	path := orb.LineString{{0, 0}, {0, 1}, {0, 2}}
	once := Prune(path, 0.5)
	twice := Prune(once, 0.5)
	if len(once) != len(twice) {
		t.Fatalf("Prune not idempotent: %v vs %v", once, twice)
	}
}
