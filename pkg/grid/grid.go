// Package grid builds the axis-aligned coverage grid over the MBB,
// rotated to the MBB's orientation and anchored at a user-chosen corner,
// per spec.md §4.3.
package grid

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

// VisitState is the label carried by each coverage cell.
type VisitState int

const (
	Unvisited VisitState = iota
	Visited
	Unvisitable
)

// Cell is one square of the coverage grid.
type Cell struct {
	Poly     orb.Polygon
	Row, Col int
	Visited  VisitState
	Centroid orb.Point
}

// Grid is the coverage grid: a dense, row/col-monotone sequence of cells,
// plus a flat sorted (row,col) index for O(log n) lookups, rebuilt fresh
// on every Plan call rather than paying map overhead for a structure this
// short-lived.
type Grid struct {
	Cells []Cell
	Rows  int
	Cols  int

	index []cellRef // sorted by (row, col)
}

type cellRef struct {
	row, col int
	idx      int
}

// erosionEpsilonMeters is the inward erosion applied to the working
// boundary before containment tests, to avoid boundary-precision false
// positives (spec.md §4.3 step 6).
const erosionEpsilonMeters = 0.01

// Build generates the grid per spec.md §4.3 steps 1-7.
//
// laneWidth is in meters. Cell sides are laneWidth converted to degrees at
// 111,320 m per degree and laid out in the lon/lat degree plane, so away
// from the equator, where a degree of longitude is shorter, cells are not
// exactly square on the ground.
func Build(mbb orb.Ring, laneWidth float64, startCorner int, workingBoundary orb.Polygon, obstacles []orb.Polygon) *Grid {
	center := geo.Centroid(orb.Polygon{mbb})
	theta := geo.Bearing(mbb[0], mbb[1])
	// Turning counterclockwise by the bearing brings the MBB's first edge
	// onto the north-south axis.
	cornerRot := theta - 90*float64(startCorner%4)

	axisAligned := geo.RotateRing(mbb, center, cornerRot)
	bound := geo.BoundOfRing(axisAligned)

	step := laneWidth / 111_320.0
	cols := int((bound.Max[0]-bound.Min[0])/step) + 1
	rows := int((bound.Max[1]-bound.Min[1])/step) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	type rawCell struct {
		poly     orb.Ring
		centroid orb.Point
	}
	raw := make([]rawCell, 0, rows*cols)

	// Generator order: column-major (x changes slower than y within a
	// column scan) — row increments happen on x-change, per spec.md §4.3
	// step 4's documented convention.
	for c := 0; c < cols; c++ {
		x0 := bound.Min[0] + float64(c)*step
		x1 := x0 + step
		for r := 0; r < rows; r++ {
			y0 := bound.Min[1] + float64(r)*step
			y1 := y0 + step
			poly := orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
			raw = append(raw, rawCell{poly: poly, centroid: orb.Point{(x0 + x1) / 2, (y0 + y1) / 2}})
		}
	}

	// Assign (gridRow, gridCol) by scan order: x-change increments the row
	// and resets the column, per spec.md §4.3 step 4.
	cells := make([]Cell, len(raw))
	row, col := 0, 0
	var prevX float64
	first := true
	backRot := -cornerRot
	for i, rc := range raw {
		if !first && rc.centroid[0] != prevX {
			row++
			col = 0
		}
		first = false
		prevX = rc.centroid[0]

		// Rotate the cell polygon and centroid back to world frame.
		worldPoly := orb.Polygon{geo.RotateRing(rc.poly, center, backRot)}
		worldCentroid := geo.RotateAbout(rc.centroid, center, backRot)

		cells[i] = Cell{
			Poly:     worldPoly,
			Row:      row,
			Col:      col,
			Centroid: worldCentroid,
			Visited:  label(worldCentroid, workingBoundary, obstacles),
		}
		col++
	}

	g := &Grid{Cells: cells, Rows: row + 1, Cols: maxColCount(cells)}
	g.buildIndex()
	return g
}

func label(centroid orb.Point, boundary orb.Polygon, obstacles []orb.Polygon) VisitState {
	eroded := geo.ErodePolygon(boundary, erosionEpsilonMeters)
	if !geo.PointInPolygon(centroid, eroded) {
		return Unvisitable
	}
	for _, o := range obstacles {
		if geo.PointInPolygon(centroid, o) {
			return Unvisitable
		}
	}
	return Unvisited
}

func maxColCount(cells []Cell) int {
	max := 0
	for _, c := range cells {
		if c.Col+1 > max {
			max = c.Col + 1
		}
	}
	return max
}

func (g *Grid) buildIndex() {
	g.index = make([]cellRef, len(g.Cells))
	for i, c := range g.Cells {
		g.index[i] = cellRef{row: c.Row, col: c.Col, idx: i}
	}
	sort.Slice(g.index, func(i, j int) bool {
		if g.index[i].row != g.index[j].row {
			return g.index[i].row < g.index[j].row
		}
		return g.index[i].col < g.index[j].col
	})
}

// At returns the cell at (row,col), or false if none exists.
func (g *Grid) At(row, col int) (*Cell, bool) {
	n := len(g.index)
	lo := sort.Search(n, func(i int) bool {
		if g.index[i].row != row {
			return g.index[i].row > row
		}
		return g.index[i].col >= col
	})
	if lo >= n || g.index[lo].row != row || g.index[lo].col != col {
		return nil, false
	}
	return &g.Cells[g.index[lo].idx], true
}

// Row returns all cells in the given row, ordered by ascending column.
func (g *Grid) Row(row int) []*Cell {
	n := len(g.index)
	lo := sort.Search(n, func(i int) bool { return g.index[i].row >= row })
	var out []*Cell
	for i := lo; i < n && g.index[i].row == row; i++ {
		out = append(out, &g.Cells[g.index[i].idx])
	}
	return out
}

// FirstUnvisited returns the first cell still Unvisited, in grid scan
// order (row-major), or false if none remain.
func (g *Grid) FirstUnvisited() (*Cell, bool) {
	for _, ref := range g.index {
		c := &g.Cells[ref.idx]
		if c.Visited == Unvisited {
			return c, true
		}
	}
	return nil, false
}

// CoverageFraction returns visited/(visited+unvisited), excluding
// unvisitable cells from the denominator (spec.md §9 open question,
// resolved in SPEC_FULL.md).
func (g *Grid) CoverageFraction() float64 {
	visited, total := 0, 0
	for _, c := range g.Cells {
		if c.Visited == Unvisitable {
			continue
		}
		total++
		if c.Visited == Visited {
			visited++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(visited) / float64(total)
}

// TravelHeadingDeg returns the bearing from row 0's first cell centroid to
// its last cell centroid, normalized to [0,360) — spec.md §4.3 "Travel
// heading".
func (g *Grid) TravelHeadingDeg() float64 {
	row0 := g.Row(0)
	if len(row0) < 2 {
		return 0
	}
	return geo.Bearing(row0[0].Centroid, row0[len(row0)-1].Centroid)
}
