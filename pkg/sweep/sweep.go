// Package sweep implements the Boustrophedon sweep driver of spec.md §4.6:
// one pass at a time walks the coverage grid row by row, marking cells
// visited and emitting waypoints. The router is used only when a later pass
// resumes, to reach the first unvisited cell; within a pass, a row whose
// entry cell can't be reached by a straight line is skipped. The caller drives the outer loop
// (repeated passes until coverage or stall), per spec.md §4.6's
// "Outer loop (orchestration)".
//
// Structured as numbered steps mirroring spec.md §4.6's own step list,
// with an iterative scan-with-early-return control flow for the row walk.
package sweep

import (
	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
	"github.com/azybler/mowplan/pkg/grid"
	"github.com/azybler/mowplan/pkg/router"
)

// Pass runs a single sweep pass over g, appending waypoints to path and
// mutating g's cell visited states. It returns the updated path.
//
// segments is the Voronoi roadmap used for router bypass moves; forbid is
// the router's forbidden-region test.
func Pass(path orb.LineString, g *grid.Grid, segments []orb.LineString, forbid router.Forbidden, laneWidth float64) orb.LineString {
	// Step 1: resume handling.
	if len(path) > 0 {
		target, ok := g.FirstUnvisited()
		if ok {
			resume, err := router.Route(segments, forbid, path[len(path)-1], target.Centroid)
			if err != nil {
				return path
			}
			path = appendPath(path, resume)
		}
	}

	var waypoints orb.LineString

	for row := 0; row < g.Rows; row++ {
		cells := unvisitedInRow(g, row)
		if len(cells) == 0 {
			continue
		}
		if row%2 == 1 {
			reverseCells(cells)
		}

		entryIdx := 0
		if len(waypoints) > 0 {
			idx, ok := findEntry(waypoints[len(waypoints)-1], cells, forbid)
			if !ok {
				continue // skip this row
			}
			entryIdx = idx
		}

		cells[entryIdx].Visited = grid.Visited
		waypoints = append(waypoints, cells[entryIdx].Centroid)

		prev := cells[entryIdx]
		earlyReturn := false
		for i := entryIdx + 1; i < len(cells); i++ {
			curr := cells[i]
			if abs(curr.Col-prev.Col) > 1 {
				// Obstacle gap: emit prev as exit and stop this row.
				if waypoints[len(waypoints)-1] != prev.Centroid {
					waypoints = append(waypoints, prev.Centroid)
				}
				break
			}

			if comesBackToUnmowed(g, row, curr.Col) {
				curr.Visited = grid.Visited
				waypoints = append(waypoints, curr.Centroid)
				earlyReturn = true
				break
			}

			curr.Visited = grid.Visited
			prev = curr
			if i == len(cells)-1 {
				waypoints = append(waypoints, curr.Centroid)
			}
		}

		if earlyReturn {
			return appendPath(path, waypoints)
		}
	}

	return appendPath(path, waypoints)
}

// comesBackToUnmowed reports whether the previous row still has at least
// two unvisited cells within ±1 column of col, per spec.md §4.6 step 4's
// "come back to unmowed territory" signal.
func comesBackToUnmowed(g *grid.Grid, row, col int) bool {
	if row == 0 {
		return false
	}
	count := 0
	for _, c := range g.Row(row - 1) {
		if c.Visited == grid.Unvisited && abs(c.Col-col) <= 1 {
			count++
		}
	}
	return count >= 2
}

func unvisitedInRow(g *grid.Grid, row int) []*grid.Cell {
	var out []*grid.Cell
	for _, c := range g.Row(row) {
		if c.Visited == grid.Unvisited {
			out = append(out, c)
		}
	}
	return out
}

func reverseCells(cells []*grid.Cell) {
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
}

// findEntry finds the first cell reachable from from by a straight
// segment clear of the forbidden region, per spec.md §4.6 step 3.
func findEntry(from orb.Point, cells []*grid.Cell, forbid router.Forbidden) (int, bool) {
	for i, c := range cells {
		if forbid.SegmentFree(from, c.Centroid) {
			return i, true
		}
	}
	return 0, false
}

func appendPath(path orb.LineString, more orb.LineString) orb.LineString {
	return append(path, more...)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Prune removes vertices closer together than laneWidth/2 from the
// previously kept vertex, per spec.md §4.6 "Post-process". Idempotent:
// running it twice is a no-op.
func Prune(path orb.LineString, laneWidth float64) orb.LineString {
	if len(path) == 0 {
		return path
	}
	out := orb.LineString{path[0]}
	for _, p := range path[1:] {
		if geo.Distance(out[len(out)-1], p) > laneWidth/2 {
			out = append(out, p)
		}
	}
	return out
}
