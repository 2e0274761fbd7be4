// Package voronoi builds the Voronoi roadmap of spec.md §4.4: a generalized
// Voronoi diagram of the boundary+obstacle vertices, clipped to the
// boundary, with obstacle-crossing edges pruned and the remaining edges
// joined into junction-to-junction polylines.
//
// No Voronoi-diagram library exists anywhere in the retrieved example
// corpus (other_examples' one Voronoi hit is noise-generation, not a
// geometric diagram; see DESIGN.md), so the diagram itself is built by the
// textbook half-plane-intersection construction: each site's cell is the
// intersection, over every other site, of the half-plane closer to that
// site, computed via repeated Sutherland-Hodgman clipping starting from a
// bounding box. This is the standard approach for the "hundreds to low
// thousands" of sites spec.md §9 expects, and keeps the one genuinely novel
// piece of math isolated from the (library-backed) clipping-to-boundary
// step and the obstacle-pruning step (built on pkg/geo's segment tests)
// that follow in roadmap.go.
package voronoi

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

// Cell is one site's Voronoi cell, clipped to a bounding box but not yet
// clipped to the working boundary.
type Cell struct {
	Site orb.Point
	Ring orb.Ring // open (no closing duplicate)
}

// Diagram computes each site's Voronoi cell, clipped to bound.
// Returns nil if fewer than 3 distinct sites are given (degenerate case,
// spec.md §4.4 step 2).
func Diagram(sites []orb.Point, bound orb.Bound) []Cell {
	unique := dedupeSites(sites)
	if len(unique) < 3 {
		return nil
	}

	// Start each cell from a box comfortably larger than bound, so that
	// half-plane clipping against the other sites converges to a finite
	// polygon even for sites on the convex hull of the site set.
	margin := boundDiagonal(bound)
	box := expand(bound, margin*2)

	cells := make([]Cell, 0, len(unique))
	for _, s := range unique {
		ring := boxRing(box)
		for _, other := range unique {
			if other == s {
				continue
			}
			ring = clipCloserTo(ring, s, other)
			if len(ring) == 0 {
				break
			}
		}
		if len(ring) >= 3 {
			cells = append(cells, Cell{Site: s, Ring: ring})
		}
	}
	return cells
}

func dedupeSites(sites []orb.Point) []orb.Point {
	seen := make(map[geo.FP]bool, len(sites))
	out := make([]orb.Point, 0, len(sites))
	for _, p := range sites {
		fp := geo.Fingerprint(p)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, p)
	}
	return out
}

func boundDiagonal(b orb.Bound) float64 {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	if dx == 0 && dy == 0 {
		return 1
	}
	return math.Hypot(dx, dy)
}

func expand(b orb.Bound, margin float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] - margin, b.Min[1] - margin},
		Max: orb.Point{b.Max[0] + margin, b.Max[1] + margin},
	}
}

func boxRing(b orb.Bound) []orb.Point {
	return []orb.Point{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
	}
}

// clipCloserTo clips ring (a convex polygon, open point list) to the
// half-plane of points closer to site than to other, via Sutherland-Hodgman.
func clipCloserTo(ring []orb.Point, site, other orb.Point) []orb.Point {
	mid := orb.Point{(site[0] + other[0]) / 2, (site[1] + other[1]) / 2}
	dir := orb.Point{other[0] - site[0], other[1] - site[1]}

	inside := func(p orb.Point) bool {
		return dotFromMid(p, mid, dir) <= 0
	}

	n := len(ring)
	if n == 0 {
		return nil
	}
	out := make([]orb.Point, 0, n+2)
	for i := 0; i < n; i++ {
		curr := ring[i]
		prev := ring[(i-1+n)%n]
		currIn := inside(curr)
		prevIn := inside(prev)

		if currIn {
			if !prevIn {
				out = append(out, lineIntersect(prev, curr, mid, dir))
			}
			out = append(out, curr)
		} else if prevIn {
			out = append(out, lineIntersect(prev, curr, mid, dir))
		}
	}
	return out
}

func dotFromMid(p, mid, dir orb.Point) float64 {
	return (p[0]-mid[0])*dir[0] + (p[1]-mid[1])*dir[1]
}

// lineIntersect finds the point on segment ab where dotFromMid(.,mid,dir)==0.
func lineIntersect(a, b, mid, dir orb.Point) orb.Point {
	da := dotFromMid(a, mid, dir)
	db := dotFromMid(b, mid, dir)
	if da == db {
		return a
	}
	t := da / (da - db)
	return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}
