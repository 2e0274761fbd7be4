package voronoi

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/boolean"
	"github.com/azybler/mowplan/pkg/geo"
)

type edgeKey struct {
	a, b geo.FP
}

func canonicalKey(a, b orb.Point) edgeKey {
	fa, fb := geo.Fingerprint(a), geo.Fingerprint(b)
	if less(fa, fb) {
		return edgeKey{fa, fb}
	}
	return edgeKey{fb, fa}
}

func less(a, b geo.FP) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// BuildRoadmap builds the Voronoi roadmap of the boundary+obstacle
// vertices, per spec.md §4.4. If the diagram degenerates (fewer than 3
// seeds), the boundary's own outline is returned as a single segment
// (step 2).
func BuildRoadmap(boundaryPoly orb.Polygon, obstacles []orb.Polygon) ([]orb.LineString, error) {
	seeds := collectSeeds(boundaryPoly, obstacles)
	bound := geo.BoundOfPolygon(boundaryPoly)

	cells := Diagram(seeds, bound)
	if cells == nil {
		return []orb.LineString{orb.LineString(append(orb.LineString{}, boundaryPoly[0]...))}, nil
	}

	// Clip each cell to the boundary (step 3) and extract edges not
	// crossing any obstacle, deduplicated by canonical endpoint key
	// (step 4).
	seen := make(map[edgeKey]bool)
	points := make(map[geo.FP]orb.Point)
	adjacency := make(map[geo.FP][]geo.FP)

	addSegment := func(a, b orb.Point) {
		key := canonicalKey(a, b)
		if seen[key] {
			return
		}
		for _, o := range obstacles {
			if geo.SegmentCrossesPolygon(a, b, o) {
				return
			}
		}
		seen[key] = true
		fa, fb := geo.Fingerprint(a), geo.Fingerprint(b)
		points[fa] = a
		points[fb] = b
		adjacency[fa] = append(adjacency[fa], fb)
		adjacency[fb] = append(adjacency[fb], fa)
	}

	for _, cell := range cells {
		closed := orb.Polygon{closeRing(cell.Ring)}
		if disjointFromBoundary(closed, boundaryPoly) {
			continue
		}
		pieces, err := boolean.Intersect(closed, boundaryPoly)
		if err != nil {
			continue
		}
		for _, piece := range pieces {
			ring := piece[0]
			for i := 0; i < len(ring)-1; i++ {
				addSegment(ring[i], ring[i+1])
			}
		}
	}

	// Junction detection (step 5): degree > 2.
	isBranch := func(fp geo.FP) bool { return len(adjacency[fp]) > 2 }

	// Polyline joining (step 6): DFS from each branch point along
	// degree-2 chains until another branch point; dead-end chains
	// (degree-1 terminus) are dropped.
	visitedEdge := make(map[edgeKey]bool)
	var segments []orb.LineString

	var branchPoints []geo.FP
	for fp := range adjacency {
		if isBranch(fp) {
			branchPoints = append(branchPoints, fp)
		}
	}
	sort.Slice(branchPoints, func(i, j int) bool { return less(branchPoints[i], branchPoints[j]) })

	for _, fp := range branchPoints {
		nbrs := append([]geo.FP(nil), adjacency[fp]...)
		sort.Slice(nbrs, func(i, j int) bool { return less(nbrs[i], nbrs[j]) })
		for _, nbr := range nbrs {
			ek := edgeKey{fp, nbr}
			if less(nbr, fp) {
				ek = edgeKey{nbr, fp}
			}
			if visitedEdge[ek] {
				continue
			}
			path, ok := walkChain(fp, nbr, adjacency, isBranch, visitedEdge, points)
			if ok {
				segments = append(segments, path)
			}
		}
	}

	return segments, nil
}

// walkChain follows the chain starting at from->to, continuing through
// degree-2 vertices, until it reaches a branch point. Returns ok=false if
// it instead reaches a dead end (degree-1 terminus), per spec.md §4.4's
// "dead-end chains are intentionally dropped."
func walkChain(from, to geo.FP, adjacency map[geo.FP][]geo.FP, isBranch func(geo.FP) bool, visitedEdge map[edgeKey]bool, points map[geo.FP]orb.Point) (orb.LineString, bool) {
	path := orb.LineString{points[from], points[to]}
	markEdge(visitedEdge, from, to)

	prev := from
	curr := to
	for !isBranch(curr) {
		next, ok := nextInChain(curr, prev, adjacency, visitedEdge)
		if !ok {
			return nil, false // dead end
		}
		path = append(path, points[next])
		markEdge(visitedEdge, curr, next)
		prev = curr
		curr = next
	}
	return path, true
}

func nextInChain(curr, prev geo.FP, adjacency map[geo.FP][]geo.FP, visitedEdge map[edgeKey]bool) (geo.FP, bool) {
	for _, nbr := range adjacency[curr] {
		if nbr == prev {
			continue
		}
		ek := edgeKey{curr, nbr}
		if less(nbr, curr) {
			ek = edgeKey{nbr, curr}
		}
		if visitedEdge[ek] {
			continue
		}
		return nbr, true
	}
	return geo.FP{}, false
}

func markEdge(visitedEdge map[edgeKey]bool, a, b geo.FP) {
	ek := edgeKey{a, b}
	if less(b, a) {
		ek = edgeKey{b, a}
	}
	visitedEdge[ek] = true
}

func collectSeeds(boundaryPoly orb.Polygon, obstacles []orb.Polygon) []orb.Point {
	var seeds []orb.Point
	for _, ring := range boundaryPoly {
		seeds = append(seeds, ring[:len(ring)-1]...)
	}
	for _, o := range obstacles {
		for _, ring := range o {
			seeds = append(seeds, ring[:len(ring)-1]...)
		}
	}
	return seeds
}

func closeRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 {
		return ring
	}
	if ring[0] == ring[len(ring)-1] {
		return ring
	}
	out := make(orb.Ring, len(ring)+1)
	copy(out, ring)
	out[len(ring)] = ring[0]
	return out
}

func disjointFromBoundary(cell, boundaryPoly orb.Polygon) bool {
	for _, p := range cell[0] {
		if geo.PointInPolygon(p, boundaryPoly) {
			return false
		}
	}
	for _, p := range boundaryPoly[0] {
		if geo.PointInPolygon(p, cell) {
			return false
		}
	}
	return true
}
