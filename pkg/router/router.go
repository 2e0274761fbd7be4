// Package router implements the clear-path router of spec.md §4.5: a
// direct-line shortcut when available, else a Dijkstra search over the
// Voronoi roadmap with the query endpoints stitched onto it.
//
// Follows a snap -> search -> reconstruct orchestration shape, generalized
// from a persistent graph with a persistent grid index to an ad hoc R-tree
// (tidwall/rtree) built fresh per query over whatever roadmap segments the
// Voronoi step produced.
package router

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"github.com/azybler/mowplan/pkg/geo"
	"github.com/azybler/mowplan/pkg/graph"
)

// ErrNoPath is returned when the start or end point cannot be stitched onto
// the roadmap, or no route exists through it, per spec.md §4.5 step 2 and
// step 7.
var ErrNoPath = errors.New("router: no path")

// Forbidden is the region a path must not cross: the union of the
// boundary's complement and the obstacles, represented here as a
// containment test plus an obstacle list, since the boundary's complement
// has no finite polygon representation.
type Forbidden struct {
	Boundary  orb.Polygon
	Obstacles []orb.Polygon
}

// SegmentFree reports whether segment a->b stays entirely within the
// boundary and clear of every obstacle.
func (f Forbidden) SegmentFree(a, b orb.Point) bool {
	if !geo.PointInPolygon(a, f.Boundary) || !geo.PointInPolygon(b, f.Boundary) {
		return false
	}
	// With both endpoints inside, the segment leaves the boundary only by
	// properly crossing one of its edges.
	orient := func(p, q, r orb.Point) float64 {
		return (q[0]-p[0])*(r[1]-p[1]) - (q[1]-p[1])*(r[0]-p[0])
	}
	ring := f.Boundary[0]
	for i := 0; i < len(ring)-1; i++ {
		c, d := ring[i], ring[i+1]
		if orient(c, d, a)*orient(c, d, b) < 0 && orient(a, b, c)*orient(a, b, d) < 0 {
			return false
		}
	}
	for _, o := range f.Obstacles {
		if !geo.SegmentDisjointFromPolygon(a, b, o) {
			return false
		}
	}
	return true
}

// rtreeIndex wraps tidwall/rtree over a roadmap so Route can find, for a
// query point, the candidate segments whose bounding boxes are nearest
// without scanning every segment.
type rtreeIndex struct {
	tr         rtree.RTreeG[int]
	segments   []orb.LineString
	initRadius float64
	maxRadius  float64
}

// initialSearchRadiusDeg is the starting half-width of the expanding query
// box, in degrees (roughly 11 m of latitude). Doubled until a candidate is
// found or maxRadius is reached.
const initialSearchRadiusDeg = 0.0001

func buildIndex(segments []orb.LineString) *rtreeIndex {
	idx := &rtreeIndex{segments: segments, initRadius: initialSearchRadiusDeg}
	var bound orb.Bound
	first := true
	for i, s := range segments {
		min, max := segmentBound(s)
		idx.tr.Insert(min, max, i)
		b := orb.Bound{Min: orb.Point(min), Max: orb.Point(max)}
		if first {
			bound = b
			first = false
		} else {
			bound = bound.Union(b)
		}
	}
	if !first {
		dx := bound.Max[0] - bound.Min[0]
		dy := bound.Max[1] - bound.Min[1]
		idx.maxRadius = dx + dy + initialSearchRadiusDeg
	}
	return idx
}

func segmentBound(s orb.LineString) (min, max [2]float64) {
	b := geo.BoundOfRing(orb.Ring(s))
	return [2]float64{b.Min[0], b.Min[1]}, [2]float64{b.Max[0], b.Max[1]}
}

// nearest returns the index, nearest point, and distance of the roadmap
// segment closest to p. It queries tr.Search with a box expanding around p
// (step 2's "nearest-road lookup"), so typical queries only scan the
// handful of segments whose bounding boxes fall near p rather than every
// segment in the roadmap; it widens the box whenever the closest candidate
// found so far might not be the true nearest, and re-scans.
func (idx *rtreeIndex) nearest(p orb.Point) (segIdx int, nearest orb.Point, dist float64, ok bool) {
	if len(idx.segments) == 0 {
		return 0, orb.Point{}, 0, false
	}

	radius := idx.initRadius
	for {
		best := -1
		bestDist := 0.0
		var bestPoint orb.Point

		min := [2]float64{p[0] - radius, p[1] - radius}
		max := [2]float64{p[0] + radius, p[1] + radius}
		idx.tr.Search(min, max, func(_, _ [2]float64, i int) bool {
			s := idx.segments[i]
			for j := 0; j < len(s)-1; j++ {
				np, d, _ := geo.NearestPointOnSegment(p, s[j], s[j+1])
				if best == -1 || d < bestDist {
					best = i
					bestDist = d
					bestPoint = np
				}
			}
			return true
		})

		// bestDist is in meters; as a degree half-width it must cover that
		// distance in longitude as well as latitude.
		bestDeg := bestDist / (111_320.0 * math.Cos(p[1]*math.Pi/180))
		if best != -1 && bestDeg <= radius {
			return best, bestPoint, bestDist, true
		}
		if radius >= idx.maxRadius {
			if best != -1 {
				return best, bestPoint, bestDist, true
			}
			return 0, orb.Point{}, 0, false
		}
		if best != -1 {
			radius = bestDeg
		} else {
			radius *= 2
		}
		if radius > idx.maxRadius {
			radius = idx.maxRadius
		}
	}
}

// Route finds a path from s to e that does not cross forbid, per
// spec.md §4.5.
func Route(segments []orb.LineString, forbid Forbidden, s, e orb.Point) (orb.LineString, error) {
	if forbid.SegmentFree(s, e) {
		return orb.LineString{s, e}, nil
	}
	if len(segments) == 0 {
		return nil, ErrNoPath
	}

	idx := buildIndex(segments)

	startSeg, sPrime, _, ok := idx.nearest(s)
	if !ok || !forbid.SegmentFree(s, sPrime) {
		return nil, fmt.Errorf("%w: cannot stitch start point", ErrNoPath)
	}
	endSeg, ePrime, _, ok := idx.nearest(e)
	if !ok || !forbid.SegmentFree(ePrime, e) {
		return nil, fmt.Errorf("%w: cannot stitch end point", ErrNoPath)
	}

	temp := splicedRoadmap(segments, startSeg, sPrime, endSeg, ePrime, s, e)

	g := graph.BuildFromSegments(temp)
	startIdx, ok1 := g.Lookup(geo.Fingerprint(s))
	endIdx, ok2 := g.Lookup(geo.Fingerprint(e))
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: stitched endpoint missing from temporary graph", ErrNoPath)
	}

	path, _, err := graph.Dijkstra(g, startIdx, endIdx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPath, err)
	}
	return path, nil
}

// splicedRoadmap builds the temporary roadmap of spec.md §4.5 step 3:
// every original segment except the two landing segments, their split
// pieces, and the two stitch segments. If both endpoints land on the same
// segment, it is split in up to three pieces.
func splicedRoadmap(segments []orb.LineString, startSeg int, sPrime orb.Point, endSeg int, ePrime orb.Point, s, e orb.Point) []orb.LineString {
	out := make([]orb.LineString, 0, len(segments)+4)

	for i, seg := range segments {
		switch i {
		case startSeg, endSeg:
			// handled below, possibly more than once if startSeg == endSeg
		default:
			out = append(out, seg)
		}
	}

	if startSeg == endSeg {
		out = append(out, splitThree(segments[startSeg], sPrime, ePrime)...)
	} else {
		before, after := geo.SplitLine(segments[startSeg], sPrime)
		out = append(out, nonTrivial(before), nonTrivial(after))
		before, after = geo.SplitLine(segments[endSeg], ePrime)
		out = append(out, nonTrivial(before), nonTrivial(after))
	}

	out = append(out, orb.LineString{s, sPrime}, orb.LineString{ePrime, e})
	return compact(out)
}

// splitThree splits seg at both a and b, whichever comes first along it.
func splitThree(seg orb.LineString, a, b orb.Point) []orb.LineString {
	before, after := geo.SplitLine(seg, a)
	if geo.SamePoint(a, b) {
		return []orb.LineString{before, after}
	}
	// b may land on either side of a; try splitting "after" first, since a
	// typically precedes b along a landing segment when they differ.
	afterBefore, afterAfter := geo.SplitLine(after, b)
	if len(afterBefore) >= 2 && len(afterAfter) >= 2 {
		return []orb.LineString{before, afterBefore, afterAfter}
	}
	beforeBefore, beforeAfter := geo.SplitLine(before, b)
	return []orb.LineString{beforeBefore, beforeAfter, after}
}

func nonTrivial(ls orb.LineString) orb.LineString {
	if len(ls) < 2 {
		return nil
	}
	return ls
}

func compact(in []orb.LineString) []orb.LineString {
	out := in[:0]
	for _, ls := range in {
		if len(ls) >= 2 {
			out = append(out, ls)
		}
	}
	return out
}
