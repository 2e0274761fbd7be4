package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// NearestPointOnSegment returns the closest point on segment AB to p,
// the distance from p to that point in meters, and the projection ratio
// along AB clamped to [0,1] (0 = at A, 1 = at B).
//
// Uses an equirectangular projection at AB's mid latitude so the clamped-ratio
// projection onto AB can be done in plain Euclidean terms.
func NearestPointOnSegment(p, a, b orb.Point) (nearest orb.Point, dist float64, ratio float64) {
	if a == b {
		return a, Distance(p, a), 0
	}

	cosLat := math.Cos((a[1] + b[1]) / 2 * math.Pi / 180)

	ax, ay := a[0]*cosLat, a[1]
	bx, by := b[0]*cosLat, b[1]
	px, py := p[0]*cosLat, p[1]

	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, Distance(p, a), 0
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	near := orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
	return near, Distance(p, near), t
}

// SplitLine splits a line string at the point on it nearest to p, returning
// the two pieces (first..split, split..last). The split point is inserted
// exactly once, shared by both pieces.
func SplitLine(ls orb.LineString, p orb.Point) (before, after orb.LineString) {
	if len(ls) < 2 {
		return ls, ls
	}
	bestDist := math.Inf(1)
	bestIdx := 0
	var bestPt orb.Point
	for i := 0; i < len(ls)-1; i++ {
		near, d, _ := NearestPointOnSegment(p, ls[i], ls[i+1])
		if d < bestDist {
			bestDist = d
			bestIdx = i
			bestPt = near
		}
	}
	before = append(orb.LineString{}, ls[:bestIdx+1]...)
	if !SamePoint(before[len(before)-1], bestPt) {
		before = append(before, bestPt)
	}
	after = orb.LineString{bestPt}
	after = append(after, ls[bestIdx+1:]...)
	return before, after
}

// segmentsIntersect reports whether segments p1p2 and p3p4 intersect
// (including touching at an endpoint), using the standard orientation test.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := cross3(p3, p4, p1)
	d2 := cross3(p3, p4, p2)
	d3 := cross3(p1, p2, p3)
	d4 := cross3(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func cross3(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

// SegmentCrossesRing reports whether segment ab intersects or touches any
// edge of ring, or has its midpoint inside ring.
func SegmentCrossesRing(a, b orb.Point, ring orb.Ring) bool {
	for i := 0; i < len(ring)-1; i++ {
		if segmentsIntersect(a, b, ring[i], ring[i+1]) {
			return true
		}
	}
	mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
	return PointInRing(mid, ring)
}

// SegmentCrossesPolygon reports whether segment ab crosses or lies inside
// poly's exterior ring.
func SegmentCrossesPolygon(a, b orb.Point, poly orb.Polygon) bool {
	if len(poly) == 0 {
		return false
	}
	return SegmentCrossesRing(a, b, poly[0])
}

// SegmentDisjointFromPolygon reports whether segment ab neither crosses
// poly's boundary nor has any part inside it.
func SegmentDisjointFromPolygon(a, b orb.Point, poly orb.Polygon) bool {
	return !SegmentCrossesPolygon(a, b, poly)
}
