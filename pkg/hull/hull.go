// Package hull computes the convex hull of a boundary polygon and its
// minimum-area bounding rectangle, per spec.md §4.2.
package hull

import (
	"errors"
	"sort"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

// ErrDegenerateHull is returned when fewer than three distinct vertices
// remain after computing the convex hull.
var ErrDegenerateHull = errors.New("degenerate hull")

// ConvexHull returns the convex hull ring (closed: first point repeated at
// the end) of a polygon's exterior ring, via the monotone-chain (Andrew's)
// algorithm: sort once, then one linear scan each for the lower and upper chains.
func ConvexHull(poly orb.Polygon) (orb.Ring, error) {
	if len(poly) == 0 {
		return nil, ErrDegenerateHull
	}
	pts := dedupe(poly[0])
	if len(pts) < 3 {
		return nil, ErrDegenerateHull
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	n := len(pts)
	hull := make(orb.Ring, 0, 2*n)

	// Lower chain.
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper chain.
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	hull = hull[:len(hull)-1] // last point == first point
	if len(hull) < 3 {
		return nil, ErrDegenerateHull
	}
	hull = append(hull, hull[0])
	return hull, nil
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func dedupe(ring orb.Ring) []orb.Point {
	seen := make(map[geo.FP]bool, len(ring))
	out := make([]orb.Point, 0, len(ring))
	for _, p := range ring {
		fp := geo.Fingerprint(p)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, p)
	}
	return out
}
