package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// PointInRing reports whether p lies inside ring, using the standard
// even-odd ray-casting rule. Points exactly on the boundary are treated
// as inside (erring toward containment, matching the epsilon-erosion
// approach the coverage grid applies before calling this).
func PointInRing(p orb.Point, ring orb.Ring) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		if pointOnSegment(p, ring[i], ring[j]) {
			return true
		}

		if (yi > p[1]) != (yj > p[1]) {
			xIntersect := (xj-xi)*(p[1]-yi)/(yj-yi) + xi
			if p[0] < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func pointOnSegment(p, a, b orb.Point) bool {
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > 1e-12 {
		return false
	}
	return onSegment(a, b, p)
}

// PointInPolygon reports whether p lies inside poly (exterior ring only;
// this core models holes via MultiPolygon/forbidden-region composition
// rather than ring holes, per spec.md §3).
func PointInPolygon(p orb.Point, poly orb.Polygon) bool {
	if len(poly) == 0 {
		return false
	}
	return PointInRing(p, poly[0])
}

// PointInAny reports whether p lies inside any polygon of mp.
func PointInAny(p orb.Point, mp orb.MultiPolygon) bool {
	for _, poly := range mp {
		if PointInPolygon(p, poly) {
			return true
		}
	}
	return false
}

// metersToDegreesLat converts a distance in meters to an approximate delta
// in degrees of latitude (and, at this point's latitude, of longitude too,
// within the small-epsilon regime this function is meant for).
func metersToDegreesLat(meters float64) float64 {
	return meters / 111_320.0
}

// ErodeRing shrinks ring inward by approximately epsilonMeters, by moving
// each vertex toward the average of the ring's vertices along its own direction. This is a
// cheap approximation (not a true polygon offset) adequate for the small
// epsilons (centimeters) the coverage grid uses to avoid boundary-precision
// false positives in containment tests.
func ErodeRing(ring orb.Ring, epsilonMeters float64) orb.Ring {
	if len(ring) < 3 {
		return ring
	}
	cx, cy := 0.0, 0.0
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		cx += ring[i][0]
		cy += ring[i][1]
	}
	cx /= float64(n)
	cy /= float64(n)
	center := orb.Point{cx, cy}

	epsDeg := metersToDegreesLat(epsilonMeters)
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		dx := center[0] - p[0]
		dy := center[1] - p[1]
		d := math.Hypot(dx, dy)
		if d < 1e-12 {
			out[i] = p
			continue
		}
		out[i] = orb.Point{p[0] + dx/d*epsDeg, p[1] + dy/d*epsDeg}
	}
	return out
}

// ErodePolygon erodes a polygon's exterior ring by epsilonMeters; see
// ErodeRing.
func ErodePolygon(poly orb.Polygon, epsilonMeters float64) orb.Polygon {
	if len(poly) == 0 {
		return poly
	}
	out := make(orb.Polygon, len(poly))
	out[0] = ErodeRing(poly[0], epsilonMeters)
	copy(out[1:], poly[1:])
	return out
}
