package hull

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

// MBB is the minimum-area bounding rectangle of a hull: four distinct
// vertices plus a closing point equal to the first, and the rotation
// (degrees) used to produce it.
type MBB struct {
	Ring       orb.Ring
	RotationDeg float64 // the winning edge's bearing (theta_i in spec.md §4.2), or thetaLast+offset when an orientation offset is applied
}

// MinimumBoundingBox computes the minimum-area rotated rectangle enclosing
// hullRing, trying only rectangles whose sides are parallel to a hull edge
// (rotating calipers), per spec.md §4.2 steps 1-2. For each edge of bearing
// theta, the hull is turned counterclockwise by theta (geo.RotateAbout's
// convention), which brings that edge onto the north-south axis, and the
// axis-aligned bbox taken there is turned back by -theta. The turn happens
// in the lon/lat degree plane while theta is a geographic bearing, so the
// sides are exactly parallel to the edge only near the equator.
//
// If orientationOffsetDeg > 0, step 3's documented quirk is reproduced: the
// winning rectangle is replaced by the axis-aligned bbox of the hull
// turned the same way by (thetaLast+offset) and turned back again,
// where thetaLast is the bearing of the *last* hull edge considered, not
// the bearing that actually won the minimum-area search. This is a known
// bug in the source system being reproduced here; do not "fix" it.
func MinimumBoundingBox(hullRing orb.Ring, orientationOffsetDeg float64) (MBB, error) {
	if len(hullRing) < 4 {
		return MBB{}, ErrDegenerateHull
	}
	center := geo.Centroid(orb.Polygon{hullRing})

	n := len(hullRing) - 1 // hullRing is closed
	bestArea := math.Inf(1)
	var bestRing orb.Ring
	var bestTheta float64
	var thetaLast float64

	for i := 0; i < n; i++ {
		a := hullRing[i]
		b := hullRing[(i+1)%n]
		theta := geo.Bearing(a, b)
		thetaLast = theta

		rotated := geo.RotateRing(hullRing, center, theta)
		bound := geo.BoundOfRing(rotated)
		area := (bound.Max[0] - bound.Min[0]) * (bound.Max[1] - bound.Min[1])

		if area < bestArea {
			bestArea = area
			bestTheta = theta
			axisAligned := boundToRing(bound)
			bestRing = geo.RotateRing(axisAligned, center, -theta)
		}
	}

	if bestRing == nil {
		return MBB{}, ErrDegenerateHull
	}

	if orientationOffsetDeg > 0 {
		theta := thetaLast + orientationOffsetDeg
		rotated := geo.RotateRing(hullRing, center, theta)
		bound := geo.BoundOfRing(rotated)
		axisAligned := boundToRing(bound)
		bestRing = geo.RotateRing(axisAligned, center, -theta)
		bestTheta = theta
	}

	return MBB{Ring: bestRing, RotationDeg: bestTheta}, nil
}

func boundToRing(b orb.Bound) orb.Ring {
	return orb.Ring{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
		{b.Min[0], b.Min[1]},
	}
}
