// Package markers produces the final path's marker feature set, per
// spec.md §4.7: start/end circles and arrowheads on long segments.
package markers

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

// circleSegments is the polygon density used to approximate the start/end
// circle markers; matches the collaborator-contract convention of
// polygonalizing circular geometry for rendering rather than carrying a
// true-circle primitive through the pipeline.
const circleSegments = 16

// legLengthRatio and legAngleDeg size the two short legs of an arrowhead,
// per spec.md §4.7's "±150° from the segment bearing".
const legAngleDeg = 150
const legLengthRatio = 0.15 // leg length as a fraction of laneWidth

// Tag identifies a marker's kind.
type Tag string

const (
	TagStart Tag = "start"
	TagEnd   Tag = "end"
	TagArrow Tag = "arrow"
)

// Marker is one rendered feature: a closed polygon ring (for circles) or an
// open polyline (for arrowheads).
type Marker struct {
	Tag  Tag
	Ring orb.Ring       // set for TagStart/TagEnd
	Legs []orb.LineString // set for TagArrow: the two arrowhead legs
}

// Build produces the marker set for path, per spec.md §4.7.
func Build(path orb.LineString, laneWidth float64) []Marker {
	if len(path) == 0 {
		return nil
	}

	markers := []Marker{
		{Tag: TagStart, Ring: circle(path[0], 0.3*laneWidth)},
		{Tag: TagEnd, Ring: circle(path[len(path)-1], 0.3*laneWidth)},
	}

	threshold := 4 * laneWidth
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		if geo.Distance(a, b) <= threshold {
			continue
		}
		markers = append(markers, Marker{
			Tag:  TagArrow,
			Legs: arrowhead(a, b, laneWidth),
		})
	}

	return markers
}

func circle(center orb.Point, radiusMeters float64) orb.Ring {
	ring := make(orb.Ring, 0, circleSegments+1)
	radiusDeg := metersToDegrees(radiusMeters, center[1])
	for i := 0; i <= circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(circleSegments)
		ring = append(ring, orb.Point{
			center[0] + radiusDeg*math.Cos(angle)/math.Cos(center[1]*math.Pi/180),
			center[1] + radiusDeg*math.Sin(angle),
		})
	}
	return ring
}

func metersToDegrees(meters, lat float64) float64 {
	return meters / 111320.0
}

// arrowhead builds the two short legs of an arrowhead at the midpoint of
// a->b, each rotated ±legAngleDeg from the segment's bearing (spec.md
// §4.7's "two short legs at ±150°").
func arrowhead(a, b orb.Point, laneWidth float64) []orb.LineString {
	mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
	bearing := geo.Bearing(a, b)
	legLen := legLengthRatio * laneWidth

	leftTip := project(mid, bearing+legAngleDeg, legLen)
	rightTip := project(mid, bearing-legAngleDeg, legLen)

	return []orb.LineString{
		{mid, leftTip},
		{mid, rightTip},
	}
}

// project moves from p in direction bearingDeg (clockwise from north) by
// distMeters, approximating with an equirectangular projection consistent
// with the rest of pkg/geo.
func project(p orb.Point, bearingDeg, distMeters float64) orb.Point {
	rad := bearingDeg * math.Pi / 180
	dLat := distMeters * math.Cos(rad) / 111320.0
	dLon := distMeters * math.Sin(rad) / (111320.0 * math.Cos(p[1]*math.Pi/180))
	return orb.Point{p[0] + dLon, p[1] + dLat}
}
