// Package geo provides the planar geometry primitives the coverage planner
// is built on: containment, disjointness, rotation, bearing, buffering,
// nearest-point-on-segment, line splitting and point fingerprinting.
//
// Coordinates are carried as orb.Point (X=longitude, Y=latitude, degrees).
// Distances, lengths and areas are computed in meters via orb/geo's
// spherical-earth approximation (haversine/equirectangular) rather than
// a full geodesic library, which is plenty accurate at field scale.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// FingerprintDecimals is the number of decimal places of degrees used to
// round coordinates before they are used as map/set keys. 6 decimal places
// is approximately 0.11 m at the equator.
const FingerprintDecimals = 6

var fingerprintScale = math.Pow(10, FingerprintDecimals)

// FP is a canonical, roundable, comparable point key. Points whose
// coordinates round to the same fingerprint grid step map to the same FP;
// two very close points on either side of a rounding midpoint do not.
type FP struct {
	X, Y int64
}

// Fingerprint rounds p to the fingerprint grid and returns its key.
//
// Floating-point Voronoi output tends to produce coincident-but-not-equal
// endpoints; junction detection and adjacency-graph keying require this
// equivalence class rather than raw float equality.
func Fingerprint(p orb.Point) FP {
	return FP{
		X: int64(math.Round(p[0] * fingerprintScale)),
		Y: int64(math.Round(p[1] * fingerprintScale)),
	}
}

// Round snaps p to the fingerprint grid's resolution.
func Round(p orb.Point) orb.Point {
	fp := Fingerprint(p)
	return orb.Point{float64(fp.X) / fingerprintScale, float64(fp.Y) / fingerprintScale}
}

// SamePoint reports whether a and b fall in the same fingerprint cell.
func SamePoint(a, b orb.Point) bool {
	return Fingerprint(a) == Fingerprint(b)
}

// Bearing returns the initial geographic bearing from a to b, in degrees,
// normalized to [0, 360).
func Bearing(a, b orb.Point) float64 {
	brg := orbgeo.Bearing(a, b)
	if brg < 0 {
		brg += 360
	}
	return brg
}

// Distance returns the great-circle distance between a and b, in meters.
func Distance(a, b orb.Point) float64 {
	return orbgeo.Distance(a, b)
}

// Length returns the total length of a line string, in meters.
func Length(ls orb.LineString) float64 {
	total := 0.0
	for i := 1; i < len(ls); i++ {
		total += Distance(ls[i-1], ls[i])
	}
	return total
}

// Centroid returns the area-weighted centroid of a polygon's exterior ring.
// Falls back to the vertex average for degenerate (near-zero-area) rings.
func Centroid(poly orb.Polygon) orb.Point {
	if len(poly) == 0 || len(poly[0]) < 3 {
		return orb.Point{}
	}
	ring := poly[0]
	var cx, cy, area float64
	n := len(ring)
	for i := 0; i < n-1; i++ {
		x0, y0 := ring[i][0], ring[i][1]
		x1, y1 := ring[i+1][0], ring[i+1][1]
		cross := x0*y1 - x1*y0
		area += cross
		cx += (x0 + x1) * cross
		cy += (y0 + y1) * cross
	}
	area /= 2
	if math.Abs(area) < 1e-18 {
		var sx, sy float64
		for i := 0; i < n-1; i++ {
			sx += ring[i][0]
			sy += ring[i][1]
		}
		return orb.Point{sx / float64(n-1), sy / float64(n-1)}
	}
	cx /= 6 * area
	cy /= 6 * area
	return orb.Point{cx, cy}
}

// RotateAbout rotates point p by angleDeg degrees (counterclockwise,
// standard mathematical convention, applied in the X/Y=lon/lat plane)
// about pivot.
func RotateAbout(p, pivot orb.Point, angleDeg float64) orb.Point {
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx := p[0] - pivot[0]
	dy := p[1] - pivot[1]
	return orb.Point{
		pivot[0] + dx*cos - dy*sin,
		pivot[1] + dx*sin + dy*cos,
	}
}

// RotateRing rotates every vertex of a ring about pivot by angleDeg degrees.
func RotateRing(ring orb.Ring, pivot orb.Point, angleDeg float64) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[i] = RotateAbout(p, pivot, angleDeg)
	}
	return out
}

// RotatePolygon rotates every ring of a polygon about pivot by angleDeg.
func RotatePolygon(poly orb.Polygon, pivot orb.Point, angleDeg float64) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, r := range poly {
		out[i] = RotateRing(r, pivot, angleDeg)
	}
	return out
}

// BoundOfRing returns the axis-aligned bounding box of a ring.
func BoundOfRing(ring orb.Ring) orb.Bound {
	b := orb.Bound{Min: ring[0], Max: ring[0]}
	for _, p := range ring[1:] {
		b = b.Extend(p)
	}
	return b
}

// BoundOfPolygon returns the axis-aligned bounding box of a polygon's
// exterior ring.
func BoundOfPolygon(poly orb.Polygon) orb.Bound {
	return BoundOfRing(poly[0])
}
