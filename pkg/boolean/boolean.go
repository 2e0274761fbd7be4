// Package boolean wraps github.com/go-clipper/clipper2 to provide polygon
// difference, intersection and union over orb.Polygon/orb.MultiPolygon,
// the way spec.md §4.1 and §4.4 need them: boundary-minus-obstacles, and
// Voronoi-cell-intersect-boundary.
//
// Clipper2 operates on integer coordinates (clipper.Path64) for robust
// arithmetic. Degrees are scaled to a fixed-point integer grid of
// 1e-7 degree steps (1e7 per degree, matching GPS-grade precision) and scaled back on the way
// out — the same "project to a consistent numeric frame, compute, project
// back" approach spec.md §9 recommends for planar substitutes of geodesic
// math.
package boolean

import (
	"math"

	"github.com/go-clipper/clipper2"
	"github.com/paulmach/orb"
)

const scale = 1e7

func toPath64(ring orb.Ring) clipper2.Path64 {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	path := make(clipper2.Path64, n)
	for i := 0; i < n; i++ {
		path[i] = clipper2.Point64{
			X: int64(ring[i][0] * scale),
			Y: int64(ring[i][1] * scale),
		}
	}
	return path
}

func fromPath64(path clipper2.Path64) orb.Ring {
	if len(path) == 0 {
		return nil
	}
	ring := make(orb.Ring, 0, len(path)+1)
	for _, pt := range path {
		ring = append(ring, orb.Point{float64(pt.X) / scale, float64(pt.Y) / scale})
	}
	ring = append(ring, ring[0])
	return ring
}

func toPaths64(poly orb.Polygon) clipper2.Paths64 {
	paths := make(clipper2.Paths64, len(poly))
	for i, ring := range poly {
		paths[i] = toPath64(ring)
	}
	return paths
}

func toPaths64MP(mp orb.MultiPolygon) clipper2.Paths64 {
	var paths clipper2.Paths64
	for _, poly := range mp {
		paths = append(paths, toPaths64(poly)...)
	}
	return paths
}

func fromPaths64(paths clipper2.Paths64) orb.MultiPolygon {
	mp := make(orb.MultiPolygon, 0, len(paths))
	for _, p := range paths {
		ring := fromPath64(p)
		if len(ring) < 4 {
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}
	return mp
}

func booleanOp(op clipper2.ClipType, subject, clip orb.MultiPolygon) (orb.MultiPolygon, error) {
	subjects := toPaths64MP(subject)
	clips := toPaths64MP(clip)
	result, err := clipper2.BooleanOp(op, clipper2.NonZero, subjects, clips)
	if err != nil {
		return nil, err
	}
	return fromPaths64(result), nil
}

// Difference returns subject minus clip, as a (possibly multi-piece,
// possibly empty) MultiPolygon.
func Difference(subject, clip orb.Polygon) (orb.MultiPolygon, error) {
	return booleanOp(clipper2.Difference, orb.MultiPolygon{subject}, orb.MultiPolygon{clip})
}

// DifferenceMulti returns subject minus the union of all polygons in clip.
func DifferenceMulti(subject orb.Polygon, clip orb.MultiPolygon) (orb.MultiPolygon, error) {
	return booleanOp(clipper2.Difference, orb.MultiPolygon{subject}, clip)
}

// Intersect returns the intersection of a and b.
func Intersect(a, b orb.Polygon) (orb.MultiPolygon, error) {
	return booleanOp(clipper2.Intersection, orb.MultiPolygon{a}, orb.MultiPolygon{b})
}

// Union returns the union of all polygons in mp.
func Union(mp orb.MultiPolygon) (orb.MultiPolygon, error) {
	if len(mp) == 0 {
		return nil, nil
	}
	return booleanOp(clipper2.Union, orb.MultiPolygon{mp[0]}, mp[1:])
}

// LargestByArea returns the polygon of mp with the greatest planar area in
// square meters, and that area. Used to resolve a multi-piece boundary
// difference to a single working boundary (spec.md §4.1, §9 open question).
func LargestByArea(mp orb.MultiPolygon) (orb.Polygon, float64) {
	var best orb.Polygon
	bestArea := -1.0
	for _, poly := range mp {
		a := RingAreaMeters(poly[0])
		if a > bestArea {
			bestArea = a
			best = poly
		}
	}
	return best, bestArea
}

// RingAreaMeters returns the approximate planar (shoelace) area of ring in
// square meters, treating degrees as locally planar — adequate at the
// scale (single-field) this core operates at.
func RingAreaMeters(ring orb.Ring) float64 {
	if len(ring) < 4 {
		return 0
	}
	const metersPerDegreeLat = 111_320.0
	cosLat := math.Cos(ring[0][1] * math.Pi / 180)
	area := 0.0
	for i := 0; i < len(ring)-1; i++ {
		x0 := ring[i][0] * metersPerDegreeLat * cosLat
		y0 := ring[i][1] * metersPerDegreeLat
		x1 := ring[i+1][0] * metersPerDegreeLat * cosLat
		y1 := ring[i+1][1] * metersPerDegreeLat
		area += x0*y1 - x1*y0
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}
