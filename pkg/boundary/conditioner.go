// Package boundary implements the boundary conditioner, spec.md §4.1: it
// partitions obstacles into fully-contained and not-contained, subtracts
// the not-contained ones from the raw boundary, and returns the working
// boundary plus the working (fully-contained) obstacle set.
package boundary

import (
	"errors"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/boolean"
	"github.com/azybler/mowplan/pkg/geo"
)

// ErrEmptyBoundary is returned when the conditioner finds no usable
// boundary polygon left after subtracting straddling obstacles.
var ErrEmptyBoundary = errors.New("empty boundary")

// Result holds the conditioned working boundary and working obstacles.
type Result struct {
	Boundary  orb.Polygon
	Obstacles []orb.Polygon
}

// Condition runs the two-phase partition-then-rebuild procedure of
// spec.md §4.1: classify each obstacle as fully-contained or
// not-contained, subtract the union of not-contained obstacles from the
// raw boundary, and keep the largest resulting piece if the difference is
// multi-part (spec.md §9 open question, resolved in SPEC_FULL.md).
func Condition(rawBoundary orb.Polygon, rawObstacles []orb.Polygon) (Result, error) {
	if len(rawBoundary) == 0 || len(rawBoundary[0]) < 4 {
		return Result{}, ErrEmptyBoundary
	}

	var contained []orb.Polygon
	var notContained orb.MultiPolygon

	for _, o := range rawObstacles {
		if fullyContained(o, rawBoundary) {
			contained = append(contained, o)
		} else {
			notContained = append(notContained, o)
		}
	}

	workingBoundary := rawBoundary
	if len(notContained) > 0 {
		diff, err := boolean.DifferenceMulti(rawBoundary, notContained)
		if err != nil {
			return Result{}, err
		}
		if len(diff) == 0 {
			return Result{}, ErrEmptyBoundary
		}
		largest, area := boolean.LargestByArea(diff)
		if area <= 0 {
			return Result{}, ErrEmptyBoundary
		}
		workingBoundary = largest
	}

	return Result{Boundary: workingBoundary, Obstacles: contained}, nil
}

// fullyContained reports whether every vertex of o lies inside boundary and
// o does not cross boundary's own edges — i.e. o lies wholly within
// boundary.
func fullyContained(o, boundaryPoly orb.Polygon) bool {
	if len(o) == 0 {
		return false
	}
	ring := boundaryPoly[0]
	for _, p := range o[0] {
		if !geo.PointInRing(p, ring) {
			return false
		}
	}
	for i := 0; i < len(o[0])-1; i++ {
		if crossesBoundaryEdge(o[0][i], o[0][i+1], ring) {
			return false
		}
	}
	return true
}

// crossesBoundaryEdge reports whether segment ab properly crosses any edge
// of ring (as opposed to merely having both endpoints inside it).
func crossesBoundaryEdge(a, b orb.Point, ring orb.Ring) bool {
	for i := 0; i < len(ring)-1; i++ {
		if properIntersect(a, b, ring[i], ring[i+1]) {
			return true
		}
	}
	return false
}

func properIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := cross3(p3, p4, p1)
	d2 := cross3(p3, p4, p2)
	d3 := cross3(p1, p2, p3)
	d4 := cross3(p1, p2, p4)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross3(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
