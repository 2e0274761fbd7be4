package planner

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func square(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0},
	}}
}

func TestPlanUnitSquareNoObstacles(t *testing.T) {
	boundary := orb.Polygon{orb.Ring{
		{0, 0}, {0.00001, 0}, {0.00001, 0.00001}, {0, 0.00001}, {0, 0},
	}}
	cfg := Config{LaneWidth: 0.25, StartCorner: 0, MBBOrientationOffsetDeg: 0}

	result, err := Plan(boundary, nil, cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if result.CoverageFraction < 0.90 {
		t.Errorf("expected coverage >= 0.90, got %f", result.CoverageFraction)
	}
	if len(result.MowPath) < 8 {
		t.Errorf("expected >= 8 path vertices, got %d", len(result.MowPath))
	}
}

func TestPlanWithCentralObstacleAvoidsIt(t *testing.T) {
	boundary := orb.Polygon{orb.Ring{
		{0, 0}, {0.00001, 0}, {0.00001, 0.00001}, {0, 0.00001}, {0, 0},
	}}
	obstacle := orb.Polygon{orb.Ring{
		{0.0000038, 0.0000038}, {0.0000063, 0.0000038},
		{0.0000063, 0.0000063}, {0.0000038, 0.0000063}, {0.0000038, 0.0000038},
	}}
	cfg := Config{LaneWidth: 0.1, StartCorner: 0}

	result, err := Plan(boundary, []orb.Polygon{obstacle}, cfg)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for i := 0; i < len(result.MowPath)-1; i++ {
		a, b := result.MowPath[i], result.MowPath[i+1]
		for _, o := range result.WorkingObstacles {
			if !forbidSegmentFree(a, b, o) {
				t.Errorf("path segment %v-%v crosses obstacle", a, b)
			}
		}
	}
}

func TestPlanBoundaryWhollyInsideObstacleIsEmptyBoundary(t *testing.T) {
	boundary := square(4, 4, 6, 6)
	obstacle := square(0, 0, 10, 10)

	_, err := Plan(boundary, []orb.Polygon{obstacle}, Config{LaneWidth: 1})
	if !errors.Is(err, ErrEmptyBoundary) {
		t.Errorf("expected ErrEmptyBoundary, got %v", err)
	}
}

func forbidSegmentFree(a, b orb.Point, o orb.Polygon) bool {
	ring := o[0]
	for i := 0; i < len(ring)-1; i++ {
		if segmentsCross(a, b, ring[i], ring[i+1]) {
			return false
		}
	}
	return true
}

func segmentsCross(p1, p2, p3, p4 orb.Point) bool {
	d1 := dir(p3, p4, p1)
	d2 := dir(p3, p4, p2)
	d3 := dir(p1, p2, p3)
	d4 := dir(p1, p2, p4)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func dir(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
