package router

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

func TestRouteDirectLineWhenFree(t *testing.T) {
	forbid := Forbidden{Boundary: square(0, 0, 10, 10)}

	path, err := Route(nil, forbid, orb.Point{1, 1}, orb.Point{9, 9})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("expected a direct 2-point path, got %v", path)
	}
}

func TestRouteStitchesAroundObstacle(t *testing.T) {
	boundary := square(0, 0, 10, 10)
	obstacle := square(4, 0, 6, 9) // a wall from the bottom edge, open along the top
	forbid := Forbidden{Boundary: boundary, Obstacles: []orb.Polygon{obstacle}}

	// A roadmap that routes around the wall via a single segment through the
	// gap above it, clear of the obstacle.
	segments := []orb.LineString{
		{{0, 9.5}, {10, 9.5}},
	}

	path, err := Route(segments, forbid, orb.Point{1, 1}, orb.Point{9, 1})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if path[0] != (orb.Point{1, 1}) {
		t.Errorf("expected path to start at s, got %v", path[0])
	}
	if path[len(path)-1] != (orb.Point{9, 1}) {
		t.Errorf("expected path to end at e, got %v", path[len(path)-1])
	}
	for i := 0; i < len(path)-1; i++ {
		if !forbid.SegmentFree(path[i], path[i+1]) {
			t.Errorf("path subsegment %v-%v crosses the forbidden region", path[i], path[i+1])
		}
	}
}

func TestRouteNoPathWithoutRoadmap(t *testing.T) {
	boundary := square(0, 0, 10, 10)
	obstacle := square(4, 0, 6, 10)
	forbid := Forbidden{Boundary: boundary, Obstacles: []orb.Polygon{obstacle}}

	_, err := Route(nil, forbid, orb.Point{1, 1}, orb.Point{9, 1})
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
}
