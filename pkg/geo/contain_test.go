package geo

import (
	"testing"

	"github.com/paulmach/orb"
)

func square() orb.Polygon {
	return orb.Polygon{orb.Ring{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
	}}
}

func TestPointInPolygon(t *testing.T) {
	poly := square()

	tests := []struct {
		name string
		p    orb.Point
		want bool
	}{
		{"center", orb.Point{5, 5}, true},
		{"outside", orb.Point{20, 20}, false},
		{"on edge", orb.Point{0, 5}, true},
		{"vertex", orb.Point{0, 0}, true},
		{"just outside", orb.Point{-0.1, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, poly); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestErodeRingShrinksInward(t *testing.T) {
	poly := square()
	eroded := ErodePolygon(poly, 1_000_000) // huge epsilon
	c := Centroid(poly)
	for _, p := range eroded[0] {
		d := Distance(p, c)
		dOrig := Distance(poly[0][0], c)
		if d >= dOrig {
			t.Errorf("eroded vertex %v not closer to centroid than original %v", p, poly[0][0])
		}
	}
}

func TestPointInAny(t *testing.T) {
	mp := orb.MultiPolygon{square()}
	if !PointInAny(orb.Point{5, 5}, mp) {
		t.Error("expected point inside one of the multipolygon's polygons")
	}
	if PointInAny(orb.Point{50, 50}, mp) {
		t.Error("expected point outside all polygons")
	}
}
