package boolean

import (
	"testing"

	"github.com/paulmach/orb"
)

func unitSquare() orb.Polygon {
	return orb.Polygon{orb.Ring{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
	}}
}

func TestDifferenceNotContained(t *testing.T) {
	boundary := unitSquare()
	// Obstacle straddles the right edge, half in half out.
	straddler := orb.Polygon{orb.Ring{
		{8, 4}, {14, 4}, {14, 6}, {8, 6}, {8, 4},
	}}

	result, err := Difference(boundary, straddler)
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	if len(result) == 0 {
		t.Fatal("expected a non-empty working boundary")
	}

	largest, _ := LargestByArea(result)
	if !containsApprox(largest, orb.Point{1, 5}) {
		t.Error("expected the notched boundary to still contain a point far from the obstacle")
	}
	if containsApprox(largest, orb.Point{9, 5}) {
		t.Error("expected the notch to remove the straddled area")
	}
}

func TestLargestByArea(t *testing.T) {
	small := orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	big := orb.Polygon{orb.Ring{{20, 20}, {30, 20}, {30, 30}, {20, 30}, {20, 20}}}
	best, area := LargestByArea(orb.MultiPolygon{small, big})
	if area <= 0 {
		t.Fatalf("expected positive area, got %f", area)
	}
	if best[0][0] != big[0][0] {
		t.Errorf("expected the larger polygon to be selected")
	}
}

// containsApprox does a cheap ray-cast containment check local to this test
// file, so these tests do not depend on pkg/geo.
func containsApprox(poly orb.Polygon, p orb.Point) bool {
	ring := poly[0]
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
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
