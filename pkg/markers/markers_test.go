package markers

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestBuildTagsStartAndEnd(t *testing.T) {
	path := orb.LineString{{0, 0}, {0, 0.0001}, {0, 0.0002}}
	ms := Build(path, 1.0)

	if len(ms) < 2 {
		t.Fatalf("expected at least start and end markers, got %d", len(ms))
	}
	if ms[0].Tag != TagStart {
		t.Errorf("expected first marker tagged start, got %s", ms[0].Tag)
	}
	if ms[1].Tag != TagEnd {
		t.Errorf("expected second marker tagged end, got %s", ms[1].Tag)
	}
	if len(ms[0].Ring) == 0 {
		t.Error("expected start marker to carry a circle ring")
	}
}

func TestBuildEmitsArrowForLongSegment(t *testing.T) {
	// ~600 m separation at this latitude, well over 4*laneWidth for a 1 m
	// lane.
	path := orb.LineString{{0, 0}, {0, 0.005}}
	laneWidth := 1.0

	ms := Build(path, laneWidth)

	found := false
	for _, m := range ms {
		if m.Tag == TagArrow {
			found = true
			if len(m.Legs) != 2 {
				t.Errorf("expected 2 arrowhead legs, got %d", len(m.Legs))
			}
		}
	}
	if !found {
		t.Error("expected an arrowhead marker for the long segment")
	}
}

func TestBuildNoArrowForShortSegment(t *testing.T) {
	path := orb.LineString{{0, 0}, {0, 0.0000001}}
	ms := Build(path, 1.0)
	for _, m := range ms {
		if m.Tag == TagArrow {
			t.Error("did not expect an arrowhead for a short segment")
		}
	}
}
