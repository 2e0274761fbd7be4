package graph

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

func TestDijkstraSimpleChain(t *testing.T) {
	g := New()
	g.AddEdge(orb.LineString{{0, 0}, {0, 1}})
	g.AddEdge(orb.LineString{{0, 1}, {0, 2}})

	start := g.Intern(geo.Fingerprint(orb.Point{0, 0}))
	end := g.Intern(geo.Fingerprint(orb.Point{0, 2}))

	path, dist, err := Dijkstra(g, start, end)
	if err != nil {
		t.Fatalf("Dijkstra: %v", err)
	}
	if dist <= 0 {
		t.Errorf("expected positive distance, got %f", dist)
	}
	if path[0] != (orb.Point{0, 0}) || path[len(path)-1] != (orb.Point{0, 2}) {
		t.Errorf("path endpoints wrong: %v", path)
	}
}

func TestDijkstraPrefersShorterRoute(t *testing.T) {
	g := New()
	// Direct, the shorter way.
	g.AddEdge(orb.LineString{{0, 0}, {0, 0.01}})
	// Via a detour that's longer in total (two hops).
	g.AddEdge(orb.LineString{{0, 0}, {0.001, 0}})
	g.AddEdge(orb.LineString{{0.001, 0}, {0, 0.01}})

	start := g.Intern(geo.Fingerprint(orb.Point{0, 0}))
	end := g.Intern(geo.Fingerprint(orb.Point{0, 0.01}))

	_, dist, err := Dijkstra(g, start, end)
	if err != nil {
		t.Fatalf("Dijkstra: %v", err)
	}
	direct := geo.Distance(orb.Point{0, 0}, orb.Point{0, 0.01})
	if dist > direct+1 {
		t.Errorf("expected Dijkstra to not exceed direct distance by much, got %f vs direct %f", dist, direct)
	}
}

func TestDijkstraNoPath(t *testing.T) {
	g := New()
	g.AddEdge(orb.LineString{{0, 0}, {0, 1}})
	g.AddEdge(orb.LineString{{10, 10}, {10, 11}})

	start := g.Intern(geo.Fingerprint(orb.Point{0, 0}))
	end := g.Intern(geo.Fingerprint(orb.Point{10, 11}))

	if _, _, err := Dijkstra(g, start, end); err != ErrNoPath {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
}

func TestDegreeCountsJunction(t *testing.T) {
	g := New()
	g.AddEdge(orb.LineString{{0, 0}, {1, 0}})
	g.AddEdge(orb.LineString{{1, 0}, {1, 1}})
	g.AddEdge(orb.LineString{{1, 0}, {2, 0}})

	junction, ok := g.Lookup(geo.Fingerprint(orb.Point{1, 0}))
	if !ok {
		t.Fatal("expected junction node to be interned")
	}
	if g.Degree(junction) <= 2 {
		t.Errorf("expected degree > 2 at the junction, got %d", g.Degree(junction))
	}
}

func TestCollapseDuplicates(t *testing.T) {
	in := orb.LineString{{0, 0}, {0, 0}, {1, 1}, {1, 1}, {2, 2}}
	out := collapseDuplicates(in)
	if len(out) != 3 {
		t.Errorf("expected 3 points after collapsing duplicates, got %d: %v", len(out), out)
	}
}

func TestMinHeapOrdering(t *testing.T) {
	h := &minHeap{}
	h.Push(1, 5)
	h.Push(2, 1)
	h.Push(3, 3)

	var order []float64
	for h.Len() > 0 {
		order = append(order, h.Pop().dist)
	}
	for i := 1; i < len(order); i++ {
		if order[i] < order[i-1] {
			t.Fatalf("heap did not pop in ascending order: %v", order)
		}
	}
	if math.Abs(order[0]-1) > 1e-9 {
		t.Errorf("expected smallest first, got %f", order[0])
	}
}
