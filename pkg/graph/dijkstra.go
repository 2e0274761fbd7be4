package graph

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

// ErrNoPath is returned when Dijkstra finds no route between the requested
// nodes.
var ErrNoPath = errors.New("no path")

// minHeap is a concrete-typed min-heap for the Dijkstra priority queue,
// avoiding interface-boxing overhead: int node indices and float64 meter
// distances throughout. Items of equal distance pop in no particular order
// (sifting does not keep insertion order), so tests must not depend on
// tie-break among equal-distance paths.
type minHeap struct {
	items []pqItem
}

type pqItem struct {
	node int
	dist float64
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node int, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// Dijkstra finds the shortest path from start to end in g. Edge weights
// are polyline lengths in meters. The returned path is the concatenation
// of the oriented polylines stored on each traversed edge (spec.md §4.5
// step 6), with consecutive duplicate vertices (by fingerprint) collapsed.
func Dijkstra(g *Graph, start, end int) (orb.LineString, float64, error) {
	if start == end {
		return nil, 0, nil
	}

	const inf = math.MaxFloat64
	dist := make([]float64, g.NumNodes())
	predNode := make([]int, g.NumNodes())
	predEdge := make([]*Edge, g.NumNodes())
	visited := make([]bool, g.NumNodes())
	for i := range dist {
		dist[i] = inf
		predNode[i] = -1
	}
	dist[start] = 0

	pq := &minHeap{}
	pq.Push(start, 0)

	for pq.Len() > 0 {
		top := pq.Pop()
		u := top.node
		if visited[u] {
			continue
		}
		if top.dist > dist[u] {
			continue
		}
		visited[u] = true
		if u == end {
			break
		}

		for i := range g.adj[u] {
			e := &g.adj[u][i]
			nd := dist[u] + e.DistMeters
			if nd < dist[e.To] {
				dist[e.To] = nd
				predNode[e.To] = u
				predEdge[e.To] = e
				pq.Push(e.To, nd)
			}
		}
	}

	if dist[end] == inf {
		return nil, 0, ErrNoPath
	}

	// Reconstruct by walking predecessors, prepending each stored polyline.
	var path orb.LineString
	node := end
	for node != start {
		e := predEdge[node]
		if path == nil {
			path = append(orb.LineString{}, e.Path...)
		} else {
			path = append(append(orb.LineString{}, e.Path[:len(e.Path)-1]...), path...)
		}
		node = predNode[node]
	}

	return collapseDuplicates(path), dist[end], nil
}

func collapseDuplicates(ls orb.LineString) orb.LineString {
	if len(ls) < 2 {
		return ls
	}
	out := make(orb.LineString, 0, len(ls))
	out = append(out, ls[0])
	for _, p := range ls[1:] {
		if !geo.SamePoint(p, out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}
