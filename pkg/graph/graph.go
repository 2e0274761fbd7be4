// Package graph implements the roadmap's AdjacencyGraph (spec.md §3) and
// Dijkstra shortest-path search over it (spec.md §4.5 steps 4-5).
//
// Nodes are interned once at build time into compact int indices, so
// Dijkstra's hot loop walks integer adjacency lists rather than hashing
// map keys on every relaxation. The intern key here is a geo.FP
// fingerprint rather than an external node ID.
package graph

import (
	"github.com/paulmach/orb"

	"github.com/azybler/mowplan/pkg/geo"
)

// Edge is one directed out-edge of the adjacency graph: travel to node To,
// at distance DistMeters, via the oriented polyline Path (Path[0] is this
// edge's source, Path[len-1] is To).
type Edge struct {
	To         int
	DistMeters float64
	Path       orb.LineString
}

// Graph is an undirected adjacency graph keyed by interned fingerprint.
// Every physical edge is stored in both directions, each carrying its own
// oriented polyline, per spec.md §3's "AdjacencyGraph" note and §9's
// "no ownership cycles" design note.
type Graph struct {
	fps   []geo.FP
	index map[geo.FP]int
	adj   [][]Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[geo.FP]int)}
}

// Intern returns the node index for fp, creating one if this is the first
// time fp has been seen.
func (g *Graph) Intern(fp geo.FP) int {
	if idx, ok := g.index[fp]; ok {
		return idx
	}
	idx := len(g.fps)
	g.fps = append(g.fps, fp)
	g.adj = append(g.adj, nil)
	g.index[fp] = idx
	return idx
}

// Lookup returns the node index for fp without creating one.
func (g *Graph) Lookup(fp geo.FP) (int, bool) {
	idx, ok := g.index[fp]
	return idx, ok
}

// NumNodes returns the number of interned nodes.
func (g *Graph) NumNodes() int { return len(g.fps) }

// FP returns the fingerprint of node index idx.
func (g *Graph) FP(idx int) geo.FP { return g.fps[idx] }

// AddEdge adds an undirected edge between the endpoints of path, storing
// the forward orientation on the a->b side and the reversed orientation on
// the b->a side, per spec.md §3.
func (g *Graph) AddEdge(path orb.LineString) {
	if len(path) < 2 {
		return
	}
	a := g.Intern(geo.Fingerprint(path[0]))
	b := g.Intern(geo.Fingerprint(path[len(path)-1]))
	dist := geo.Length(path)

	reversed := make(orb.LineString, len(path))
	for i, p := range path {
		reversed[len(path)-1-i] = p
	}

	g.adj[a] = append(g.adj[a], Edge{To: b, DistMeters: dist, Path: path})
	g.adj[b] = append(g.adj[b], Edge{To: a, DistMeters: dist, Path: reversed})
}

// EdgesFrom returns the out-edges of node idx.
func (g *Graph) EdgesFrom(idx int) []Edge {
	return g.adj[idx]
}

// Degree returns the number of edges incident to node idx (counting
// duplicate edges to the same neighbor separately), used for junction
// detection (spec.md §4.4 step 5: degree > 2 is a branch point).
func (g *Graph) Degree(idx int) int {
	return len(g.adj[idx])
}

// BuildFromSegments builds a Graph from a set of roadmap polylines, each
// segment contributing one undirected edge between its two endpoints.
func BuildFromSegments(segments []orb.LineString) *Graph {
	g := New()
	for _, s := range segments {
		g.AddEdge(s)
	}
	return g
}
