package ppinet

import (
	"fmt"

	"github.com/tidwall/btree"
)

// Edge is an undirected interaction between two preferred names.
type Edge struct {
	A      string
	B      string
	Weight float64
}

// SelfLoop reports whether both ends name the same protein.
func (e Edge) SelfLoop() bool { return e.A == e.B }

type pairKey struct{ a, b string }

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// InteractionGraph is the undirected weighted graph derived from a filtered table.
// Node IDs are assigned in order of first appearance.
type InteractionGraph struct {
	ids   btree.Map[string, int64]
	names []string
	edges map[pairKey]int
	list  []Edge
}

// NewInteractionGraph returns an empty graph.
func NewInteractionGraph() *InteractionGraph {
	return &InteractionGraph{edges: make(map[pairKey]int)}
}

// BuildGraph adds one edge per record, weighted by escore. When a pair repeats, the
// later record's score replaces the earlier one.
func BuildGraph(table InteractionTable) (*InteractionGraph, error) {
	g := NewInteractionGraph()
	for i, rec := range table {
		score, err := rec.ExperimentalScore()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		g.SetEdge(rec.PreferredNameA, rec.PreferredNameB, score)
	}
	return g, nil
}

// AddNode adds name if absent and returns its ID.
func (g *InteractionGraph) AddNode(name string) int64 {
	if id, ok := g.ids.Get(name); ok {
		return id
	}
	id := int64(len(g.names))
	g.ids.Set(name, id)
	g.names = append(g.names, name)
	return id
}

// SetEdge sets the weight of the a-b edge, creating nodes and the edge as needed.
func (g *InteractionGraph) SetEdge(a, b string, weight float64) {
	g.AddNode(a)
	g.AddNode(b)
	key := newPairKey(a, b)
	if idx, ok := g.edges[key]; ok {
		g.list[idx].Weight = weight
		return
	}
	g.edges[key] = len(g.list)
	g.list = append(g.list, Edge{A: a, B: b, Weight: weight})
}

// Weight returns the weight of the edge between a and b in either order.
func (g *InteractionGraph) Weight(a, b string) (float64, bool) {
	idx, ok := g.edges[newPairKey(a, b)]
	if !ok {
		return 0, false
	}
	return g.list[idx].Weight, true
}

// NodeID returns the ID of name.
func (g *InteractionGraph) NodeID(name string) (int64, bool) {
	return g.ids.Get(name)
}

// Name returns the preferred name of the node with the given ID.
func (g *InteractionGraph) Name(id int64) string {
	if id < 0 || id >= int64(len(g.names)) {
		return ""
	}
	return g.names[id]
}

// Nodes returns the node names sorted alphabetically.
func (g *InteractionGraph) Nodes() []string {
	out := make([]string, 0, g.ids.Len())
	g.ids.Scan(func(name string, _ int64) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Edges returns the edges in order of first appearance of their pair.
func (g *InteractionGraph) Edges() []Edge {
	out := make([]Edge, len(g.list))
	copy(out, g.list)
	return out
}

// NodeCount returns the number of distinct names.
func (g *InteractionGraph) NodeCount() int { return len(g.names) }

// EdgeCount returns the number of distinct unordered pairs.
func (g *InteractionGraph) EdgeCount() int { return len(g.list) }
