package ppinet

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

// Position is a node location in layout space.
type Position struct {
	X float64
	Y float64
}

// Layout maps preferred names to positions rescaled into [-1, 1].
type Layout map[string]Position

// orderedGraph makes node and neighbour iteration ID-ordered so that the layout
// depends only on the graph and the seed.
type orderedGraph struct {
	*simple.WeightedUndirectedGraph
}

func (g orderedGraph) Nodes() graph.Nodes {
	return sortedNodes(g.WeightedUndirectedGraph.Nodes())
}

func (g orderedGraph) From(id int64) graph.Nodes {
	return sortedNodes(g.WeightedUndirectedGraph.From(id))
}

func sortedNodes(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return iterator.NewOrderedNodes(nodes)
}

// SpringLayout computes a force-directed layout of g using the Eades algorithm
// seeded from cfg.Seed. Self loops do not take part in the force model.
func SpringLayout(g *InteractionGraph, cfg LayoutConfig) Layout {
	out := make(Layout, g.NodeCount())
	switch g.NodeCount() {
	case 0:
		return out
	case 1:
		out[g.Name(0)] = Position{}
		return out
	}

	wg := simple.NewWeightedUndirectedGraph(0, 0)
	for id := range g.names {
		wg.AddNode(simple.Node(int64(id)))
	}
	for _, e := range g.list {
		if e.SelfLoop() {
			continue
		}
		a, _ := g.NodeID(e.A)
		b, _ := g.NodeID(e.B)
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(a), simple.Node(b), e.Weight))
	}

	eades := layout.EadesR2{
		Updates:   cfg.Iterations,
		Repulsion: cfg.Repulsion,
		Rate:      cfg.Rate,
		Theta:     cfg.Theta,
		Src:       rand.NewPCG(cfg.Seed, cfg.Seed),
	}
	optimizer := layout.NewOptimizerR2(orderedGraph{wg}, eades.Update)
	for optimizer.Update() {
	}

	raw := make([]Position, len(g.names))
	for id := range g.names {
		c := optimizer.Coord2(int64(id))
		raw[id] = Position{X: c.X, Y: c.Y}
	}
	for id, p := range rescale(raw) {
		out[g.names[id]] = p
	}
	return out
}

// rescale centres positions on the origin and scales them so the largest absolute
// coordinate is 1.
func rescale(pos []Position) []Position {
	if len(pos) == 0 {
		return pos
	}
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	var lim float64
	out := make([]Position, len(pos))
	for i, p := range pos {
		out[i] = Position{X: p.X - cx, Y: p.Y - cy}
		lim = math.Max(lim, math.Max(math.Abs(out[i].X), math.Abs(out[i].Y)))
	}
	if lim == 0 || math.IsNaN(lim) || math.IsInf(lim, 0) {
		return out
	}
	for i := range out {
		out[i].X /= lim
		out[i].Y /= lim
	}
	return out
}
