// Package graph holds the dependency graph of classes and slices.
//
// The graph is a directed multigraph over [model.Node] values with two edge
// labels: CONTAINS edges form the containment forest from slice groups down
// to classes, REFERENCES edges record class-to-class dependencies. It is
// populated during ingest and read-only afterwards; [Graph.Slice] projects
// it onto the slice nodes of one slicing for constraint checking.
//
// Graph is not safe for concurrent use. Two independent graphs may be built
// and evaluated on different goroutines.
package graph

import (
	"github.com/obqo/decycle/pkg/model"
	"github.com/obqo/decycle/pkg/slicer"
)

// EdgeLabel distinguishes containment from reference edges.
type EdgeLabel int

const (
	// EdgeContains goes from a slice group to a node contained in it.
	EdgeContains EdgeLabel = iota
	// EdgeReferences goes between nodes on the same level: class to class
	// in the raw graph, slice to slice after projection.
	EdgeReferences
)

func (l EdgeLabel) String() string {
	if l == EdgeContains {
		return "contains"
	}
	return "references"
}

// Edge is a directed, labeled edge between two nodes.
type Edge struct {
	From  model.Node
	To    model.Node
	Label EdgeLabel
}

type edgeKey struct {
	from, to string
	label    EdgeLabel
}

// maxCategoryDepth bounds the categorizer recursion in Add. The categorizer
// contract guarantees a fixed point; the bound protects against a
// misconfigured categorizer that never reaches one.
const maxCategoryDepth = 64

// Graph is the mutable dependency multigraph. Construct it with [New];
// the zero value is not usable.
//
// Nodes and edges are added monotonically, duplicate edges of the same
// label are dropped, and iteration order is insertion order, which makes
// every derived result deterministic for the same input sequence.
type Graph struct {
	categorizer slicer.Categorizer
	filter      slicer.NodeFilter
	edgeFilter  slicer.EdgeFilter

	nodes map[string]model.Node
	order []model.Node
	out   map[string][]Edge
	in    map[string][]Edge
	edges []Edge
	seen  map[edgeKey]struct{}
}

// New creates an empty graph. Any of the three collaborators may be nil:
// a nil categorizer categorizes every node as itself, nil filters accept
// everything. Self-loops are always rejected, independent of edgeFilter.
func New(categorizer slicer.Categorizer, filter slicer.NodeFilter, edgeFilter slicer.EdgeFilter) *Graph {
	if categorizer == nil {
		categorizer = slicer.CategorizerFunc(func(n model.Node) model.Node { return n })
	}
	if filter == nil {
		filter = func(model.Node) bool { return true }
	}
	if edgeFilter == nil {
		edgeFilter = func(model.Node, model.Node) bool { return true }
	}
	return &Graph{
		categorizer: categorizer,
		filter:      filter,
		edgeFilter:  edgeFilter,
		nodes:       make(map[string]model.Node),
		out:         make(map[string][]Edge),
		in:          make(map[string][]Edge),
		seen:        make(map[edgeKey]struct{}),
	}
}

// Connect records a reference from a to b. The edge is added when both
// nodes pass the node filter, the pair passes the edge filter, and the
// nodes differ; both nodes are then passed to [Graph.Add] (which applies
// the node filter) regardless of whether the edge itself was kept.
func (g *Graph) Connect(a, b model.Node) {
	if g.filter(a) && g.filter(b) && g.edgeFilter(a, b) && !model.Equal(a, b) {
		g.addEdge(a, b, EdgeReferences)
	}
	g.Add(a)
	g.Add(b)
}

// Add inserts a node and, recursively, its categories joined by CONTAINS
// edges. The recursion stops at the categorizer's fixed point. Nodes
// rejected by the node filter are ignored together with their categories;
// the categories of an accepted node are added without consulting the
// filter.
func (g *Graph) Add(n model.Node) {
	if !g.filter(n) {
		return
	}
	g.unfilteredAdd(n, 0)
}

func (g *Graph) unfilteredAdd(n model.Node, depth int) {
	if depth > maxCategoryDepth {
		return
	}
	cat := g.categorizer.Categorize(n)
	if model.Equal(cat, n) {
		g.addNode(n)
		return
	}
	g.addEdge(cat, n, EdgeContains)
	g.unfilteredAdd(cat, depth+1)
}

func (g *Graph) addNode(n model.Node) {
	key := n.Key()
	if _, ok := g.nodes[key]; ok {
		return
	}
	g.nodes[key] = n
	g.order = append(g.order, n)
}

func (g *Graph) addEdge(from, to model.Node, label EdgeLabel) {
	if model.Equal(from, to) {
		return
	}
	g.addNode(from)
	g.addNode(to)
	key := edgeKey{from: from.Key(), to: to.Key(), label: label}
	if _, ok := g.seen[key]; ok {
		return
	}
	g.seen[key] = struct{}{}
	e := Edge{From: from, To: to, Label: label}
	g.edges = append(g.edges, e)
	g.out[key.from] = append(g.out[key.from], e)
	g.in[key.to] = append(g.in[key.to], e)
}

// AllNodes returns every node in insertion order.
func (g *Graph) AllNodes() []model.Node {
	nodes := make([]model.Node, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// TopNodes returns the roots of the containment forest: nodes without an
// incoming CONTAINS edge, in insertion order.
func (g *Graph) TopNodes() []model.Node {
	var tops []model.Node
	for _, n := range g.order {
		if _, ok := g.containerOf(n); !ok {
			tops = append(tops, n)
		}
	}
	return tops
}

// ContentsOf returns the nodes contained in group, in insertion order.
func (g *Graph) ContentsOf(group model.Node) []model.Node {
	return g.connected(group, EdgeContains)
}

// ConnectionsOf returns the nodes referenced by n, in insertion order.
func (g *Graph) ConnectionsOf(n model.Node) []model.Node {
	return g.connected(n, EdgeReferences)
}

func (g *Graph) connected(n model.Node, label EdgeLabel) []model.Node {
	var out []model.Node
	for _, e := range g.out[n.Key()] {
		if e.Label == label {
			out = append(out, e.To)
		}
	}
	return out
}

// containerOf returns the source of the first CONTAINS in-edge of n. The
// containment structure is a forest, so the container is unique whenever
// it exists.
func (g *Graph) containerOf(n model.Node) (model.Node, bool) {
	for _, e := range g.in[n.Key()] {
		if e.Label == EdgeContains {
			return e.From, true
		}
	}
	return nil, false
}

// Slice projects the graph onto the slicing with the given name. The
// projection contains every SimpleNode carrying the slicing as type, and a
// REFERENCES edge for every reference whose endpoints both lift to slice
// nodes. Edges collapsing to a self-loop are dropped. Each call returns a
// freshly owned Network.
func (g *Graph) Slice(name string) *Network {
	net := NewNetwork(name)
	for _, n := range g.order {
		if sn, ok := n.(model.SimpleNode); ok && sn.HasType(name) {
			net.AddNode(sn)
		}
	}

	finder := NewSliceNodeFinder(name, g)
	for _, e := range g.edges {
		if e.Label != EdgeReferences {
			continue
		}
		from, ok := finder.Lift(e.From)
		if !ok {
			continue
		}
		to, ok := finder.Lift(e.To)
		if !ok {
			continue
		}
		if model.Equal(from, to) {
			continue
		}
		net.AddEdge(from, to)
	}
	return net
}
