package graph

import (
	"github.com/obqo/decycle/pkg/model"
)

// SliceEdge is a directed reference between two slice nodes of the same
// slicing.
type SliceEdge struct {
	From model.SimpleNode
	To   model.SimpleNode
}

// Network is the projection of the graph onto one slicing: its slice nodes
// and the references between them. A Network is freshly owned by the caller
// of [Graph.Slice] and read-only from then on.
//
// Node and edge iteration follow insertion order of the underlying graph,
// so identical inputs produce identical networks.
type Network struct {
	name  string
	nodes map[string]model.SimpleNode
	order []model.SimpleNode
	out   map[string][]model.SimpleNode
	edges []SliceEdge
	seen  map[[2]string]struct{}
}

// NewNetwork creates an empty projection network for the named slicing.
// [Graph.Slice] is the usual producer; tests and tools may build networks
// directly.
func NewNetwork(name string) *Network {
	return &Network{
		name:  name,
		nodes: make(map[string]model.SimpleNode),
		out:   make(map[string][]model.SimpleNode),
		seen:  make(map[[2]string]struct{}),
	}
}

// AddNode inserts a slice node; duplicates are ignored.
func (n *Network) AddNode(node model.SimpleNode) {
	key := node.Key()
	if _, ok := n.nodes[key]; ok {
		return
	}
	n.nodes[key] = node
	n.order = append(n.order, node)
}

// AddEdge inserts a reference edge, registering both endpoints. Duplicate
// edges are dropped.
func (n *Network) AddEdge(from, to model.SimpleNode) {
	n.AddNode(from)
	n.AddNode(to)
	key := [2]string{from.Key(), to.Key()}
	if _, ok := n.seen[key]; ok {
		return
	}
	n.seen[key] = struct{}{}
	n.edges = append(n.edges, SliceEdge{From: from, To: to})
	n.out[key[0]] = append(n.out[key[0]], to)
}

// Name returns the slicing this network was projected for.
func (n *Network) Name() string { return n.name }

// Nodes returns the slice nodes in insertion order.
func (n *Network) Nodes() []model.SimpleNode {
	nodes := make([]model.SimpleNode, len(n.order))
	copy(nodes, n.order)
	return nodes
}

// Edges returns the deduplicated reference edges in insertion order.
func (n *Network) Edges() []SliceEdge {
	edges := make([]SliceEdge, len(n.edges))
	copy(edges, n.edges)
	return edges
}

// Successors returns the nodes referenced by the given node, in insertion
// order.
func (n *Network) Successors(of model.SimpleNode) []model.SimpleNode {
	return n.out[of.Key()]
}

// Contains reports whether node is part of the network.
func (n *Network) Contains(node model.SimpleNode) bool {
	_, ok := n.nodes[node.Key()]
	return ok
}

// NodeCount returns the number of slice nodes.
func (n *Network) NodeCount() int { return len(n.order) }

// EdgeCount returns the number of distinct edges.
func (n *Network) EdgeCount() int { return len(n.edges) }
