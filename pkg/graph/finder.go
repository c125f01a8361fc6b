package graph

import (
	"github.com/obqo/decycle/pkg/model"
)

// SliceNodeFinder lifts arbitrary graph nodes to the slice node they belong
// to under one slicing, by walking CONTAINS edges upward.
type SliceNodeFinder struct {
	slicing string
	g       *Graph
}

// NewSliceNodeFinder creates a finder for the named slicing over g.
func NewSliceNodeFinder(slicing string, g *Graph) *SliceNodeFinder {
	return &SliceNodeFinder{slicing: slicing, g: g}
}

// Lift returns the slice node representing n under the finder's slicing.
// A SimpleNode carrying the slicing as type represents itself; for a
// ParentAwareNode the first val carrying the slicing wins; otherwise the
// search continues at n's container. The second result is false when n has
// no slice node under this slicing.
func (f *SliceNodeFinder) Lift(n model.Node) (model.SimpleNode, bool) {
	return f.lift(n, make(map[string]struct{}))
}

// IsDefinedAt reports whether Lift would succeed for n.
func (f *SliceNodeFinder) IsDefinedAt(n model.Node) bool {
	_, ok := f.Lift(n)
	return ok
}

// lift guards against containment cycles with a visited set; the graph
// maintains a forest, so the guard only matters for corrupted input.
func (f *SliceNodeFinder) lift(n model.Node, visited map[string]struct{}) (model.SimpleNode, bool) {
	key := n.Key()
	if _, ok := visited[key]; ok {
		return model.SimpleNode{}, false
	}
	visited[key] = struct{}{}

	switch v := n.(type) {
	case model.SimpleNode:
		if v.HasType(f.slicing) {
			return v, true
		}
	case model.ParentAwareNode:
		for _, val := range v.Vals {
			if val.HasType(f.slicing) {
				return val, true
			}
		}
	}

	container, ok := f.g.containerOf(n)
	if !ok {
		return model.SimpleNode{}, false
	}
	return f.lift(container, visited)
}
