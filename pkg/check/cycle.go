package check

import (
	"slices"
	"strings"

	"github.com/obqo/decycle/pkg/graph"
	"github.com/obqo/decycle/pkg/model"
)

// CycleFree reports cyclic dependencies between the slices of one slicing.
type CycleFree struct {
	slicing string
}

// NewCycleFree creates a cycle-free constraint for the named slicing.
func NewCycleFree(slicing string) CycleFree {
	return CycleFree{slicing: slicing}
}

// ID implements [Constraint].
func (c CycleFree) ID() string { return "cycle-free" }

// Slicing returns the slicing the constraint applies to.
func (c CycleFree) Slicing() string { return c.slicing }

// ShortString implements [Constraint].
func (c CycleFree) ShortString() string { return "no cycles in " + c.slicing }

// Violations finds all strongly connected components of size two or more
// (plus self-referencing nodes) in the projection and emits one violation
// per component, ordered by the name of the component's smallest node. The
// dependencies of each violation trace a closed walk through the component
// starting at its lexicographically smallest node.
func (c CycleFree) Violations(src SliceSource) []Violation {
	net := src.Slice(c.slicing)

	var components [][]model.SimpleNode
	for _, scc := range stronglyConnected(net) {
		if len(scc) >= 2 {
			components = append(components, scc)
			continue
		}
		// Self-references are normally collapsed during projection; a
		// hand-built source may still contain them.
		n := scc[0]
		for _, succ := range net.Successors(n) {
			if model.Equal(n, succ) {
				components = append(components, scc)
				break
			}
		}
	}

	for _, scc := range components {
		sortNodes(scc)
	}
	slices.SortFunc(components, func(a, b []model.SimpleNode) int {
		return strings.Compare(a[0].Name, b[0].Name)
	})

	var violations []Violation
	for _, scc := range components {
		deps := representativeCycle(net, scc)
		violations = append(violations, Violation{
			Constraint:   c.ID(),
			Short:        c.ShortString(),
			Dependencies: deps,
		})
	}
	return violations
}

func sortNodes(nodes []model.SimpleNode) {
	slices.SortFunc(nodes, func(a, b model.SimpleNode) int {
		if cmp := strings.Compare(a.Name, b.Name); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.Key(), b.Key())
	})
}

// stronglyConnected computes the strongly connected components of the
// network with Tarjan's algorithm. Node and successor iteration follow the
// network's deterministic order, so the result is stable.
func stronglyConnected(net *graph.Network) [][]model.SimpleNode {
	type state struct {
		index, low int
		onStack    bool
	}

	states := make(map[string]*state)
	var stack []model.SimpleNode
	counter := 0
	var result [][]model.SimpleNode

	var strong func(v model.SimpleNode)
	strong = func(v model.SimpleNode) {
		s := &state{index: counter, low: counter}
		counter++
		states[v.Key()] = s
		stack = append(stack, v)
		s.onStack = true

		for _, w := range net.Successors(v) {
			ws, seen := states[w.Key()]
			switch {
			case !seen:
				strong(w)
				if low := states[w.Key()].low; low < s.low {
					s.low = low
				}
			case ws.onStack:
				if ws.index < s.low {
					s.low = ws.index
				}
			}
		}

		if s.low == s.index {
			var scc []model.SimpleNode
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				states[w.Key()].onStack = false
				scc = append(scc, w)
				if model.Equal(w, v) {
					break
				}
			}
			result = append(result, scc)
		}
	}

	for _, n := range net.Nodes() {
		if _, seen := states[n.Key()]; !seen {
			strong(n)
		}
	}
	return result
}

// representativeCycle builds a deterministic closed walk through the
// component: starting at the smallest node (the slice is sorted by the
// caller), it repeatedly takes the shortest path to the smallest unvisited
// node and finally closes the walk back to the start.
func representativeCycle(net *graph.Network, scc []model.SimpleNode) []Dependency {
	inSCC := make(map[string]struct{}, len(scc))
	for _, n := range scc {
		inSCC[n.Key()] = struct{}{}
	}

	start := scc[0]
	visited := map[string]struct{}{start.Key(): {}}
	cur := start
	var deps []Dependency

	appendPath := func(path []model.SimpleNode) {
		for i := 0; i+1 < len(path); i++ {
			deps = append(deps, Dependency{From: path[i], To: path[i+1]})
			visited[path[i+1].Key()] = struct{}{}
		}
	}

	for len(visited) < len(scc) {
		var target model.SimpleNode
		found := false
		for _, n := range scc {
			if _, ok := visited[n.Key()]; !ok {
				target = n
				found = true
				break
			}
		}
		if !found {
			break
		}
		path := shortestPath(net, inSCC, cur, target)
		if path == nil {
			break
		}
		appendPath(path)
		cur = target
	}

	if !model.Equal(cur, start) || len(deps) == 0 {
		if closing := shortestPath(net, inSCC, cur, start); closing != nil {
			appendPath(closing)
		}
	}
	return deps
}

// shortestPath runs a breadth-first search from src to dst restricted to
// component members, expanding successors in name order. Returns the node
// sequence including both endpoints, or nil if dst is unreachable.
func shortestPath(net *graph.Network, members map[string]struct{}, src, dst model.SimpleNode) []model.SimpleNode {
	type visit struct {
		node model.SimpleNode
		prev *visit
	}

	seen := map[string]struct{}{src.Key(): {}}
	queue := []*visit{{node: src}}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		succs := slices.Clone(net.Successors(v.node))
		sortNodes(succs)
		for _, w := range succs {
			if _, ok := members[w.Key()]; !ok {
				continue
			}
			if model.Equal(w, dst) {
				path := []model.SimpleNode{w}
				for at := v; at != nil; at = at.prev {
					path = append(path, at.node)
				}
				slices.Reverse(path)
				return path
			}
			if _, ok := seen[w.Key()]; ok {
				continue
			}
			seen[w.Key()] = struct{}{}
			queue = append(queue, &visit{node: w, prev: v})
		}
	}
	return nil
}
