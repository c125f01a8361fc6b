package check

import (
	"github.com/obqo/decycle/pkg/graph"
	"github.com/obqo/decycle/pkg/model"
)

// mockSliceSource serves a single hand-built projection under one slicing
// name; any other name yields an empty network.
type mockSliceSource struct {
	slicing string
	net     *graph.Network
}

// newMockSliceSource builds a projection from from/to name pairs.
func newMockSliceSource(slicing string, deps ...[2]string) *mockSliceSource {
	net := graph.NewNetwork(slicing)
	for _, d := range deps {
		net.AddEdge(model.SliceNode(slicing, d[0]), model.SliceNode(slicing, d[1]))
	}
	return &mockSliceSource{slicing: slicing, net: net}
}

func (m *mockSliceSource) Slice(name string) *graph.Network {
	if name == m.slicing {
		return m.net
	}
	return graph.NewNetwork(name)
}

// d builds a dependency pair for expectations.
func d(slicing, from, to string) Dependency {
	return Dependency{From: model.SliceNode(slicing, from), To: model.SliceNode(slicing, to)}
}

// dependenciesIn flattens the dependencies of all violations.
func dependenciesIn(violations []Violation) []Dependency {
	var deps []Dependency
	for _, v := range violations {
		deps = append(deps, v.Dependencies...)
	}
	return deps
}

func sameDependencies(got, want []Dependency) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !model.Equal(got[i].From, want[i].From) || !model.Equal(got[i].To, want[i].To) {
			return false
		}
	}
	return true
}
