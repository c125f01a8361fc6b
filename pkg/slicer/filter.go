package slicer

import (
	"github.com/obqo/decycle/pkg/model"
)

// NodeFilter decides whether a node participates in the graph.
type NodeFilter func(n model.Node) bool

// EdgeFilter decides whether a reference edge between two nodes is kept.
type EdgeFilter func(from, to model.Node) bool

// NewNodeFilter builds the global include/exclude filter. With no including
// patterns every class is accepted; excluding patterns subtract afterwards.
// Non-simple nodes always pass, the filter applies to class names.
func NewNodeFilter(including, excluding []*Pattern) NodeFilter {
	return func(n model.Node) bool {
		sn, ok := n.(model.SimpleNode)
		if !ok {
			return true
		}
		if len(including) > 0 && !anyMatch(including, sn.Name) {
			return false
		}
		return !anyMatch(excluding, sn.Name)
	}
}

func anyMatch(patterns []*Pattern, name string) bool {
	for _, p := range patterns {
		if p.Matches(name) {
			return true
		}
	}
	return false
}

// IgnoredDependency suppresses references whose endpoints match both the
// from and the to pattern.
type IgnoredDependency struct {
	From *Pattern
	To   *Pattern
}

// ParseIgnoredDependency compiles an ignore rule. An empty side means any
// class and is treated as the pattern `**`.
func ParseIgnoredDependency(from, to string) (IgnoredDependency, error) {
	if from == "" {
		from = "**"
	}
	if to == "" {
		to = "**"
	}
	fp, err := ParsePattern(from)
	if err != nil {
		return IgnoredDependency{}, err
	}
	tp, err := ParsePattern(to)
	if err != nil {
		return IgnoredDependency{}, err
	}
	return IgnoredDependency{From: fp, To: tp}, nil
}

// NewEdgeFilter builds the edge filter for a set of ignore rules. The
// returned filter reports true when the edge is kept.
func NewEdgeFilter(rules []IgnoredDependency) EdgeFilter {
	return func(from, to model.Node) bool {
		f, ok := from.(model.SimpleNode)
		if !ok {
			return true
		}
		t, ok := to.(model.SimpleNode)
		if !ok {
			return true
		}
		for _, r := range rules {
			if r.From.Matches(f.Name) && r.To.Matches(t.Name) {
				return false
			}
		}
		return true
	}
}
