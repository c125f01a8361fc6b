// Package model defines the node types of the dependency graph.
//
// A node is either a [SimpleNode] (a concrete class or a slice group) or a
// [ParentAwareNode] (the image of a class under several slicings at once).
// Equality is value-based: two nodes with the same name and the same type
// set are the same node, regardless of how they were constructed.
package model

import (
	"slices"
	"strings"
)

// TypeClass marks leaf nodes, i.e. concrete classes found on the classpath.
// Slice group nodes carry the name of their slicing as type instead.
const TypeClass = "class"

// Node is a vertex in the dependency graph. The two implementations are
// SimpleNode and ParentAwareNode; the interface is sealed.
type Node interface {
	// Key returns a stable identity string. Two nodes are equal iff their
	// keys are equal. Keys are only used for map storage and comparisons,
	// never for display.
	Key() string

	node()
}

// keySep separates name from types inside a key, typeSep separates the
// individual types. Both are control characters that cannot occur in class
// names or slice labels.
const (
	keySep  = "\x1f"
	typeSep = "\x1e"
)

// SimpleNode represents either a concrete class (Name is the fully qualified
// class name and Types contains "class") or a slice group (Name is the slice
// label and Types contains the slicing name). A class that is its own slice
// group carries both types.
//
// Types is always sorted and free of duplicates; construct SimpleNodes
// through [ClassNode], [SliceNode] or [NewSimpleNode] to maintain this.
type SimpleNode struct {
	Name  string
	Types []string
}

// NewSimpleNode builds a SimpleNode with a normalized (sorted, deduplicated)
// type set. At least one type is required; the caller must not pass zero
// types.
func NewSimpleNode(name string, types ...string) SimpleNode {
	ts := slices.Clone(types)
	slices.Sort(ts)
	ts = slices.Compact(ts)
	return SimpleNode{Name: name, Types: ts}
}

// ClassNode returns the node for a concrete class.
func ClassNode(name string) SimpleNode {
	return NewSimpleNode(name, TypeClass)
}

// SliceNode returns the group node for label name within the given slicing.
func SliceNode(slicing, name string) SimpleNode {
	return NewSimpleNode(name, slicing)
}

// HasType reports whether t is one of the node's types.
func (n SimpleNode) HasType(t string) bool {
	return slices.Contains(n.Types, t)
}

// IsClass reports whether the node is a concrete class.
func (n SimpleNode) IsClass() bool { return n.HasType(TypeClass) }

// WithType returns a copy of the node with t added to its type set.
func (n SimpleNode) WithType(t string) SimpleNode {
	return NewSimpleNode(n.Name, append(slices.Clone(n.Types), t)...)
}

// Key implements [Node].
func (n SimpleNode) Key() string {
	return n.Name + keySep + strings.Join(n.Types, typeSep)
}

func (n SimpleNode) String() string { return n.Name }

func (SimpleNode) node() {}

// ParentAwareNode is the category of a class that several slicings classify
// at the same time. Vals holds one SimpleNode per slicing, in slicing
// declaration order; their type sets are pairwise disjoint.
type ParentAwareNode struct {
	Vals []SimpleNode
}

// NewParentAwareNode builds a ParentAwareNode over the given per-slicing
// nodes, preserving their order.
func NewParentAwareNode(vals ...SimpleNode) ParentAwareNode {
	return ParentAwareNode{Vals: slices.Clone(vals)}
}

// Key implements [Node].
func (n ParentAwareNode) Key() string {
	keys := make([]string, len(n.Vals))
	for i, v := range n.Vals {
		keys[i] = v.Key()
	}
	return strings.Join(keys, keySep+keySep)
}

func (n ParentAwareNode) String() string {
	names := make([]string, len(n.Vals))
	for i, v := range n.Vals {
		names[i] = v.Name
	}
	return strings.Join(names, "+")
}

func (ParentAwareNode) node() {}

// Equal reports whether two nodes are the same node.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}
