package slicer

import (
	"strings"

	"github.com/obqo/decycle/pkg/model"
)

// SlicingPackage is the name of the built-in slicing that groups classes by
// their package. It always exists and user slicings must not redefine it.
const SlicingPackage = "package"

// Categorizer maps a node to its category, the parent node that contains
// it. Returning the node itself means the node has no category; repeated
// application must reach that fixed point.
type Categorizer interface {
	Categorize(n model.Node) model.Node
}

// CategorizerFunc adapts a function to the Categorizer interface.
type CategorizerFunc func(model.Node) model.Node

func (f CategorizerFunc) Categorize(n model.Node) model.Node { return f(n) }

// SlicingCategorizer is a categorizer scoped to one named slicing.
type SlicingCategorizer interface {
	Categorizer
	Slicing() string
}

// PatternCategorizer categorizes class nodes into one slicing by trying its
// patterns in order; the first match wins.
type PatternCategorizer struct {
	slicing  string
	patterns []*Pattern
}

// NewPatternCategorizer builds the categorizer for a slicing.
func NewPatternCategorizer(slicing string, patterns []*Pattern) *PatternCategorizer {
	return &PatternCategorizer{slicing: slicing, patterns: patterns}
}

// Slicing returns the slicing name.
func (c *PatternCategorizer) Slicing() string { return c.slicing }

// Categorize returns the slice node for a class node, or the node itself
// when no pattern matches. A class whose slice label equals its own name is
// its own slice group: the class node gains the slicing as an extra type.
func (c *PatternCategorizer) Categorize(n model.Node) model.Node {
	sn, ok := n.(model.SimpleNode)
	if !ok || !sn.IsClass() {
		return n
	}
	for _, p := range c.patterns {
		label, ok := p.Match(sn.Name)
		if !ok {
			continue
		}
		if label == sn.Name {
			return sn.WithType(c.slicing)
		}
		return model.SliceNode(c.slicing, label)
	}
	return n
}

// PackageCategorizer is the built-in slicing that maps every class to its
// package. Classes in the default package have no category.
type PackageCategorizer struct{}

// Slicing returns "package".
func (PackageCategorizer) Slicing() string { return SlicingPackage }

// Categorize implements [SlicingCategorizer].
func (PackageCategorizer) Categorize(n model.Node) model.Node {
	sn, ok := n.(model.SimpleNode)
	if !ok || !sn.IsClass() {
		return n
	}
	i := strings.LastIndexByte(sn.Name, '.')
	if i < 0 {
		return n
	}
	return model.SliceNode(SlicingPackage, sn.Name[:i])
}

// multiCategorizer composes per-slicing categorizers in declaration order.
type multiCategorizer struct {
	cats []SlicingCategorizer
}

// NewCategorizer composes the given slicing categorizers into the full
// categorizer of the graph. A class matched by no slicing stays its own
// category; by exactly one, the slice node of that slicing; by several, a
// ParentAwareNode holding one slice node per matching slicing in order.
func NewCategorizer(cats ...SlicingCategorizer) Categorizer {
	return &multiCategorizer{cats: cats}
}

func (m *multiCategorizer) Categorize(n model.Node) model.Node {
	sn, ok := n.(model.SimpleNode)
	if !ok || !sn.IsClass() {
		return n
	}
	var vals []model.SimpleNode
	for _, c := range m.cats {
		cat := c.Categorize(sn)
		if model.Equal(cat, sn) {
			continue
		}
		val, ok := cat.(model.SimpleNode)
		if !ok {
			continue
		}
		vals = append(vals, val)
	}
	switch len(vals) {
	case 0:
		return n
	case 1:
		return vals[0]
	default:
		return model.NewParentAwareNode(vals...)
	}
}
