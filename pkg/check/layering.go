package check

import (
	"slices"
	"strings"

	"github.com/obqo/decycle/pkg/model"
)

// Layer is an ordered group of slice names within a layering constraint.
// Strict layers forbid references between their own members, lenient
// layers allow them.
type Layer struct {
	strict bool
	names  []string
}

// StrictLayer creates a layer whose members must not reference each other.
func StrictLayer(names ...string) Layer {
	return Layer{strict: true, names: slices.Clone(names)}
}

// LenientLayer creates a layer whose members may reference each other.
func LenientLayer(names ...string) Layer {
	return Layer{strict: false, names: slices.Clone(names)}
}

// Strict reports whether within-layer references are forbidden.
func (l Layer) Strict() bool { return l.strict }

// Names returns the layer members in declaration order.
func (l Layer) Names() []string { return slices.Clone(l.names) }

// Contains reports whether name is a member of the layer.
func (l Layer) Contains(name string) bool {
	return slices.Contains(l.names, name)
}

// ShortString renders the layer for reports: a bare name for a single
// member, "[a, x]" for a strict layer, "(a, x)" for a lenient one.
func (l Layer) ShortString() string {
	if len(l.names) == 1 {
		return l.names[0]
	}
	joined := strings.Join(l.names, ", ")
	if l.strict {
		return "[" + joined + "]"
	}
	return "(" + joined + ")"
}

// LayeringConstraint checks that references between the slices of a
// slicing follow a declared layer order. In the default (non-direct)
// variant references may skip layers downward; the direct variant requires
// every reference to target exactly the next layer.
//
// References touching a slice outside all layers are allowed only into the
// first layer and out of the last one; anything else involving an unknown
// slice is a violation.
type LayeringConstraint struct {
	slicing string
	layers  []Layer
	direct  bool
}

// NewLayering creates the non-direct layering constraint.
func NewLayering(slicing string, layers ...Layer) *LayeringConstraint {
	return &LayeringConstraint{slicing: slicing, layers: layers}
}

// NewDirectLayering creates the direct layering constraint: skipping
// layers is disallowed as well.
func NewDirectLayering(slicing string, layers ...Layer) *LayeringConstraint {
	return &LayeringConstraint{slicing: slicing, layers: layers, direct: true}
}

// ID implements [Constraint].
func (c *LayeringConstraint) ID() string {
	if c.direct {
		return "direct-layering"
	}
	return "layering"
}

// Slicing returns the slicing the constraint applies to.
func (c *LayeringConstraint) Slicing() string { return c.slicing }

// Layers returns the declared layers in order.
func (c *LayeringConstraint) Layers() []Layer { return slices.Clone(c.layers) }

// ShortString renders the layer chain, e.g. "a => (b, y) => c".
func (c *LayeringConstraint) ShortString() string {
	parts := make([]string, len(c.layers))
	for i, l := range c.layers {
		parts[i] = l.ShortString()
	}
	return strings.Join(parts, " => ")
}

// Violations evaluates the constraint over the projection of its slicing.
// All offending dependencies are collected into a single violation, in the
// projection's deterministic edge order.
func (c *LayeringConstraint) Violations(src SliceSource) []Violation {
	net := src.Slice(c.slicing)

	var deps []Dependency
	for _, e := range net.Edges() {
		if model.Equal(e.From, e.To) {
			continue
		}
		if c.violates(e.From.Name, e.To.Name) {
			deps = append(deps, Dependency{
				From: model.SliceNode(c.slicing, e.From.Name),
				To:   model.SliceNode(c.slicing, e.To.Name),
			})
		}
	}
	if len(deps) == 0 {
		return nil
	}
	return []Violation{{
		Constraint:   c.ID(),
		Short:        c.ShortString(),
		Dependencies: deps,
	}}
}

// indexOf returns the index of the layer containing name.
func (c *LayeringConstraint) indexOf(name string) (int, bool) {
	for i, l := range c.layers {
		if l.Contains(name) {
			return i, true
		}
	}
	return 0, false
}

func (c *LayeringConstraint) violates(from, to string) bool {
	fi, fok := c.indexOf(from)
	ti, tok := c.indexOf(to)
	switch {
	case fok && tok:
		if fi == ti {
			return c.layers[fi].Strict()
		}
		if c.direct {
			return ti != fi+1
		}
		return fi > ti
	case fok:
		// Reference out of the layering: only the last layer may do that.
		return fi != len(c.layers)-1
	case tok:
		// Reference into the layering: only into the first layer.
		return ti != 0
	default:
		return false
	}
}
