// Package check evaluates architecture constraints against slice
// projections of the dependency graph.
//
// A [Constraint] is checked against a [SliceSource], which hands out the
// projection for a slicing. The two constraint families are [CycleFree]
// (no cyclic dependencies between the slices of a slicing) and
// [LayeringConstraint] (declared layer order, optionally direct). Results
// are [Violation] values: data, not errors.
package check

import (
	"fmt"
	"strings"

	"github.com/obqo/decycle/pkg/graph"
	"github.com/obqo/decycle/pkg/model"
)

// SliceSource provides slice projections by slicing name. *graph.Graph
// implements it; tests use hand-built sources.
type SliceSource interface {
	Slice(name string) *graph.Network
}

// Dependency is one offending directed pair of slice nodes.
type Dependency struct {
	From model.SimpleNode
	To   model.SimpleNode
}

func (d Dependency) String() string {
	return d.From.Name + " -> " + d.To.Name
}

// Violation is a constraint failure: the constraint, its short
// description, and the offending dependencies in deterministic order.
type Violation struct {
	Constraint   string
	Short        string
	Dependencies []Dependency
}

// String renders the stable one-line report form:
// "constraintId: shortDescription: from -> to, from -> to".
func (v Violation) String() string {
	deps := make([]string, len(v.Dependencies))
	for i, d := range v.Dependencies {
		deps[i] = d.String()
	}
	return fmt.Sprintf("%s: %s: %s", v.Constraint, v.Short, strings.Join(deps, ", "))
}

// DisplayString joins the report lines of several violations with
// newlines, for log output.
func DisplayString(violations []Violation) string {
	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}

// Constraint is an architecture rule over one slicing.
type Constraint interface {
	// ID identifies the constraint family in reports.
	ID() string
	// ShortString is the compact description used in reports.
	ShortString() string
	// Violations evaluates the constraint and returns its failures.
	// The result is deterministic for identical sources.
	Violations(src SliceSource) []Violation
}
