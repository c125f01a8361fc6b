package configuration

import (
	"github.com/obqo/decycle/pkg/check"
	derrors "github.com/obqo/decycle/pkg/errors"
)

// Constraint spec types, as they appear in configuration files.
const (
	ConstraintCycleFree      = "cycle-free"
	ConstraintLayering       = "layering"
	ConstraintDirectLayering = "direct-layering"
)

// LayerSpec declares one layer of a layering constraint.
type LayerSpec struct {
	Strict bool
	Names  []string
}

// ConstraintSpec is the declarative form of a constraint, used by the
// configuration file and command line before compilation.
type ConstraintSpec struct {
	Type    string
	Slicing string
	Layers  []LayerSpec
}

// Build compiles the spec into a constraint.
func (s ConstraintSpec) Build() (check.Constraint, error) {
	if s.Slicing == "" {
		return nil, derrors.New(derrors.ErrCodeInvalidConstraint, "constraint %q needs a slicing", s.Type)
	}
	switch s.Type {
	case ConstraintCycleFree:
		return check.NewCycleFree(s.Slicing), nil
	case ConstraintLayering, ConstraintDirectLayering:
		if len(s.Layers) == 0 {
			return nil, derrors.New(derrors.ErrCodeInvalidConstraint, "constraint %q needs layers", s.Type)
		}
		layers := make([]check.Layer, 0, len(s.Layers))
		seen := map[string]bool{}
		for _, l := range s.Layers {
			if len(l.Names) == 0 {
				return nil, derrors.New(derrors.ErrCodeInvalidConstraint, "empty layer in %q constraint", s.Type)
			}
			for _, name := range l.Names {
				if seen[name] {
					return nil, derrors.New(derrors.ErrCodeInvalidConstraint, "slice %q appears in more than one layer", name)
				}
				seen[name] = true
			}
			if l.Strict {
				layers = append(layers, check.StrictLayer(l.Names...))
			} else {
				layers = append(layers, check.LenientLayer(l.Names...))
			}
		}
		if s.Type == ConstraintDirectLayering {
			return check.NewDirectLayering(s.Slicing, layers...), nil
		}
		return check.NewLayering(s.Slicing, layers...), nil
	default:
		return nil, derrors.New(derrors.ErrCodeInvalidConstraint, "unknown constraint type %q", s.Type)
	}
}

// BuildConstraints compiles a list of specs, preserving order.
func BuildConstraints(specs []ConstraintSpec) ([]check.Constraint, error) {
	constraints := make([]check.Constraint, 0, len(specs))
	for _, s := range specs {
		c, err := s.Build()
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}
