package slicer

import (
	derrors "github.com/obqo/decycle/pkg/errors"
)

// Slicing is a named classification of classes: an ordered list of patterns
// whose first match assigns a class to a slice.
type Slicing struct {
	Name     string
	Patterns []*Pattern
}

// NewSlicing builds a slicing from already compiled patterns.
func NewSlicing(name string, patterns ...*Pattern) Slicing {
	return Slicing{Name: name, Patterns: patterns}
}

// ParseSlicing compiles the pattern strings of a slicing. The name must be
// non-empty and must not shadow the built-in package slicing.
func ParseSlicing(name string, patternSpecs []string) (Slicing, error) {
	if name == "" {
		return Slicing{}, derrors.New(derrors.ErrCodeInvalidSlicing, "slicing name must not be empty")
	}
	if name == SlicingPackage {
		return Slicing{}, derrors.New(derrors.ErrCodeInvalidSlicing, "slicing name %q is reserved", SlicingPackage)
	}
	patterns, err := ParsePatterns(patternSpecs)
	if err != nil {
		return Slicing{}, err
	}
	return Slicing{Name: name, Patterns: patterns}, nil
}

// Categorizer returns the per-slicing categorizer.
func (s Slicing) Categorizer() SlicingCategorizer {
	return NewPatternCategorizer(s.Name, s.Patterns)
}
