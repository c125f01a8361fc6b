// Package configuration orchestrates a decycle check: it compiles the
// configured filters, slicings, and constraints, drives the class source
// over the classpath, assembles the dependency graph, and evaluates every
// constraint against its slice projection.
package configuration

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/obqo/decycle/pkg/check"
	"github.com/obqo/decycle/pkg/classreader"
	derrors "github.com/obqo/decycle/pkg/errors"
	"github.com/obqo/decycle/pkg/graph"
	"github.com/obqo/decycle/pkg/model"
	"github.com/obqo/decycle/pkg/observability"
	"github.com/obqo/decycle/pkg/slicer"
)

// IgnoreSpec names one ignored dependency. An empty side matches any
// class.
type IgnoreSpec struct {
	From string
	To   string
}

// SlicingSpec declares one slicing: a name and its ordered patterns.
type SlicingSpec struct {
	Name     string
	Patterns []string
}

// ClassSource feeds classes and references into the graph. The default
// source scans the configured classpath; tests inject their own.
type ClassSource interface {
	Scan(ctx context.Context, h classreader.Handler) error
}

// Config collects everything a check needs. Classpath is required unless
// a Source is injected; all other fields are optional.
type Config struct {
	Classpath   []string
	Including   []string
	Excluding   []string
	Ignoring    []IgnoreSpec
	Slicings    []SlicingSpec
	Constraints []check.Constraint

	// Source overrides classpath scanning, mainly for tests.
	Source ClassSource
	// Logger receives scan and evaluation progress. Nil discards.
	Logger *log.Logger
}

// Configuration is a compiled, validated check setup. Create it with
// [New]; a Configuration is immutable and every [Configuration.Check]
// call builds a fresh graph.
type Configuration struct {
	classpath   []string
	filter      slicer.NodeFilter
	edgeFilter  slicer.EdgeFilter
	categorizer slicer.Categorizer
	slicings    []slicer.Slicing
	constraints []check.Constraint
	source      ClassSource
	logger      *log.Logger
}

// New validates and compiles a Config. Malformed patterns, duplicate
// slicing names, and constraints over undeclared slicings are reported
// here, before any file access happens.
func New(cfg Config) (*Configuration, error) {
	if len(cfg.Classpath) == 0 && cfg.Source == nil {
		return nil, derrors.New(derrors.ErrCodeInvalidConfig, "classpath is required")
	}
	for _, entry := range cfg.Classpath {
		if err := derrors.ValidateClasspathEntry(entry); err != nil {
			return nil, err
		}
	}

	including, err := slicer.ParsePatterns(cfg.Including)
	if err != nil {
		return nil, err
	}
	excluding, err := slicer.ParsePatterns(cfg.Excluding)
	if err != nil {
		return nil, err
	}

	ignores := make([]slicer.IgnoredDependency, 0, len(cfg.Ignoring))
	for _, spec := range cfg.Ignoring {
		rule, err := slicer.ParseIgnoredDependency(spec.From, spec.To)
		if err != nil {
			return nil, err
		}
		ignores = append(ignores, rule)
	}

	slicings := make([]slicer.Slicing, 0, len(cfg.Slicings))
	names := map[string]bool{slicer.SlicingPackage: true}
	for _, spec := range cfg.Slicings {
		if err := derrors.ValidateSlicingName(spec.Name); err != nil {
			return nil, err
		}
		if names[spec.Name] {
			return nil, derrors.New(derrors.ErrCodeInvalidSlicing, "duplicate slicing %q", spec.Name)
		}
		names[spec.Name] = true
		s, err := slicer.ParseSlicing(spec.Name, spec.Patterns)
		if err != nil {
			return nil, err
		}
		slicings = append(slicings, s)
	}

	constraints := cfg.Constraints
	if len(constraints) == 0 {
		constraints = []check.Constraint{check.NewCycleFree(slicer.SlicingPackage)}
	}
	for _, c := range constraints {
		sliced, ok := c.(interface{ Slicing() string })
		if !ok {
			continue
		}
		if !names[sliced.Slicing()] {
			return nil, derrors.New(derrors.ErrCodeInvalidConstraint,
				"constraint %q references undeclared slicing %q", c.ID(), sliced.Slicing())
		}
	}

	// The built-in package slicing always participates, before any
	// user-declared slicing.
	categorizers := make([]slicer.SlicingCategorizer, 0, len(slicings)+1)
	categorizers = append(categorizers, slicer.PackageCategorizer{})
	for _, s := range slicings {
		categorizers = append(categorizers, s.Categorizer())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	source := cfg.Source
	if source == nil {
		source = &classpathSource{roots: cfg.Classpath, scanner: classreader.NewScanner(logger)}
	}

	return &Configuration{
		classpath:   cfg.Classpath,
		filter:      slicer.NewNodeFilter(including, excluding),
		edgeFilter:  slicer.NewEdgeFilter(ignores),
		categorizer: slicer.NewCategorizer(categorizers...),
		slicings:    slicings,
		constraints: constraints,
		source:      source,
		logger:      logger,
	}, nil
}

// SlicingNames returns the names of all slicings in evaluation order,
// starting with the built-in package slicing.
func (c *Configuration) SlicingNames() []string {
	names := make([]string, 0, len(c.slicings)+1)
	names = append(names, slicer.SlicingPackage)
	for _, s := range c.slicings {
		names = append(names, s.Name)
	}
	return names
}

// Constraints returns the constraints in declaration order.
func (c *Configuration) Constraints() []check.Constraint {
	out := make([]check.Constraint, len(c.constraints))
	copy(out, c.constraints)
	return out
}

// Stats summarizes one check run.
type Stats struct {
	Classes    int
	References int
	Duration   time.Duration
}

// Result is the outcome of a check: the violations in constraint
// declaration order, the assembled graph for reporting, and run
// statistics. Violations are data, not errors.
type Result struct {
	Violations []check.Violation
	Graph      *graph.Graph
	Stats      Stats
}

// Check runs the full pipeline: scan, graph assembly, constraint
// evaluation. Identical inputs produce identical violation sequences.
func (c *Configuration) Check(ctx context.Context) (*Result, error) {
	g := graph.New(c.categorizer, c.filter, c.edgeFilter)
	ingest := &ingestHandler{graph: g}

	start := time.Now()
	observability.Check().OnScanStart(ctx, c.classpath)
	err := c.source.Scan(ctx, ingest)
	scanTime := time.Since(start)
	observability.Check().OnScanComplete(ctx, ingest.classes, ingest.references, scanTime, err)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf("Scanned %d classes with %d references", ingest.classes, ingest.references)

	var violations []check.Violation
	for _, constraint := range c.constraints {
		evalStart := time.Now()
		found := constraint.Violations(g)
		observability.Check().OnConstraintEvaluated(ctx, constraint.ID(), len(found), time.Since(evalStart))
		c.logger.Debugf("Constraint %s: %d violations", constraint.ID(), len(found))
		violations = append(violations, found...)
	}

	return &Result{
		Violations: violations,
		Graph:      g,
		Stats: Stats{
			Classes:    ingest.classes,
			References: ingest.references,
			Duration:   time.Since(start),
		},
	}, nil
}

// ingestHandler feeds scanner callbacks into the graph.
type ingestHandler struct {
	graph      *graph.Graph
	classes    int
	references int
}

func (h *ingestHandler) Class(name string) {
	h.graph.Add(model.ClassNode(name))
	h.classes++
}

func (h *ingestHandler) Reference(from, to string) {
	h.graph.Connect(model.ClassNode(from), model.ClassNode(to))
	h.references++
}

// classpathSource scans the configured classpath roots.
type classpathSource struct {
	roots   []string
	scanner *classreader.Scanner
}

func (s *classpathSource) Scan(ctx context.Context, h classreader.Handler) error {
	return s.scanner.Scan(ctx, s.roots, h)
}
