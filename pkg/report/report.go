// Package report renders check results: the stable text form used in logs,
// a JSON document, DOT/SVG exports of slice projections, and a single-file
// HTML report.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/obqo/decycle/pkg/check"
	"github.com/obqo/decycle/pkg/configuration"
	"github.com/obqo/decycle/pkg/observability"
)

// Report is the serializable form of one check run.
type Report struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Version     string      `json:"version,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Stats       Stats       `json:"stats"`
	Violations  []Violation `json:"violations"`
	Slicings    []Slicing   `json:"slicings"`
}

// Stats mirrors the run statistics.
type Stats struct {
	Classes    int     `json:"classes"`
	References int     `json:"references"`
	DurationMS float64 `json:"duration_ms"`
}

// Violation is the serializable form of a constraint violation.
type Violation struct {
	Constraint   string       `json:"constraint"`
	Short        string       `json:"short"`
	Dependencies []Dependency `json:"dependencies"`
}

// Dependency is one offending directed pair.
type Dependency struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Slicing summarizes one slice projection.
type Slicing struct {
	Name  string       `json:"name"`
	Nodes []string     `json:"nodes"`
	Edges []Dependency `json:"edges"`
}

// Build assembles a report from a check result. The slicing names decide
// which projections are summarized; pass Configuration.SlicingNames for
// all of them.
func Build(result *configuration.Result, slicingNames []string, title, version string) Report {
	rep := Report{
		ID:          uuid.NewString(),
		Title:       title,
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Stats: Stats{
			Classes:    result.Stats.Classes,
			References: result.Stats.References,
			DurationMS: float64(result.Stats.Duration.Microseconds()) / 1000,
		},
		Violations: make([]Violation, 0, len(result.Violations)),
	}

	for _, v := range result.Violations {
		deps := make([]Dependency, 0, len(v.Dependencies))
		for _, d := range v.Dependencies {
			deps = append(deps, Dependency{From: d.From.Name, To: d.To.Name})
		}
		rep.Violations = append(rep.Violations, Violation{
			Constraint:   v.Constraint,
			Short:        v.Short,
			Dependencies: deps,
		})
	}

	for _, name := range slicingNames {
		net := result.Graph.Slice(name)
		s := Slicing{Name: name, Nodes: []string{}, Edges: []Dependency{}}
		for _, n := range net.Nodes() {
			s.Nodes = append(s.Nodes, n.Name)
		}
		for _, e := range net.Edges() {
			s.Edges = append(s.Edges, Dependency{From: e.From.Name, To: e.To.Name})
		}
		rep.Slicings = append(rep.Slicings, s)
	}

	return rep
}

// WriteText writes the stable one-line-per-violation form.
func WriteText(w io.Writer, violations []check.Violation) error {
	for _, v := range violations {
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return err
		}
	}
	return nil
}

// countingWriter tracks written bytes for the report hooks.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

func notifyWritten(ctx context.Context, format string, c *countingWriter, err error) {
	observability.Report().OnReportWritten(ctx, format, c.n, err)
}
