package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/obqo/decycle/pkg/check"
	derrors "github.com/obqo/decycle/pkg/errors"
	"github.com/obqo/decycle/pkg/graph"
	"github.com/obqo/decycle/pkg/observability"
)

// ToDOT converts a slice projection to Graphviz DOT format. Edges that
// appear in a violation are drawn red.
func ToDOT(net *graph.Network, violations []check.Violation) string {
	offending := make(map[[2]string]bool)
	for _, v := range violations {
		for _, d := range v.Dependencies {
			offending[[2]string{d.From.Name, d.To.Name}] = true
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", net.Name())
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range net.Nodes() {
		fmt.Fprintf(&buf, "  %q;\n", n.Name)
	}

	buf.WriteString("\n")
	for _, e := range net.Edges() {
		if offending[[2]string{e.From.Name, e.To.Name}] {
			fmt.Fprintf(&buf, "  %q -> %q [color=red, penwidth=2];\n", e.From.Name, e.To.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From.Name, e.To.Name)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeReportIO, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeReportIO, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeReportIO, err, "render SVG")
	}
	observability.Report().OnReportWritten(ctx, "svg", buf.Len(), nil)
	return buf.Bytes(), nil
}
