package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obqo/decycle/pkg/buildinfo"
	"github.com/obqo/decycle/pkg/report"
)

// graphOpts holds the flags of the graph export command.
type graphOpts struct {
	checkOpts
	slicing string
	format  string
	output  string
}

// newGraphCmd creates the graph command, which exports the projection of
// one slicing as JSON, DOT, or SVG.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{}

	cmd := &cobra.Command{
		Use:   "graph [classpath...]",
		Short: "Export a slice projection as JSON, DOT, or SVG",
		Long: `Export the dependency graph of one slicing.

The projection contains one node per slice and one edge per referenced
slice pair; edges taking part in a violation are highlighted in DOT and
SVG output.

Examples:
  decycle graph --slicing package --format dot build/classes
  decycle graph --slicing module --format svg -o module.svg`,
		RunE: func(c *cobra.Command, args []string) error {
			return runGraph(c.Context(), &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "configuration file (default .decycle.toml)")
	cmd.Flags().StringVarP(&opts.slicing, "slicing", "s", "package", "slicing to project")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: json, dot, or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runGraph(ctx context.Context, opts *graphOpts, args []string) error {
	conf, _, err := buildConfiguration(ctx, &opts.checkOpts, args)
	if err != nil {
		return err
	}

	known := false
	for _, name := range conf.SlicingNames() {
		if name == opts.slicing {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown slicing %q (have: %s)", opts.slicing, strings.Join(conf.SlicingNames(), ", "))
	}

	result, err := conf.Check(ctx)
	if err != nil {
		return err
	}
	net := result.Graph.Slice(opts.slicing)

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch opts.format {
	case "json":
		rep := report.Build(result, []string{opts.slicing}, "", buildinfo.Version)
		return report.WriteJSON(ctx, out, rep)
	case "dot":
		_, err := fmt.Fprint(out, report.ToDOT(net, result.Violations))
		return err
	case "svg":
		svg, err := report.RenderSVG(ctx, report.ToDOT(net, result.Violations))
		if err != nil {
			return err
		}
		_, err = out.Write(svg)
		return err
	default:
		return fmt.Errorf("unknown format %q (must be json, dot, or svg)", opts.format)
	}
}

// nopCloser wraps an io.Writer with a no-op Close method, making
// os.Stdout usable where a WriteCloser is expected.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when the
// path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
