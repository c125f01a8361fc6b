package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/obqo/decycle/pkg/buildinfo"
	"github.com/obqo/decycle/pkg/configuration"
	"github.com/obqo/decycle/pkg/report"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	configFile     string
	including      []string
	excluding      []string
	ignoreFailures bool
	jsonOut        string
	htmlOut        string
	title          string
}

// newCheckCmd creates the check command. It scans the classpath given as
// arguments (or configured in the config file), evaluates all configured
// constraints, prints the violations, and optionally writes JSON and HTML
// reports.
func newCheckCmd() *cobra.Command {
	opts := checkOpts{}

	cmd := &cobra.Command{
		Use:   "check [classpath...]",
		Short: "Check compiled classes against dependency constraints",
		Long: `Check compiled classes against dependency constraints.

The classpath entries may be class directories, single .class files, or
jar archives. Without constraints in the configuration file, the check
verifies that the package dependency graph is cycle free.

Examples:
  decycle check build/classes/java/main
  decycle check --config decycle.toml
  decycle check --json report.json --html report.html target/classes`,
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c.Context(), &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "configuration file (default .decycle.toml)")
	cmd.Flags().StringSliceVarP(&opts.including, "including", "i", nil, "class name patterns to include")
	cmd.Flags().StringSliceVarP(&opts.excluding, "excluding", "e", nil, "class name patterns to exclude")
	cmd.Flags().BoolVar(&opts.ignoreFailures, "ignore-failures", false, "exit successfully even with violations")
	cmd.Flags().StringVar(&opts.jsonOut, "json", "", "write a JSON report to this file")
	cmd.Flags().StringVar(&opts.htmlOut, "html", "", "write an HTML report to this file")
	cmd.Flags().StringVar(&opts.title, "title", "", "report title")

	return cmd
}

// buildConfiguration merges the config file with command-line flags and
// compiles the result. Classpath arguments replace the configured
// classpath; pattern flags are appended.
func buildConfiguration(ctx context.Context, opts *checkOpts, args []string) (*configuration.Configuration, bool, error) {
	logger := loggerFromContext(ctx)

	fc, err := loadFileConfig(opts.configFile)
	if err != nil {
		return nil, false, err
	}
	cfg, err := fc.toConfig(logger)
	if err != nil {
		return nil, false, err
	}

	if len(args) > 0 {
		cfg.Classpath = args
	}
	cfg.Including = append(cfg.Including, opts.including...)
	cfg.Excluding = append(cfg.Excluding, opts.excluding...)

	ignoreFailures := fc.IgnoreFailures || opts.ignoreFailures

	conf, err := configuration.New(cfg)
	if err != nil {
		return nil, false, err
	}
	return conf, ignoreFailures, nil
}

func runCheck(ctx context.Context, opts *checkOpts, args []string) error {
	logger := loggerFromContext(ctx)

	conf, ignoreFailures, err := buildConfiguration(ctx, opts, args)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spin := newSpinner(ctx, "Scanning classpath...")
	spin.Start()
	result, err := conf.Check(ctx)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d classes with %d references", result.Stats.Classes, result.Stats.References))

	printDetail("%d classes · %d references", result.Stats.Classes, result.Stats.References)
	if len(result.Violations) == 0 {
		printSuccess("No violations found")
	} else {
		printError("%d violation(s) detected:", len(result.Violations))
		for _, v := range result.Violations {
			printViolation(v.String())
		}
		if ignoreFailures {
			printWarning("Violations ignored (ignore_failures is set)")
		}
	}

	if err := writeReports(ctx, opts, conf, result); err != nil {
		return err
	}

	if len(result.Violations) > 0 && !ignoreFailures {
		return fmt.Errorf("decycle check failed with %d violation(s)", len(result.Violations))
	}
	return nil
}

// writeReports writes the requested report artifacts.
func writeReports(ctx context.Context, opts *checkOpts, conf *configuration.Configuration, result *configuration.Result) error {
	if opts.jsonOut == "" && opts.htmlOut == "" {
		return nil
	}

	rep := report.Build(result, conf.SlicingNames(), opts.title, buildinfo.Version)

	if opts.jsonOut != "" {
		if err := writeReportFile(ctx, opts.jsonOut, rep, report.WriteJSON); err != nil {
			return err
		}
		printFile(opts.jsonOut)
	}
	if opts.htmlOut != "" {
		if err := writeReportFile(ctx, opts.htmlOut, rep, report.WriteHTML); err != nil {
			return err
		}
		printFile(opts.htmlOut)
	}
	return nil
}

func writeReportFile(ctx context.Context, path string, rep report.Report,
	write func(context.Context, io.Writer, report.Report) error) error {

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(ctx, f, rep)
}
