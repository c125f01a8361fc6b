package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/obqo/decycle/pkg/check"
)

// newTUICmd creates the tui command: an interactive browser over the
// violations of one check run.
func newTUICmd() *cobra.Command {
	opts := checkOpts{}

	cmd := &cobra.Command{
		Use:   "tui [classpath...]",
		Short: "Browse violations interactively",
		RunE: func(c *cobra.Command, args []string) error {
			return runTUI(c.Context(), &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "configuration file (default .decycle.toml)")

	return cmd
}

func runTUI(ctx context.Context, opts *checkOpts, args []string) error {
	conf, _, err := buildConfiguration(ctx, opts, args)
	if err != nil {
		return err
	}

	spin := newSpinner(ctx, "Scanning classpath...")
	spin.Start()
	result, err := conf.Check(ctx)
	spin.Stop()
	if err != nil {
		return err
	}
	if len(result.Violations) == 0 {
		printSuccess("No violations found")
		return nil
	}

	m := violationModel{violations: result.Violations}
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// violationModel is the bubbletea model of the violation browser: a
// cursor over the violation list with the selected violation's
// dependencies expanded below.
type violationModel struct {
	violations []check.Violation
	cursor     int
}

func (m violationModel) Init() tea.Cmd { return nil }

func (m violationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.violations)-1 {
			m.cursor++
		}
	}
	return m, nil
}

var (
	tuiSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiNormal   = lipgloss.NewStyle().Foreground(colorGray)
)

func (m violationModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%d violation(s)", len(m.violations))) + "\n\n")

	for i, v := range m.violations {
		line := fmt.Sprintf("%s: %s", v.Constraint, v.Short)
		if i == m.cursor {
			b.WriteString(tuiSelected.Render("> "+line) + "\n")
			for _, d := range v.Dependencies {
				b.WriteString("    " + styleViolation.Render(d.String()) + "\n")
			}
			continue
		}
		b.WriteString(tuiNormal.Render("  "+line) + "\n")
	}

	b.WriteString("\n" + styleDim.Render("↑/↓ navigate · q quit") + "\n")
	return b.String()
}
