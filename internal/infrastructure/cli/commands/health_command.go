package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/git-repo-agent/internal/app"
	"github.com/doeshing/git-repo-agent/internal/application/scoring"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/cli/helpers"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

type healthOptions struct {
	format    string
	out       string
	noRecord  bool
	failUnder int
}

// NewHealthCommand scores one or more repositories.
func NewHealthCommand(container *app.Container) *cobra.Command {
	var opts healthOptions

	cmd := &cobra.Command{
		Use:   "health [repo...]",
		Short: "Score repository health (docs, tests, security, quality, ci)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(cmd, container, helpers.RepoArgs(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: terminal, markdown or json (default from config)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noRecord, "no-record", false, "Do not record this run in history")
	cmd.Flags().IntVar(&opts.failUnder, "fail-under", 0, "Exit non-zero when any score is below this value")
	return cmd
}

func runHealth(cmd *cobra.Command, container *app.Container, repos []string, opts healthOptions) error {
	raw := opts.format
	if raw == "" {
		raw = container.Config.Preferences.DefaultFormat
	}
	format, ok := domain.ParseReportFormat(raw)
	if !ok {
		return fmt.Errorf("%w: invalid format %q (use terminal, markdown or json)", domain.ErrInvalidInput, raw)
	}
	if opts.failUnder < 0 || opts.failUnder > domain.HealthMaxScore {
		return fmt.Errorf("%w: --fail-under must be between 0 and %d", domain.ErrInvalidInput, domain.HealthMaxScore)
	}

	results, err := container.ScoringService.CheckMany(cmd.Context(), repos, scoring.Options{
		Record: container.Config.History.Enabled && !opts.noRecord,
	})
	if err != nil {
		return err
	}

	styler := helpers.NewStyler(cmd.OutOrStdout(), container.Config.Preferences.Color)
	if opts.out != "" {
		styler = helpers.NewStyler(nil, domain.ColorNever)
	}
	text, err := renderHealthResults(container.Renderer, results, format, styler)
	if err != nil {
		return err
	}
	if err := helpers.WriteOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.out, text); err != nil {
		return err
	}

	if opts.failUnder > 0 {
		for _, res := range results {
			if res.Report.OverallScore < opts.failUnder {
				return fmt.Errorf("health score %d is below --fail-under %d for %s",
					res.Report.OverallScore, opts.failUnder, res.RepoPath)
			}
		}
	}
	return nil
}

func renderHealthResults(renderer ports.ReportRenderer, results []domain.HealthResult, format domain.ReportFormat, styler helpers.Styler) (string, error) {
	if format == domain.FormatJSON {
		if len(results) == 1 {
			return renderer.Render(results[0].Report, format), nil
		}
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal results: %w", err)
		}
		return string(data), nil
	}

	sections := make([]string, 0, len(results))
	for _, res := range results {
		var b strings.Builder
		if len(results) > 1 {
			if format == domain.FormatMarkdown {
				fmt.Fprintf(&b, "Repository: `%s`\n\n", res.RepoPath)
			} else {
				fmt.Fprintf(&b, "%s\n", styler.Dim("== "+res.RepoPath+" =="))
			}
		}
		if format == domain.FormatMarkdown {
			b.WriteString(renderer.Render(res.Report, format))
		} else {
			b.WriteString(styler.Terminal(res.Report))
		}
		if line := trendLine(res.Trend); line != "" {
			b.WriteString("\n\n" + line)
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	separator := "\n\n"
	if format == domain.FormatMarkdown {
		separator = "\n\n---\n\n"
	}
	return strings.Join(sections, separator), nil
}

func trendLine(trend *domain.Trend) string {
	if trend == nil {
		return ""
	}
	if trend.Label == domain.TrendFirstRun {
		return "Trend: first recorded run"
	}
	return fmt.Sprintf("Trend: %s (%+d since last run, was %d)", trend.Label, trend.Delta, trend.Previous)
}
