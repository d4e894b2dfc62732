package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/git-repo-agent/internal/app"
	"github.com/doeshing/git-repo-agent/internal/application/agent"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/cli/helpers"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/report"
)

type briefingOutput struct {
	format string
	out    string
}

func (o *briefingOutput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatMarkdown, "Output format: markdown or json")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the briefing to a file instead of stdout")
}

func (o *briefingOutput) validate() error {
	if o.format != formatMarkdown && o.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q (use markdown or json)", domain.ErrInvalidInput, o.format)
	}
	return nil
}

// NewOnboardCommand prepares the onboarding briefing for an agent runtime.
func NewOnboardCommand(container *app.Container) *cobra.Command {
	var (
		opts   domain.OnboardOptions
		output briefingOutput
	)

	cmd := &cobra.Command{
		Use:   "onboard [repo]",
		Short: "Prepare an onboarding briefing (CLAUDE.md, blueprint, CI, docs)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.validate(); err != nil {
				return err
			}
			opts.RepoPath = helpers.RepoArgs(args)[0]
			return runBriefing(cmd, output, func(ctx context.Context) (domain.Briefing, error) {
				return container.AgentService.Onboard(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report planned changes without making them")
	cmd.Flags().BoolVar(&opts.SkipCI, "skip-ci", false, "Skip CI/CD setup")
	cmd.Flags().BoolVar(&opts.SkipBlueprint, "skip-blueprint", false, "Skip blueprint initialization")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch for onboarding changes (default from config)")
	output.register(cmd)
	return cmd
}

// NewMaintainCommand prepares the maintenance briefing for an agent runtime.
func NewMaintainCommand(container *app.Container) *cobra.Command {
	var (
		opts   domain.MaintainOptions
		focus  string
		output briefingOutput
	)

	cmd := &cobra.Command{
		Use:   "maintain [repo]",
		Short: "Prepare a maintenance briefing from the current health findings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.validate(); err != nil {
				return err
			}
			parsed, err := agent.ParseFocus(focus)
			if err != nil {
				return err
			}
			opts.Focus = parsed
			opts.RepoPath = helpers.RepoArgs(args)[0]
			return runBriefing(cmd, output, func(ctx context.Context) (domain.Briefing, error) {
				return container.AgentService.Maintain(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Let the agent fix the issues it finds")
	cmd.Flags().BoolVar(&opts.ReportOnly, "report-only", false, "Report findings without modifying files")
	cmd.Flags().StringVar(&focus, "focus", "", "Comma-separated categories to focus on (docs,tests,security,quality,ci)")
	output.register(cmd)
	return cmd
}

func runBriefing(cmd *cobra.Command, output briefingOutput, build func(context.Context) (domain.Briefing, error)) error {
	spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "Analyzing repository")
	spinner.Start()
	briefing, err := build(cmd.Context())
	spinner.Stop()
	if err != nil {
		return err
	}

	var text string
	if output.format == formatJSON {
		data, err := json.MarshalIndent(briefing, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal briefing: %w", err)
		}
		text = string(data)
	} else {
		text = renderBriefingMarkdown(briefing)
	}
	return helpers.WriteOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.out, text)
}

func renderBriefingMarkdown(b domain.Briefing) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s briefing: %s\n\n", strings.ToUpper(string(b.Mode[:1]))+string(b.Mode[1:]), b.RepoPath)
	fmt.Fprintf(&sb, "## Prompt\n\n%s\n\n", b.Prompt)

	sb.WriteString("## Session\n\n")
	fmt.Fprintf(&sb, "- Permission mode: %s\n", b.PermissionMode)
	fmt.Fprintf(&sb, "- Max turns: %d\n", b.MaxTurns)
	fmt.Fprintf(&sb, "- Allowed tools: %s\n", strings.Join(b.AllowedTools, ", "))
	if len(b.Env) > 0 {
		keys := make([]string, 0, len(b.Env))
		for k := range b.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("- Environment:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  - `%s=%s`\n", k, b.Env[k])
		}
	}

	a := b.Analysis
	sb.WriteString("\n## Repository\n\n")
	fmt.Fprintf(&sb, "- Stack: %s / %s (%s)\n", a.Language, a.Framework, a.PackageManager)
	fmt.Fprintf(&sb, "- Tooling: tests %s, lint %s, format %s, CI %s\n", a.TestFramework, a.Linter, a.Formatter, a.CISystem)
	if b.Health != nil {
		fmt.Fprintf(&sb, "- Health: %d/%d (%s)\n", b.Health.OverallScore, domain.HealthMaxScore, b.Health.Grade)
	}

	if len(b.Agents) > 0 {
		sb.WriteString("\n## Sub-agents\n")
		for _, def := range b.Agents {
			fmt.Fprintf(&sb, "\n### %s (%s)\n\n%s\n\nTools: %s\n", def.Name, def.Model, def.Description, strings.Join(def.Tools, ", "))
		}
	}

	if b.Health != nil && !b.Health.Findings.Empty() {
		sb.WriteString("\n## Health\n\n")
		sb.WriteString(report.Markdown(*b.Health))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\n## System prompt\n\n%s\n", b.SystemPrompt)
	return sb.String()
}
