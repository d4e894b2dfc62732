package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/git-repo-agent/internal/app"
	"github.com/doeshing/git-repo-agent/internal/application/scoring"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/cli/helpers"
)

// NewAnalyzeCommand detects a repository's stack and git metadata.
func NewAnalyzeCommand(container *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [repo]",
		Short: "Detect language, framework, tooling and git info",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatText {
				return fmt.Errorf("%w: invalid format %q (use json or text)", domain.ErrInvalidInput, format)
			}
			repo, err := scoring.ResolveRepo(helpers.RepoArgs(args)[0])
			if err != nil {
				return err
			}

			spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "Analyzing "+repo)
			spinner.Start()
			analysis, err := container.Analyzer.Analyze(cmd.Context(), repo)
			spinner.Stop()
			if err != nil {
				return err
			}

			if format == formatJSON {
				data, err := json.MarshalIndent(analysis, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			displayAnalysis(cmd.OutOrStdout(), repo, analysis)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text or json")
	return cmd
}

func displayAnalysis(out io.Writer, repo string, a domain.RepoAnalysis) {
	fmt.Fprintf(out, "Repository:      %s\n", repo)
	fmt.Fprintf(out, "Language:        %s\n", a.Language)
	fmt.Fprintf(out, "Framework:       %s\n", a.Framework)
	fmt.Fprintf(out, "Package manager: %s\n", a.PackageManager)
	fmt.Fprintf(out, "Test framework:  %s\n", a.TestFramework)
	fmt.Fprintf(out, "Linter:          %s\n", a.Linter)
	fmt.Fprintf(out, "Formatter:       %s\n", a.Formatter)
	fmt.Fprintf(out, "CI:              %s\n", a.CISystem)
	fmt.Fprintf(out, "Files:           README=%s CLAUDE.md=%s blueprint=%s pre-commit=%s\n",
		yesNo(a.HasReadme), yesNo(a.HasClaudeMD), yesNo(a.HasBlueprint), yesNo(a.HasPreCommit))
	if !a.Git.IsRepo {
		fmt.Fprintln(out, "Git:             not a repository")
		return
	}
	fmt.Fprintf(out, "Git:             branch %s, remote %s, %d commits\n", a.Git.Branch, a.Git.Remote, a.Git.CommitCount)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
