package prompt

import (
	"fmt"
	"strings"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

type templateData struct {
	Mode          string
	RepoPath      string
	Branch        string
	DryRun        bool
	SkipCI        bool
	SkipBlueprint bool
	Fix           bool
	ReportOnly    bool
	Focus         string
	Stack         string
	Tooling       string
	TestFramework string
	CISystem      string
	Git           string
	Health        string
}

func buildTemplateData(d domain.PromptData) templateData {
	return templateData{
		Mode:          string(d.Mode),
		RepoPath:      d.RepoPath,
		Branch:        d.Branch,
		DryRun:        d.DryRun,
		SkipCI:        d.SkipCI,
		SkipBlueprint: d.SkipBlueprint,
		Fix:           d.Fix,
		ReportOnly:    d.ReportOnly,
		Focus:         focusList(d.Focus),
		Stack:         stackSummary(d.Analysis),
		Tooling:       toolingSummary(d.Analysis),
		TestFramework: orUnknown(d.Analysis.TestFramework),
		CISystem:      orUnknown(d.Analysis.CISystem),
		Git:           gitSummary(d.Analysis.Git),
		Health:        healthSummary(d.Health),
	}
}

func focusList(focus []domain.Category) string {
	names := make([]string, 0, len(focus))
	for _, c := range focus {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func stackSummary(a domain.RepoAnalysis) string {
	parts := []string{orUnknown(a.Language)}
	if a.Framework != "" && a.Framework != "none" {
		parts = append(parts, a.Framework)
	}
	if a.PackageManager != "" && a.PackageManager != "unknown" {
		parts = append(parts, a.PackageManager)
	}
	return strings.Join(parts, " / ")
}

func toolingSummary(a domain.RepoAnalysis) string {
	return fmt.Sprintf("tests %s, linter %s, formatter %s",
		orUnknown(a.TestFramework), orUnknown(a.Linter), orUnknown(a.Formatter))
}

func gitSummary(g domain.GitInfo) string {
	if !g.IsRepo {
		return "not a git repository"
	}
	return fmt.Sprintf("branch %s, remote %s, %d commits", g.Branch, g.Remote, g.CommitCount)
}

// healthSummary lists category scores followed by findings.
func healthSummary(report *domain.HealthReport) string {
	if report == nil {
		return "Not scored yet. Run health_score first."
	}
	lines := []string{fmt.Sprintf("Score %d/%d (%s)", report.OverallScore, domain.HealthMaxScore, report.Grade), ""}
	for _, c := range domain.Categories() {
		lines = append(lines, fmt.Sprintf("- %s: %d/%d", c.DisplayName(), report.CategoryScores.Get(c), domain.CategoryMaxScore))
	}
	if !report.Findings.Empty() {
		lines = append(lines, "", "Findings:")
		for _, c := range domain.Categories() {
			for _, f := range report.Findings.Get(c) {
				lines = append(lines, fmt.Sprintf("- [%s] %s", c, f))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
