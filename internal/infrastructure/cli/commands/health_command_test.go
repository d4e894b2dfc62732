package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/cli/helpers"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/report"
)

func sampleResults() []domain.HealthResult {
	var full []domain.CategoryResult
	for _, c := range domain.Categories() {
		full = append(full, domain.CategoryResult{Category: c, Score: domain.CategoryMaxScore})
	}
	second := domain.NewHealthReport([]domain.CategoryResult{
		{Category: domain.CategorySecurity, Score: 4},
		{Category: domain.CategoryCI, Findings: []string{"No CI/CD configuration found"}},
	})
	return []domain.HealthResult{
		{RepoPath: "/repos/a", Report: domain.NewHealthReport(full), Trend: &domain.Trend{Previous: 90, Current: 100, Delta: 10, Label: domain.TrendImproving}},
		{RepoPath: "/repos/b", Report: second},
	}
}

func TestRenderHealthResultsTerminal(t *testing.T) {
	text, err := renderHealthResults(report.NewRenderer(), sampleResults(), domain.FormatTerminal, helpers.Styler{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"== /repos/a ==\nHealth: 100/100 (A)",
		"Trend: IMPROVING (+10 since last run, was 90)",
		"== /repos/b ==\nHealth: 4/100 (F)",
		"[CI/CD] No CI/CD configuration found",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRenderHealthResultsMarkdownSeparatesRepos(t *testing.T) {
	text, err := renderHealthResults(report.NewRenderer(), sampleResults(), domain.FormatMarkdown, helpers.Styler{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(text, "\n\n---\n\n") != 1 || !strings.HasPrefix(text, "Repository: `/repos/a`") {
		t.Fatalf("unexpected markdown:\n%s", text)
	}
}

func TestRenderHealthResultsJSONBatch(t *testing.T) {
	text, err := renderHealthResults(report.NewRenderer(), sampleResults(), domain.FormatJSON, helpers.Styler{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded []domain.HealthResult
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Report.OverallScore != 100 || decoded[1].Trend != nil {
		t.Fatalf("unexpected batch %+v", decoded)
	}
}

func TestTrendLine(t *testing.T) {
	tests := []struct {
		trend *domain.Trend
		want  string
	}{
		{nil, ""},
		{&domain.Trend{Previous: -1, Current: 50, Label: domain.TrendFirstRun}, "Trend: first recorded run"},
		{&domain.Trend{Previous: 70, Current: 60, Delta: -10, Label: domain.TrendDeclining}, "Trend: DECLINING (-10 since last run, was 70)"},
	}
	for _, tt := range tests {
		if got := trendLine(tt.trend); got != tt.want {
			t.Fatalf("trendLine = %q, want %q", got, tt.want)
		}
	}
}
