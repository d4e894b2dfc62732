// Package report renders health reports as markdown, JSON or terminal text.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

const (
	barWidth  = 20
	barFilled = "█"
	barEmpty  = "░"
)

var gradeEmoji = map[string]string{
	"A": "✅",
	"B": "\U0001F7E2",
	"C": "\U0001F7E1",
	"D": "\U0001F7E0",
	"F": "\U0001F534",
}

// Renderer implements ports.ReportRenderer.
type Renderer struct{}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render delegates to the package-level Render.
func (r *Renderer) Render(report domain.HealthReport, format domain.ReportFormat) string {
	return Render(report, format)
}

// Render formats report. Unrecognized formats fall back to terminal output.
func Render(report domain.HealthReport, format domain.ReportFormat) string {
	switch format {
	case domain.FormatMarkdown:
		return Markdown(report)
	case domain.FormatJSON:
		return JSON(report)
	default:
		return Terminal(report)
	}
}

// Parse reads a JSON rendering back into a report.
func Parse(data []byte) (domain.HealthReport, error) {
	var report domain.HealthReport
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.HealthReport{}, fmt.Errorf("parse health report: %w", err)
	}
	return report, nil
}

// Markdown renders a heading, a category table and grouped findings.
func Markdown(report domain.HealthReport) string {
	lines := []string{
		fmt.Sprintf("# Health Report %s", gradeEmoji[report.Grade]),
		"",
		fmt.Sprintf("**Score:** %d/%d (%s)", report.OverallScore, domain.HealthMaxScore, report.Grade),
		"",
		"## Category Breakdown",
		"",
		"| Category | Score | Status |",
		"|----------|-------|--------|",
	}
	for _, c := range domain.Categories() {
		score := report.CategoryScores.Get(c)
		lines = append(lines, fmt.Sprintf("| %s | %d/%d | %s |", c.DisplayName(), score, domain.CategoryMaxScore, Status(score)))
	}

	if !report.Findings.Empty() {
		lines = append(lines, "", "## Findings", "")
		for _, c := range domain.Categories() {
			findings := report.Findings.Get(c)
			if len(findings) == 0 {
				continue
			}
			lines = append(lines, "### "+c.DisplayName())
			for _, f := range findings {
				lines = append(lines, "- "+f)
			}
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// JSON renders the report with two-space indentation.
func JSON(report domain.HealthReport) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		// Only plain ints and strings are marshalled.
		return "{}"
	}
	return string(data)
}

// Terminal renders fixed-width bars, one line per category.
func Terminal(report domain.HealthReport) string {
	lines := []string{
		fmt.Sprintf("Health: %d/%d (%s)  [%s]", report.OverallScore, domain.HealthMaxScore, report.Grade, Bar(report.OverallScore/5)),
		"",
	}
	for _, c := range domain.Categories() {
		score := report.CategoryScores.Get(c)
		lines = append(lines, fmt.Sprintf("  %-15s %2d/%d  [%s]", c.DisplayName(), score, domain.CategoryMaxScore, Bar(score)))
	}

	if !report.Findings.Empty() {
		lines = append(lines, "")
		for _, c := range domain.Categories() {
			for _, f := range report.Findings.Get(c) {
				lines = append(lines, fmt.Sprintf("  [%s] %s", c.DisplayName(), f))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// Bar draws filled cells out of a 20-cell bar.
func Bar(filled int) string {
	switch {
	case filled < 0:
		filled = 0
	case filled > barWidth:
		filled = barWidth
	}
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, barWidth-filled)
}

// Status labels a category score by its share of the category maximum.
func Status(score int) string {
	ratio := float64(score) / float64(domain.CategoryMaxScore)
	switch {
	case ratio >= 0.9:
		return "Excellent"
	case ratio >= 0.8:
		return "Good"
	case ratio >= 0.7:
		return "OK"
	case ratio >= 0.5:
		return "Needs work"
	default:
		return "Poor"
	}
}

var _ ports.ReportRenderer = (*Renderer)(nil)
