package domain

import "strings"

// Category is one of the five fixed dimensions of repository health.
type Category string

const (
	CategoryDocs     Category = "docs"
	CategoryTests    Category = "tests"
	CategorySecurity Category = "security"
	CategoryQuality  Category = "quality"
	CategoryCI       Category = "ci"
)

// Scoring scale constants.
const (
	// CategoryMaxScore bounds every category sub-score.
	CategoryMaxScore = 20
	// HealthMaxScore is the sum of all category maxima.
	HealthMaxScore = 100
)

// Categories returns the categories in scoring and output order.
func Categories() []Category {
	return []Category{CategoryDocs, CategoryTests, CategorySecurity, CategoryQuality, CategoryCI}
}

// DisplayName returns the human readable category name used in reports.
func (c Category) DisplayName() string {
	switch c {
	case CategoryDocs:
		return "Documentation"
	case CategoryTests:
		return "Testing"
	case CategorySecurity:
		return "Security"
	case CategoryQuality:
		return "Code Quality"
	case CategoryCI:
		return "CI/CD"
	default:
		s := string(c)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// Valid reports whether c names one of the five categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryResult is the outcome of one category scorer.
type CategoryResult struct {
	Category Category
	Score    int
	Findings []string
}

// CategoryScores holds one sub-score per category. Field order is output order.
type CategoryScores struct {
	Docs     int `json:"docs"`
	Tests    int `json:"tests"`
	Security int `json:"security"`
	Quality  int `json:"quality"`
	CI       int `json:"ci"`
}

// Get returns the sub-score for c (0 for unknown categories).
func (s CategoryScores) Get(c Category) int {
	switch c {
	case CategoryDocs:
		return s.Docs
	case CategoryTests:
		return s.Tests
	case CategorySecurity:
		return s.Security
	case CategoryQuality:
		return s.Quality
	case CategoryCI:
		return s.CI
	}
	return 0
}

// Set stores the sub-score for c.
func (s *CategoryScores) Set(c Category, score int) {
	switch c {
	case CategoryDocs:
		s.Docs = score
	case CategoryTests:
		s.Tests = score
	case CategorySecurity:
		s.Security = score
	case CategoryQuality:
		s.Quality = score
	case CategoryCI:
		s.CI = score
	}
}

// Total sums all sub-scores.
func (s CategoryScores) Total() int {
	return s.Docs + s.Tests + s.Security + s.Quality + s.CI
}

// CategoryFindings holds findings per category. Empty categories are omitted
// from JSON output.
type CategoryFindings struct {
	Docs     []string `json:"docs,omitempty"`
	Tests    []string `json:"tests,omitempty"`
	Security []string `json:"security,omitempty"`
	Quality  []string `json:"quality,omitempty"`
	CI       []string `json:"ci,omitempty"`
}

// Get returns the findings recorded for c.
func (f CategoryFindings) Get(c Category) []string {
	switch c {
	case CategoryDocs:
		return f.Docs
	case CategoryTests:
		return f.Tests
	case CategorySecurity:
		return f.Security
	case CategoryQuality:
		return f.Quality
	case CategoryCI:
		return f.CI
	}
	return nil
}

// Set stores findings for c. An empty list is stored as nil so the category
// stays absent.
func (f *CategoryFindings) Set(c Category, findings []string) {
	if len(findings) == 0 {
		findings = nil
	}
	switch c {
	case CategoryDocs:
		f.Docs = findings
	case CategoryTests:
		f.Tests = findings
	case CategorySecurity:
		f.Security = findings
	case CategoryQuality:
		f.Quality = findings
	case CategoryCI:
		f.CI = findings
	}
}

// Count returns the number of findings across all categories.
func (f CategoryFindings) Count() int {
	n := 0
	for _, c := range Categories() {
		n += len(f.Get(c))
	}
	return n
}

// Empty reports whether no category has findings.
func (f CategoryFindings) Empty() bool {
	return f.Count() == 0
}

// HealthReport is the aggregate result of one scoring pass.
type HealthReport struct {
	OverallScore   int              `json:"overall_score"`
	Grade          string           `json:"grade"`
	CategoryScores CategoryScores   `json:"category_scores"`
	Findings       CategoryFindings `json:"findings"`
	MaxScore       int              `json:"max_score"`
}

// NewHealthReport assembles a report from per-category results. Sub-scores are
// clamped to [0, CategoryMaxScore] and the overall score is their exact sum.
func NewHealthReport(results []CategoryResult) HealthReport {
	var report HealthReport
	for _, res := range results {
		report.CategoryScores.Set(res.Category, ClampScore(res.Score))
		report.Findings.Set(res.Category, res.Findings)
	}
	report.OverallScore = report.CategoryScores.Total()
	report.Grade = GradeFor(report.OverallScore)
	report.MaxScore = HealthMaxScore
	return report
}

// ClampScore bounds a category score to [0, CategoryMaxScore].
func ClampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > CategoryMaxScore:
		return CategoryMaxScore
	default:
		return score
	}
}

// GradeFor converts an overall score into a letter grade.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ReportFormat selects a rendering of a HealthReport.
type ReportFormat string

const (
	FormatTerminal ReportFormat = "terminal"
	FormatMarkdown ReportFormat = "markdown"
	FormatJSON     ReportFormat = "json"
)

// ReportFormats lists the supported renderings.
func ReportFormats() []ReportFormat {
	return []ReportFormat{FormatMarkdown, FormatJSON, FormatTerminal}
}

// ParseReportFormat reports whether raw names a supported format.
func ParseReportFormat(raw string) (ReportFormat, bool) {
	for _, f := range ReportFormats() {
		if strings.EqualFold(raw, string(f)) {
			return f, true
		}
	}
	return FormatTerminal, false
}

// HealthResult pairs a report with the repository it describes.
type HealthResult struct {
	RepoPath string       `json:"repo_path"`
	Report   HealthReport `json:"report"`
	Trend    *Trend       `json:"trend,omitempty"`
}
