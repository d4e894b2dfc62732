package domain

import "time"

// HistoryRecord captures one recorded health check.
type HistoryRecord struct {
	ID             string         `json:"id"`
	RepoPath       string         `json:"repo_path"`
	Timestamp      time.Time      `json:"timestamp"`
	OverallScore   int            `json:"overall_score"`
	Grade          string         `json:"grade"`
	CategoryScores CategoryScores `json:"category_scores"`
	FindingCount   int            `json:"finding_count"`
}

// TrendLabel classifies a score change between two runs.
type TrendLabel string

const (
	TrendFirstRun  TrendLabel = "FIRST_RUN"
	TrendImproving TrendLabel = "IMPROVING"
	TrendDeclining TrendLabel = "DECLINING"
	TrendSame      TrendLabel = "SAME"
)

// Trend compares a run against the previous run of the same repository.
type Trend struct {
	Previous int        `json:"previous"`
	Current  int        `json:"current"`
	Delta    int        `json:"delta"`
	Label    TrendLabel `json:"label"`
}

// NewTrend builds a Trend. previous is nil when no earlier run exists.
func NewTrend(previous *HistoryRecord, current int) Trend {
	if previous == nil {
		return Trend{Previous: -1, Current: current, Label: TrendFirstRun}
	}
	t := Trend{Previous: previous.OverallScore, Current: current, Delta: current - previous.OverallScore}
	switch {
	case t.Delta > 0:
		t.Label = TrendImproving
	case t.Delta < 0:
		t.Label = TrendDeclining
	default:
		t.Label = TrendSame
	}
	return t
}

// NewHistoryRecord summarizes a report for storage. Stores assign the ID.
func NewHistoryRecord(repo string, report HealthReport, at time.Time) HistoryRecord {
	return HistoryRecord{
		RepoPath:       repo,
		Timestamp:      at.UTC(),
		OverallScore:   report.OverallScore,
		Grade:          report.Grade,
		CategoryScores: report.CategoryScores,
		FindingCount:   report.Findings.Count(),
	}
}
