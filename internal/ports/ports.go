// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like the file system, SQLite, git subprocesses, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., HealthScorer, ConfigProvider)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.git-repo-agent/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HealthScorer computes a health report for a repository root.
// Implementations only read from the file system and never fail once the
// root is a valid directory.
type HealthScorer interface {
	Compute(root string) domain.HealthReport
}

// RepoAnalyzer detects a repository's technology stack and git metadata.
type RepoAnalyzer interface {
	Analyze(ctx context.Context, root string) (domain.RepoAnalysis, error)
}

// ReportRenderer turns a health report into text.
type ReportRenderer interface {
	Render(report domain.HealthReport, format domain.ReportFormat) string
}

// HistoryRepository persists recorded health checks.
type HistoryRepository interface {
	Save(domain.HistoryRecord) error
	Records(repo string, limit int) ([]domain.HistoryRecord, error)
	Latest(repo string) (*domain.HistoryRecord, error)
	Prune(before time.Time) (int, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// PromptSource renders prompt markdown by name (e.g. "orchestrator", "docs").
type PromptSource interface {
	Render(name string, data domain.PromptData) (string, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
