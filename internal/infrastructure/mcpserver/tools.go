package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/doeshing/git-repo-agent/internal/application/scoring"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/report"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// HealthScoreTool handles the health_score MCP tool.
type HealthScoreTool struct {
	scorer ports.HealthScorer
}

// NewHealthScoreTool creates a HealthScoreTool.
func NewHealthScoreTool(scorer ports.HealthScorer) *HealthScoreTool {
	return &HealthScoreTool{scorer: scorer}
}

// Definition returns the MCP tool definition for registration.
func (t *HealthScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("health_score",
		mcp.WithDescription(
			"Compute a repository health score (0-100) across documentation, tests, "+
				"security, code quality, and CI/CD. Returns JSON with per-category scores "+
				"and findings.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the repository root."),
		),
	)
}

// Handle scores the repository at path.
func (t *HealthScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, errResult := repoArg(req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(report.JSON(t.scorer.Compute(repo))), nil
}

// ReportGenerateTool handles the report_generate MCP tool.
type ReportGenerateTool struct{}

// NewReportGenerateTool creates a ReportGenerateTool.
func NewReportGenerateTool() *ReportGenerateTool {
	return &ReportGenerateTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ReportGenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("report_generate",
		mcp.WithDescription(
			"Generate a formatted health report from health_score output. "+
				"Supports markdown, json, and terminal output formats.",
		),
		mcp.WithString("scores",
			mcp.Required(),
			mcp.Description("JSON output of health_score."),
		),
		mcp.WithString("format",
			mcp.Enum("markdown", "json", "terminal"),
			mcp.Description("Output format (default terminal)."),
		),
	)
}

// Handle renders the supplied scores. Unlike report.Render it rejects
// unknown formats.
func (t *ReportGenerateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parsed, err := report.Parse([]byte(req.GetString("scores", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: invalid scores JSON: %v", err)), nil
	}
	raw := req.GetString("format", string(domain.FormatTerminal))
	format := domain.ReportFormat(raw)
	switch format {
	case domain.FormatMarkdown, domain.FormatJSON, domain.FormatTerminal:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Error: invalid format '%s'. Use 'markdown', 'json', or 'terminal'.", raw)), nil
	}
	return mcp.NewToolResultText(report.Render(parsed, format)), nil
}

// RepoAnalyzeTool handles the repo_analyze MCP tool.
type RepoAnalyzeTool struct {
	analyzer ports.RepoAnalyzer
}

// NewRepoAnalyzeTool creates a RepoAnalyzeTool.
func NewRepoAnalyzeTool(analyzer ports.RepoAnalyzer) *RepoAnalyzeTool {
	return &RepoAnalyzeTool{analyzer: analyzer}
}

// Definition returns the MCP tool definition for registration.
func (t *RepoAnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("repo_analyze",
		mcp.WithDescription(
			"Analyze repository structure, technology stack, and existing tooling. "+
				"Returns language, framework, package manager, test/lint/format tools, CI system, "+
				"and blueprint status.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the repository root."),
		),
	)
}

// Handle analyzes the repository at path.
func (t *RepoAnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, errResult := repoArg(req)
	if errResult != nil {
		return errResult, nil
	}
	analysis, err := t.analyzer.Analyze(ctx, repo)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// repoArg resolves the path argument or returns an error result.
func repoArg(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw := req.GetString("path", "")
	repo, err := scoring.ResolveRepo(raw)
	if err != nil {
		abs, absErr := filepath.Abs(raw)
		if absErr != nil {
			abs = raw
		}
		return "", mcp.NewToolResultError(fmt.Sprintf("Error: %s is not a valid directory", abs))
	}
	return repo, nil
}
