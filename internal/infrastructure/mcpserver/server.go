// Package mcpserver exposes health scoring, report rendering and repository
// analysis as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// New creates the MCP server with every tool registered.
func New(version string, scorer ports.HealthScorer, analyzer ports.RepoAnalyzer) *server.MCPServer {
	s := server.NewMCPServer(
		domain.MCPServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	healthTool := NewHealthScoreTool(scorer)
	s.AddTool(healthTool.Definition(), healthTool.Handle)

	reportTool := NewReportGenerateTool()
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	analyzeTool := NewRepoAnalyzeTool(analyzer)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	return s
}

// Serve blocks serving s over stdin/stdout.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = "Repository health tools. Call repo_analyze to learn the stack, " +
	"health_score to score a repository, and report_generate to format health_score output."
