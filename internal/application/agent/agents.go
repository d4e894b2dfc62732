package agent

import "github.com/doeshing/git-repo-agent/internal/domain"

const (
	toolRead  = "Read"
	toolWrite = "Write"
	toolEdit  = "Edit"
	toolBash  = "Bash"
	toolGlob  = "Glob"
	toolGrep  = "Grep"
)

// orchestratorTools are granted to the top-level agent.
var orchestratorTools = []string{
	toolRead, toolWrite, toolEdit, toolBash, toolGlob, toolGrep,
	"Task", "AskUserQuestion", "TodoWrite",
	"mcp__" + domain.MCPServerName + "__repo_analyze",
	"mcp__" + domain.MCPServerName + "__health_score",
	"mcp__" + domain.MCPServerName + "__report_generate",
}

// subagent is a sub-agent template. An empty model means the configured one.
type subagent struct {
	name        string
	description string
	tools       []string
	model       string
	owns        []domain.Category
}

var subagents = []subagent{
	{
		name: "blueprint",
		description: "Blueprint lifecycle management. Initialize, derive, sync, and maintain " +
			"blueprint artifacts (PRDs, ADRs, PRPs, work orders, manifest). " +
			"Use this agent to set up or update the docs/blueprint/ directory structure.",
		tools: []string{toolRead, toolWrite, toolEdit, toolBash, toolGlob, toolGrep},
		model: "sonnet",
		owns:  []domain.Category{domain.CategoryDocs},
	},
	{
		name: "configure",
		description: "Project standards configuration. Set up linting, formatting, testing, " +
			"pre-commit hooks, CI/CD workflows, and code coverage.",
		tools: []string{toolRead, toolWrite, toolEdit, toolBash, toolGlob, toolGrep},
		model: "haiku",
		owns:  []domain.Category{domain.CategoryQuality, domain.CategoryCI},
	},
	{
		name: "docs",
		description: "Documentation health. Check freshness, accuracy, completeness of " +
			"README, CLAUDE.md, API docs, and blueprint documents.",
		tools: []string{toolRead, toolWrite, toolEdit, toolGlob, toolGrep},
		model: "haiku",
		owns:  []domain.Category{domain.CategoryDocs},
	},
	{
		name: "quality",
		description: "Code quality analysis. Review code for quality, complexity, duplication, " +
			"and adherence to project standards. Provides severity-ranked findings.",
		tools: []string{toolRead, toolGlob, toolGrep, toolBash},
		model: "opus",
		owns:  []domain.Category{domain.CategoryQuality},
	},
	{
		name: "security",
		description: "Security hygiene audit. Check for committed secrets, .gitignore coverage, " +
			"dependency update automation, and security scanning in CI.",
		tools: []string{toolRead, toolGlob, toolGrep, toolBash},
		owns:  []domain.Category{domain.CategorySecurity},
	},
	{
		name: "test_runner",
		description: "Run tests and report results. Detects framework, executes with " +
			"optimized flags, returns concise pass/fail summary.",
		tools: []string{toolRead, toolGlob, toolGrep, toolBash},
		model: "haiku",
		owns:  []domain.Category{domain.CategoryTests},
	},
}

func (s subagent) ownsAny(focus []domain.Category) bool {
	for _, f := range focus {
		for _, c := range s.owns {
			if c == f {
				return true
			}
		}
	}
	return false
}

// withoutWrites drops file-modifying tools.
func withoutWrites(tools []string) []string {
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		if t != toolWrite && t != toolEdit {
			out = append(out, t)
		}
	}
	return out
}
