// Package agent assembles the briefings handed to an external agent runtime
// for repository onboarding and maintenance.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/git-repo-agent/internal/application/scoring"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// Permission modes understood by the agent runtime.
const (
	PermissionAcceptEdits = "acceptEdits"
	PermissionDefault     = "default"
	PermissionPlan        = "plan"
)

// Service builds briefings.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Analyzer       ports.RepoAnalyzer
	Scorer         ports.HealthScorer
	Prompts        ports.PromptSource
	Logger         ports.Logger
}

// ParseFocus parses a comma-separated category list. Blank entries are
// skipped and duplicates collapse.
func ParseFocus(raw string) ([]domain.Category, error) {
	var focus []domain.Category
	seen := map[domain.Category]bool{}
	for _, part := range strings.Split(raw, ",") {
		c := domain.Category(strings.ToLower(strings.TrimSpace(part)))
		if c == "" {
			continue
		}
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown focus area %q (use docs, tests, security, quality, ci)", domain.ErrInvalidInput, part)
		}
		if !seen[c] {
			seen[c] = true
			focus = append(focus, c)
		}
	}
	return focus, nil
}

// Onboard builds the onboarding briefing.
func (s *Service) Onboard(ctx context.Context, opts domain.OnboardOptions) (domain.Briefing, error) {
	cfg, data, err := s.prepare(ctx, opts.RepoPath)
	if err != nil {
		return domain.Briefing{}, err
	}
	data.Mode = domain.ModeOnboard
	data.Branch = opts.Branch
	if data.Branch == "" {
		data.Branch = cfg.Agent.DefaultBranch
	}
	data.DryRun = opts.DryRun
	data.SkipCI = opts.SkipCI
	data.SkipBlueprint = opts.SkipBlueprint

	parts := []string{
		fmt.Sprintf("Onboard the repository at %s.", data.RepoPath),
		"Start by analyzing the repo with repo_analyze, then plan and execute the onboarding workflow.",
	}
	if opts.DryRun {
		parts = append(parts, "DRY RUN: report what you would do without making changes.")
	}
	if opts.SkipCI {
		parts = append(parts, "Skip CI/CD setup.")
	}
	if opts.SkipBlueprint {
		parts = append(parts, "Skip blueprint initialization.")
	}

	include := func(a subagent) bool {
		return !(opts.SkipBlueprint && a.name == "blueprint")
	}
	env := map[string]string{
		"DRY_RUN":        strconv.FormatBool(opts.DryRun),
		"SKIP_CI":        strconv.FormatBool(opts.SkipCI),
		"SKIP_BLUEPRINT": strconv.FormatBool(opts.SkipBlueprint),
		"ONBOARD_BRANCH": data.Branch,
	}
	permission := PermissionAcceptEdits
	if opts.DryRun {
		permission = PermissionPlan
	}
	return s.brief(cfg, data, strings.Join(parts, " "), include, env, permission, opts.DryRun)
}

// Maintain builds the maintenance briefing. Focus narrows both the embedded
// findings and the offered sub-agents.
func (s *Service) Maintain(ctx context.Context, opts domain.MaintainOptions) (domain.Briefing, error) {
	if opts.Fix && opts.ReportOnly {
		return domain.Briefing{}, fmt.Errorf("%w: --fix and --report-only are mutually exclusive", domain.ErrInvalidInput)
	}
	for _, c := range opts.Focus {
		if !c.Valid() {
			return domain.Briefing{}, fmt.Errorf("%w: unknown focus area %q", domain.ErrInvalidInput, c)
		}
	}
	cfg, data, err := s.prepare(ctx, opts.RepoPath)
	if err != nil {
		return domain.Briefing{}, err
	}
	data.Mode = domain.ModeMaintain
	data.Fix = opts.Fix
	data.ReportOnly = opts.ReportOnly
	data.Focus = opts.Focus
	if len(opts.Focus) > 0 {
		focused := focusReport(*data.Health, opts.Focus)
		data.Health = &focused
	}

	parts := []string{
		fmt.Sprintf("Maintain the repository at %s.", data.RepoPath),
		"Start by scoring the repo with health_score, then triage the findings.",
	}
	if opts.Fix {
		parts = append(parts, "Fix the issues you find.")
	}
	if opts.ReportOnly {
		parts = append(parts, "REPORT ONLY: do not modify files.")
	}
	focusNames := make([]string, 0, len(opts.Focus))
	for _, c := range opts.Focus {
		focusNames = append(focusNames, string(c))
	}
	if len(focusNames) > 0 {
		parts = append(parts, fmt.Sprintf("Focus on: %s.", strings.Join(focusNames, ", ")))
	}

	include := func(a subagent) bool {
		return len(opts.Focus) == 0 || a.ownsAny(opts.Focus)
	}
	env := map[string]string{
		"FIX":         strconv.FormatBool(opts.Fix),
		"REPORT_ONLY": strconv.FormatBool(opts.ReportOnly),
		"FOCUS":       strings.Join(focusNames, ","),
	}
	permission := PermissionDefault
	switch {
	case opts.Fix:
		permission = PermissionAcceptEdits
	case opts.ReportOnly:
		permission = PermissionPlan
	}
	return s.brief(cfg, data, strings.Join(parts, " "), include, env, permission, opts.ReportOnly)
}

// prepare validates the repository, loads config, analyzes and scores.
func (s *Service) prepare(ctx context.Context, repo string) (domain.Config, domain.PromptData, error) {
	if s.ConfigProvider == nil || s.Analyzer == nil || s.Scorer == nil || s.Prompts == nil || s.Logger == nil {
		return domain.Config{}, domain.PromptData{}, errors.New("agent.Service dependencies not satisfied")
	}
	abs, err := scoring.ResolveRepo(repo)
	if err != nil {
		return domain.Config{}, domain.PromptData{}, err
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.Config{}, domain.PromptData{}, fmt.Errorf("load config: %w", err)
	}
	analysis, err := s.Analyzer.Analyze(ctx, abs)
	if err != nil {
		return domain.Config{}, domain.PromptData{}, fmt.Errorf("analyze repository: %w", err)
	}
	report := s.Scorer.Compute(abs)
	s.Logger.Info("prepared briefing context", map[string]interface{}{
		"repo":     abs,
		"language": analysis.Language,
		"score":    report.OverallScore,
	})
	return cfg, domain.PromptData{RepoPath: abs, Analysis: analysis, Health: &report}, nil
}

func (s *Service) brief(
	cfg domain.Config,
	data domain.PromptData,
	prompt string,
	include func(subagent) bool,
	env map[string]string,
	permission string,
	readOnly bool,
) (domain.Briefing, error) {
	mode := string(data.Mode)
	orchestrator, err := s.Prompts.Render("orchestrator", data)
	if err != nil {
		return domain.Briefing{}, err
	}
	modePrompt, err := s.Prompts.Render(mode, data)
	if err != nil {
		return domain.Briefing{}, err
	}

	var agents []domain.AgentDefinition
	for _, a := range subagents {
		if !include(a) {
			continue
		}
		body, err := s.Prompts.Render(a.name, data)
		if err != nil {
			return domain.Briefing{}, err
		}
		tools := append([]string(nil), a.tools...)
		if readOnly {
			tools = withoutWrites(tools)
		}
		model := a.model
		if model == "" {
			model = cfg.Agent.Model
		}
		agents = append(agents, domain.AgentDefinition{
			Name:        a.name,
			Description: a.description,
			Prompt:      body,
			Tools:       tools,
			Model:       model,
		})
	}

	allowed := append([]string(nil), orchestratorTools...)
	if readOnly {
		allowed = withoutWrites(allowed)
	}
	maxTurns := cfg.Agent.MaxTurns
	if maxTurns <= 0 {
		maxTurns = domain.DefaultAgentMaxTurns
	}

	return domain.Briefing{
		Mode:           data.Mode,
		RepoPath:       data.RepoPath,
		SystemPrompt:   orchestrator + "\n\n" + modePrompt,
		Prompt:         prompt,
		AllowedTools:   allowed,
		PermissionMode: permission,
		MaxTurns:       maxTurns,
		Agents:         agents,
		Env:            env,
		Analysis:       data.Analysis,
		Health:         data.Health,
	}, nil
}

// focusReport keeps findings only for the focused categories.
func focusReport(report domain.HealthReport, focus []domain.Category) domain.HealthReport {
	var findings domain.CategoryFindings
	for _, c := range focus {
		findings.Set(c, report.Findings.Get(c))
	}
	report.Findings = findings
	return report
}
