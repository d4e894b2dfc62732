package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	Prompts        ports.PromptSource
	PromptNames    []string
	Scorer         ports.HealthScorer
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
	// WorkDir is scored as a smoke test; empty means the current directory.
	WorkDir string
}

// Run executes checks and returns a report. Only a config failure aborts.
func (s *Service) Run(ctx context.Context) (domain.DiagnosticReport, error) {
	var checks []domain.DiagnosticCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.DiagnosticReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	checks = append(checks, s.historyCheck(cfg))
	checks = append(checks, s.gitCheck())
	checks = append(checks, s.promptCheck())
	checks = append(checks, s.selfCheck())

	return domain.DiagnosticReport{Checks: checks}, nil
}

func (s *Service) historyCheck(cfg domain.Config) domain.DiagnosticCheck {
	if !cfg.History.Enabled {
		return warn("History", "recording disabled in config")
	}
	if s.History == nil {
		return warn("History", "history store not initialized")
	}
	if _, err := s.History.Records("", 1); err != nil {
		return fail("History", fmt.Sprintf("%s: %v", s.History.Path(), err))
	}
	return ok("History", s.History.Path())
}

func (s *Service) gitCheck() domain.DiagnosticCheck {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath("git")
	if err != nil {
		return warn("Git", "git not found on PATH; git info will be skipped")
	}
	return ok("Git", path)
}

func (s *Service) promptCheck() domain.DiagnosticCheck {
	if s.Prompts == nil {
		return warn("Prompt templates", "prompt source not initialized")
	}
	for _, name := range s.PromptNames {
		if _, err := s.Prompts.Render(name, domain.PromptData{}); err != nil {
			return fail("Prompt templates", err.Error())
		}
	}
	return ok("Prompt templates", fmt.Sprintf("%d templates render", len(s.PromptNames)))
}

func (s *Service) selfCheck() domain.DiagnosticCheck {
	if s.Scorer == nil {
		return warn("Health scorer", "scorer not initialized")
	}
	dir := s.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return warn("Health scorer", err.Error())
		}
		dir = wd
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return warn("Health scorer", fmt.Sprintf("%s is not a directory", dir))
	}
	report := s.Scorer.Compute(dir)
	return ok("Health scorer", fmt.Sprintf("%s scores %d/%d (%s)", dir, report.OverallScore, domain.HealthMaxScore, report.Grade))
}

func ok(name, details string) domain.DiagnosticCheck {
	return domain.DiagnosticCheck{Name: name, Status: domain.DiagnosticOK, Details: details}
}

func warn(name, details string) domain.DiagnosticCheck {
	return domain.DiagnosticCheck{Name: name, Status: domain.DiagnosticWarn, Details: details}
}

func fail(name, details string) domain.DiagnosticCheck {
	return domain.DiagnosticCheck{Name: name, Status: domain.DiagnosticError, Details: details}
}
