package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if err := validateAnalysis(cfg.Analysis); err != nil {
		return err
	}
	return validateAgent(cfg.Agent)
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.DefaultFormat != "" {
		if _, ok := domain.ParseReportFormat(prefs.DefaultFormat); !ok {
			return fmt.Errorf("preferences.default_format must be terminal|markdown|json, got %s", prefs.DefaultFormat)
		}
	}
	switch strings.ToLower(prefs.Color) {
	case "", domain.ColorAuto, domain.ColorAlways, domain.ColorNever:
	default:
		return fmt.Errorf("preferences.color must be auto|always|never, got %s", prefs.Color)
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch history.Backend {
	case "", domain.HistoryBackendSQLite, domain.HistoryBackendJSONL:
	default:
		return fmt.Errorf("history.backend must be sqlite|jsonl, got %s", history.Backend)
	}
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	return nil
}

func validateAnalysis(analysis domain.AnalysisSettings) error {
	fields := []struct{ key, raw string }{
		{"analysis.git_timeout", analysis.GitTimeout},
		{"analysis.commit_count_timeout", analysis.CommitCountTimeout},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("%s invalid: %w", f.key, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be > 0", f.key)
		}
	}
	return nil
}

func validateAgent(agent domain.AgentSettings) error {
	if agent.MaxTurns < 0 {
		return fmt.Errorf("agent.max_turns must be >= 0")
	}
	if strings.ContainsAny(agent.DefaultBranch, " ~^:?*[\\") {
		return fmt.Errorf("agent.default_branch %q is not a valid branch name", agent.DefaultBranch)
	}
	return nil
}
