package config

import (
	"strings"
	"testing"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{DefaultFormat: "markdown", Color: "auto"},
		History:             domain.HistorySettings{Enabled: true, Backend: "sqlite", RetentionDays: 30},
		Analysis:            domain.AnalysisSettings{GitTimeout: "5s", CommitCountTimeout: "10s"},
		Agent:               domain.AgentSettings{Model: "sonnet", MaxTurns: 50, DefaultBranch: "setup/onboard"},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(domain.Config{}); err != nil {
		t.Fatalf("zero config should validate, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{"format", func(c *domain.Config) { c.Preferences.DefaultFormat = "yaml" }, "preferences.default_format"},
		{"color", func(c *domain.Config) { c.Preferences.Color = "rainbow" }, "preferences.color"},
		{"backend", func(c *domain.Config) { c.History.Backend = "postgres" }, "history.backend"},
		{"retention", func(c *domain.Config) { c.History.RetentionDays = -1 }, "history.retention_days"},
		{"git timeout", func(c *domain.Config) { c.Analysis.GitTimeout = "soon" }, "analysis.git_timeout"},
		{"negative timeout", func(c *domain.Config) { c.Analysis.CommitCountTimeout = "-1s" }, "analysis.commit_count_timeout"},
		{"max turns", func(c *domain.Config) { c.Agent.MaxTurns = -5 }, "agent.max_turns"},
		{"branch", func(c *domain.Config) { c.Agent.DefaultBranch = "bad branch" }, "agent.default_branch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
