package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/git-repo-agent/assets"
	"github.com/doeshing/git-repo-agent/internal/domain"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{DefaultFormat: "terminal", Color: "auto"},
		History:             domain.HistorySettings{Enabled: true, Backend: "sqlite", RetentionDays: 90},
		Analysis:            domain.AnalysisSettings{GitTimeout: "5s", CommitCountTimeout: "10s"},
		Agent:               domain.AgentSettings{Model: "sonnet", MaxTurns: 50, DefaultBranch: "setup/onboard"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("default config mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if string(data) != string(assets.DefaultConfigYAML) {
		t.Fatal("written config differs from embedded defaults")
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history:\n  backend: jsonl\nagent:\n  max_turns: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.History.Backend != domain.HistoryBackendJSONL || cfg.Agent.MaxTurns != 10 {
		t.Fatalf("explicit values lost: %+v", cfg)
	}
	if cfg.Agent.DefaultBranch != domain.DefaultOnboardBranch || cfg.Preferences.DefaultFormat != "terminal" {
		t.Fatalf("defaults not hydrated: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPathHonorsEnvironment(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, custom)
	if got := NewFileLoader("").Path(); got != custom {
		t.Fatalf("Path = %q, want %q", got, custom)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	if got, want := NewFileLoader("").Path(), filepath.Join(home, ".git-repo-agent", "config.yaml"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Agent.PromptsDir = "/opt/prompts"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	loaded, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigReportsErrors(t *testing.T) {
	if _, err := parseConfig([]byte("history: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
	cfg, err := parseConfig(assets.DefaultConfigYAML)
	if err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("DefaultConfig mismatch (-want +got):\n%s", diff)
	}
	if cfg.History.RetentionDays != 90 || cfg.Agent.DefaultBranch != "setup/onboard" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
