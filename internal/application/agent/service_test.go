package agent

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

type stubConfig struct{ cfg domain.Config }

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, nil }

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(_ context.Context, root string) (domain.RepoAnalysis, error) {
	return domain.RepoAnalysis{Language: "go", CISystem: "none"}, nil
}

type stubScorer struct{}

func (stubScorer) Compute(string) domain.HealthReport {
	return domain.NewHealthReport([]domain.CategoryResult{
		{Category: domain.CategoryDocs, Score: 10, Findings: []string{"Missing CLAUDE.md"}},
		{Category: domain.CategoryTests, Score: 12, Findings: []string{"No CI workflow runs tests"}},
		{Category: domain.CategorySecurity, Score: 8, Findings: []string{"No Dependabot configuration"}},
		{Category: domain.CategoryQuality, Score: 14},
		{Category: domain.CategoryCI, Score: 0, Findings: []string{"No CI/CD configuration found"}},
	})
}

// stubPrompts renders "<name> for <repo>" so tests can see which templates ran.
type stubPrompts struct {
	rendered []string
}

func (s *stubPrompts) Render(name string, data domain.PromptData) (string, error) {
	s.rendered = append(s.rendered, name)
	return name + " for " + data.RepoPath, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func newService() *Service {
	return &Service{
		ConfigProvider: stubConfig{cfg: domain.Config{Agent: domain.AgentSettings{Model: "sonnet", MaxTurns: 30, DefaultBranch: "setup/onboard"}}},
		Analyzer:       stubAnalyzer{},
		Scorer:         stubScorer{},
		Prompts:        &stubPrompts{},
		Logger:         nopLogger{},
	}
}

func agentNames(b domain.Briefing) []string {
	var names []string
	for _, a := range b.Agents {
		names = append(names, a.Name)
	}
	return names
}

func TestParseFocus(t *testing.T) {
	got, err := ParseFocus(" Docs, tests,,docs ,ci")
	if err != nil {
		t.Fatalf("ParseFocus error: %v", err)
	}
	want := []domain.Category{domain.CategoryDocs, domain.CategoryTests, domain.CategoryCI}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("focus mismatch (-want +got):\n%s", diff)
	}

	if got, err := ParseFocus(""); err != nil || len(got) != 0 {
		t.Fatalf("empty focus = %v, %v", got, err)
	}
	if _, err := ParseFocus("docs,perf"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOnboardBriefing(t *testing.T) {
	repo := t.TempDir()
	b, err := newService().Onboard(context.Background(), domain.OnboardOptions{RepoPath: repo, SkipCI: true})
	if err != nil {
		t.Fatalf("Onboard error: %v", err)
	}

	if b.Mode != domain.ModeOnboard || b.RepoPath != repo || b.MaxTurns != 30 {
		t.Fatalf("unexpected briefing header: %+v", b)
	}
	if b.SystemPrompt != "orchestrator for "+repo+"\n\nonboard for "+repo {
		t.Fatalf("system prompt = %q", b.SystemPrompt)
	}
	wantPrompt := "Onboard the repository at " + repo + ". " +
		"Start by analyzing the repo with repo_analyze, then plan and execute the onboarding workflow. " +
		"Skip CI/CD setup."
	if b.Prompt != wantPrompt {
		t.Fatalf("prompt = %q", b.Prompt)
	}
	wantEnv := map[string]string{"DRY_RUN": "false", "SKIP_CI": "true", "SKIP_BLUEPRINT": "false", "ONBOARD_BRANCH": "setup/onboard"}
	if diff := cmp.Diff(wantEnv, b.Env); diff != "" {
		t.Fatalf("env mismatch (-want +got):\n%s", diff)
	}
	if b.PermissionMode != PermissionAcceptEdits {
		t.Fatalf("permission = %s", b.PermissionMode)
	}
	if diff := cmp.Diff([]string{"blueprint", "configure", "docs", "quality", "security", "test_runner"}, agentNames(b)); diff != "" {
		t.Fatalf("agents mismatch (-want +got):\n%s", diff)
	}
	for _, a := range b.Agents {
		if a.Name == "security" && a.Model != "sonnet" {
			t.Fatalf("security agent should use configured model, got %s", a.Model)
		}
		if a.Name == "quality" && a.Model != "opus" {
			t.Fatalf("quality agent model = %s", a.Model)
		}
	}
	if b.Health == nil || b.Health.OverallScore != 44 {
		t.Fatalf("health not embedded: %+v", b.Health)
	}
}

func TestOnboardDryRunSkipsBlueprintAndWrites(t *testing.T) {
	b, err := newService().Onboard(context.Background(), domain.OnboardOptions{
		RepoPath: t.TempDir(), DryRun: true, SkipBlueprint: true, Branch: "chore/setup",
	})
	if err != nil {
		t.Fatalf("Onboard error: %v", err)
	}
	if b.PermissionMode != PermissionPlan || b.Env["ONBOARD_BRANCH"] != "chore/setup" {
		t.Fatalf("unexpected briefing: mode %s env %v", b.PermissionMode, b.Env)
	}
	for _, name := range agentNames(b) {
		if name == "blueprint" {
			t.Fatal("blueprint agent offered despite skip")
		}
	}
	for _, tool := range b.AllowedTools {
		if tool == "Write" || tool == "Edit" {
			t.Fatalf("dry run allows %s", tool)
		}
	}
	if !strings.Contains(b.Prompt, "DRY RUN") {
		t.Fatalf("prompt = %q", b.Prompt)
	}
}

func TestMaintainFocus(t *testing.T) {
	b, err := newService().Maintain(context.Background(), domain.MaintainOptions{
		RepoPath: t.TempDir(),
		Fix:      true,
		Focus:    []domain.Category{domain.CategorySecurity, domain.CategoryCI},
	})
	if err != nil {
		t.Fatalf("Maintain error: %v", err)
	}
	if diff := cmp.Diff([]string{"configure", "security"}, agentNames(b)); diff != "" {
		t.Fatalf("agents mismatch (-want +got):\n%s", diff)
	}
	wantFindings := domain.CategoryFindings{
		Security: []string{"No Dependabot configuration"},
		CI:       []string{"No CI/CD configuration found"},
	}
	if diff := cmp.Diff(wantFindings, b.Health.Findings); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
	if b.Health.OverallScore != 44 {
		t.Fatalf("focus should not change the score, got %d", b.Health.OverallScore)
	}
	if b.Env["FOCUS"] != "security,ci" || b.Env["FIX"] != "true" || b.PermissionMode != PermissionAcceptEdits {
		t.Fatalf("unexpected env %v / permission %s", b.Env, b.PermissionMode)
	}
	if !strings.HasSuffix(b.Prompt, "Fix the issues you find. Focus on: security, ci.") {
		t.Fatalf("prompt = %q", b.Prompt)
	}
	if !strings.Contains(b.SystemPrompt, "maintain for ") {
		t.Fatalf("system prompt = %q", b.SystemPrompt)
	}
}

func TestMaintainReportOnly(t *testing.T) {
	b, err := newService().Maintain(context.Background(), domain.MaintainOptions{RepoPath: t.TempDir(), ReportOnly: true})
	if err != nil {
		t.Fatalf("Maintain error: %v", err)
	}
	if b.PermissionMode != PermissionPlan || len(b.Agents) != len(subagents) {
		t.Fatalf("unexpected briefing: %s, %d agents", b.PermissionMode, len(b.Agents))
	}
	for _, a := range b.Agents {
		for _, tool := range a.Tools {
			if tool == "Write" || tool == "Edit" {
				t.Fatalf("agent %s keeps %s in report-only mode", a.Name, tool)
			}
		}
	}
}

func TestMaintainRejectsInvalidInput(t *testing.T) {
	svc := newService()
	tests := []domain.MaintainOptions{
		{RepoPath: t.TempDir(), Fix: true, ReportOnly: true},
		{RepoPath: t.TempDir(), Focus: []domain.Category{"perf"}},
		{RepoPath: filepath.Join(t.TempDir(), "missing")},
	}
	for _, opts := range tests {
		if _, err := svc.Maintain(context.Background(), opts); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Maintain(%+v) error = %v, want ErrInvalidInput", opts, err)
		}
	}
}
