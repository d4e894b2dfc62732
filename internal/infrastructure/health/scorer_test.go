package health

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
}

const fullWorkflow = `name: ci
on:
  push:
    branches: [main]
  pull_request:
  release:
    types: [published]
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/cache@v4
      - uses: github/codeql-action/init@v3
      - run: make test
`

func healthyRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "README.md", strings.Repeat("x", 300))
	writeFile(t, root, "CLAUDE.md", "# agent notes")
	mkdir(t, root, "docs/blueprint")
	writeFile(t, root, "LICENSE", "MIT")
	mkdir(t, root, "tests")
	writeFile(t, root, "pytest.ini", "[pytest]")
	writeFile(t, root, ".coveragerc", "[run]")
	writeFile(t, root, ".gitignore", ".env\nnode_modules\n")
	writeFile(t, root, ".pre-commit-config.yaml", "repos: []")
	writeFile(t, root, ".github/dependabot.yml", "version: 2")
	writeFile(t, root, ".github/workflows/ci.yml", fullWorkflow)
	writeFile(t, root, "biome.json", "{}")
	writeFile(t, root, "tsconfig.json", "{}")
	writeFile(t, root, ".editorconfig", "root = true")
	writeFile(t, root, "Makefile", "test:\n\tgo test ./...")
	return root
}

func TestComputeHealthyRepositoryScoresFull(t *testing.T) {
	report := Compute(healthyRepo(t))

	want := domain.HealthReport{
		OverallScore:   100,
		Grade:          "A",
		CategoryScores: domain.CategoryScores{Docs: 20, Tests: 20, Security: 20, Quality: 20, CI: 20},
		MaxScore:       100,
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeEmptyDirectory(t *testing.T) {
	report := Compute(t.TempDir())

	if report.CategoryScores.Docs != 0 || report.CategoryScores.Tests != 0 ||
		report.CategoryScores.Quality != 0 || report.CategoryScores.CI != 0 {
		t.Fatalf("expected zero scores outside security, got %+v", report.CategoryScores)
	}
	// Only "no .env committed" can be satisfied by an empty directory.
	if report.CategoryScores.Security != 4 {
		t.Fatalf("security = %d, want 4", report.CategoryScores.Security)
	}
	if report.OverallScore != 4 || report.Grade != "F" {
		t.Fatalf("overall = %d (%s), want 4 (F)", report.OverallScore, report.Grade)
	}
	for _, c := range domain.Categories() {
		if len(report.Findings.Get(c)) == 0 {
			t.Errorf("expected findings for %s", c)
		}
	}
	if got := report.Findings.CI; !cmp.Equal(got, []string{"No CI/CD configuration found"}) {
		t.Errorf("ci findings = %v", got)
	}
	for _, f := range report.Findings.Docs {
		if strings.Contains(f, "blueprint") {
			t.Errorf("optional blueprint check produced finding %q", f)
		}
	}
}

func TestComputeReadmeOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", strings.Repeat("a", 500))

	res, err := ScoreCategory(root, domain.CategoryDocs)
	if err != nil {
		t.Fatalf("ScoreCategory error: %v", err)
	}
	if res.Score != 8 {
		t.Fatalf("docs = %d, want 8", res.Score)
	}
	want := []string{"Missing CLAUDE.md", "No docs/ directory", "Missing LICENSE file"}
	if diff := cmp.Diff(want, res.Findings); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestDocsShortReadme(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", strings.Repeat("a", 200))

	res, _ := ScoreCategory(root, domain.CategoryDocs)
	if res.Score != 5 {
		t.Fatalf("docs = %d, want 5", res.Score)
	}
	if res.Findings[0] != "README.md is very short (< 200 chars)" {
		t.Fatalf("first finding = %q", res.Findings[0])
	}
}

func TestDocsReadmeLengthCountsCharacters(t *testing.T) {
	root := t.TempDir()
	// 150 runes, 450 bytes.
	writeFile(t, root, "README.md", strings.Repeat("日", 150))

	res, _ := ScoreCategory(root, domain.CategoryDocs)
	if res.Score != 5 {
		t.Fatalf("docs = %d, want 5 for a 150 character README", res.Score)
	}
}

func TestDocsReadmeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		// 201 bytes, 134 characters once line endings are normalized.
		{"crlf below threshold", strings.Repeat("x\r\n", 67), 5},
		{"lone cr counts once", strings.Repeat("x\r", 101), 8},
		{"crlf above threshold", strings.Repeat("xx\r\n", 67), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, root, "README.md", tt.content)

			res, _ := ScoreCategory(root, domain.CategoryDocs)
			if res.Score != tt.want {
				t.Fatalf("docs = %d, want %d (findings %v)", res.Score, tt.want, res.Findings)
			}
			short := false
			for _, f := range res.Findings {
				short = short || f == "README.md is very short (< 200 chars)"
			}
			if short != (tt.want == 5) {
				t.Fatalf("short README finding = %v, findings %v", short, res.Findings)
			}
		})
	}
}

func TestUnreadableReadmeCountsAsShort(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "README.md")

	res, _ := ScoreCategory(root, domain.CategoryDocs)
	if res.Score != 5 {
		t.Fatalf("docs = %d, want 5", res.Score)
	}
	if res.Findings[0] != "README.md is very short (< 200 chars)" {
		t.Fatalf("first finding = %q", res.Findings[0])
	}
}

func TestTestsScoring(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, root string)
		wantScore int
		wantFind  []string
	}{
		{
			name:      "test directory without config",
			setup:     func(t *testing.T, root string) { mkdir(t, root, "test") },
			wantScore: 8,
			wantFind:  []string{"Tests exist but no test configuration file found"},
		},
		{
			name: "nested src tests with config and coverage",
			setup: func(t *testing.T, root string) {
				mkdir(t, root, "src/tests")
				writeFile(t, root, "vitest.config.ts", "export default {}")
				writeFile(t, root, "codecov.yml", "coverage: {}")
			},
			wantScore: 15,
		},
		{
			name:      "inline test files",
			setup:     func(t *testing.T, root string) { writeFile(t, root, "pkg/scorer_test.go", "package pkg") },
			wantScore: 5,
		},
		{
			name:      "test files inside virtualenv ignored",
			setup:     func(t *testing.T, root string) { writeFile(t, root, ".venv/lib/pytest_plugin.py", "") },
			wantScore: 0,
			wantFind:  []string{"No test directory or test files found"},
		},
		{
			name: "conftest counts as inline test file and config",
			setup: func(t *testing.T, root string) {
				writeFile(t, root, "conftest.py", "")
			},
			wantScore: 9,
		},
		{
			name: "workflow without tests",
			setup: func(t *testing.T, root string) {
				mkdir(t, root, "tests")
				writeFile(t, root, "jest.config.js", "")
				writeFile(t, root, ".github/workflows/lint.yml", "jobs:\n  lint:\n    run: npm run lint\n")
			},
			wantScore: 12,
			wantFind:  []string{"No CI workflow runs tests"},
		},
		{
			name: "workflow mentioning tests in any case",
			setup: func(t *testing.T, root string) {
				mkdir(t, root, "tests")
				writeFile(t, root, "jest.config.js", "")
				writeFile(t, root, ".github/workflows/ci.yml", "name: Unit TESTS\n")
			},
			wantScore: 17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.setup(t, root)
			res, err := ScoreCategory(root, domain.CategoryTests)
			if err != nil {
				t.Fatalf("ScoreCategory error: %v", err)
			}
			if res.Score != tt.wantScore {
				t.Errorf("score = %d, want %d (findings %v)", res.Score, tt.wantScore, res.Findings)
			}
			if diff := cmp.Diff(tt.wantFind, res.Findings); diff != "" {
				t.Errorf("findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSecurityScoring(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "dist/\n*.pem\n")
	writeFile(t, root, ".env", "SECRET=1")
	writeFile(t, root, ".github/workflows/ci.yml", "run: go test ./...\n")

	res, _ := ScoreCategory(root, domain.CategorySecurity)
	if res.Score != 5 {
		t.Fatalf("security = %d, want 5 (findings %v)", res.Score, res.Findings)
	}
	want := []string{
		".env file exists in repository (should be gitignored)",
		"No pre-commit hooks configured",
		"No security scanning in CI",
		"No Dependabot configuration",
	}
	if diff := cmp.Diff(want, res.Findings); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestSecuritySensitivePatternCountedOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", ".env\n*.pem\n*.key\ncredentials.json\n")

	res, _ := ScoreCategory(root, domain.CategorySecurity)
	// .gitignore 4 + pattern 1 + no .env 4
	if res.Score != 9 {
		t.Fatalf("security = %d, want 9", res.Score)
	}
}

func TestQualityExclusiveAlternatives(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantScore int
		wantFind  []string
	}{
		{
			name:      "pyproject sections",
			files:     map[string]string{"pyproject.toml": "[tool.ruff]\nline-length = 100\n\n[tool.mypy]\nstrict = true\n"},
			wantScore: 16,
		},
		{
			name: "dedicated file and manifest credited once",
			files: map[string]string{
				"ruff.toml":      "line-length = 100",
				"pyproject.toml": "[tool.ruff]\n[tool.pylint]\n",
			},
			// linter 6 (file), formatter 5 (manifest ruff), no type checker
			wantScore: 11,
			wantFind:  []string{"No type checking configured"},
		},
		{
			name:      "pyproject without tool sections",
			files:     map[string]string{"pyproject.toml": "[project]\nname = \"demo\"\n"},
			wantScore: 0,
			wantFind:  []string{"No linter configured", "No formatter configured", "No type checking configured"},
		},
		{
			name:      "invalid utf-8 manifest treated as absent",
			files:     map[string]string{"pyproject.toml": "[tool.ruff]\n\xff\xfe\n"},
			wantScore: 0,
			wantFind:  []string{"No linter configured", "No formatter configured", "No type checking configured"},
		},
		{
			name: "editor config and justfile",
			files: map[string]string{
				".editorconfig": "root = true",
				"justfile":      "default:",
				".prettierrc":   "{}",
			},
			wantScore: 9,
			wantFind:  []string{"No linter configured", "No type checking configured"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, root, name, content)
			}
			res, _ := ScoreCategory(root, domain.CategoryQuality)
			if res.Score != tt.wantScore {
				t.Errorf("score = %d, want %d (findings %v)", res.Score, tt.wantScore, res.Findings)
			}
			if diff := cmp.Diff(tt.wantFind, res.Findings); diff != "" {
				t.Errorf("findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCIScoring(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, root string)
		wantScore int
		wantFind  []string
	}{
		{
			name:      "gitlab",
			setup:     func(t *testing.T, root string) { writeFile(t, root, ".gitlab-ci.yml", "stages: []") },
			wantScore: 10,
		},
		{
			name: "jenkins",
			setup: func(t *testing.T, root string) {
				writeFile(t, root, "Jenkinsfile", "pipeline {}")
			},
			wantScore: 8,
		},
		{
			name:      "empty workflow directory",
			setup:     func(t *testing.T, root string) { mkdir(t, root, ".github/workflows") },
			wantScore: 0,
			wantFind:  []string{".github/workflows/ exists but has no workflow files"},
		},
		{
			name: "yaml extension is not a workflow file",
			setup: func(t *testing.T, root string) {
				writeFile(t, root, ".github/workflows/ci.yaml", "on: pull_request")
			},
			wantScore: 0,
			wantFind:  []string{".github/workflows/ exists but has no workflow files"},
		},
		{
			name: "signals across files",
			setup: func(t *testing.T, root string) {
				writeFile(t, root, ".github/workflows/pr.yml", "on: pull_request\n")
				writeFile(t, root, ".github/workflows/main.yml", "on:\n  push:\n    branches: [master]\n")
			},
			wantScore: 14,
		},
		{
			name: "push without default branch",
			setup: func(t *testing.T, root string) {
				writeFile(t, root, ".github/workflows/ci.yml", "on: push\n")
			},
			wantScore: 8,
		},
		{
			name: "all signals",
			setup: func(t *testing.T, root string) {
				writeFile(t, root, ".github/workflows/ci.yml", fullWorkflow)
			},
			wantScore: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.setup(t, root)
			res, _ := ScoreCategory(root, domain.CategoryCI)
			if res.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", res.Score, tt.wantScore)
			}
			if diff := cmp.Diff(tt.wantFind, res.Findings); diff != "" {
				t.Errorf("findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeScoreBounds(t *testing.T) {
	roots := []string{t.TempDir(), healthyRepo(t)}
	partial := t.TempDir()
	writeFile(t, partial, "README.md", "short")
	writeFile(t, partial, ".gitlab-ci.yml", "stages: []")
	writeFile(t, partial, "pyproject.toml", "[tool.black]\n")
	roots = append(roots, partial)

	for _, root := range roots {
		report := Compute(root)
		if report.OverallScore != report.CategoryScores.Total() {
			t.Errorf("overall %d != sum %d", report.OverallScore, report.CategoryScores.Total())
		}
		if report.OverallScore < 0 || report.OverallScore > 100 {
			t.Errorf("overall out of range: %d", report.OverallScore)
		}
		for _, c := range domain.Categories() {
			if s := report.CategoryScores.Get(c); s < 0 || s > domain.CategoryMaxScore {
				t.Errorf("%s out of range: %d", c, s)
			}
		}
		if report.MaxScore != 100 {
			t.Errorf("max score = %d", report.MaxScore)
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	root := healthyRepo(t)
	writeFile(t, root, ".env", "X=1")

	first := Compute(root)
	second := NewScorer().Compute(root)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeat run differs (-first +second):\n%s", diff)
	}
}

func TestScoreCategoryUnknown(t *testing.T) {
	_, err := ScoreCategory(t.TempDir(), domain.Category("perf"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
