package health

import "strings"

const (
	readmeMinLength = 200
	pyproject       = "pyproject.toml"
)

var (
	testDirs = alternatives{dir("tests"), dir("test"), dir("src", "tests")}

	testConfigs = anyFile(
		"vitest.config.ts", "vitest.config.js",
		"jest.config.js", "jest.config.ts",
		"pytest.ini", "conftest.py",
		"playwright.config.ts",
	)

	coverageConfigs = anyFile(".coveragerc", "coverage.config.js", "codecov.yml", ".codecov.yml")

	gitignoreSensitivePatterns = []string{".env", "*.pem", "*.key", "credentials"}

	ciSecurityKeywords = []string{"security", "audit", "dependabot", "codeql", "snyk"}

	linterSignal = signal{
		points: 6,
		detect: alternatives{
			anyFile(
				"biome.json", "biome.jsonc",
				".eslintrc.json", ".eslintrc.js", "eslint.config.js", "eslint.config.mjs",
				".ruff.toml", "ruff.toml",
			),
			manifestSection(pyproject, "tool.ruff", "tool.pylint"),
		},
		finding: "No linter configured",
	}

	formatterSignal = signal{
		points: 5,
		detect: alternatives{
			anyFile("biome.json", "biome.jsonc", ".prettierrc", ".prettierrc.json", "prettier.config.js"),
			manifestSection(pyproject, "tool.ruff", "tool.black"),
		},
		finding: "No formatter configured",
	}

	typeCheckerSignal = signal{
		points: 5,
		detect: alternatives{
			anyFile("tsconfig.json", "pyrightconfig.json", "basedpyright"),
			manifestSection(pyproject, "tool.pyright", "tool.basedpyright", "tool.mypy"),
		},
		finding: "No type checking configured",
	}

	qualitySignals = []signal{
		linterSignal,
		formatterSignal,
		typeCheckerSignal,
		{points: 2, detect: alternatives{anyFile(".editorconfig")}},
		{points: 2, detect: alternatives{anyFile("justfile", "Makefile")}},
	}
)

func scoreDocs(r repoView) (int, []string) {
	var t tally

	if r.Exists("README.md") {
		t.award(5)
		readme, _ := r.read("README.md")
		if textLength(readme) > readmeMinLength {
			t.award(3)
		} else {
			t.note("README.md is very short (< 200 chars)")
		}
	} else {
		t.note("Missing README.md")
	}

	t.apply(r, signal{points: 4, detect: alternatives{anyFile("CLAUDE.md")}, finding: "Missing CLAUDE.md"})
	t.apply(r, signal{points: 3, detect: alternatives{dir("docs")}, finding: "No docs/ directory"})
	t.apply(r, signal{points: 3, detect: alternatives{dir("docs", "blueprint")}})
	t.apply(r, signal{points: 2, detect: alternatives{anyFile("LICENSE", "LICENSE.md")}, finding: "Missing LICENSE file"})

	return t.score, t.findings
}

func scoreTests(r repoView) (int, []string) {
	var t tally

	_, hasTestDir := testDirs.first(r)
	switch {
	case hasTestDir:
		t.award(8)
	case r.hasFileNamed("test"):
		t.award(5)
	default:
		t.note("No test directory or test files found")
	}

	if testConfigs.ok(r) {
		t.award(4)
	} else if hasTestDir {
		t.note("Tests exist but no test configuration file found")
	}

	if r.IsDir(".github", "workflows") {
		if r.anyWorkflowContains("test") {
			t.award(5)
		} else {
			t.note("No CI workflow runs tests")
		}
	}

	if coverageConfigs.ok(r) {
		t.award(3)
	}

	return t.score, t.findings
}

func scoreSecurity(r repoView) (int, []string) {
	var t tally

	if r.Exists(".gitignore") {
		t.award(4)
		if gitignore, ok := r.read(".gitignore"); ok && containsAny(gitignore, gitignoreSensitivePatterns...) {
			t.award(1)
		}
	} else {
		t.note("Missing .gitignore")
	}

	if r.Exists(".env") {
		t.note(".env file exists in repository (should be gitignored)")
	} else {
		t.award(4)
	}

	t.apply(r, signal{points: 4, detect: alternatives{anyFile(".pre-commit-config.yaml")}, finding: "No pre-commit hooks configured"})

	if r.IsDir(".github", "workflows") {
		if r.anyWorkflowContains(ciSecurityKeywords...) {
			t.award(4)
		} else {
			t.note("No security scanning in CI")
		}
	}

	t.apply(r, signal{points: 3, detect: alternatives{anyFile(".github/dependabot.yml")}, finding: "No Dependabot configuration"})

	return t.score, t.findings
}

func scoreQuality(r repoView) (int, []string) {
	var t tally
	for _, s := range qualitySignals {
		t.apply(r, s)
	}
	return t.score, t.findings
}

func scoreCI(r repoView) (int, []string) {
	var t tally

	if !r.IsDir(".github", "workflows") {
		switch {
		case r.Exists(".gitlab-ci.yml"):
			t.award(10)
		case r.Exists("Jenkinsfile"):
			t.award(8)
		default:
			return 0, []string{"No CI/CD configuration found"}
		}
		return t.score, t.findings
	}

	if len(r.workflowFiles()) == 0 {
		t.note(".github/workflows/ exists but has no workflow files")
		return t.score, t.findings
	}
	t.award(8)

	all := strings.Join(r.workflowContents(), "")
	if strings.Contains(all, "pull_request") {
		t.award(3)
	}
	if strings.Contains(all, "push") && containsAny(all, "main", "master") {
		t.award(3)
	}
	if strings.Contains(all, "release") {
		t.award(3)
	}
	if strings.Contains(all, "cache") {
		t.award(3)
	}

	return t.score, t.findings
}
