package analyzer

import "strings"

type named struct {
	key  string
	name string
}

var (
	jsFrameworks = []named{
		{"next", "Next.js"},
		{"nuxt", "Nuxt"},
		{"@angular/core", "Angular"},
		{"react", "React"},
		{"vue", "Vue"},
		{"svelte", "Svelte"},
		{"express", "Express"},
		{"fastify", "Fastify"},
		{"hono", "Hono"},
	}
	pythonFrameworks = []named{
		{"django", "Django"},
		{"flask", "Flask"},
		{"fastapi", "FastAPI"},
		{"starlette", "Starlette"},
	}
	rustFrameworks = []named{
		{"actix-web", "Actix Web"},
		{"axum", "Axum"},
		{"rocket", "Rocket"},
		{"bevy", "Bevy"},
	}
	eslintConfigs = []string{".eslintrc.json", ".eslintrc.js", ".eslintrc.cjs", "eslint.config.js", "eslint.config.mjs"}
)

func isJS(language string) bool {
	return language == "javascript" || language == "typescript"
}

func detectLanguage(r *repo) string {
	switch {
	case r.Exists("package.json"):
		if r.Exists("tsconfig.json") {
			return "typescript"
		}
		return "javascript"
	case r.AnyExists("pyproject.toml", "setup.py"):
		return "python"
	case r.Exists("Cargo.toml"):
		return "rust"
	case r.Exists("go.mod"):
		return "go"
	case r.AnyExists("build.gradle", "pom.xml"):
		return "java"
	}
	return unknown
}

func detectFramework(r *repo, language string) string {
	switch {
	case isJS(language):
		if pkg := r.packageJSON(); pkg != nil {
			for _, fw := range jsFrameworks {
				if pkg.has(fw.key) {
					return fw.name
				}
			}
		}
	case language == "python":
		if py := r.pyprojectTOML(); py != nil {
			deps := py.dependencyText(false)
			for _, fw := range pythonFrameworks {
				if strings.Contains(deps, fw.key) {
					return fw.name
				}
			}
		}
	case language == "rust":
		if cargo := r.cargoTOML(); cargo != nil {
			for _, fw := range rustFrameworks {
				if cargo.has(fw.key) {
					return fw.name
				}
			}
		}
	}
	return none
}

func detectPackageManager(r *repo, language string) string {
	switch {
	case isJS(language):
		switch {
		case r.AnyExists("bun.lockb", "bun.lock"):
			return "bun"
		case r.Exists("pnpm-lock.yaml"):
			return "pnpm"
		case r.Exists("yarn.lock"):
			return "yarn"
		}
		return "npm"
	case language == "python":
		switch {
		case r.Exists("uv.lock"):
			return "uv"
		case r.Exists("Pipfile"):
			return "pipenv"
		case r.Exists("poetry.lock"):
			return "poetry"
		}
		return "pip"
	case language == "rust":
		return "cargo"
	case language == "go":
		return "go"
	}
	return unknown
}

func detectTestFramework(r *repo, language string) string {
	switch {
	case isJS(language):
		pkg := r.packageJSON()
		switch {
		case pkg.hasDev("vitest"):
			return "vitest"
		case pkg.hasDev("jest"):
			return "jest"
		case pkg.hasDev("@playwright/test"):
			return "playwright"
		case r.AnyExists("vitest.config.ts", "vitest.config.js"):
			return "vitest"
		}
	case language == "python":
		if strings.Contains(r.pyprojectTOML().dependencyText(true), "pytest") {
			return "pytest"
		}
		if r.IsDir("tests") || r.IsDir("test") {
			return "pytest"
		}
	case language == "rust":
		return "cargo-test"
	case language == "go":
		return "go-test"
	}
	return none
}

func detectLinter(r *repo, language string) string {
	switch {
	case isJS(language):
		if r.AnyExists("biome.json", "biome.jsonc") {
			return "biome"
		}
		if r.AnyExists(eslintConfigs...) {
			return "eslint"
		}
	case language == "python":
		py := r.pyprojectTOML()
		for _, name := range []string{"ruff", "pylint", "flake8"} {
			if _, ok := py.tool(name); ok {
				return name
			}
		}
		if r.AnyExists(".ruff.toml", "ruff.toml") {
			return "ruff"
		}
	case language == "rust":
		return "clippy"
	}
	return none
}

func detectFormatter(r *repo, language string) string {
	switch {
	case isJS(language):
		if r.AnyExists("biome.json", "biome.jsonc") {
			return "biome"
		}
		if r.AnyExists(".prettierrc", ".prettierrc.json") {
			return "prettier"
		}
	case language == "python":
		py := r.pyprojectTOML()
		if ruff, ok := py.tool("ruff"); ok {
			if _, hasFormat := ruff["format"]; hasFormat {
				return "ruff"
			}
		}
		if _, ok := py.tool("black"); ok {
			return "black"
		}
		if r.AnyExists(".ruff.toml", "ruff.toml") {
			return "ruff"
		}
	case language == "rust":
		return "rustfmt"
	}
	return none
}

func detectCI(r *repo) string {
	switch {
	case r.IsDir(".github", "workflows"):
		return "github-actions"
	case r.Exists(".gitlab-ci.yml"):
		return "gitlab-ci"
	case r.IsDir(".circleci"):
		return "circleci"
	case r.Exists("Jenkinsfile"):
		return "jenkins"
	}
	return none
}
