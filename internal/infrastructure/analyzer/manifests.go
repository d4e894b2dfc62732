package analyzer

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/doeshing/git-repo-agent/internal/domain"
)

type packageJSON struct {
	Dependencies    map[string]any `json:"dependencies"`
	DevDependencies map[string]any `json:"devDependencies"`
}

func (p *packageJSON) has(name string) bool {
	if p == nil {
		return false
	}
	_, inDeps := p.Dependencies[name]
	_, inDev := p.DevDependencies[name]
	return inDeps || inDev
}

func (p *packageJSON) hasDev(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.DevDependencies[name]
	return ok
}

type pyprojectTOML struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool map[string]any `toml:"tool"`
}

// tool returns the [tool.<name>] table and whether it is present.
func (p *pyprojectTOML) tool(name string) (map[string]any, bool) {
	if p == nil || p.Tool == nil {
		return nil, false
	}
	raw, ok := p.Tool[name]
	if !ok {
		return nil, false
	}
	table, _ := raw.(map[string]any)
	return table, true
}

// dependencyText joins runtime dependencies, plus dev and test extras when
// withExtras is set, into one lower-cased string for substring checks.
func (p *pyprojectTOML) dependencyText(withExtras bool) string {
	if p == nil {
		return ""
	}
	deps := append([]string{}, p.Project.Dependencies...)
	if withExtras {
		deps = append(deps, p.Project.OptionalDependencies["dev"]...)
		deps = append(deps, p.Project.OptionalDependencies["test"]...)
	}
	return strings.ToLower(strings.Join(deps, " "))
}

type cargoTOML struct {
	Dependencies map[string]any `toml:"dependencies"`
}

func (c *cargoTOML) has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.Dependencies[name]
	return ok
}

func readManifest(path string) ([]byte, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, domain.MaxReadBytes))
	if err != nil {
		return nil, false
	}
	return data, true
}

// packageJSON parses package.json once. A missing or malformed manifest is nil.
func (r *repo) packageJSON() *packageJSON {
	if !r.loaded["package.json"] {
		r.loaded["package.json"] = true
		if data, ok := readManifest(r.Path("package.json")); ok {
			var pkg packageJSON
			if json.Unmarshal(data, &pkg) == nil {
				r.pkg = &pkg
			}
		}
	}
	return r.pkg
}

func (r *repo) pyprojectTOML() *pyprojectTOML {
	if !r.loaded["pyproject.toml"] {
		r.loaded["pyproject.toml"] = true
		if data, ok := readManifest(r.Path("pyproject.toml")); ok {
			var py pyprojectTOML
			if toml.Unmarshal(data, &py) == nil {
				r.pyproject = &py
			}
		}
	}
	return r.pyproject
}

func (r *repo) cargoTOML() *cargoTOML {
	if !r.loaded["Cargo.toml"] {
		r.loaded["Cargo.toml"] = true
		if data, ok := readManifest(r.Path("Cargo.toml")); ok {
			var cargo cargoTOML
			if toml.Unmarshal(data, &cargo) == nil {
				r.cargo = &cargo
			}
		}
	}
	return r.cargo
}
