// Package prompt loads agent prompt templates and renders them.
//
// Templates are markdown files embedded in the binary. A prompts directory,
// when configured, overrides templates file by file.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/doeshing/git-repo-agent/assets"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/pkg/filesystem"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// Template names.
const (
	Orchestrator = "orchestrator"
	Onboard      = "onboard"
	Maintain     = "maintain"
	Blueprint    = "blueprint"
	Configure    = "configure"
	Docs         = "docs"
	Quality      = "quality"
	Security     = "security"
	TestRunner   = "test_runner"
)

// Names lists every template the agent briefing uses.
func Names() []string {
	return []string{Orchestrator, Onboard, Maintain, Blueprint, Configure, Docs, Quality, Security, TestRunner}
}

// Source implements ports.PromptSource.
type Source struct {
	overrideDir string
	builtin     fs.FS
}

// NewSource returns a source that prefers <dir>/<name>.md over the
// embedded template. dir may be empty.
func NewSource(dir string) *Source {
	return &Source{overrideDir: filesystem.ExpandHome(dir), builtin: assets.Prompts}
}

// Raw returns the unrendered template text and where it came from.
func (s *Source) Raw(name string) (text string, origin string, err error) {
	file := name + ".md"
	if s.overrideDir != "" {
		path := filepath.Join(s.overrideDir, file)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("read prompt %s: %w", path, err)
		}
	}
	data, err := fs.ReadFile(s.builtin, "prompts/"+file)
	if err != nil {
		return "", "", fmt.Errorf("unknown prompt %q: %w", name, err)
	}
	return string(data), "builtin", nil
}

// Render expands the named template with data.
func (s *Source) Render(name string, data domain.PromptData) (string, error) {
	text, _, err := s.Raw(name)
	if err != nil {
		return "", err
	}
	out, err := executeTemplate(name, text, buildTemplateData(data))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func executeTemplate(name, text string, data templateData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse prompt %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

var _ ports.PromptSource = (*Source)(nil)
