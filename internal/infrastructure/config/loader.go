// Package config loads ~/.git-repo-agent/config.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/git-repo-agent/assets"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/pkg/filesystem"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "GIT_REPO_AGENT_CONFIG"

// FileLoader loads YAML configuration from ~/.git-repo-agent/config.yaml
// (overridable via GIT_REPO_AGENT_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := WriteDefault(path); err != nil {
				return domain.Config{}, err
			}
			return DefaultConfig(), nil
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Path resolves the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filepath.Clean(filesystem.ExpandHome(custom))
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// WriteDefault writes the embedded default config to path, replacing any
// existing file.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// Save writes cfg to path as YAML.
func Save(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig parses the embedded defaults. It panics if they are invalid,
// which only a broken build can cause.
func DefaultConfig() domain.Config {
	cfg, err := parseConfig(assets.DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

func parseConfig(data []byte) (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return HydrateDefaults(cfg), nil
}

// HydrateDefaults fills zero values that have a sensible default.
func HydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultFormat == "" {
		cfg.Preferences.DefaultFormat = string(domain.FormatTerminal)
	}
	if cfg.Preferences.Color == "" {
		cfg.Preferences.Color = domain.ColorAuto
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendSQLite
	}
	if cfg.Analysis.GitTimeout == "" {
		cfg.Analysis.GitTimeout = domain.DefaultGitTimeout.String()
	}
	if cfg.Analysis.CommitCountTimeout == "" {
		cfg.Analysis.CommitCountTimeout = domain.DefaultCommitCountTimeout.String()
	}
	if cfg.Agent.Model == "" {
		cfg.Agent.Model = domain.DefaultSubagentModel
	}
	if cfg.Agent.MaxTurns == 0 {
		cfg.Agent.MaxTurns = domain.DefaultAgentMaxTurns
	}
	if cfg.Agent.DefaultBranch == "" {
		cfg.Agent.DefaultBranch = domain.DefaultOnboardBranch
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
