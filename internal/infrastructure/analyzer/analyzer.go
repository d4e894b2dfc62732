// Package analyzer detects a repository's technology stack, tooling and git
// metadata from manifest files and short git subprocesses.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/pkg/filesystem"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

const (
	unknown = "unknown"
	none    = "none"
)

// Analyzer implements ports.RepoAnalyzer.
type Analyzer struct {
	gitTimeout         time.Duration
	commitCountTimeout time.Duration
	logger             ports.Logger
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithLogger routes subprocess failures to logger.
func WithLogger(logger ports.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer builds an analyzer from the analysis settings. Empty or
// malformed durations fall back to the defaults.
func NewAnalyzer(settings domain.AnalysisSettings, opts ...Option) *Analyzer {
	a := &Analyzer{
		gitTimeout:         parseTimeout(settings.GitTimeout, domain.DefaultGitTimeout),
		commitCountTimeout: parseTimeout(settings.CommitCountTimeout, domain.DefaultCommitCountTimeout),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze inspects root, which must be an existing directory.
func (a *Analyzer) Analyze(ctx context.Context, root string) (domain.RepoAnalysis, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return domain.RepoAnalysis{}, fmt.Errorf("%w: %s is not a valid directory", domain.ErrInvalidInput, root)
	}

	r := newRepo(root)
	language := detectLanguage(r)
	return domain.RepoAnalysis{
		Language:       language,
		Framework:      detectFramework(r, language),
		PackageManager: detectPackageManager(r, language),
		TestFramework:  detectTestFramework(r, language),
		Linter:         detectLinter(r, language),
		Formatter:      detectFormatter(r, language),
		CISystem:       detectCI(r),
		HasClaudeMD:    r.Exists("CLAUDE.md"),
		HasBlueprint:   r.IsDir("docs", "blueprint"),
		HasReadme:      r.Exists("README.md"),
		HasPreCommit:   r.Exists(".pre-commit-config.yaml"),
		Git:            a.gitInfo(ctx, root),
	}, nil
}

func parseTimeout(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// repo caches parsed manifests for one analysis pass.
type repo struct {
	filesystem.Tree
	pkg       *packageJSON
	pyproject *pyprojectTOML
	cargo     *cargoTOML
	loaded    map[string]bool
}

func newRepo(root string) *repo {
	return &repo{Tree: filesystem.Tree(root), loaded: map[string]bool{}}
}

var _ ports.RepoAnalyzer = (*Analyzer)(nil)
