package app

import (
	"context"
	"os"
	"os/exec"

	"github.com/doeshing/git-repo-agent/internal/application/agent"
	"github.com/doeshing/git-repo-agent/internal/application/doctor"
	"github.com/doeshing/git-repo-agent/internal/application/scoring"
	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/analyzer"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/config"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/health"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/history"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/prompt"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/report"
	"github.com/doeshing/git-repo-agent/internal/pkg/logger"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger

	Scorer   ports.HealthScorer
	Analyzer ports.RepoAnalyzer
	Renderer ports.ReportRenderer
	Prompts  *prompt.Source
	History  ports.HistoryRepository

	ScoringService *scoring.Service
	AgentService   *agent.Service
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	scorer := health.NewScorer()
	repoAnalyzer := analyzer.NewAnalyzer(cfg.Analysis, analyzer.WithLogger(log))
	historyStore := history.New(cfg.History)
	prompts := prompt.NewSource(cfg.Agent.PromptsDir)

	log.Debug("container built", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"history": historyStore.Path(),
	})

	workDir, _ := os.Getwd()

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Scorer:         scorer,
		Analyzer:       repoAnalyzer,
		Renderer:       report.NewRenderer(),
		Prompts:        prompts,
		History:        historyStore,
		ScoringService: &scoring.Service{
			Scorer:  scorer,
			History: historyStore,
			Logger:  log,
		},
		AgentService: &agent.Service{
			ConfigProvider: cfgLoader,
			Analyzer:       repoAnalyzer,
			Scorer:         scorer,
			Prompts:        prompts,
			Logger:         log,
		},
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			History:        historyStore,
			Prompts:        prompts,
			PromptNames:    prompt.Names(),
			Scorer:         scorer,
			LookPath:       exec.LookPath,
			WorkDir:        workDir,
		},
	}, nil
}

// Close releases resources held by adapters.
func (c *Container) Close() error {
	if closer, ok := c.History.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
