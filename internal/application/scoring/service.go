// Package scoring implements the health check use case: validate the
// repository, score it, and record the run with its trend.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// Options tunes a health check.
type Options struct {
	// Record saves the run to History and computes a trend.
	Record bool
	// Concurrency bounds CheckMany; 0 means domain.DefaultBatchConcurrency.
	Concurrency int
}

// Service scores repositories.
type Service struct {
	Scorer  ports.HealthScorer
	History ports.HistoryRepository
	Logger  ports.Logger
	Now     func() time.Time
}

// ResolveRepo returns the absolute path of repo or an ErrInvalidInput error
// when it is missing or not a directory.
func ResolveRepo(repo string) (string, error) {
	abs, err := filepath.Abs(repo)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, repo, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a valid directory", domain.ErrInvalidInput, abs)
	}
	return abs, nil
}

// Check scores one repository. History failures are logged and never fail
// the check.
func (s *Service) Check(ctx context.Context, repo string, opts Options) (domain.HealthResult, error) {
	if s.Scorer == nil || s.Logger == nil {
		return domain.HealthResult{}, errors.New("scoring.Service dependencies not satisfied")
	}
	if err := ctx.Err(); err != nil {
		return domain.HealthResult{}, err
	}
	abs, err := ResolveRepo(repo)
	if err != nil {
		return domain.HealthResult{}, err
	}

	report := s.Scorer.Compute(abs)
	result := domain.HealthResult{RepoPath: abs, Report: report}
	s.Logger.Debug("scored repository", map[string]interface{}{
		"repo":  abs,
		"score": report.OverallScore,
		"grade": report.Grade,
	})

	if opts.Record && s.History != nil {
		result.Trend = s.record(abs, report)
	}
	return result, nil
}

// CheckMany scores repositories concurrently. Results keep the input order;
// the first invalid repository aborts the batch.
func (s *Service) CheckMany(ctx context.Context, repos []string, opts Options) ([]domain.HealthResult, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = domain.DefaultBatchConcurrency
	}
	results := make([]domain.HealthResult, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, repo := range repos {
		g.Go(func() error {
			res, err := s.Check(gctx, repo, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) record(repo string, report domain.HealthReport) *domain.Trend {
	previous, err := s.History.Latest(repo)
	if err != nil {
		s.Logger.Warn("history lookup failed", map[string]interface{}{"repo": repo, "error": err.Error()})
		previous = nil
	}
	trend := domain.NewTrend(previous, report.OverallScore)

	if err := s.History.Save(domain.NewHistoryRecord(repo, report, s.now())); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"repo": repo, "error": err.Error()})
	}
	return &trend
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
