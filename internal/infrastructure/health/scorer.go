// Package health scores repository health from on-disk markers.
//
// Five categories (docs, tests, security, quality, ci) are each scored 0-20
// by independent, read-only category scorers and summed into a 0-100 score
// with a letter grade. Scorers never write, never run subprocesses, and treat
// any unreadable file as absent, so Compute is total over valid directories
// and safe to call concurrently.
package health

import (
	"fmt"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

type categoryScorer func(repoView) (int, []string)

// scorers is evaluated in order; the order is also the report order.
var scorers = []struct {
	category domain.Category
	score    categoryScorer
}{
	{domain.CategoryDocs, scoreDocs},
	{domain.CategoryTests, scoreTests},
	{domain.CategorySecurity, scoreSecurity},
	{domain.CategoryQuality, scoreQuality},
	{domain.CategoryCI, scoreCI},
}

// Scorer implements ports.HealthScorer.
type Scorer struct{}

// NewScorer returns a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Compute scores root, which must be an existing directory.
func (s *Scorer) Compute(root string) domain.HealthReport {
	return Compute(root)
}

// Compute runs every category scorer against root and assembles the report.
func Compute(root string) domain.HealthReport {
	view := newRepoView(root)
	results := make([]domain.CategoryResult, 0, len(scorers))
	for _, sc := range scorers {
		results = append(results, run(view, sc.category, sc.score))
	}
	return domain.NewHealthReport(results)
}

// ScoreCategory runs a single category scorer against root.
func ScoreCategory(root string, category domain.Category) (domain.CategoryResult, error) {
	for _, sc := range scorers {
		if sc.category == category {
			return run(newRepoView(root), sc.category, sc.score), nil
		}
	}
	return domain.CategoryResult{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
}

func run(view repoView, category domain.Category, score categoryScorer) domain.CategoryResult {
	points, findings := score(view)
	return domain.CategoryResult{
		Category: category,
		Score:    domain.ClampScore(points),
		Findings: findings,
	}
}

var _ ports.HealthScorer = (*Scorer)(nil)
