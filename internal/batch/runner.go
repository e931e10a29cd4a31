// Package batch orchestrates scoring, quality classification and
// sector comparison over a list of companies.
package batch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantbr/fundascore/internal/comparator"
	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/internal/quality"
	"github.com/quantbr/fundascore/internal/scoring"
	"github.com/quantbr/fundascore/pkg/logger"
)

// InputError reports unusable batch input.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return "batch input: " + e.Message
}

// BatchResult is the complete output of one run. A batch of N
// companies always yields N scores; bad records carry warnings
// instead of disappearing.
type BatchResult struct {
	Scores     []contracts.FundamentalScore          `json:"scores"`
	Statistics map[string]contracts.SectorStatistics `json:"statistics"`
	Comparison contracts.SectorComparison            `json:"comparison"`
	Warnings   []contracts.Warning                   `json:"warnings,omitempty"`
	Duration   time.Duration                         `json:"duration"`
}

// Runner wires the pipeline together. Companies are scored in
// parallel; the comparison stage runs once over the full batch.
type Runner struct {
	engine      *scoring.Engine
	classifier  *quality.Classifier
	comparator  *comparator.Comparator
	concurrency int
	log         *logger.Logger
}

func NewRunner(engine *scoring.Engine, classifier *quality.Classifier, comp *comparator.Comparator, concurrency int, log *logger.Logger) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		engine:      engine,
		classifier:  classifier,
		comparator:  comp,
		concurrency: concurrency,
		log:         log,
	}
}

// Run scores every snapshot, attaches red flags, then enriches the
// batch with sector rankings and statistics. Per-company failures
// degrade that company's record; only empty input and context
// cancellation fail the run.
func (r *Runner) Run(ctx context.Context, snapshots []*contracts.FinancialMetricsSnapshot) (*BatchResult, error) {
	if len(snapshots) == 0 {
		return nil, &InputError{Message: "no snapshots to score"}
	}
	start := time.Now()

	scores := make([]contracts.FundamentalScore, len(snapshots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, snap := range snapshots {
		i, snap := i, snap
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = r.scoreOne(snap)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis, err := r.comparator.Analyze(ctx, scores)
	if err != nil {
		return nil, fmt.Errorf("sector analysis: %w", err)
	}

	result := &BatchResult{
		Scores:     analysis.Scores,
		Statistics: analysis.Statistics,
		Comparison: analysis.Comparison,
		// Copied: appending batch-level warnings must not write into
		// the comparison's backing array.
		Warnings: append([]contracts.Warning(nil), analysis.Comparison.Warnings...),
		Duration: time.Since(start),
	}

	var failed int
	for i := range result.Scores {
		for _, w := range result.Scores[i].Warnings {
			if w.Code == contracts.WarnScoringFailed {
				failed++
				break
			}
		}
	}
	if failed > 0 {
		result.Warnings = append(result.Warnings, contracts.Warning{
			Code:    contracts.WarnScoringFailed,
			Message: fmt.Sprintf("%d of %d companies returned degraded results", failed, len(snapshots)),
		})
	}

	r.log.WithFields(map[string]interface{}{
		"companies": len(snapshots),
		"failed":    failed,
		"sectors":   len(result.Statistics),
		"duration":  result.Duration.String(),
	}).Info("batch scored")

	return result, nil
}

// scoreOne never fails: a snapshot the engine rejects becomes a
// degraded record carrying the reason.
func (r *Runner) scoreOne(snap *contracts.FinancialMetricsSnapshot) contracts.FundamentalScore {
	score, err := r.engine.Score(snap)
	if err != nil {
		degraded := contracts.FundamentalScore{Tier: contracts.TierPoor}
		if snap != nil {
			degraded.StockCode = snap.StockCode
			degraded.Sector = snap.Sector
		}
		for _, cat := range contracts.Categories() {
			degraded.SetCategoryScore(cat, contracts.Unavailable("scoring failed"))
		}
		degraded.AddWarning(contracts.WarnScoringFailed, err.Error())
		r.log.WithError(err).WithField("stock", degraded.StockCode).Warn("company scoring failed, degraded record emitted")
		return degraded
	}

	report := r.classifier.Classify(snap)
	score.RedFlags = report.RedFlags
	return *score
}
