package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbr/fundascore/internal/benchmark"
	"github.com/quantbr/fundascore/internal/comparator"
	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/internal/quality"
	"github.com/quantbr/fundascore/internal/scoring"
	"github.com/quantbr/fundascore/pkg/cache"
	"github.com/quantbr/fundascore/pkg/config"
	"github.com/quantbr/fundascore/pkg/logger"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	log := logger.NewNop()

	reg, err := benchmark.Load(log)
	require.NoError(t, err)
	engine, err := scoring.NewEngine(scoring.DefaultWeights(), reg, log)
	require.NoError(t, err)

	comp := comparator.New(
		config.ComparatorConfig{MinSectorSize: 3, OutlierMethod: comparator.MethodIQR},
		cache.NewMemoryStore(),
		time.Hour,
		log,
	)
	return NewRunner(engine, quality.NewClassifier(reg, log), comp, 4, log)
}

func snapshot(code, sector string, roe, margin, growth float64) *contracts.FinancialMetricsSnapshot {
	return &contracts.FinancialMetricsSnapshot{
		StockCode:     code,
		Sector:        sector,
		ROE:           contracts.Float(roe),
		NetMargin:     contracts.Float(margin),
		RevenueGrowth: contracts.Float(growth),
		PERatio:       contracts.Float(12.0),
		DebtToEquity:  contracts.Float(0.9),
	}
}

func TestRunScoresWholeBatch(t *testing.T) {
	r := newTestRunner(t)

	snaps := []*contracts.FinancialMetricsSnapshot{
		snapshot("LREN3", "Varejo", 18, 6, 11),
		snapshot("MGLU3", "Varejo", 4, 1, -5),
		snapshot("ARZZ3", "Varejo", 22, 9, 14),
		snapshot("ITUB4", "Bancos", 21, 30, 9),
		snapshot("BBDC4", "Bancos", 16, 24, 5),
		snapshot("BBAS3", "Bancos", 19, 27, 7),
	}

	result, err := r.Run(context.Background(), snaps)
	require.NoError(t, err)

	assert.Len(t, result.Scores, len(snaps), "N in, N out")
	assert.Contains(t, result.Statistics, "Varejo")
	assert.Contains(t, result.Statistics, "Bancos")
	assert.NotEmpty(t, result.Comparison.BestSector)
	assert.Greater(t, result.Duration, time.Duration(0))

	for _, s := range result.Scores {
		assert.True(t, s.Ranked, "stock %s", s.StockCode)
		assert.GreaterOrEqual(t, s.Composite, 0.0)
		assert.LessOrEqual(t, s.Composite, 100.0)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Run(context.Background(), nil)
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

// A bad record degrades but the batch still returns N results.
func TestRunDegradesBadRecords(t *testing.T) {
	r := newTestRunner(t)

	snaps := []*contracts.FinancialMetricsSnapshot{
		snapshot("UGPA3", "Petróleo e Gás", 14, 7, 4),
		snapshot("PRIO3", "Petróleo e Gás", 25, 20, 30),
		snapshot("PETR4", "Petróleo e Gás", 35, 25, 2),
		{Sector: "Petróleo e Gás"}, // no stock code
		nil,
	}

	result, err := r.Run(context.Background(), snaps)
	require.NoError(t, err)
	require.Len(t, result.Scores, 5)

	var degraded int
	for _, s := range result.Scores {
		for _, w := range s.Warnings {
			if w.Code == contracts.WarnScoringFailed {
				degraded++
				break
			}
		}
	}
	assert.Equal(t, 2, degraded)

	found := false
	for _, w := range result.Warnings {
		if w.Code == contracts.WarnScoringFailed {
			found = true
		}
	}
	assert.True(t, found, "batch-level warning summarizes failures")
}

// Batch-level warnings are appended to a copy; the comparison report
// (which may also sit in the comparator cache) must stay untouched.
func TestRunWarningsDoNotLeakIntoComparison(t *testing.T) {
	r := newTestRunner(t)

	// Two degraded records out of three push the sector's data
	// coverage below 50%, so the comparison itself carries a warning.
	snaps := []*contracts.FinancialMetricsSnapshot{
		snapshot("LREN3", "Varejo", 18, 6, 11),
		{Sector: "Varejo"},
		{Sector: "Varejo"},
	}

	result, err := r.Run(context.Background(), snaps)
	require.NoError(t, err)

	require.NotEmpty(t, result.Comparison.Warnings, "sparse sector data warns on the comparison")
	assert.Greater(t, len(result.Warnings), len(result.Comparison.Warnings),
		"batch summary warning is on the result only")
	for _, w := range result.Comparison.Warnings {
		assert.NotEqual(t, contracts.WarnScoringFailed, w.Code)
	}
}

func TestRunAttachesRedFlags(t *testing.T) {
	r := newTestRunner(t)

	distressed := snapshot("RUIM3", "Varejo", -10, -5, -20)
	snaps := []*contracts.FinancialMetricsSnapshot{
		distressed,
		snapshot("LREN3", "Varejo", 18, 6, 11),
		snapshot("ARZZ3", "Varejo", 22, 9, 14),
	}

	result, err := r.Run(context.Background(), snaps)
	require.NoError(t, err)

	for _, s := range result.Scores {
		if s.StockCode == "RUIM3" {
			assert.NotEmpty(t, s.RedFlags)
			return
		}
	}
	t.Fatal("RUIM3 not in result")
}

func TestRunHonorsCancellation(t *testing.T) {
	r := newTestRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snaps := []*contracts.FinancialMetricsSnapshot{
		snapshot("ITUB4", "Bancos", 21, 30, 9),
		snapshot("BBDC4", "Bancos", 16, 24, 5),
		snapshot("BBAS3", "Bancos", 19, 27, 7),
	}

	_, err := r.Run(ctx, snaps)
	assert.Error(t, err)
}
