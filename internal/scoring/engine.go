// Package scoring computes sector-aware fundamental scores. Each
// company is scored on five categories against its sector's benchmark
// medians, then the categories are blended into a 0-100 composite.
package scoring

import (
	"fmt"

	"github.com/quantbr/fundascore/internal/benchmark"
	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/pkg/logger"
)

type direction int

const (
	higherBetter direction = iota
	lowerBetter
)

// metricDef binds one snapshot metric into a category: its in-category
// weight, its direction, and the reference it is normalized against.
// The reference is the sector benchmark median where one exists, a
// fixed market-wide anchor otherwise. zeroBest marks lower-is-better
// metrics where zero is a legitimate best case (a debt-free company)
// rather than a broken input.
type metricDef struct {
	key      contracts.MetricKey
	weight   float64
	dir      direction
	zeroBest bool
	ref      func(bm benchmark.Benchmark) float64
}

func fixedRef(v float64) func(benchmark.Benchmark) float64 {
	return func(benchmark.Benchmark) float64 { return v }
}

var categoryMetrics = map[contracts.Category][]metricDef{
	contracts.CategoryValuation: {
		{contracts.MetricPERatio, 0.6, lowerBetter, false, func(bm benchmark.Benchmark) float64 { return bm.PERatioMedian }},
		{contracts.MetricPBRatio, 0.4, lowerBetter, false, func(bm benchmark.Benchmark) float64 { return bm.PBRatioMedian }},
	},
	contracts.CategoryProfitability: {
		{contracts.MetricROE, 0.5, higherBetter, false, func(bm benchmark.Benchmark) float64 { return bm.ROEMedian }},
		{contracts.MetricNetMargin, 0.3, higherBetter, false, func(bm benchmark.Benchmark) float64 { return bm.NetMarginMedian }},
		{contracts.MetricROA, 0.2, higherBetter, false, fixedRef(5.0)},
	},
	contracts.CategoryGrowth: {
		{contracts.MetricRevenueGrowth, 0.7, higherBetter, false, func(bm benchmark.Benchmark) float64 { return bm.RevenueGrowthMedian }},
		{contracts.MetricEarningsGrowth, 0.3, higherBetter, false, fixedRef(8.0)},
	},
	contracts.CategoryFinancialHealth: {
		{contracts.MetricDebtToEquity, 0.5, lowerBetter, true, func(bm benchmark.Benchmark) float64 { return bm.DebtToEquityMedian }},
		{contracts.MetricDebtToEBITDA, 0.3, lowerBetter, true, fixedRef(2.5)},
		{contracts.MetricCurrentRatio, 0.2, higherBetter, false, fixedRef(1.5)},
	},
	contracts.CategoryEfficiency: {
		{contracts.MetricAssetTurnover, 0.7, higherBetter, false, fixedRef(0.8)},
		{contracts.MetricEBITDAMargin, 0.3, higherBetter, false, fixedRef(15.0)},
	},
}

// Engine scores one company at a time. It is stateless after
// construction and safe for concurrent use.
type Engine struct {
	weights  Weights
	registry *benchmark.Registry
	log      *logger.Logger
}

// NewEngine validates and normalizes the weights and wires the
// benchmark registry in.
func NewEngine(weights Weights, registry *benchmark.Registry, log *logger.Logger) (*Engine, error) {
	if registry == nil {
		return nil, &ConfigurationError{Field: "registry", Message: "benchmark registry is required"}
	}
	normalized, err := weights.Normalize()
	if err != nil {
		return nil, err
	}
	return &Engine{weights: normalized, registry: registry, log: log}, nil
}

// Weights returns the normalized category weights in effect.
func (e *Engine) Weights() Weights { return e.weights }

// Score computes the full fundamental score for one snapshot.
// Missing or invalid metrics degrade the result (weight redistribution,
// unavailable categories, lower confidence) instead of failing it.
func (e *Engine) Score(snap *contracts.FinancialMetricsSnapshot) (*contracts.FundamentalScore, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	if snap.StockCode == "" {
		return nil, fmt.Errorf("snapshot has no stock code")
	}

	score := &contracts.FundamentalScore{
		StockCode: snap.StockCode,
		Sector:    snap.Sector,
	}

	bm, warn := e.registry.Get(snap.Sector)
	if warn != nil {
		score.Warnings = append(score.Warnings, *warn)
	}

	var (
		weightedSum float64
		usedWeight  float64
		confidence  float64
	)
	for _, cat := range contracts.Categories() {
		cs, coverage := e.scoreCategory(cat, snap, bm, score)
		score.SetCategoryScore(cat, cs)

		w := e.weights.For(cat)
		if cs.Available {
			weightedSum += w * cs.Value
			usedWeight += w
			confidence += w * coverage
		} else {
			score.AddWarning(contracts.WarnCategoryUnavail,
				fmt.Sprintf("category %s unavailable: %s", cat, cs.Reason))
		}
	}

	if usedWeight > 0 {
		score.Composite = clamp(weightedSum/usedWeight, 0, 100)
	}
	score.Confidence = clamp(confidence, 0, 1)
	score.Tier = TierFor(score.Composite)

	e.annotate(score, snap, bm)

	e.log.WithFields(map[string]interface{}{
		"stock":      snap.StockCode,
		"sector":     snap.Sector,
		"composite":  score.Composite,
		"confidence": score.Confidence,
		"tier":       score.Tier,
	}).Debug("company scored")

	return score, nil
}

// scoreCategory normalizes each present metric against its reference
// and blends them with pro-rata redistributed weights. Returns the
// category score and the fraction of in-category weight that was usable.
func (e *Engine) scoreCategory(cat contracts.Category, snap *contracts.FinancialMetricsSnapshot, bm benchmark.Benchmark, out *contracts.FundamentalScore) (contracts.CategoryScore, float64) {
	defs := categoryMetrics[cat]

	var (
		sum     float64
		used    float64
		total   float64
		missing int
	)
	for _, def := range defs {
		total += def.weight

		if !snap.HasValue(def.key) {
			missing++
			out.AddWarning(contracts.WarnMetricMissing, fmt.Sprintf("%s missing", def.key))
			continue
		}
		value := *snap.Metric(def.key)
		ref := def.ref(bm)

		var metricScore float64
		switch def.dir {
		case lowerBetter:
			switch {
			case value == 0 && def.zeroBest:
				// Debt-free is the best case, not bad data.
				metricScore = 100
			case value <= 0:
				missing++
				out.AddWarning(contracts.WarnMetricInvalid,
					fmt.Sprintf("%s must be positive, got %.2f", def.key, value))
				continue
			default:
				metricScore = clamp(50*ref/value, 0, 100)
			}
		default:
			metricScore = clamp(50*value/ref, 0, 100)
		}

		sum += def.weight * metricScore
		used += def.weight
	}

	if used == 0 {
		return contracts.Unavailable(fmt.Sprintf("no usable metrics (%d missing)", missing)), 0
	}
	return contracts.Computed(sum / used), used / total
}

// annotate fills strengths, weaknesses and the sector-relative warnings.
func (e *Engine) annotate(score *contracts.FundamentalScore, snap *contracts.FinancialMetricsSnapshot, bm benchmark.Benchmark) {
	for _, cat := range contracts.Categories() {
		cs := score.CategoryScoreFor(cat)
		if !cs.Available {
			continue
		}
		switch {
		case cs.Value > 75:
			score.Strengths = append(score.Strengths, fmt.Sprintf("strong %s (%.0f)", cat, cs.Value))
		case cs.Value < 35:
			score.Weaknesses = append(score.Weaknesses, fmt.Sprintf("weak %s (%.0f)", cat, cs.Value))
		}
	}

	if snap.HasValue(contracts.MetricROE) && *snap.ROE < 15 && bm.ROEMedian > 20 {
		score.AddWarning(contracts.WarnROEBelowSector,
			fmt.Sprintf("ROE %.1f%% well below sector median %.1f%%", *snap.ROE, bm.ROEMedian))
	}
	if snap.HasValue(contracts.MetricDebtToEquity) && *snap.DebtToEquity > bm.LeverageP75 {
		score.AddWarning(contracts.WarnLeverageAboveP75,
			fmt.Sprintf("debt/equity %.2f above sector p75 %.2f", *snap.DebtToEquity, bm.LeverageP75))
	}
}

// TierFor maps a composite score onto its quality band.
func TierFor(score float64) contracts.QualityTier {
	switch {
	case score >= 80:
		return contracts.TierExcellent
	case score >= 65:
		return contracts.TierGood
	case score >= 45:
		return contracts.TierAverage
	case score >= 25:
		return contracts.TierBelowAverage
	default:
		return contracts.TierPoor
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
