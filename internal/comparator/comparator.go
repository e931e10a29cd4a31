// Package comparator ranks scored companies inside their sectors and
// across the market, detects outliers, and aggregates per-sector
// statistics. Results are cached read-through with a TTL.
package comparator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/pkg/cache"
	"github.com/quantbr/fundascore/pkg/config"
	"github.com/quantbr/fundascore/pkg/logger"
)

// InputError reports unusable comparator input.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return "comparator input: " + e.Message
}

// Result is the full comparator output for one batch.
type Result struct {
	Scores     []contracts.FundamentalScore          `json:"scores"`
	Statistics map[string]contracts.SectorStatistics `json:"statistics"`
	Comparison contracts.SectorComparison            `json:"comparison"`
}

// Comparator is constructed once and shared; it holds no per-batch
// state outside the injected cache store.
type Comparator struct {
	minSectorSize int
	outlierMethod string
	store         cache.Store
	ttl           time.Duration
	log           *logger.Logger
}

// New wires a comparator. The cache store is injected, never global.
func New(cfg config.ComparatorConfig, store cache.Store, ttl time.Duration, log *logger.Logger) *Comparator {
	return &Comparator{
		minSectorSize: cfg.MinSectorSize,
		outlierMethod: cfg.OutlierMethod,
		store:         store,
		ttl:           ttl,
		log:           log,
	}
}

// Analyze enriches the batch with rankings, statistics and the
// cross-sector comparison. Identical batches are served from cache;
// any change in the input misses.
func (c *Comparator) Analyze(ctx context.Context, scores []contracts.FundamentalScore) (*Result, error) {
	if len(scores) == 0 {
		return nil, &InputError{Message: "no scores to analyze"}
	}

	key, err := c.batchKey(scores)
	if err != nil {
		return nil, fmt.Errorf("cache key: %w", err)
	}

	var cached Result
	hit, err := c.store.Get(ctx, key, &cached)
	if err != nil {
		c.log.WithError(err).Warn("comparator cache read failed, recomputing")
	} else if hit {
		c.log.WithField("key", key[:12]).Debug("comparator cache hit")
		return &cached, nil
	}

	result := c.compute(scores)

	if err := c.store.Set(ctx, key, result, c.ttl); err != nil {
		c.log.WithError(err).Warn("comparator cache write failed")
	}
	return result, nil
}

// Clear drops all cached comparator results.
func (c *Comparator) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// batchKey is the SHA-256 of the batch's canonical JSON plus the
// comparator settings. The batch is sorted by stock code first so
// ordering does not affect the key; the settings are included so
// comparators with different configs never serve each other's results
// from a shared backend.
func (c *Comparator) batchKey(scores []contracts.FundamentalScore) (string, error) {
	sorted := append([]contracts.FundamentalScore(nil), scores...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StockCode < sorted[j].StockCode })

	payload := struct {
		MinSectorSize int                          `json:"min_sector_size"`
		OutlierMethod string                       `json:"outlier_method"`
		Scores        []contracts.FundamentalScore `json:"scores"`
	}{
		MinSectorSize: c.minSectorSize,
		OutlierMethod: c.outlierMethod,
		Scores:        sorted,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (c *Comparator) compute(scores []contracts.FundamentalScore) *Result {
	enriched := append([]contracts.FundamentalScore(nil), scores...)

	bySector := map[string][]int{}
	for i := range enriched {
		bySector[enriched[i].Sector] = append(bySector[enriched[i].Sector], i)
	}

	stats := map[string]contracts.SectorStatistics{}
	for sector, idxs := range bySector {
		if len(idxs) < c.minSectorSize {
			for _, i := range idxs {
				enriched[i].Ranked = false
				enriched[i].SectorSize = len(idxs)
				enriched[i].AddWarning(contracts.WarnSectorBelowMinimum,
					fmt.Sprintf("sector %q has %d companies, minimum is %d", sector, len(idxs), c.minSectorSize))
			}
			c.log.WithFields(map[string]interface{}{
				"sector":    sector,
				"companies": len(idxs),
				"minimum":   c.minSectorSize,
			}).Info("sector below minimum size, not ranked")
			continue
		}

		c.rankSector(enriched, idxs)
		stats[sector] = c.sectorStatistics(sector, enriched, idxs)
	}

	c.rankMarket(enriched)

	return &Result{
		Scores:     enriched,
		Statistics: stats,
		Comparison: c.compareSectors(enriched, stats),
	}
}

// rankSector orders one sector's companies by score descending with
// stock code as the deterministic tiebreak, then writes rank,
// percentile, quartile and outlier flags back.
func (c *Comparator) rankSector(scores []contracts.FundamentalScore, idxs []int) {
	order := append([]int(nil), idxs...)
	sort.Slice(order, func(a, b int) bool {
		si, sj := scores[order[a]], scores[order[b]]
		if si.Composite != sj.Composite {
			return si.Composite > sj.Composite
		}
		return si.StockCode < sj.StockCode
	})

	values := make([]float64, len(order))
	for i, idx := range order {
		values[i] = scores[idx].Composite
	}
	bounds := DetectOutliers(values, c.outlierMethod)

	n := len(order)
	for rank, idx := range order {
		s := &scores[idx]
		s.Ranked = true
		s.SectorRank = rank + 1
		s.SectorSize = n
		s.SectorPercentile = float64(n-rank) / float64(n) * 100
		s.IsSectorLeader = rank == 0
		s.IsTopQuartile = s.SectorPercentile >= 75
		s.IsBottomQuartile = s.SectorPercentile <= 25

		outlier, tail := bounds.Classify(s.Composite)
		s.IsOutlier = outlier
		s.OutlierType = contracts.OutlierType(tail)
	}
}

// rankMarket assigns market-wide rank and percentile to every company,
// sub-minimum sectors included.
func (c *Comparator) rankMarket(scores []contracts.FundamentalScore) {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		si, sj := scores[order[a]], scores[order[b]]
		if si.Composite != sj.Composite {
			return si.Composite > sj.Composite
		}
		return si.StockCode < sj.StockCode
	})

	n := len(order)
	for rank, idx := range order {
		scores[idx].MarketRank = rank + 1
		scores[idx].MarketPercentile = float64(n-rank) / float64(n) * 100
	}
}

func (c *Comparator) sectorStatistics(sector string, scores []contracts.FundamentalScore, idxs []int) contracts.SectorStatistics {
	values := make([]float64, 0, len(idxs))
	for _, i := range idxs {
		values = append(values, scores[i].Composite)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	catMeans := map[contracts.Category]float64{}
	var availableSlots int
	for _, cat := range contracts.Categories() {
		var sum float64
		var count int
		for _, i := range idxs {
			if cs := scores[i].CategoryScoreFor(cat); cs.Available {
				sum += cs.Value
				count++
			}
		}
		if count > 0 {
			catMeans[cat] = sum / float64(count)
		}
		availableSlots += count
	}

	bounds := DetectOutliers(values, c.outlierMethod)

	return contracts.SectorStatistics{
		Sector:        sector,
		CompanyCount:  len(idxs),
		MeanScore:     mean(values),
		MedianScore:   quantile(sorted, 0.5),
		StdDev:        stdDev(values),
		MinScore:      sorted[0],
		MaxScore:      sorted[len(sorted)-1],
		P10:           quantile(sorted, 0.10),
		P25:           quantile(sorted, 0.25),
		P75:           quantile(sorted, 0.75),
		P90:           quantile(sorted, 0.90),
		CategoryMeans: catMeans,
		OutlierLow:    bounds.Low,
		OutlierHigh:   bounds.High,
		OutlierMethod: bounds.Method,
		DataQuality:   float64(availableSlots) / float64(len(idxs)*len(contracts.Categories())),
	}
}

const topCompaniesLimit = 10

func (c *Comparator) compareSectors(scores []contracts.FundamentalScore, stats map[string]contracts.SectorStatistics) contracts.SectorComparison {
	cmp := contracts.SectorComparison{
		SectorCount:  len(stats),
		CompanyCount: len(scores),
	}

	var all []float64
	cmp.SectorLeaders = make(map[string]string, len(stats))
	for i := range scores {
		all = append(all, scores[i].Composite)
		if scores[i].Ranked && scores[i].IsSectorLeader {
			cmp.SectorLeaders[scores[i].Sector] = scores[i].StockCode
		}
	}
	cmp.MarketMean = mean(all)

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	// Mean descending, name ascending on ties. Deterministic output.
	sort.Slice(names, func(i, j int) bool {
		si, sj := stats[names[i]], stats[names[j]]
		if si.MeanScore != sj.MeanScore {
			return si.MeanScore > sj.MeanScore
		}
		return names[i] < names[j]
	})
	cmp.SectorOrder = names

	if len(names) > 0 {
		cmp.BestSector = names[0]
		cmp.WorstSector = names[len(names)-1]

		consistent, volatile := names[0], names[0]
		for _, name := range names[1:] {
			if stats[name].StdDev < stats[consistent].StdDev {
				consistent = name
			}
			if stats[name].StdDev > stats[volatile].StdDev {
				volatile = name
			}
		}
		cmp.MostConsistent = consistent
		cmp.MostVolatile = volatile
	}

	ranked := make([]contracts.FundamentalScore, 0, len(scores))
	for i := range scores {
		ranked = append(ranked, scores[i])
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].StockCode < ranked[j].StockCode
	})
	limit := topCompaniesLimit
	if len(ranked) < limit {
		limit = len(ranked)
	}
	for _, s := range ranked[:limit] {
		var vsMedian float64
		if st, ok := stats[s.Sector]; ok {
			vsMedian = s.Composite - st.MedianScore
		}
		cmp.TopCompanies = append(cmp.TopCompanies, contracts.SectorRanking{
			StockCode:   s.StockCode,
			Sector:      s.Sector,
			Score:       s.Composite,
			Rank:        s.MarketRank,
			Percentile:  s.MarketPercentile,
			VsMedian:    vsMedian,
			SectorSize:  s.SectorSize,
			IsLeader:    s.IsSectorLeader,
			TopQuartile: s.IsTopQuartile,
			BotQuartile: s.IsBottomQuartile,
			IsOutlier:   s.IsOutlier,
			OutlierType: s.OutlierType,
		})
	}

	for name, st := range stats {
		if st.DataQuality < 0.5 {
			cmp.Warnings = append(cmp.Warnings, contracts.Warning{
				Code:    contracts.WarnMetricMissing,
				Message: fmt.Sprintf("sector %q statistics computed from sparse data (%.0f%% coverage)", name, st.DataQuality*100),
			})
		}
	}
	sort.Slice(cmp.Warnings, func(i, j int) bool { return cmp.Warnings[i].Message < cmp.Warnings[j].Message })

	return cmp
}
