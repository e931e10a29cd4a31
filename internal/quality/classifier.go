// Package quality applies rule-based filters and red flags on raw
// fundamentals. Its verdicts are independent of the composite score
// and may disagree with the quality tier.
package quality

import (
	"fmt"

	"github.com/quantbr/fundascore/internal/benchmark"
	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/pkg/logger"
)

// Filter thresholds on raw fundamentals.
const (
	minROE           = 15.0
	minRevenueGrowth = 5.0
	maxDebtToEBITDA  = 4.0
	minNetMargin     = 5.0
	minCurrentRatio  = 1.2

	// Leverage ceiling as a multiple of the sector debt/equity median.
	leverageCeilingFactor = 2.0
)

// FilterResult is one pass/fail check. A filter over a missing metric
// stays Evaluated=false and does not count against the company.
type FilterResult struct {
	Name      string  `json:"name"`
	Evaluated bool    `json:"evaluated"`
	Passed    bool    `json:"passed"`
	Value     float64 `json:"value,omitempty"`
	Threshold float64 `json:"threshold"`
}

// Report is the classifier output for one company.
type Report struct {
	StockCode string              `json:"stock_code"`
	Sector    string              `json:"sector"`
	PassedAll bool                `json:"passed_all"`
	Filters   []FilterResult      `json:"filters"`
	RedFlags  []contracts.RedFlag `json:"red_flags,omitempty"`
	Warnings  []contracts.Warning `json:"warnings,omitempty"`
}

// Classifier runs the filters and red-flag rules. Stateless and safe
// for concurrent use.
type Classifier struct {
	registry *benchmark.Registry
	log      *logger.Logger
}

func NewClassifier(registry *benchmark.Registry, log *logger.Logger) *Classifier {
	return &Classifier{registry: registry, log: log}
}

// Classify evaluates one snapshot. PassedAll is true when every
// evaluated filter passed; unevaluated filters are neutral.
func (c *Classifier) Classify(snap *contracts.FinancialMetricsSnapshot) *Report {
	report := &Report{
		StockCode: snap.StockCode,
		Sector:    snap.Sector,
		PassedAll: true,
	}

	bm, warn := c.registry.Get(snap.Sector)
	if warn != nil {
		report.Warnings = append(report.Warnings, *warn)
	}
	leverageCeiling := leverageCeilingFactor * bm.DebtToEquityMedian

	c.filter(report, snap, "roe_floor", contracts.MetricROE, minROE, false)
	c.filter(report, snap, "revenue_growth_floor", contracts.MetricRevenueGrowth, minRevenueGrowth, false)
	c.filter(report, snap, "debt_to_ebitda_ceiling", contracts.MetricDebtToEBITDA, maxDebtToEBITDA, true)
	c.filter(report, snap, "net_margin_floor", contracts.MetricNetMargin, minNetMargin, false)
	c.filter(report, snap, "current_ratio_floor", contracts.MetricCurrentRatio, minCurrentRatio, false)
	c.filter(report, snap, "sector_leverage_ceiling", contracts.MetricDebtToEquity, leverageCeiling, true)

	c.flagRedFlags(report, snap)

	if len(report.RedFlags) > 0 {
		c.log.WithFields(map[string]interface{}{
			"stock":     snap.StockCode,
			"red_flags": len(report.RedFlags),
		}).Debug("red flags raised")
	}
	return report
}

// filter appends one check. ceiling=true means the value must stay at
// or below the threshold, otherwise at or above it.
func (c *Classifier) filter(report *Report, snap *contracts.FinancialMetricsSnapshot, name string, key contracts.MetricKey, threshold float64, ceiling bool) {
	fr := FilterResult{Name: name, Threshold: threshold}
	if snap.HasValue(key) {
		value := *snap.Metric(key)
		fr.Evaluated = true
		fr.Value = value
		if ceiling {
			fr.Passed = value <= threshold
		} else {
			fr.Passed = value >= threshold
		}
		if !fr.Passed {
			report.PassedAll = false
		}
	}
	report.Filters = append(report.Filters, fr)
}

// flagRedFlags applies the risk rules. Only the strongest rule on a
// given metric fires: a negative ROE is critical, not also "low ROE".
func (c *Classifier) flagRedFlags(report *Report, snap *contracts.FinancialMetricsSnapshot) {
	flag := func(code string, sev contracts.Severity, desc string, value, threshold float64) {
		report.RedFlags = append(report.RedFlags, contracts.RedFlag{
			Code:        code,
			Severity:    sev,
			Description: desc,
			Value:       value,
			Threshold:   threshold,
		})
	}

	if snap.HasValue(contracts.MetricROE) {
		roe := *snap.ROE
		switch {
		case roe < 0:
			flag("negative_roe", contracts.SeverityCritical,
				fmt.Sprintf("negative return on equity (%.1f%%)", roe), roe, 0)
		case roe < 5:
			flag("low_roe", contracts.SeverityHigh,
				fmt.Sprintf("return on equity below 5%% (%.1f%%)", roe), roe, 5)
		}
	}

	if snap.HasValue(contracts.MetricNetMargin) && *snap.NetMargin < 0 {
		flag("negative_net_margin", contracts.SeverityCritical,
			fmt.Sprintf("company operates at a loss (margin %.1f%%)", *snap.NetMargin), *snap.NetMargin, 0)
	}

	if snap.HasValue(contracts.MetricDebtToEBITDA) && *snap.DebtToEBITDA > 6 {
		flag("excessive_debt_to_ebitda", contracts.SeverityCritical,
			fmt.Sprintf("debt/EBITDA of %.1f exceeds 6x", *snap.DebtToEBITDA), *snap.DebtToEBITDA, 6)
	}

	if snap.HasValue(contracts.MetricRevenueGrowth) {
		growth := *snap.RevenueGrowth
		switch {
		case growth < -10:
			flag("revenue_collapse", contracts.SeverityHigh,
				fmt.Sprintf("revenue declining %.1f%% a year", growth), growth, -10)
		case growth < 0:
			flag("revenue_decline", contracts.SeverityMedium,
				fmt.Sprintf("revenue shrinking (%.1f%%)", growth), growth, 0)
		}
	}

	if snap.HasValue(contracts.MetricCurrentRatio) && *snap.CurrentRatio < 1 {
		flag("illiquid", contracts.SeverityHigh,
			fmt.Sprintf("current ratio %.2f below 1", *snap.CurrentRatio), *snap.CurrentRatio, 1)
	}

	if snap.HasValue(contracts.MetricPERatio) && *snap.PERatio > 35 {
		flag("stretched_valuation", contracts.SeverityMedium,
			fmt.Sprintf("P/E of %.1f above 35", *snap.PERatio), *snap.PERatio, 35)
	}

	if snap.HasValue(contracts.MetricROA) && *snap.ROA < 3 {
		flag("low_roa", contracts.SeverityLow,
			fmt.Sprintf("return on assets below 3%% (%.1f%%)", *snap.ROA), *snap.ROA, 3)
	}
}
