package contracts

import (
	"math"
	"time"
)

// MetricKey identifies a single financial ratio on a snapshot.
// The set is fixed at compile time; there is no reflective lookup.
type MetricKey string

const (
	MetricPERatio        MetricKey = "pe_ratio"
	MetricPBRatio        MetricKey = "pb_ratio"
	MetricROE            MetricKey = "roe"
	MetricROA            MetricKey = "roa"
	MetricNetMargin      MetricKey = "net_margin"
	MetricEBITDAMargin   MetricKey = "ebitda_margin"
	MetricRevenueGrowth  MetricKey = "revenue_growth"
	MetricEarningsGrowth MetricKey = "earnings_growth"
	MetricDebtToEquity   MetricKey = "debt_to_equity"
	MetricDebtToEBITDA   MetricKey = "debt_to_ebitda"
	MetricCurrentRatio   MetricKey = "current_ratio"
	MetricAssetTurnover  MetricKey = "asset_turnover"
)

// FinancialMetricsSnapshot is the immutable per-company input record
// handed over by the data-collection layer. Ratios are nullable: a nil
// pointer means the provider could not supply the value.
//
// Percentages (ROE, margins, growth) are expressed in percent points,
// multiples (P/E, P/B, D/E, current ratio, asset turnover) as plain ratios.
type FinancialMetricsSnapshot struct {
	StockCode string    `json:"stock_code"`
	Sector    string    `json:"sector"`
	AsOf      time.Time `json:"as_of"`

	PERatio        *float64 `json:"pe_ratio"`
	PBRatio        *float64 `json:"pb_ratio"`
	ROE            *float64 `json:"roe"`
	ROA            *float64 `json:"roa"`
	NetMargin      *float64 `json:"net_margin"`
	EBITDAMargin   *float64 `json:"ebitda_margin"`
	RevenueGrowth  *float64 `json:"revenue_growth"`
	EarningsGrowth *float64 `json:"earnings_growth"`
	DebtToEquity   *float64 `json:"debt_to_equity"`
	DebtToEBITDA   *float64 `json:"debt_to_ebitda"`
	CurrentRatio   *float64 `json:"current_ratio"`
	AssetTurnover  *float64 `json:"asset_turnover"`
}

// Metric returns the ratio for a key, or nil for an unknown key.
func (s *FinancialMetricsSnapshot) Metric(key MetricKey) *float64 {
	switch key {
	case MetricPERatio:
		return s.PERatio
	case MetricPBRatio:
		return s.PBRatio
	case MetricROE:
		return s.ROE
	case MetricROA:
		return s.ROA
	case MetricNetMargin:
		return s.NetMargin
	case MetricEBITDAMargin:
		return s.EBITDAMargin
	case MetricRevenueGrowth:
		return s.RevenueGrowth
	case MetricEarningsGrowth:
		return s.EarningsGrowth
	case MetricDebtToEquity:
		return s.DebtToEquity
	case MetricDebtToEBITDA:
		return s.DebtToEBITDA
	case MetricCurrentRatio:
		return s.CurrentRatio
	case MetricAssetTurnover:
		return s.AssetTurnover
	default:
		return nil
	}
}

// HasValue reports whether the metric is present and finite.
func (s *FinancialMetricsSnapshot) HasValue(key MetricKey) bool {
	v := s.Metric(key)
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Float is a convenience for building snapshots by hand.
func Float(v float64) *float64 {
	return &v
}
