package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbr/fundascore/internal/benchmark"
	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/pkg/logger"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	reg, err := benchmark.Load(logger.NewNop())
	require.NoError(t, err)
	return NewClassifier(reg, logger.NewNop())
}

func flagCodes(report *Report) map[string]contracts.Severity {
	out := map[string]contracts.Severity{}
	for _, f := range report.RedFlags {
		out[f.Code] = f.Severity
	}
	return out
}

func TestHealthyCompanyPassesClean(t *testing.T) {
	c := newTestClassifier(t)

	report := c.Classify(&contracts.FinancialMetricsSnapshot{
		StockCode:     "WEGE3",
		Sector:        "Industrial",
		PERatio:       contracts.Float(25.0),
		ROE:           contracts.Float(25.0),
		ROA:           contracts.Float(12.0),
		NetMargin:     contracts.Float(14.0),
		RevenueGrowth: contracts.Float(15.0),
		DebtToEquity:  contracts.Float(0.3),
		DebtToEBITDA:  contracts.Float(0.5),
		CurrentRatio:  contracts.Float(2.1),
	})

	assert.True(t, report.PassedAll)
	assert.Empty(t, report.RedFlags)
}

func TestDistressedCompanyFlags(t *testing.T) {
	c := newTestClassifier(t)

	report := c.Classify(&contracts.FinancialMetricsSnapshot{
		StockCode:     "RUIM3",
		Sector:        "Varejo",
		ROE:           contracts.Float(-8.0),
		NetMargin:     contracts.Float(-3.0),
		RevenueGrowth: contracts.Float(-15.0),
		DebtToEBITDA:  contracts.Float(7.5),
		CurrentRatio:  contracts.Float(0.8),
	})

	assert.False(t, report.PassedAll)

	codes := flagCodes(report)
	assert.Equal(t, contracts.SeverityCritical, codes["negative_roe"])
	assert.Equal(t, contracts.SeverityCritical, codes["negative_net_margin"])
	assert.Equal(t, contracts.SeverityCritical, codes["excessive_debt_to_ebitda"])
	assert.Equal(t, contracts.SeverityHigh, codes["revenue_collapse"])
	assert.Equal(t, contracts.SeverityHigh, codes["illiquid"])

	// The critical rule supersedes the weaker one on the same metric.
	assert.NotContains(t, codes, "low_roe")
	assert.NotContains(t, codes, "revenue_decline")
}

func TestWeakerRulesFire(t *testing.T) {
	c := newTestClassifier(t)

	report := c.Classify(&contracts.FinancialMetricsSnapshot{
		StockCode:     "MORN3",
		Sector:        "Consumo",
		ROE:           contracts.Float(3.0),
		ROA:           contracts.Float(1.0),
		PERatio:       contracts.Float(40.0),
		RevenueGrowth: contracts.Float(-2.0),
	})

	codes := flagCodes(report)
	assert.Equal(t, contracts.SeverityHigh, codes["low_roe"])
	assert.Equal(t, contracts.SeverityMedium, codes["revenue_decline"])
	assert.Equal(t, contracts.SeverityMedium, codes["stretched_valuation"])
	assert.Equal(t, contracts.SeverityLow, codes["low_roa"])
}

// Bank leverage that would sink an industrial must clear the
// sector-relative ceiling.
func TestLeverageCeilingIsSectorRelative(t *testing.T) {
	c := newTestClassifier(t)

	asBank := c.Classify(&contracts.FinancialMetricsSnapshot{
		StockCode:    "BBAS3",
		Sector:       "Bancos",
		DebtToEquity: contracts.Float(9.0),
	})
	asIndustrial := c.Classify(&contracts.FinancialMetricsSnapshot{
		StockCode:    "FABR3",
		Sector:       "Industrial",
		DebtToEquity: contracts.Float(9.0),
	})

	find := func(r *Report) FilterResult {
		for _, f := range r.Filters {
			if f.Name == "sector_leverage_ceiling" {
				return f
			}
		}
		t.Fatal("filter not found")
		return FilterResult{}
	}

	assert.True(t, find(asBank).Passed, "9x leverage is normal for a bank")
	assert.False(t, find(asIndustrial).Passed)
}

func TestMissingMetricsStayNeutral(t *testing.T) {
	c := newTestClassifier(t)

	report := c.Classify(&contracts.FinancialMetricsSnapshot{
		StockCode: "VAZI3",
		Sector:    "Saúde",
	})

	assert.True(t, report.PassedAll, "nothing evaluated, nothing failed")
	assert.Empty(t, report.RedFlags)
	for _, f := range report.Filters {
		assert.False(t, f.Evaluated, "filter %s", f.Name)
	}
}

func TestUnknownSectorWarns(t *testing.T) {
	c := newTestClassifier(t)

	report := c.Classify(&contracts.FinancialMetricsSnapshot{
		StockCode: "ZZZZ3",
		Sector:    "Setor Fantasma",
	})

	require.NotEmpty(t, report.Warnings)
	assert.Equal(t, contracts.WarnSectorUnknown, report.Warnings[0].Code)
}
