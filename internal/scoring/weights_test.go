package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbr/fundascore/internal/contracts"
)

func TestNormalizePreservesRatios(t *testing.T) {
	w := Weights{Valuation: 2, Profitability: 3, Growth: 2, FinancialHealth: 2, Efficiency: 1}

	n, err := w.Normalize()
	require.NoError(t, err)

	assert.InDelta(t, 1.0, n.sum(), 1e-9)
	assert.InDelta(t, 0.2, n.Valuation, 1e-9)
	assert.InDelta(t, 0.3, n.Profitability, 1e-9)
	assert.InDelta(t, 0.1, n.Efficiency, 1e-9)
	// Ratios survive rescaling.
	assert.InDelta(t, w.Profitability/w.Valuation, n.Profitability/n.Valuation, 1e-9)
}

func TestNormalizeAlreadyUnit(t *testing.T) {
	n, err := DefaultWeights().Normalize()
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), n)
}

func TestNormalizeRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
	}{
		{"negative", Weights{Valuation: -0.1, Profitability: 0.5, Growth: 0.3, FinancialHealth: 0.2, Efficiency: 0.1}},
		{"all zero", Weights{}},
		{"nan", Weights{Valuation: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.w.Normalize()
			require.Error(t, err)
			var cfgErr *ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestWeightsFor(t *testing.T) {
	w := DefaultWeights()
	var total float64
	for _, cat := range contracts.Categories() {
		total += w.For(cat)
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Zero(t, w.For(contracts.Category("bogus")))
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  contracts.QualityTier
	}{
		{95, contracts.TierExcellent},
		{80, contracts.TierExcellent},
		{79.99, contracts.TierGood},
		{65, contracts.TierGood},
		{64.99, contracts.TierAverage},
		{45, contracts.TierAverage},
		{44.99, contracts.TierBelowAverage},
		{25, contracts.TierBelowAverage},
		{24.99, contracts.TierPoor},
		{0, contracts.TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %.2f", tt.score)
	}
}
