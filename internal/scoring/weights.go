package scoring

import (
	"fmt"
	"math"

	"github.com/quantbr/fundascore/internal/contracts"
	"github.com/quantbr/fundascore/pkg/config"
)

// ConfigurationError reports an unusable engine configuration.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("scoring configuration: %s: %s", e.Field, e.Message)
}

// Weights are the top-level category weights of the composite score.
type Weights struct {
	Valuation       float64
	Profitability   float64
	Growth          float64
	FinancialHealth float64
	Efficiency      float64
}

// DefaultWeights returns the production weight profile.
func DefaultWeights() Weights {
	return Weights{
		Valuation:       0.25,
		Profitability:   0.30,
		Growth:          0.20,
		FinancialHealth: 0.15,
		Efficiency:      0.10,
	}
}

// WeightsFromConfig maps the env configuration onto a weight set.
func WeightsFromConfig(cfg config.ScoringConfig) Weights {
	return Weights{
		Valuation:       cfg.ValuationWeight,
		Profitability:   cfg.ProfitabilityWeight,
		Growth:          cfg.GrowthWeight,
		FinancialHealth: cfg.FinancialHealthWeight,
		Efficiency:      cfg.EfficiencyWeight,
	}
}

// For returns the weight of a category tag.
func (w Weights) For(cat contracts.Category) float64 {
	switch cat {
	case contracts.CategoryValuation:
		return w.Valuation
	case contracts.CategoryProfitability:
		return w.Profitability
	case contracts.CategoryGrowth:
		return w.Growth
	case contracts.CategoryFinancialHealth:
		return w.FinancialHealth
	case contracts.CategoryEfficiency:
		return w.Efficiency
	default:
		return 0
	}
}

func (w Weights) sum() float64 {
	return w.Valuation + w.Profitability + w.Growth + w.FinancialHealth + w.Efficiency
}

// Normalize rescales the weights to sum exactly 1.0 while preserving
// their ratios. Negative or all-zero weights are configuration errors.
func (w Weights) Normalize() (Weights, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"valuation", w.Valuation},
		{"profitability", w.Profitability},
		{"growth", w.Growth},
		{"financial_health", w.FinancialHealth},
		{"efficiency", w.Efficiency},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return Weights{}, &ConfigurationError{Field: f.name, Message: fmt.Sprintf("weight must be a non-negative number, got %v", f.value)}
		}
	}

	total := w.sum()
	if total <= 0 {
		return Weights{}, &ConfigurationError{Field: "weights", Message: "at least one weight must be positive"}
	}
	if math.Abs(total-1.0) <= 1e-9 {
		return w, nil
	}

	return Weights{
		Valuation:       w.Valuation / total,
		Profitability:   w.Profitability / total,
		Growth:          w.Growth / total,
		FinancialHealth: w.FinancialHealth / total,
		Efficiency:      w.Efficiency / total,
	}, nil
}
