package contracts

// Category is one of the five fixed scoring dimensions.
type Category string

const (
	CategoryValuation       Category = "valuation"
	CategoryProfitability   Category = "profitability"
	CategoryGrowth          Category = "growth"
	CategoryFinancialHealth Category = "financial_health"
	CategoryEfficiency      Category = "efficiency"
)

// Categories returns the dimensions in canonical order.
func Categories() []Category {
	return []Category{
		CategoryValuation,
		CategoryProfitability,
		CategoryGrowth,
		CategoryFinancialHealth,
		CategoryEfficiency,
	}
}

// CategoryScore is either a computed value or explicitly unavailable.
// An unavailable category carries a reason and never a placeholder value.
type CategoryScore struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason,omitempty"`
}

// Computed builds an available category score.
func Computed(value float64) CategoryScore {
	return CategoryScore{Value: value, Available: true}
}

// Unavailable builds a category score that could not be computed.
func Unavailable(reason string) CategoryScore {
	return CategoryScore{Available: false, Reason: reason}
}

// QualityTier is the discrete quality band of a composite score.
type QualityTier string

const (
	TierExcellent    QualityTier = "EXCELLENT"
	TierGood         QualityTier = "GOOD"
	TierAverage      QualityTier = "AVERAGE"
	TierBelowAverage QualityTier = "BELOW_AVERAGE"
	TierPoor         QualityTier = "POOR"
)

// Warning is a recoverable issue noted during scoring or comparison.
// Warnings are data, not errors; they travel on results.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes used across the engine.
const (
	WarnSectorUnknown      = "sector_unknown"
	WarnMetricMissing      = "metric_missing"
	WarnMetricInvalid      = "metric_invalid"
	WarnCategoryUnavail    = "category_unavailable"
	WarnSectorBelowMinimum = "sector_below_minimum"
	WarnScoringFailed      = "scoring_failed"
	WarnROEBelowSector     = "roe_below_sector"
	WarnLeverageAboveP75   = "leverage_above_p75"
)

// Severity grades a red flag.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// RedFlag is a rule-based risk signal raised by the quality classifier.
// Flags are independent of the quality tier and may disagree with it.
type RedFlag struct {
	Code        string   `json:"code"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Value       float64  `json:"value"`
	Threshold   float64  `json:"threshold"`
}

// OutlierType tells which tail of the sector distribution a company sits on.
type OutlierType string

const (
	OutlierNone OutlierType = ""
	OutlierHigh OutlierType = "high"
	OutlierLow  OutlierType = "low"
)

// FundamentalScore is the full scored record for one company.
// The comparator enrichment fields are zero until EnrichScores runs;
// Ranked stays false for companies in sectors below the minimum size.
type FundamentalScore struct {
	StockCode string `json:"stock_code"`
	Sector    string `json:"sector"`

	Valuation       CategoryScore `json:"valuation"`
	Profitability   CategoryScore `json:"profitability"`
	Growth          CategoryScore `json:"growth"`
	FinancialHealth CategoryScore `json:"financial_health"`
	Efficiency      CategoryScore `json:"efficiency"`

	Composite  float64     `json:"composite"`
	Confidence float64     `json:"confidence"`
	Tier       QualityTier `json:"tier"`

	Strengths  []string  `json:"strengths,omitempty"`
	Weaknesses []string  `json:"weaknesses,omitempty"`
	Warnings   []Warning `json:"warnings,omitempty"`
	RedFlags   []RedFlag `json:"red_flags,omitempty"`

	// Comparator enrichment.
	Ranked           bool        `json:"ranked"`
	SectorRank       int         `json:"sector_rank,omitempty"`
	SectorPercentile float64     `json:"sector_percentile,omitempty"`
	SectorSize       int         `json:"sector_size,omitempty"`
	MarketRank       int         `json:"market_rank,omitempty"`
	MarketPercentile float64     `json:"market_percentile,omitempty"`
	IsOutlier        bool        `json:"is_outlier,omitempty"`
	OutlierType      OutlierType `json:"outlier_type,omitempty"`
	IsSectorLeader   bool        `json:"is_sector_leader,omitempty"`
	IsTopQuartile    bool        `json:"is_top_quartile,omitempty"`
	IsBottomQuartile bool        `json:"is_bottom_quartile,omitempty"`
}

// CategoryScoreFor returns the score for a category tag.
func (s *FundamentalScore) CategoryScoreFor(cat Category) CategoryScore {
	switch cat {
	case CategoryValuation:
		return s.Valuation
	case CategoryProfitability:
		return s.Profitability
	case CategoryGrowth:
		return s.Growth
	case CategoryFinancialHealth:
		return s.FinancialHealth
	case CategoryEfficiency:
		return s.Efficiency
	default:
		return Unavailable("unknown category")
	}
}

// SetCategoryScore writes the score for a category tag.
func (s *FundamentalScore) SetCategoryScore(cat Category, cs CategoryScore) {
	switch cat {
	case CategoryValuation:
		s.Valuation = cs
	case CategoryProfitability:
		s.Profitability = cs
	case CategoryGrowth:
		s.Growth = cs
	case CategoryFinancialHealth:
		s.FinancialHealth = cs
	case CategoryEfficiency:
		s.Efficiency = cs
	}
}

// AddWarning appends a warning to the record.
func (s *FundamentalScore) AddWarning(code, message string) {
	s.Warnings = append(s.Warnings, Warning{Code: code, Message: message})
}
