package contracts

// SectorStatistics is the aggregate view of one sector's scored companies.
// Sectors below the configured minimum size are not materialized.
type SectorStatistics struct {
	Sector       string `json:"sector"`
	CompanyCount int    `json:"company_count"`

	MeanScore   float64 `json:"mean_score"`
	MedianScore float64 `json:"median_score"`
	StdDev      float64 `json:"std_dev"`
	MinScore    float64 `json:"min_score"`
	MaxScore    float64 `json:"max_score"`

	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`

	// Per-category mean over companies where the category is available.
	CategoryMeans map[Category]float64 `json:"category_means"`

	// Composite-score bounds beyond which a company counts as an outlier.
	OutlierLow    float64 `json:"outlier_low"`
	OutlierHigh   float64 `json:"outlier_high"`
	OutlierMethod string  `json:"outlier_method"`

	// Fraction of category slots that were computable, 0..1.
	DataQuality float64 `json:"data_quality"`
}

// SectorRanking is one company's position inside its sector.
type SectorRanking struct {
	StockCode   string      `json:"stock_code"`
	Sector      string      `json:"sector"`
	Score       float64     `json:"score"`
	Rank        int         `json:"rank"`
	Percentile  float64     `json:"percentile"`
	VsMedian    float64     `json:"vs_median"`
	SectorSize  int         `json:"sector_size"`
	IsLeader    bool        `json:"is_leader"`
	TopQuartile bool        `json:"top_quartile"`
	BotQuartile bool        `json:"bottom_quartile"`
	IsOutlier   bool        `json:"is_outlier"`
	OutlierType OutlierType `json:"outlier_type,omitempty"`
}

// SectorComparison is the cross-sector summary report.
type SectorComparison struct {
	SectorCount  int     `json:"sector_count"`
	CompanyCount int     `json:"company_count"`
	MarketMean   float64 `json:"market_mean"`

	BestSector     string `json:"best_sector"`
	WorstSector    string `json:"worst_sector"`
	MostConsistent string `json:"most_consistent"`
	MostVolatile   string `json:"most_volatile"`

	// Sectors ordered by mean score descending.
	SectorOrder []string `json:"sector_order"`

	// Leading stock code per qualifying sector.
	SectorLeaders map[string]string `json:"sector_leaders"`

	// Top companies market-wide by composite score.
	TopCompanies []SectorRanking `json:"top_companies"`

	Warnings []Warning `json:"warnings,omitempty"`
}
