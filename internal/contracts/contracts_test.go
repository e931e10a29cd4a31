package contracts

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotMetricAccessor(t *testing.T) {
	snap := &FinancialMetricsSnapshot{
		StockCode: "PETR4",
		Sector:    "Petróleo e Gás",
		AsOf:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ROE:       Float(18.5),
		PERatio:   Float(5.2),
	}

	assert.Equal(t, 18.5, *snap.Metric(MetricROE))
	assert.Equal(t, 5.2, *snap.Metric(MetricPERatio))
	assert.Nil(t, snap.Metric(MetricNetMargin))
	assert.Nil(t, snap.Metric(MetricKey("nonexistent")))
}

func TestSnapshotHasValue(t *testing.T) {
	snap := &FinancialMetricsSnapshot{
		ROE:       Float(12.0),
		NetMargin: Float(math.NaN()),
		PERatio:   Float(math.Inf(1)),
	}

	assert.True(t, snap.HasValue(MetricROE))
	assert.False(t, snap.HasValue(MetricNetMargin), "NaN is not a value")
	assert.False(t, snap.HasValue(MetricPERatio), "Inf is not a value")
	assert.False(t, snap.HasValue(MetricROA), "nil pointer")
}

func TestCategoryScoreConstructors(t *testing.T) {
	c := Computed(72.5)
	assert.True(t, c.Available)
	assert.Equal(t, 72.5, c.Value)
	assert.Empty(t, c.Reason)

	u := Unavailable("all metrics missing")
	assert.False(t, u.Available)
	assert.Equal(t, "all metrics missing", u.Reason)
	assert.Zero(t, u.Value)
}

func TestCategoryRoundTrip(t *testing.T) {
	var score FundamentalScore
	for i, cat := range Categories() {
		score.SetCategoryScore(cat, Computed(float64(i*10)))
	}
	for i, cat := range Categories() {
		got := score.CategoryScoreFor(cat)
		assert.True(t, got.Available)
		assert.Equal(t, float64(i*10), got.Value)
	}
	assert.False(t, score.CategoryScoreFor(Category("bogus")).Available)
}

func TestAddWarning(t *testing.T) {
	var score FundamentalScore
	score.AddWarning(WarnMetricMissing, "roe unavailable")
	score.AddWarning(WarnSectorUnknown, "sector 'Foo' not in benchmark table")

	assert.Len(t, score.Warnings, 2)
	assert.Equal(t, WarnMetricMissing, score.Warnings[0].Code)
}
