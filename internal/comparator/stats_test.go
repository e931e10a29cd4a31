package comparator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.0, Percentile(values, 0), 1e-9)
	assert.InDelta(t, 1.75, Percentile(values, 25), 1e-9)
	assert.InDelta(t, 2.5, Percentile(values, 50), 1e-9)
	assert.InDelta(t, 3.25, Percentile(values, 75), 1e-9)
	assert.InDelta(t, 4.0, Percentile(values, 100), 1e-9)
}

func TestPercentileSingleElement(t *testing.T) {
	assert.Equal(t, 42.0, Percentile([]float64{42}, 10))
	assert.Equal(t, 42.0, Percentile([]float64{42}, 90))
}

func TestPercentileOrderIndependent(t *testing.T) {
	values := []float64{70, 85, 60, 92, 45, 77, 55}
	shuffled := append([]float64(nil), values...)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		for _, p := range []float64{0, 10, 25, 50, 75, 90, 100} {
			assert.Equal(t, Percentile(values, p), Percentile(shuffled, p), "p=%.0f", p)
		}
	}
}

func TestPercentileStaysWithinRange(t *testing.T) {
	values := []float64{12.5, 90.1, 33.3, 71.0, 50.0}
	for p := 0.0; p <= 100; p += 2.5 {
		got := Percentile(values, p)
		assert.GreaterOrEqual(t, got, 12.5)
		assert.LessOrEqual(t, got, 90.1)
	}
}

func TestStdDevSampleDivisor(t *testing.T) {
	assert.Zero(t, stdDev([]float64{5}))
	assert.Zero(t, stdDev(nil))
	// Sample stdev of {2, 4} is sqrt(2), not 1.
	assert.InDelta(t, 1.4142135, stdDev([]float64{2, 4}), 1e-6)
}

func TestDetectOutliersSmallSample(t *testing.T) {
	values := []float64{10, 50, 90}
	for _, method := range []string{MethodIQR, MethodZScore} {
		bounds := DetectOutliers(values, method)
		assert.False(t, bounds.Detected, "method %s", method)
		outlier, _ := bounds.Classify(1000)
		assert.False(t, outlier, "method %s", method)
	}
}

func TestDetectOutliersIQR(t *testing.T) {
	bounds := DetectOutliers([]float64{10, 11, 12, 13, 50}, MethodIQR)
	assert.True(t, bounds.Detected)

	outlier, tail := bounds.Classify(50)
	assert.True(t, outlier)
	assert.Equal(t, "high", tail)

	outlier, _ = bounds.Classify(12)
	assert.False(t, outlier)
}

func TestDetectOutliersZScore(t *testing.T) {
	values := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 200}
	bounds := DetectOutliers(values, MethodZScore)
	assert.True(t, bounds.Detected)

	outlier, tail := bounds.Classify(200)
	assert.True(t, outlier)
	assert.Equal(t, "high", tail)

	outlier, _ = bounds.Classify(10)
	assert.False(t, outlier)
}
