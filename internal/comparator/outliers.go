package comparator

import "sort"

// Outlier methods accepted by the comparator.
const (
	MethodIQR    = "iqr"
	MethodZScore = "zscore"
)

const (
	iqrFactor    = 1.5
	zscoreFactor = 2.0

	// Below this many values no distributional statement is sound and
	// outlier detection stays silent.
	minOutlierSample = 4
)

// OutlierBounds are the composite-score limits beyond which a value
// counts as an outlier. Detected=false means the sample was too small.
type OutlierBounds struct {
	Low      float64
	High     float64
	Method   string
	Detected bool
}

// Classify tells which tail, if any, a value falls on.
func (b OutlierBounds) Classify(v float64) (bool, string) {
	if !b.Detected {
		return false, ""
	}
	if v < b.Low {
		return true, "low"
	}
	if v > b.High {
		return true, "high"
	}
	return false, ""
}

// DetectOutliers computes the bounds for the given method. Fewer than
// four values yields Detected=false and no outliers.
func DetectOutliers(values []float64, method string) OutlierBounds {
	if len(values) < minOutlierSample {
		return OutlierBounds{Method: method}
	}

	switch method {
	case MethodZScore:
		m := mean(values)
		sd := stdDev(values)
		return OutlierBounds{
			Low:      m - zscoreFactor*sd,
			High:     m + zscoreFactor*sd,
			Method:   method,
			Detected: true,
		}
	default:
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		q1 := quantile(sorted, 0.25)
		q3 := quantile(sorted, 0.75)
		iqr := q3 - q1
		return OutlierBounds{
			Low:      q1 - iqrFactor*iqr,
			High:     q3 + iqrFactor*iqr,
			Method:   MethodIQR,
			Detected: true,
		}
	}
}
