package service

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"studia/internal/modules/analytics/domain"
)

// safeRatio divides, returning NaN instead of propagating a division by
// zero. NaN is the payload sentinel for "undefined"; consumers render it as
// a gap.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// lagCorrelation is corr(y_t, y_{t-lag}); NaN when either side is constant.
func lagCorrelation(minutes []float64, lag int) float64 {
	if lag <= 0 || lag >= len(minutes)-1 {
		return math.NaN()
	}
	return stat.Correlation(minutes[lag:], minutes[:len(minutes)-lag], nil)
}

// rollingMean computes a trailing mean over the given window. Entries before
// a full window use the partial window, so the output has the input's length.
func rollingMean(minutes []float64, window int) []float64 {
	out := make([]float64, len(minutes))
	sum := 0.0
	for i, v := range minutes {
		sum += v
		if i >= window {
			sum -= minutes[i-window]
		}
		n := window
		if i+1 < window {
			n = i + 1
		}
		out[i] = sum / float64(n)
	}
	return out
}

// weekendIndicator is 1 on Saturday/Sunday, 0 otherwise, per series entry.
func weekendIndicator(series domain.DailySeries) []float64 {
	out := make([]float64, series.Len())
	for i := range out {
		switch series.Date(i).Weekday() {
		case time.Saturday, time.Sunday:
			out[i] = 1
		}
	}
	return out
}

// standardize centers and scales a column in place, returning the original
// mean and standard deviation. Constant columns keep scale 1 so they come
// back centered rather than NaN.
func standardize(column []float64) (mean, std float64) {
	mean = stat.Mean(column, nil)
	std = stat.StdDev(column, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	for i := range column {
		column[i] = (column[i] - mean) / std
	}
	return mean, std
}
