package domain

import "gonum.org/v1/gonum/stat"

const (
	// ConfidenceSampleFloor is the series length below which the label is
	// forced to "low" no matter what the variance looks like.
	ConfidenceSampleFloor = 10

	// saturationDays is the length at which sample size stops improving the
	// score. A month of daily data is treated as "enough".
	saturationDays = 30

	varianceEpsilon = 1e-9
)

type Confidence struct {
	Value float64
	Label string
}

// Score rates how much a prepared series can be trusted. Advisory only: it is
// attached to every result so explanations can hedge, and never blocks a
// computation.
func Score(series DailySeries) Confidence {
	n := series.Len()
	if n == 0 {
		return Confidence{Value: 0, Label: "low"}
	}

	sizeScore := float64(n) / saturationDays
	if sizeScore > 1 {
		sizeScore = 1
	}

	varScore := 0.0
	if n >= 2 && stat.Variance(series.Minutes, nil) > varianceEpsilon {
		varScore = 1
	}

	value := 0.7*sizeScore + 0.3*varScore

	label := "high"
	switch {
	case n < ConfidenceSampleFloor || value < 0.34:
		label = "low"
	case value < 0.67:
		label = "medium"
	}
	return Confidence{Value: value, Label: label}
}
