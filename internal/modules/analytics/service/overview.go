package service

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"studia/internal/modules/analytics/domain"
)

// runOverviewCorrelation computes lag-k autocorrelations of daily minutes and
// the day-of-week mean profile. This is the cheap first-look model the
// overview surface requests by default.
func runOverviewCorrelation(series domain.DailySeries, params domain.Params) domain.Result {
	minutes := series.Minutes
	n := len(minutes)

	maxLag := params.MaxLag
	if maxLag > n-2 {
		maxLag = n - 2
	}

	lagX := make([]float64, 0, maxLag)
	lagY := make([]float64, 0, maxLag)
	topLag, topCorr := 0, 0.0
	for lag := 1; lag <= maxLag; lag++ {
		r := lagCorrelation(minutes, lag)
		lagX = append(lagX, float64(lag))
		lagY = append(lagY, r)
		if !math.IsNaN(r) && math.Abs(r) > math.Abs(topCorr) {
			topLag, topCorr = lag, r
		}
	}

	dowSums := make([]float64, 7)
	dowCounts := make([]float64, 7)
	for i, v := range minutes {
		d := int(series.Date(i).Weekday())
		dowSums[d] += v
		dowCounts[d]++
	}
	dowX := make([]float64, 7)
	dowY := make([]float64, 7)
	for d := range dowSums {
		dowX[d] = float64(d)
		dowY[d] = safeRatio(dowSums[d], dowCounts[d])
	}

	payload := &domain.Payload{
		Series: []domain.NamedSeries{
			{Name: "autocorrelation", X: lagX, Y: lagY},
			{Name: "day-of-week mean", X: dowX, Y: dowY},
		},
		Points: []domain.LabeledPoint{
			{Label: "mean minutes/day", Value: stat.Mean(minutes, nil)},
			{Label: "top lag", Value: float64(topLag)},
			{Label: "top lag correlation", Value: topCorr},
		},
		Lines: []string{
			fmt.Sprintf("Strongest self-correlation at lag %d (r=%.2f).", topLag, topCorr),
		},
	}
	return domain.Result{Kind: domain.KindOverviewCorrelation, Status: domain.StatusOK, Payload: payload}
}
