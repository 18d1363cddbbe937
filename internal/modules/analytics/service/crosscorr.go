package service

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"studia/internal/modules/analytics/domain"
)

// runCrossCorrelation builds the CCF grid: today's minutes against lagged
// versions of each derived factor, one curve per factor across lags 1..MaxLag.
func runCrossCorrelation(series domain.DailySeries, params domain.Params) domain.Result {
	minutes := series.Minutes
	n := len(minutes)

	maxLag := params.MaxLag
	if maxLag > n-2 {
		maxLag = n - 2
	}

	factors := []struct {
		name   string
		values []float64
	}{
		{name: "minutes", values: minutes},
		{name: "7-day mean", values: rollingMean(minutes, 7)},
		{name: "weekend", values: weekendIndicator(series)},
	}

	curves := make([]domain.NamedSeries, 0, len(factors))
	bestFactor, bestLag, bestCorr := "", 0, 0.0
	for _, factor := range factors {
		x := make([]float64, 0, maxLag)
		y := make([]float64, 0, maxLag)
		for lag := 1; lag <= maxLag; lag++ {
			r := stat.Correlation(minutes[lag:], factor.values[:n-lag], nil)
			x = append(x, float64(lag))
			y = append(y, r)
			if !math.IsNaN(r) && math.Abs(r) > math.Abs(bestCorr) {
				bestFactor, bestLag, bestCorr = factor.name, lag, r
			}
		}
		curves = append(curves, domain.NamedSeries{Name: factor.name, X: x, Y: y})
	}

	payload := &domain.Payload{
		Series: curves,
		Points: []domain.LabeledPoint{
			{Label: "strongest lag", Value: float64(bestLag)},
			{Label: "strongest correlation", Value: bestCorr},
		},
		Lines: []string{
			fmt.Sprintf("Strongest lagged link: %s at lag %d (r=%.2f).", bestFactor, bestLag, bestCorr),
		},
	}
	return domain.Result{Kind: domain.KindCrossCorrelation, Status: domain.StatusOK, Payload: payload}
}
