package service

import (
	"fmt"
	"math"

	"studia/internal/modules/analytics/domain"
)

// runPartialLeastSquares fits a two-component NIPALS PLS of today's minutes
// on derived lag features. Components are extracted from standardized
// columns; the payload carries per-feature weights and explained variance.
func runPartialLeastSquares(series domain.DailySeries, params domain.Params) domain.Result {
	minutes := series.Minutes
	n := len(minutes)

	lags := params.MaxLag
	if lags > 7 {
		lags = 7
	}
	for lags > 1 && n-lags < lags+4 {
		lags--
	}

	weekend := weekendIndicator(series)
	roll := rollingMean(minutes, 7)

	rows := n - lags
	names := make([]string, 0, lags+2)
	columns := make([][]float64, 0, lags+2)
	for lag := 1; lag <= lags; lag++ {
		col := make([]float64, rows)
		for t := 0; t < rows; t++ {
			col[t] = minutes[t+lags-lag]
		}
		columns = append(columns, col)
		names = append(names, fmt.Sprintf("lag %d", lag))
	}
	wcol := make([]float64, rows)
	rcol := make([]float64, rows)
	for t := 0; t < rows; t++ {
		wcol[t] = weekend[t+lags]
		rcol[t] = roll[t+lags-1]
	}
	columns = append(columns, wcol, rcol)
	names = append(names, "weekend", "7-day mean")

	y := make([]float64, rows)
	for t := 0; t < rows; t++ {
		y[t] = minutes[t+lags]
	}

	for _, col := range columns {
		standardize(col)
	}
	standardize(y)
	yss := 0.0
	for _, v := range y {
		yss += v * v
	}

	var warnings []string
	const components = 2
	weights := make([][]float64, 0, components)
	explained := make([]float64, 0, components)
	for a := 0; a < components; a++ {
		w := make([]float64, len(columns))
		norm := 0.0
		for j, col := range columns {
			for i, v := range col {
				w[j] += v * y[i]
			}
			norm += w[j] * w[j]
		}
		norm = math.Sqrt(norm)
		if norm < 1e-12 {
			warnings = append(warnings, fmt.Sprintf("component %d is degenerate, stopped early", a+1))
			break
		}
		for j := range w {
			w[j] /= norm
		}

		scores := make([]float64, rows)
		tt := 0.0
		for i := range scores {
			for j, col := range columns {
				scores[i] += col[i] * w[j]
			}
			tt += scores[i] * scores[i]
		}
		if tt < 1e-12 {
			warnings = append(warnings, fmt.Sprintf("component %d has zero score variance, stopped early", a+1))
			break
		}

		loadings := make([]float64, len(columns))
		for j, col := range columns {
			for i, v := range col {
				loadings[j] += v * scores[i]
			}
			loadings[j] /= tt
		}
		q := 0.0
		for i, v := range y {
			q += v * scores[i]
		}
		q /= tt

		for j, col := range columns {
			for i := range col {
				col[i] -= scores[i] * loadings[j]
			}
		}
		for i := range y {
			y[i] -= q * scores[i]
		}

		weights = append(weights, w)
		explained = append(explained, safeRatio(q*q*tt, yss))
	}

	r2 := 0.0
	for _, e := range explained {
		if !math.IsNaN(e) {
			r2 += e
		}
	}

	featureX := make([]float64, len(names))
	for j := range featureX {
		featureX[j] = float64(j)
	}
	curves := make([]domain.NamedSeries, 0, components)
	for a, w := range weights {
		curves = append(curves, domain.NamedSeries{Name: fmt.Sprintf("component %d weights", a+1), X: featureX, Y: w})
	}

	lines := make([]string, 0, len(names)+1)
	for j, name := range names {
		if len(weights) > 0 {
			lines = append(lines, fmt.Sprintf("%s: weight %.3f", name, weights[0][j]))
		}
	}

	points := []domain.LabeledPoint{{Label: "R²", Value: r2}}
	for a, e := range explained {
		points = append(points, domain.LabeledPoint{Label: fmt.Sprintf("component %d explained", a+1), Value: e})
	}

	status := domain.StatusOK
	if len(warnings) > 0 {
		status = domain.StatusOKWithWarning
	}
	return domain.Result{
		Kind:     domain.KindPartialLeastSquares,
		Status:   status,
		Payload:  &domain.Payload{Series: curves, Points: points, Lines: lines},
		Warnings: warnings,
	}
}
