package service

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"studia/internal/modules/analytics/domain"
)

const (
	qrMaxIterations = 50
	qrTolerance     = 1e-6
	qrResidualFloor = 1e-8
)

// runQuantileRegression fits pinball-loss regressions of minutes on a trend
// and a weekend indicator at each requested quantile, via iteratively
// reweighted least squares. Hitting the iteration cap degrades to the best
// available estimate with an ok_with_warning status instead of failing.
func runQuantileRegression(series domain.DailySeries, params domain.Params) domain.Result {
	minutes := series.Minutes
	n := len(minutes)
	weekend := weekendIndicator(series)

	const k = 3 // intercept, trend, weekend
	xData := make([]float64, n*k)
	for t := 0; t < n; t++ {
		xData[t*k] = 1
		xData[t*k+1] = float64(t) / float64(n-1)
		xData[t*k+2] = weekend[t]
	}
	X := mat.NewDense(n, k, xData)
	y := mat.NewVecDense(n, append([]float64(nil), minutes...))

	coeffNames := []string{"intercept", "trend", "weekend"}
	curves := make([]domain.NamedSeries, k)
	for j := range curves {
		curves[j] = domain.NamedSeries{Name: coeffNames[j]}
	}

	var warnings []string
	var medianTrend float64
	for _, tau := range params.Quantiles {
		beta, converged := fitPinball(X, y, tau)
		if beta == nil {
			warnings = append(warnings, fmt.Sprintf("quantile %.2f fit failed on a singular design", tau))
			for j := range curves {
				curves[j].X = append(curves[j].X, tau)
				curves[j].Y = append(curves[j].Y, math.NaN())
			}
			continue
		}
		if !converged {
			warnings = append(warnings, fmt.Sprintf("quantile %.2f did not converge in %d iterations, using best estimate", tau, qrMaxIterations))
		}
		for j := range curves {
			curves[j].X = append(curves[j].X, tau)
			curves[j].Y = append(curves[j].Y, beta.AtVec(j))
		}
		if tau == 0.5 {
			medianTrend = beta.AtVec(1)
		}
	}

	payload := &domain.Payload{
		Series: curves,
		Points: []domain.LabeledPoint{
			{Label: "quantiles fitted", Value: float64(len(params.Quantiles))},
			{Label: "median trend slope", Value: medianTrend},
		},
		Lines: []string{
			fmt.Sprintf("Coefficient curves across %d quantiles (trend is minutes over the full period).", len(params.Quantiles)),
		},
	}
	status := domain.StatusOK
	if len(warnings) > 0 {
		status = domain.StatusOKWithWarning
	}
	return domain.Result{Kind: domain.KindQuantileRegression, Status: status, Payload: payload, Warnings: warnings}
}

// fitPinball runs IRLS for one quantile. Returns the last iterate and whether
// the coefficients settled before the iteration cap.
func fitPinball(X *mat.Dense, y *mat.VecDense, tau float64) (*mat.VecDense, bool) {
	n, k := X.Dims()

	var beta mat.VecDense
	if err := beta.SolveVec(X, y); err != nil {
		return nil, false
	}

	weighted := mat.NewDense(n, k, nil)
	target := mat.NewVecDense(n, nil)
	for iter := 0; iter < qrMaxIterations; iter++ {
		for i := 0; i < n; i++ {
			fit := 0.0
			for j := 0; j < k; j++ {
				fit += X.At(i, j) * beta.AtVec(j)
			}
			r := y.AtVec(i) - fit
			w := tau
			if r < 0 {
				w = 1 - tau
			}
			w = math.Sqrt(w / math.Max(math.Abs(r), qrResidualFloor))
			for j := 0; j < k; j++ {
				weighted.Set(i, j, X.At(i, j)*w)
			}
			target.SetVec(i, y.AtVec(i)*w)
		}

		var next mat.VecDense
		if err := next.SolveVec(weighted, target); err != nil {
			return &beta, false
		}
		delta := 0.0
		for j := 0; j < k; j++ {
			delta = math.Max(delta, math.Abs(next.AtVec(j)-beta.AtVec(j)))
		}
		beta.CopyVec(&next)
		if delta < qrTolerance {
			return &beta, true
		}
	}
	return &beta, false
}
