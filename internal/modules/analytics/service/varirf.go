package service

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"studia/internal/modules/analytics/domain"
)

const irfHorizon = 10

// runVARImpulseResponse fits a bivariate VAR(p) on [minutes, 7-day mean] by
// equationwise least squares and traces impulse responses to a unit shock in
// minutes via the companion matrix.
func runVARImpulseResponse(series domain.DailySeries, params domain.Params) domain.Result {
	minutes := series.Minutes
	n := len(minutes)
	roll := rollingMean(minutes, 7)

	p := params.MaxLag
	if p > 5 {
		p = 5
	}
	for p > 1 && n-p < 2*p+3 {
		p--
	}

	rows := n - p
	k := 1 + 2*p
	xData := make([]float64, rows*k)
	yData := make([]float64, rows*2)
	for t := 0; t < rows; t++ {
		xData[t*k] = 1
		for lag := 1; lag <= p; lag++ {
			xData[t*k+1+2*(lag-1)] = minutes[t+p-lag]
			xData[t*k+2+2*(lag-1)] = roll[t+p-lag]
		}
		yData[t*2] = minutes[t+p]
		yData[t*2+1] = roll[t+p]
	}
	X := mat.NewDense(rows, k, xData)
	Y := mat.NewDense(rows, 2, yData)

	var beta mat.Dense
	if err := beta.Solve(X, Y); err != nil {
		return domain.Result{
			Kind:   domain.KindVARImpulseResponse,
			Status: domain.StatusError,
			Reason: fmt.Sprintf("VAR fit failed: singular design (%v)", err),
		}
	}

	// companion form: top block rows hold A_1..A_p, shifted identity below
	dim := 2 * p
	companion := mat.NewDense(dim, dim, nil)
	for lag := 1; lag <= p; lag++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				companion.Set(i, 2*(lag-1)+j, beta.At(1+2*(lag-1)+j, i))
			}
		}
	}
	for i := 2; i < dim; i++ {
		companion.Set(i, i-2, 1)
	}

	var warnings []string
	radius := math.NaN()
	var eig mat.Eigen
	if eig.Factorize(companion, mat.EigenNone) {
		for _, v := range eig.Values(nil) {
			if r := cmplx.Abs(v); math.IsNaN(radius) || r > radius {
				radius = r
			}
		}
		if radius >= 1 {
			warnings = append(warnings, fmt.Sprintf("VAR is unstable (spectral radius %.3f), impulse responses may diverge", radius))
		}
	} else {
		warnings = append(warnings, "eigenvalue computation failed, stability unknown")
	}

	// unit impulse on minutes, propagated through the companion matrix
	state := mat.NewVecDense(dim, nil)
	state.SetVec(0, 1)
	horizons := make([]float64, irfHorizon+1)
	respMinutes := make([]float64, irfHorizon+1)
	respRoll := make([]float64, irfHorizon+1)
	for h := 0; h <= irfHorizon; h++ {
		horizons[h] = float64(h)
		respMinutes[h] = state.AtVec(0)
		respRoll[h] = state.AtVec(1)
		next := mat.NewVecDense(dim, nil)
		next.MulVec(companion, state)
		state = next
	}

	// one-step fit quality for the minutes equation
	var fitted mat.Dense
	fitted.Mul(X, &beta)
	ssr, sst := 0.0, 0.0
	meanY := 0.0
	for t := 0; t < rows; t++ {
		meanY += Y.At(t, 0)
	}
	meanY /= float64(rows)
	for t := 0; t < rows; t++ {
		ssr += math.Pow(Y.At(t, 0)-fitted.At(t, 0), 2)
		sst += math.Pow(Y.At(t, 0)-meanY, 2)
	}
	r2 := 1 - safeRatio(ssr, sst)

	payload := &domain.Payload{
		Series: []domain.NamedSeries{
			{Name: "minutes → minutes", X: horizons, Y: respMinutes},
			{Name: "minutes → 7-day mean", X: horizons, Y: respRoll},
		},
		Points: []domain.LabeledPoint{
			{Label: "lag order", Value: float64(p)},
			{Label: "R² (minutes equation)", Value: r2},
			{Label: "spectral radius", Value: radius},
		},
		Lines: []string{
			fmt.Sprintf("VAR(%d) impulse response to a 1-minute shock, %d-day horizon.", p, irfHorizon),
		},
	}
	status := domain.StatusOK
	if len(warnings) > 0 {
		status = domain.StatusOKWithWarning
	}
	return domain.Result{Kind: domain.KindVARImpulseResponse, Status: status, Payload: payload, Warnings: warnings}
}
