package service

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"studia/internal/modules/analytics/domain"
)

const (
	hmmStates        = 2
	hmmMaxIterations = 50
	hmmTolerance     = 1e-6
	hmmMinVariance   = 1e-3
)

// runHiddenMarkovStates fits a two-state Gaussian HMM to daily minutes by EM
// and reports the regimes: per-state mean, occupancy, and the probability of
// the high-output regime per day.
func runHiddenMarkovStates(series domain.DailySeries, _ domain.Params) domain.Result {
	obs := series.Minutes
	n := len(obs)

	// median split initialization keeps the states identifiable
	sorted := append([]float64(nil), obs...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	var lowVals, highVals []float64
	for _, v := range obs {
		if v <= median {
			lowVals = append(lowVals, v)
		} else {
			highVals = append(highVals, v)
		}
	}
	means := [hmmStates]float64{clusterMean(lowVals, 0), clusterMean(highVals, median+1)}
	variances := [hmmStates]float64{clusterVariance(lowVals), clusterVariance(highVals)}
	trans := [hmmStates][hmmStates]float64{{0.8, 0.2}, {0.2, 0.8}}
	initial := [hmmStates]float64{0.5, 0.5}

	gamma := make([][hmmStates]float64, n)
	var warnings []string
	prevLogLik := math.Inf(-1)
	converged := false

	for iter := 0; iter < hmmMaxIterations; iter++ {
		// forward-backward with per-step scaling
		alpha := make([][hmmStates]float64, n)
		scale := make([]float64, n)
		for s := 0; s < hmmStates; s++ {
			alpha[0][s] = initial[s] * gaussian(obs[0], means[s], variances[s])
			scale[0] += alpha[0][s]
		}
		if scale[0] == 0 {
			scale[0] = math.SmallestNonzeroFloat64
		}
		for s := 0; s < hmmStates; s++ {
			alpha[0][s] /= scale[0]
		}
		for t := 1; t < n; t++ {
			for s := 0; s < hmmStates; s++ {
				sum := 0.0
				for prev := 0; prev < hmmStates; prev++ {
					sum += alpha[t-1][prev] * trans[prev][s]
				}
				alpha[t][s] = sum * gaussian(obs[t], means[s], variances[s])
				scale[t] += alpha[t][s]
			}
			if scale[t] == 0 {
				scale[t] = math.SmallestNonzeroFloat64
			}
			for s := 0; s < hmmStates; s++ {
				alpha[t][s] /= scale[t]
			}
		}

		beta := make([][hmmStates]float64, n)
		for s := 0; s < hmmStates; s++ {
			beta[n-1][s] = 1
		}
		for t := n - 2; t >= 0; t-- {
			for s := 0; s < hmmStates; s++ {
				sum := 0.0
				for next := 0; next < hmmStates; next++ {
					sum += trans[s][next] * gaussian(obs[t+1], means[next], variances[next]) * beta[t+1][next]
				}
				beta[t][s] = sum / scale[t+1]
			}
		}

		logLik := 0.0
		for t := 0; t < n; t++ {
			logLik += math.Log(scale[t])
			norm := 0.0
			for s := 0; s < hmmStates; s++ {
				gamma[t][s] = alpha[t][s] * beta[t][s]
				norm += gamma[t][s]
			}
			if norm > 0 {
				for s := 0; s < hmmStates; s++ {
					gamma[t][s] /= norm
				}
			}
		}

		// M step
		var xi [hmmStates][hmmStates]float64
		for t := 0; t < n-1; t++ {
			norm := 0.0
			var local [hmmStates][hmmStates]float64
			for s := 0; s < hmmStates; s++ {
				for next := 0; next < hmmStates; next++ {
					local[s][next] = alpha[t][s] * trans[s][next] *
						gaussian(obs[t+1], means[next], variances[next]) * beta[t+1][next]
					norm += local[s][next]
				}
			}
			if norm > 0 {
				for s := 0; s < hmmStates; s++ {
					for next := 0; next < hmmStates; next++ {
						xi[s][next] += local[s][next] / norm
					}
				}
			}
		}
		for s := 0; s < hmmStates; s++ {
			initial[s] = gamma[0][s]
			occupancy := 0.0
			for t := 0; t < n-1; t++ {
				occupancy += gamma[t][s]
			}
			if occupancy > 0 {
				for next := 0; next < hmmStates; next++ {
					trans[s][next] = xi[s][next] / occupancy
				}
			}
			weight, weightedSum := 0.0, 0.0
			for t := 0; t < n; t++ {
				weight += gamma[t][s]
				weightedSum += gamma[t][s] * obs[t]
			}
			if weight > 0 {
				means[s] = weightedSum / weight
				varSum := 0.0
				for t := 0; t < n; t++ {
					varSum += gamma[t][s] * math.Pow(obs[t]-means[s], 2)
				}
				variances[s] = varSum / weight
			}
			if variances[s] < hmmMinVariance {
				variances[s] = hmmMinVariance
			}
		}

		if math.Abs(logLik-prevLogLik) < hmmTolerance {
			converged = true
			break
		}
		prevLogLik = logLik
	}
	if !converged {
		warnings = append(warnings, fmt.Sprintf("EM did not converge in %d iterations, using best estimate", hmmMaxIterations))
	}

	// EM may have swapped the states; "high" is whichever mean is larger now
	high := 0
	if means[1] > means[0] {
		high = 1
	}

	x := make([]float64, n)
	probHigh := make([]float64, n)
	occupancy := [hmmStates]float64{}
	for t := 0; t < n; t++ {
		x[t] = float64(t)
		probHigh[t] = gamma[t][high]
		for s := 0; s < hmmStates; s++ {
			occupancy[s] += gamma[t][s]
		}
	}
	currentRegime := "low"
	if probHigh[n-1] >= 0.5 {
		currentRegime = "high"
	}

	payload := &domain.Payload{
		Series: []domain.NamedSeries{
			{Name: "P(high regime)", X: x, Y: probHigh},
		},
		Points: []domain.LabeledPoint{
			{Label: "low regime mean", Value: means[1-high]},
			{Label: "high regime mean", Value: means[high]},
			{Label: "high regime share", Value: occupancy[high] / float64(n)},
			{Label: "P(high) today", Value: probHigh[n-1]},
		},
		Lines: []string{
			fmt.Sprintf("Current regime: %s (%.0f vs %.0f min/day).", currentRegime, means[1-high], means[high]),
		},
	}
	status := domain.StatusOK
	if len(warnings) > 0 {
		status = domain.StatusOKWithWarning
	}
	return domain.Result{Kind: domain.KindHiddenMarkovStates, Status: status, Payload: payload, Warnings: warnings}
}

func gaussian(x, mean, variance float64) float64 {
	if variance <= 0 {
		variance = hmmMinVariance
	}
	return math.Exp(-math.Pow(x-mean, 2)/(2*variance)) / math.Sqrt(2*math.Pi*variance)
}

func clusterMean(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	return stat.Mean(values, nil)
}

func clusterVariance(values []float64) float64 {
	if len(values) < 2 {
		return 1
	}
	if v := stat.Variance(values, nil); v > hmmMinVariance {
		return v
	}
	return hmmMinVariance
}
