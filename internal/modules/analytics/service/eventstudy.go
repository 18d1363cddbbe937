package service

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"studia/internal/modules/analytics/domain"
)

// runEventStudy averages minutes around "event" days. An event is an onset:
// a day at or above the threshold whose previous day was below it. The
// payload is the mean and standard error per day offset in [-Window, Window].
func runEventStudy(series domain.DailySeries, params domain.Params) domain.Result {
	minutes := series.Minutes
	window := params.Window

	var events []int
	for i := 1; i < len(minutes); i++ {
		if minutes[i] >= params.Threshold && minutes[i-1] < params.Threshold {
			events = append(events, i)
		}
	}
	if len(events) == 0 {
		return domain.Result{
			Kind:   domain.KindEventStudy,
			Status: domain.StatusInsufficientData,
			Reason: "No qualifying event days",
		}
	}

	offsets := make([]float64, 0, 2*window+1)
	means := make([]float64, 0, 2*window+1)
	ses := make([]float64, 0, 2*window+1)
	for offset := -window; offset <= window; offset++ {
		var sample []float64
		for _, e := range events {
			if i := e + offset; i >= 0 && i < len(minutes) {
				sample = append(sample, minutes[i])
			}
		}
		offsets = append(offsets, float64(offset))
		if len(sample) == 0 {
			means = append(means, math.NaN())
			ses = append(ses, math.NaN())
			continue
		}
		means = append(means, stat.Mean(sample, nil))
		if len(sample) > 1 {
			ses = append(ses, stat.StdDev(sample, nil)/math.Sqrt(float64(len(sample))))
		} else {
			ses = append(ses, 0)
		}
	}

	payload := &domain.Payload{
		Series: []domain.NamedSeries{
			{Name: "mean minutes", X: offsets, Y: means},
			{Name: "standard error", X: offsets, Y: ses},
		},
		Points: []domain.LabeledPoint{
			{Label: "events", Value: float64(len(events))},
			{Label: "threshold", Value: params.Threshold},
		},
		Lines: []string{
			fmt.Sprintf("%d onset events at %.0f+ minutes, window ±%d days.", len(events), params.Threshold, window),
		},
	}
	return domain.Result{Kind: domain.KindEventStudy, Status: domain.StatusOK, Payload: payload}
}
