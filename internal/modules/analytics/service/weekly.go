package service

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"studia/internal/modules/analytics/domain"
)

const minFullWeeks = 4

// runWeeklyAggregation resamples the daily series into weeks ending Sunday
// and reports per-week totals, active days and efficiency. Partial weeks at
// either edge are dropped; at least four full weeks are required.
func runWeeklyAggregation(series domain.DailySeries, _ domain.Params) domain.Result {
	type week struct {
		end        time.Time
		total      float64
		activeDays float64
	}

	var weeks []week
	var current *week
	for i, v := range series.Minutes {
		date := series.Date(i)
		if current == nil {
			// start collecting at the first Monday so every week is full
			if date.Weekday() != time.Monday {
				continue
			}
			weeks = append(weeks, week{})
			current = &weeks[len(weeks)-1]
		}
		current.total += v
		if v > 0 {
			current.activeDays++
		}
		if date.Weekday() == time.Sunday {
			current.end = date
			current = nil
		}
	}
	// trailing partial week never had its Sunday
	if current != nil {
		weeks = weeks[:len(weeks)-1]
	}

	if len(weeks) < minFullWeeks {
		return domain.Result{
			Kind:   domain.KindWeeklyAggregation,
			Status: domain.StatusInsufficientData,
			Reason: "Not enough full weeks for weekly aggregation",
		}
	}

	x := make([]float64, len(weeks))
	totals := make([]float64, len(weeks))
	active := make([]float64, len(weeks))
	efficiency := make([]float64, len(weeks))
	lines := make([]string, 0, len(weeks))
	for i, w := range weeks {
		x[i] = float64(i)
		totals[i] = w.total
		active[i] = w.activeDays
		efficiency[i] = safeRatio(w.total, w.activeDays)
		lines = append(lines, fmt.Sprintf("week ending %s: %.0f min over %.0f active days",
			w.end.Format("2006-01-02"), w.total, w.activeDays))
	}

	payload := &domain.Payload{
		Series: []domain.NamedSeries{
			{Name: "weekly total", X: x, Y: totals},
			{Name: "active days", X: x, Y: active},
			{Name: "minutes per active day", X: x, Y: efficiency},
		},
		Points: []domain.LabeledPoint{
			{Label: "weeks", Value: float64(len(weeks))},
			{Label: "mean weekly total", Value: stat.Mean(totals, nil)},
			{Label: "total vs active days r", Value: stat.Correlation(totals, active, nil)},
		},
		Lines: lines,
	}
	return domain.Result{Kind: domain.KindWeeklyAggregation, Status: domain.StatusOK, Payload: payload}
}
