package service

import (
	"fmt"
	"math"

	"studia/internal/modules/analytics/domain"
)

const lowConfidenceHedge = "Data is limited, so treat this cautiously: "

// Explain renders a short deterministic summary of a result. One sentence
// template per (kind, status); the headline payload figure is interpolated
// and a hedge clause is prepended when confidence is low.
func Explain(result domain.Result, confidence domain.Confidence) string {
	var body string
	switch result.Status {
	case domain.StatusInsufficientData:
		return fmt.Sprintf("%s. Log more sessions and try again.", result.Reason)
	case domain.StatusError:
		return fmt.Sprintf("The %s procedure could not complete: %s.", result.Kind.ShortName(), result.Reason)
	default:
		body = explainOK(result)
	}

	if confidence.Label == "low" {
		return lowConfidenceHedge + body
	}
	return body
}

func explainOK(result domain.Result) string {
	points := pointIndex(result)
	switch result.Kind {
	case domain.KindOverviewCorrelation:
		lag := points["top lag"]
		r := points["top lag correlation"]
		if lag == 0 || math.IsNaN(r) {
			return "No meaningful day-to-day carryover was found in your study time."
		}
		return fmt.Sprintf("Your study time correlates most with itself %s earlier (r=%.2f): %s tend to cluster.",
			pluralDays(int(lag)), r, direction(r))
	case domain.KindPartialLeastSquares:
		return fmt.Sprintf("A two-component PLS fit explains %.0f%% of the variation in daily minutes.", 100*points["R²"])
	case domain.KindVARImpulseResponse:
		return fmt.Sprintf("After a one-minute shock, effects decay over about %d days (one-step R²=%.2f).",
			irfHorizon, points["R² (minutes equation)"])
	case domain.KindHiddenMarkovStates:
		return fmt.Sprintf("Two regimes were inferred, averaging %.0f and %.0f minutes per day; today the high regime has probability %.2f.",
			points["low regime mean"], points["high regime mean"], points["P(high) today"])
	case domain.KindWeeklyAggregation:
		return fmt.Sprintf("Across %.0f full weeks you averaged %.0f minutes per week.",
			points["weeks"], points["mean weekly total"])
	case domain.KindCrossCorrelation:
		return fmt.Sprintf("The strongest lagged relationship sits at lag %.0f (r=%.2f).",
			points["strongest lag"], points["strongest correlation"])
	case domain.KindEventStudy:
		return fmt.Sprintf("Found %.0f days where you crossed %.0f minutes after a quieter day; the payload shows the surrounding pattern.",
			points["events"], points["threshold"])
	case domain.KindQuantileRegression:
		slope := points["median trend slope"]
		return fmt.Sprintf("Your median day has %s by about %.0f minutes over the whole period.",
			trendWord(slope), math.Abs(slope))
	default:
		return "Analysis complete."
	}
}

func pointIndex(result domain.Result) map[string]float64 {
	points := make(map[string]float64)
	if result.Payload == nil {
		return points
	}
	for _, p := range result.Payload.Points {
		points[p.Label] = p.Value
	}
	return points
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func direction(r float64) string {
	if r >= 0 {
		return "productive streaks"
	}
	return "alternating highs and lows"
}

func trendWord(slope float64) string {
	if slope >= 0 {
		return "grown"
	}
	return "shrunk"
}
