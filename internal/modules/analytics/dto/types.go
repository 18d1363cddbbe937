package dto

import "time"

// Kind names accepted by AnalyzeInput.Kind. The list mirrors the router's
// closed enum; unknown names come back as an error result.
const (
	KindOverviewCorrelation = "overview_correlation"
	KindPartialLeastSquares = "partial_least_squares"
	KindVARImpulseResponse  = "vector_autoregression_impulse_response"
	KindHiddenMarkovStates  = "hidden_markov_states"
	KindWeeklyAggregation   = "weekly_aggregation"
	KindCrossCorrelation    = "cross_correlation"
	KindEventStudy          = "event_study"
	KindQuantileRegression  = "quantile_regression"
)

type AnalyzeInput struct {
	Kind      string
	AsOf      time.Time
	Tag       string
	MaxLag    int
	Window    int
	Threshold float64
	Quantiles []float64
}

type SeriesOutput struct {
	Start   time.Time
	Minutes []float64
}

type NamedSeriesOutput struct {
	Name string
	X    []float64
	Y    []float64
}

type PointOutput struct {
	Label string
	Value float64
}

type ResultOutput struct {
	Kind            string
	Status          string
	Reason          string
	Series          []NamedSeriesOutput
	Points          []PointOutput
	Lines           []string
	Confidence      float64
	ConfidenceLabel string
	Explanation     string
	Warnings        []string
}
