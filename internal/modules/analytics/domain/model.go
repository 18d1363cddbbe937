package domain

import (
	"fmt"

	apperrors "studia/internal/platform/errors"
)

// ModelKind enumerates the statistical procedures the router can dispatch to.
// The set is closed: adding a kind means adding an adapter, a floor, a short
// name and a router case together.
type ModelKind string

const (
	KindOverviewCorrelation ModelKind = "overview_correlation"
	KindPartialLeastSquares ModelKind = "partial_least_squares"
	KindVARImpulseResponse  ModelKind = "vector_autoregression_impulse_response"
	KindHiddenMarkovStates  ModelKind = "hidden_markov_states"
	KindWeeklyAggregation   ModelKind = "weekly_aggregation"
	KindCrossCorrelation    ModelKind = "cross_correlation"
	KindEventStudy          ModelKind = "event_study"
	KindQuantileRegression  ModelKind = "quantile_regression"
)

func Kinds() []ModelKind {
	return []ModelKind{
		KindOverviewCorrelation,
		KindPartialLeastSquares,
		KindVARImpulseResponse,
		KindHiddenMarkovStates,
		KindWeeklyAggregation,
		KindCrossCorrelation,
		KindEventStudy,
		KindQuantileRegression,
	}
}

func (k ModelKind) Validate() error {
	switch k {
	case KindOverviewCorrelation, KindPartialLeastSquares, KindVARImpulseResponse,
		KindHiddenMarkovStates, KindWeeklyAggregation, KindCrossCorrelation,
		KindEventStudy, KindQuantileRegression:
		return nil
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownModelKind, k)
	}
}

// Floor is the minimum series length for the procedure to be meaningful.
func (k ModelKind) Floor() int {
	switch k {
	case KindOverviewCorrelation:
		return 3
	case KindCrossCorrelation:
		return 5
	case KindEventStudy:
		return 7
	case KindPartialLeastSquares:
		return 10
	case KindHiddenMarkovStates:
		return 14
	case KindQuantileRegression:
		return 20
	case KindWeeklyAggregation:
		return 28
	case KindVARImpulseResponse:
		return 30
	default:
		return 0
	}
}

// ShortName is the human-readable procedure name used in reason strings and
// explanations.
func (k ModelKind) ShortName() string {
	switch k {
	case KindOverviewCorrelation:
		return "overview correlation"
	case KindPartialLeastSquares:
		return "PLS"
	case KindVARImpulseResponse:
		return "VAR/IRF"
	case KindHiddenMarkovStates:
		return "HMM state inference"
	case KindWeeklyAggregation:
		return "weekly aggregation"
	case KindCrossCorrelation:
		return "cross-correlation"
	case KindEventStudy:
		return "event study"
	case KindQuantileRegression:
		return "quantile regression"
	default:
		return string(k)
	}
}

// InsufficientReason is the fixed-vocabulary failure string for a series
// below the kind's floor.
func (k ModelKind) InsufficientReason() string {
	return "Not enough data for " + k.ShortName()
}

// ParamBounds mirrors the configuration surface: invalid parameter values are
// clamped to the nearest bound rather than rejected, so the interactive
// surface stays responsive to live edits.
type ParamBounds struct {
	MinLag       int
	MaxLag       int
	MinWindow    int
	MaxWindow    int
	MinThreshold float64
}

func DefaultBounds() ParamBounds {
	return ParamBounds{MinLag: 1, MaxLag: 28, MinWindow: 2, MaxWindow: 14, MinThreshold: 1}
}

// Params carries the kind-specific tuning knobs. Zero values mean "use the
// default"; Clamp resolves both defaults and out-of-range edits.
type Params struct {
	MaxLag    int
	Window    int
	Threshold float64
	Quantiles []float64
}

func (p Params) Clamp(b ParamBounds) Params {
	if p.MaxLag == 0 {
		p.MaxLag = 7
	}
	if p.MaxLag < b.MinLag {
		p.MaxLag = b.MinLag
	}
	if p.MaxLag > b.MaxLag {
		p.MaxLag = b.MaxLag
	}

	if p.Window == 0 {
		p.Window = 3
	}
	if p.Window < b.MinWindow {
		p.Window = b.MinWindow
	}
	if p.Window > b.MaxWindow {
		p.Window = b.MaxWindow
	}

	if p.Threshold == 0 {
		p.Threshold = 30
	}
	if p.Threshold < b.MinThreshold {
		p.Threshold = b.MinThreshold
	}

	if len(p.Quantiles) == 0 {
		p.Quantiles = []float64{0.25, 0.5, 0.75}
	}
	cleaned := p.Quantiles[:0:0]
	for _, q := range p.Quantiles {
		if q <= 0 {
			q = 0.05
		}
		if q >= 1 {
			q = 0.95
		}
		cleaned = append(cleaned, q)
	}
	p.Quantiles = cleaned
	return p
}
