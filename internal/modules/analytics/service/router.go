package service

import (
	"context"
	"fmt"
	"log/slog"

	"studia/internal/modules/analytics/domain"
)

// Router dispatches an analysis request to the procedure for its kind and
// normalizes the outcome. The dispatch is closed over the ModelKind
// enumeration; no fault from a procedure ever escapes the router. Panics and
// errors are converted into a Result with status "error".
type Router struct {
	bounds domain.ParamBounds
	log    *slog.Logger
}

func NewRouter(bounds domain.ParamBounds, log *slog.Logger) *Router {
	return &Router{bounds: bounds, log: log}
}

// Run executes one model procedure synchronously. The context is accepted so
// procedures can grow cancellation checkpoints; none polls it today.
func (r *Router) Run(_ context.Context, kind domain.ModelKind, series domain.DailySeries, params domain.Params) (result domain.Result) {
	if err := kind.Validate(); err != nil {
		return domain.Result{Kind: kind, Status: domain.StatusError, Reason: err.Error()}
	}

	if series.Len() < kind.Floor() {
		return domain.Insufficient(kind)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("model procedure panicked", "kind", kind, "panic", rec)
			result = domain.Result{
				Kind:   kind,
				Status: domain.StatusError,
				Reason: fmt.Sprintf("%s failed unexpectedly", kind.ShortName()),
			}
		}
	}()

	params = params.Clamp(r.bounds)

	switch kind {
	case domain.KindOverviewCorrelation:
		result = runOverviewCorrelation(series, params)
	case domain.KindPartialLeastSquares:
		result = runPartialLeastSquares(series, params)
	case domain.KindVARImpulseResponse:
		result = runVARImpulseResponse(series, params)
	case domain.KindHiddenMarkovStates:
		result = runHiddenMarkovStates(series, params)
	case domain.KindWeeklyAggregation:
		result = runWeeklyAggregation(series, params)
	case domain.KindCrossCorrelation:
		result = runCrossCorrelation(series, params)
	case domain.KindEventStudy:
		result = runEventStudy(series, params)
	case domain.KindQuantileRegression:
		result = runQuantileRegression(series, params)
	}

	for _, warning := range result.Warnings {
		r.log.Warn("model diagnostic", "kind", kind, "warning", warning)
	}
	return result
}
