package usecase

import (
	"context"
	"log/slog"

	"studia/internal/modules/analytics/domain"
	"studia/internal/modules/analytics/dto"
	analyticsin "studia/internal/modules/analytics/port/in"
	analyticsout "studia/internal/modules/analytics/port/out"
	"studia/internal/modules/analytics/service"
	"studia/internal/platform/clock"
)

type Interactor struct {
	router *service.Router
	source analyticsout.RecordSource
	clock  clock.Clock
	log    *slog.Logger
}

func NewInteractor(router *service.Router, source analyticsout.RecordSource, clk clock.Clock, log *slog.Logger) analyticsin.Usecase {
	return &Interactor{router: router, source: source, clock: clk, log: log}
}

func (i *Interactor) Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.ResultOutput, error) {
	kind := domain.ModelKind(input.Kind)
	series := i.prepare(ctx, input)

	result := i.router.Run(ctx, kind, series, domain.Params{
		MaxLag:    input.MaxLag,
		Window:    input.Window,
		Threshold: input.Threshold,
		Quantiles: input.Quantiles,
	})
	confidence := domain.Score(series)
	result.Confidence = confidence
	result.Explanation = service.Explain(result, confidence)
	return toOutput(result), nil
}

func (i *Interactor) Kinds() []string {
	kinds := domain.Kinds()
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}

func (i *Interactor) PrepareSeries(ctx context.Context, input dto.AnalyzeInput) (dto.SeriesOutput, error) {
	series := i.prepare(ctx, input)
	return dto.SeriesOutput{Start: series.Start, Minutes: series.Minutes}, nil
}

// prepare builds the daily series. A failing record source is treated as an
// empty record set: the pipeline then reports insufficient data instead of
// propagating a storage fault to the rendering surface.
func (i *Interactor) prepare(ctx context.Context, input dto.AnalyzeInput) domain.DailySeries {
	records, err := i.source.Records(ctx, input.Tag)
	if err != nil {
		i.log.Warn("record source failed, treating as empty", "error", err)
		records = nil
	}
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = i.clock.Now()
	}
	return domain.Prepare(records, asOf)
}

func toOutput(result domain.Result) dto.ResultOutput {
	out := dto.ResultOutput{
		Kind:            string(result.Kind),
		Status:          string(result.Status),
		Reason:          result.Reason,
		Confidence:      result.Confidence.Value,
		ConfidenceLabel: result.Confidence.Label,
		Explanation:     result.Explanation,
		Warnings:        result.Warnings,
	}
	if result.Payload == nil {
		return out
	}
	for _, s := range result.Payload.Series {
		out.Series = append(out.Series, dto.NamedSeriesOutput{Name: s.Name, X: s.X, Y: s.Y})
	}
	for _, p := range result.Payload.Points {
		out.Points = append(out.Points, dto.PointOutput{Label: p.Label, Value: p.Value})
	}
	out.Lines = result.Payload.Lines
	return out
}
