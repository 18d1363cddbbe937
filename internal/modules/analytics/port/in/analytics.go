package in

import (
	"context"

	"studia/internal/modules/analytics/dto"
)

type Usecase interface {
	// Analyze runs the full pipeline: prepare series, route to the model,
	// score confidence, generate the explanation. Always returns a
	// well-formed result; adapter failures ride inside the Status field.
	Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.ResultOutput, error)

	// PrepareSeries exposes the daily feature series on its own, for
	// consumers that render the raw series.
	PrepareSeries(ctx context.Context, input dto.AnalyzeInput) (dto.SeriesOutput, error)

	// Kinds lists the supported analysis kinds in display order.
	Kinds() []string
}
