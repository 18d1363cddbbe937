package out

import (
	"context"

	analyticsdto "studia/internal/modules/analytics/dto"
)

// Analyzer is the unit of work the coordinator schedules: the full analytics
// pipeline behind one call.
type Analyzer interface {
	Analyze(ctx context.Context, input analyticsdto.AnalyzeInput) (analyticsdto.ResultOutput, error)
}
