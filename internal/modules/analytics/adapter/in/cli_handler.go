package in

import (
	"context"

	"studia/internal/modules/analytics/dto"
	analyticsin "studia/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.ResultOutput, error) {
	return h.usecase.Analyze(ctx, input)
}

func (h CLIHandler) Kinds() []string {
	return h.usecase.Kinds()
}
