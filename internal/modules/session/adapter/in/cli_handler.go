package in

import (
	"context"
	"time"

	"studia/internal/modules/session/dto"
	sessionin "studia/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, date time.Time, durationMin int, tag string) (dto.RecordOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Date: date, DurationMin: durationMin, Tag: tag})
}

func (h CLIHandler) List(ctx context.Context, from, to time.Time, tag string) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{From: from, To: to, Tag: tag})
}

func (h CLIHandler) ImportCSV(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.ImportCSV(ctx, dto.ImportInput{Path: path})
}
