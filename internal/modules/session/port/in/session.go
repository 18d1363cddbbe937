package in

import (
	"context"

	"studia/internal/modules/session/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.RecordOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.RecordOutput, error)
	ImportCSV(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
}
