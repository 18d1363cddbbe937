package usecase

import (
	"context"
	"fmt"
	"os"

	"studia/internal/modules/session/domain"
	"studia/internal/modules/session/dto"
	sessionin "studia/internal/modules/session/port/in"
	"studia/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.RecordOutput, error) {
	record, err := i.svc.Add(ctx, input.Date, input.DurationMin, input.Tag)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toOutput(record), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.RecordOutput, error) {
	records, err := i.svc.List(ctx, input.From, input.To, input.Tag)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, toOutput(record))
	}
	return outputs, nil
}

func (i *Interactor) ImportCSV(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	f, err := os.Open(input.Path)
	if err != nil {
		return dto.ImportOutput{}, fmt.Errorf("open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	imported, skipped, err := i.svc.ImportCSV(ctx, f)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{Imported: imported, Skipped: skipped}, nil
}

func toOutput(record domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		ID:          record.ID,
		Date:        record.Date,
		DurationMin: record.DurationMin,
		Tag:         record.Tag,
	}
}
