package usecase

import (
	"context"

	analyticsdto "studia/internal/modules/analytics/dto"
	dispatchin "studia/internal/modules/dispatch/port/in"
	"studia/internal/modules/dispatch/dto"
	"studia/internal/modules/dispatch/service"
)

type Interactor struct {
	coordinator *service.Coordinator
}

func NewInteractor(coordinator *service.Coordinator) dispatchin.Coordinator {
	return &Interactor{coordinator: coordinator}
}

func (i *Interactor) Submit(ctx context.Context, slotID string, input analyticsdto.AnalyzeInput) (uint64, error) {
	return i.coordinator.Submit(ctx, slotID, input)
}

func (i *Interactor) Poll(slotID string) (dto.Envelope, error) {
	return i.coordinator.Poll(slotID)
}

func (i *Interactor) Busy(slotID string) bool {
	return i.coordinator.Busy(slotID)
}

func (i *Interactor) Close() {
	i.coordinator.Close()
}
