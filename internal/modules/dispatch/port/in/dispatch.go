package in

import (
	"context"

	analyticsdto "studia/internal/modules/analytics/dto"
	"studia/internal/modules/dispatch/dto"
)

type Coordinator interface {
	// Submit schedules a computation for the slot and returns its freshness
	// token immediately. An older in-flight computation for the same slot is
	// left to finish and discarded on arrival if stale.
	Submit(ctx context.Context, slotID string, input analyticsdto.AnalyzeInput) (uint64, error)

	// Poll returns the slot's last accepted result, or ErrNoCurrentResult
	// while the freshest request is still computing and nothing older was
	// accepted.
	Poll(slotID string) (dto.Envelope, error)

	// Busy reports whether the slot has an in-flight request newer than the
	// last accepted result.
	Busy(slotID string) bool

	Close()
}
