package out

import (
	"context"

	"studia/internal/modules/analytics/domain"
)

// RecordSource supplies the dated session records an analysis reads. The
// session module owns the records; this port narrows them to date+minutes.
type RecordSource interface {
	Records(ctx context.Context, tag string) ([]domain.Record, error)
}
