package out

import (
	"context"
	"time"

	"studia/internal/modules/session/domain"
)

type RecordStore interface {
	Save(ctx context.Context, record domain.Record) error
	List(ctx context.Context, from, to time.Time, tag string) ([]domain.Record, error)
	UpsertTag(ctx context.Context, tag domain.Tag) error
	ListTags(ctx context.Context) ([]domain.Tag, error)
}
