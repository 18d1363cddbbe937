package out

import (
	"context"
	"time"

	"studia/internal/modules/analytics/domain"
	analyticsout "studia/internal/modules/analytics/port/out"
	sessiondto "studia/internal/modules/session/dto"
	sessionin "studia/internal/modules/session/port/in"
)

// SessionSource narrows the session module's records to the date+minutes
// shape the analytics core reads.
type SessionSource struct {
	sessions sessionin.Usecase
}

func NewSessionSource(sessions sessionin.Usecase) analyticsout.RecordSource {
	return &SessionSource{sessions: sessions}
}

func (s *SessionSource) Records(ctx context.Context, tag string) ([]domain.Record, error) {
	outputs, err := s.sessions.List(ctx, sessiondto.ListInput{To: farFuture(), Tag: tag})
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(outputs))
	for _, o := range outputs {
		records = append(records, domain.Record{Date: o.Date, Minutes: float64(o.DurationMin)})
	}
	return records, nil
}

func farFuture() time.Time {
	return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}
