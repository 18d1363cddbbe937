package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"studia/internal/modules/session/domain"
	sessionout "studia/internal/modules/session/port/out"
	"studia/internal/platform/clock"
	"studia/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.RecordStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.RecordStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

func (s *SessionService) Add(ctx context.Context, date time.Time, durationMin int, tag string) (domain.Record, error) {
	if date.IsZero() {
		date = s.clock.Now()
	}
	record := domain.Record{
		ID:          s.idGen.New(),
		Date:        domain.Day(date),
		DurationMin: durationMin,
		Tag:         tag,
	}
	if err := record.Validate(); err != nil {
		return domain.Record{}, err
	}
	if record.Tag != "" {
		if err := s.store.UpsertTag(ctx, domain.Tag{Name: record.Tag}); err != nil {
			return domain.Record{}, err
		}
	}
	if err := s.store.Save(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (s *SessionService) List(ctx context.Context, from, to time.Time, tag string) ([]domain.Record, error) {
	if to.IsZero() {
		to = domain.Day(s.clock.Now())
	}
	return s.store.List(ctx, from, to, tag)
}

// ImportCSV reads rows of the form date,minutes[,tag]. A header row is
// tolerated; malformed rows are skipped and counted rather than aborting the
// whole import.
func (s *SessionService) ImportCSV(ctx context.Context, r io.Reader) (imported, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	for {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return imported, skipped, fmt.Errorf("read csv: %w", readErr)
		}
		record, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		if _, err := s.Add(ctx, record.Date, record.DurationMin, record.Tag); err != nil {
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped, nil
}

func parseRow(row []string) (domain.Record, bool) {
	if len(row) < 2 {
		return domain.Record{}, false
	}
	date, err := time.Parse("2006-01-02", row[0])
	if err != nil {
		return domain.Record{}, false
	}
	minutes, err := strconv.Atoi(row[1])
	if err != nil || minutes < 0 {
		return domain.Record{}, false
	}
	tag := ""
	if len(row) > 2 {
		tag = row[2]
	}
	return domain.Record{Date: date, DurationMin: minutes, Tag: tag}, true
}
