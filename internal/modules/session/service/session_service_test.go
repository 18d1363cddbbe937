package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"studia/internal/modules/session/domain"
	"studia/internal/modules/session/service"
)

type fakeStore struct {
	records []domain.Record
	tags    []domain.Tag
}

func (f *fakeStore) Save(_ context.Context, record domain.Record) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeStore) List(_ context.Context, from, to time.Time, tag string) ([]domain.Record, error) {
	var out []domain.Record
	for _, r := range f.records {
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if r.Date.After(to) {
			continue
		}
		if tag != "" && r.Tag != tag {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) UpsertTag(_ context.Context, tag domain.Tag) error {
	f.tags = append(f.tags, tag)
	return nil
}

func (f *fakeStore) ListTags(context.Context) ([]domain.Tag, error) {
	return f.tags, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newService(store *fakeStore, now time.Time) *service.SessionService {
	return service.NewSessionService(fixedClock{now: now}, &seqID{}, store)
}

func TestAddNormalizesToMidnight(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newService(store, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	record, err := svc.Add(context.Background(), time.Date(2026, 3, 5, 22, 45, 0, 0, time.UTC), 40, "math")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	want := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if !record.Date.Equal(want) {
		t.Fatalf("date = %v, want midnight %v", record.Date, want)
	}
	if record.ID == "" {
		t.Fatalf("record should get an id")
	}
	if len(store.tags) != 1 || store.tags[0].Name != "math" {
		t.Fatalf("tag should be upserted, got %v", store.tags)
	}
}

func TestAddDefaultsToClock(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc := newService(&fakeStore{}, now)

	record, err := svc.Add(context.Background(), time.Time{}, 25, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !record.Date.Equal(domain.Day(now)) {
		t.Fatalf("date = %v, want today", record.Date)
	}
}

func TestAddRejectsNegativeDuration(t *testing.T) {
	t.Parallel()
	svc := newService(&fakeStore{}, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	if _, err := svc.Add(context.Background(), time.Time{}, -5, ""); err == nil {
		t.Fatalf("negative duration should fail")
	}
}

func TestListDefaultsToToday(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	store := &fakeStore{records: []domain.Record{
		{ID: "a", Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), DurationMin: 30},
		{ID: "b", Date: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), DurationMin: 30},
	}}
	svc := newService(store, now)

	records, err := svc.List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != "a" {
		t.Fatalf("records = %v, want only those up to today", records)
	}
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newService(store, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	csvData := strings.Join([]string{
		"date,minutes,tag",
		"2026-03-01,30,math",
		"2026-03-02,not-a-number",
		"2026-03-03,45",
		"garbage",
		"2026-03-04,-10",
	}, "\n")

	imported, skipped, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 2 {
		t.Fatalf("imported = %d, want 2", imported)
	}
	if skipped != 4 {
		t.Fatalf("skipped = %d, want header + 3 bad rows", skipped)
	}
	if len(store.records) != 2 {
		t.Fatalf("stored = %d records", len(store.records))
	}
}
