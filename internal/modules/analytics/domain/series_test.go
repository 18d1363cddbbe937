package domain_test

import (
	"testing"
	"time"

	"studia/internal/modules/analytics/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPrepareEmptyRecords(t *testing.T) {
	t.Parallel()
	series := domain.Prepare(nil, day(2026, 3, 10))
	if !series.Empty() {
		t.Fatalf("no records should give an empty series, got %d entries", series.Len())
	}
}

func TestPrepareDenseFillToAsOf(t *testing.T) {
	t.Parallel()
	records := []domain.Record{
		{Date: day(2026, 3, 1), Minutes: 30},
		{Date: day(2026, 3, 3), Minutes: 45},
	}
	series := domain.Prepare(records, day(2026, 3, 6))

	if got, want := series.Len(), 6; got != want {
		t.Fatalf("series length = %d, want %d", got, want)
	}
	want := []float64{30, 0, 45, 0, 0, 0}
	for i, v := range want {
		if series.Minutes[i] != v {
			t.Fatalf("minutes[%d] = %v, want %v", i, series.Minutes[i], v)
		}
	}
	if !series.Start.Equal(day(2026, 3, 1)) {
		t.Fatalf("start = %v, want first session date", series.Start)
	}
}

func TestPrepareNoDaysBeforeFirstSession(t *testing.T) {
	t.Parallel()
	records := []domain.Record{{Date: day(2026, 3, 5), Minutes: 20}}
	series := domain.Prepare(records, day(2026, 3, 7))

	if !series.Start.Equal(day(2026, 3, 5)) {
		t.Fatalf("start = %v, want 2026-03-05", series.Start)
	}
	if series.Len() != 3 {
		t.Fatalf("length = %d, want 3: the series begins at the first session", series.Len())
	}
}

func TestPrepareAsOfBeforeFirstClampsToSingleDay(t *testing.T) {
	t.Parallel()
	records := []domain.Record{{Date: day(2026, 3, 5), Minutes: 20}}
	series := domain.Prepare(records, day(2026, 3, 1))

	if series.Len() != 1 {
		t.Fatalf("length = %d, want 1", series.Len())
	}
	if series.Minutes[0] != 20 {
		t.Fatalf("minutes[0] = %v, want 20", series.Minutes[0])
	}
}

func TestPrepareSumsSameDayAndIgnoresOrder(t *testing.T) {
	t.Parallel()
	records := []domain.Record{
		{Date: day(2026, 3, 2), Minutes: 15},
		{Date: day(2026, 3, 1), Minutes: 10},
		{Date: time.Date(2026, 3, 2, 22, 30, 0, 0, time.UTC), Minutes: 25},
	}
	series := domain.Prepare(records, day(2026, 3, 2))

	if series.Len() != 2 {
		t.Fatalf("length = %d, want 2", series.Len())
	}
	if series.Minutes[1] != 40 {
		t.Fatalf("same-day records should sum, got %v", series.Minutes[1])
	}
}

func TestPrepareDeterministic(t *testing.T) {
	t.Parallel()
	records := []domain.Record{
		{Date: day(2026, 3, 1), Minutes: 30},
		{Date: day(2026, 3, 4), Minutes: 60},
	}
	a := domain.Prepare(records, day(2026, 3, 9))
	b := domain.Prepare(records, day(2026, 3, 9))

	if a.Len() != b.Len() || !a.Start.Equal(b.Start) {
		t.Fatalf("repeated preparation disagreed: %v vs %v", a, b)
	}
	for i := range a.Minutes {
		if a.Minutes[i] != b.Minutes[i] {
			t.Fatalf("minutes[%d] differ: %v vs %v", i, a.Minutes[i], b.Minutes[i])
		}
	}
}

func TestSeriesDate(t *testing.T) {
	t.Parallel()
	series := domain.DailySeries{Start: day(2026, 3, 1), Minutes: make([]float64, 5)}
	if got := series.Date(3); !got.Equal(day(2026, 3, 4)) {
		t.Fatalf("date(3) = %v, want 2026-03-04", got)
	}
}
