package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	out "studia/internal/modules/session/adapter/out"
	"studia/internal/modules/session/domain"
)

func newStore(t *testing.T) *out.SQLiteRecordStore {
	t.Helper()
	store, err := out.NewSQLiteRecordStore(filepath.Join(t.TempDir(), "studia.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSaveAndListRoundTrip(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	records := []domain.Record{
		{ID: "r1", Date: day(2026, 3, 1), DurationMin: 30, Tag: "math"},
		{ID: "r2", Date: day(2026, 3, 3), DurationMin: 45},
		{ID: "r3", Date: day(2026, 3, 5), DurationMin: 20, Tag: "math"},
	}
	if err := store.UpsertTag(ctx, domain.Tag{Name: "math"}); err != nil {
		t.Fatalf("upsert tag: %v", err)
	}
	for _, r := range records {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	got, err := store.List(ctx, time.Time{}, day(2026, 3, 31), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("listed %d records, want 3", len(got))
	}
	if got[0].ID != "r1" || got[2].ID != "r3" {
		t.Fatalf("records out of date order: %v", got)
	}
	if !got[1].Date.Equal(day(2026, 3, 3)) {
		t.Fatalf("date round trip broke: %v", got[1].Date)
	}
	if got[1].Tag != "" {
		t.Fatalf("untagged record came back with tag %q", got[1].Tag)
	}
}

func TestListRangeAndTagFilter(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	_ = store.UpsertTag(ctx, domain.Tag{Name: "math"})
	_ = store.UpsertTag(ctx, domain.Tag{Name: "piano"})
	seed := []domain.Record{
		{ID: "a", Date: day(2026, 3, 1), DurationMin: 10, Tag: "math"},
		{ID: "b", Date: day(2026, 3, 5), DurationMin: 20, Tag: "piano"},
		{ID: "c", Date: day(2026, 3, 9), DurationMin: 30, Tag: "math"},
	}
	for _, r := range seed {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	ranged, err := store.List(ctx, day(2026, 3, 2), day(2026, 3, 8), "")
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != "b" {
		t.Fatalf("ranged = %v, want only b", ranged)
	}

	tagged, err := store.List(ctx, time.Time{}, day(2026, 3, 31), "math")
	if err != nil {
		t.Fatalf("list tagged: %v", err)
	}
	if len(tagged) != 2 {
		t.Fatalf("tagged = %d records, want 2", len(tagged))
	}
}

func TestSaveUpsertsByID(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.Record{ID: "r1", Date: day(2026, 3, 1), DurationMin: 30}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, domain.Record{ID: "r1", Date: day(2026, 3, 1), DurationMin: 55}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := store.List(ctx, time.Time{}, day(2026, 3, 31), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].DurationMin != 55 {
		t.Fatalf("upsert by id failed: %v", got)
	}
}

func TestListTags(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	_ = store.UpsertTag(ctx, domain.Tag{Name: "piano", Category: "music"})
	_ = store.UpsertTag(ctx, domain.Tag{Name: "math"})
	_ = store.UpsertTag(ctx, domain.Tag{Name: "piano", Category: "practice"})

	tags, err := store.ListTags(ctx)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("tags = %v, want 2 distinct names", tags)
	}
	if tags[1].Name != "piano" || tags[1].Category != "practice" {
		t.Fatalf("upsert should replace the category: %v", tags)
	}
}
