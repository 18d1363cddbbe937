package domain_test

import (
	"testing"
	"time"

	"studia/internal/modules/analytics/domain"
)

func flatSeries(n int, value float64) domain.DailySeries {
	minutes := make([]float64, n)
	for i := range minutes {
		minutes[i] = value
	}
	return domain.DailySeries{Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Minutes: minutes}
}

func variedSeries(n int) domain.DailySeries {
	s := flatSeries(n, 0)
	for i := range s.Minutes {
		s.Minutes[i] = float64(10 + (i%5)*7)
	}
	return s
}

func TestScoreEmptySeries(t *testing.T) {
	t.Parallel()
	c := domain.Score(domain.DailySeries{})
	if c.Value != 0 || c.Label != "low" {
		t.Fatalf("empty series should score 0/low, got %v/%s", c.Value, c.Label)
	}
}

func TestScoreForcedLowBelowSampleFloor(t *testing.T) {
	t.Parallel()
	c := domain.Score(variedSeries(domain.ConfidenceSampleFloor - 1))
	if c.Label != "low" {
		t.Fatalf("label = %s, want low for %d samples", c.Label, domain.ConfidenceSampleFloor-1)
	}
}

func TestScoreMonotonicInSampleCount(t *testing.T) {
	t.Parallel()
	prev := -1.0
	for _, n := range []int{1, 5, 10, 20, 30, 60} {
		c := domain.Score(variedSeries(n))
		if c.Value < prev {
			t.Fatalf("score dropped from %v to %v at n=%d", prev, c.Value, n)
		}
		prev = c.Value
	}
}

func TestScoreZeroVariancePenalty(t *testing.T) {
	t.Parallel()
	flat := domain.Score(flatSeries(30, 25))
	varied := domain.Score(variedSeries(30))
	if flat.Value >= varied.Value {
		t.Fatalf("constant series (%v) should score below a varied one (%v)", flat.Value, varied.Value)
	}
}

func TestScoreLongVariedSeriesIsHigh(t *testing.T) {
	t.Parallel()
	c := domain.Score(variedSeries(45))
	if c.Label != "high" {
		t.Fatalf("label = %s, want high", c.Label)
	}
}
