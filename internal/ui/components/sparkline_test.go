package components_test

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"studia/internal/ui/components"
)

func TestSparklineEmpty(t *testing.T) {
	t.Parallel()
	if got := components.Sparkline(nil, 20); got != "" {
		t.Fatalf("empty input should render nothing, got %q", got)
	}
	if got := components.Sparkline([]float64{1, 2}, 0); got != "" {
		t.Fatalf("zero width should render nothing, got %q", got)
	}
}

func TestSparklineRange(t *testing.T) {
	t.Parallel()
	got := components.Sparkline([]float64{0, 50, 100}, 10)
	if utf8.RuneCountInString(got) != 3 {
		t.Fatalf("short series keeps its length, got %q", got)
	}
	runes := []rune(got)
	if runes[0] != '▁' || runes[2] != '█' {
		t.Fatalf("extremes should hit the lowest and highest runes, got %q", got)
	}
}

func TestSparklineNaNGap(t *testing.T) {
	t.Parallel()
	got := components.Sparkline([]float64{1, math.NaN(), 3}, 10)
	if []rune(got)[1] != ' ' {
		t.Fatalf("NaN should render as a gap, got %q", got)
	}
}

func TestSparklineAllNaN(t *testing.T) {
	t.Parallel()
	got := components.Sparkline([]float64{math.NaN(), math.NaN()}, 10)
	if strings.TrimSpace(got) != "" {
		t.Fatalf("all-NaN series should render blank, got %q", got)
	}
}

func TestSparklineResamplesLongSeries(t *testing.T) {
	t.Parallel()
	values := make([]float64, 200)
	for i := range values {
		values[i] = float64(i)
	}
	got := components.Sparkline(values, 30)
	if utf8.RuneCountInString(got) != 30 {
		t.Fatalf("long series should resample to width, got %d runes", utf8.RuneCountInString(got))
	}
}
