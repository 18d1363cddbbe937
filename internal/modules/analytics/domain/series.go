package domain

import "time"

// Record is the slice of a session record the analytics core reads: one
// calendar day and the minutes logged on it. The session module owns the full
// record; adapters narrow it to this shape.
type Record struct {
	Date    time.Time
	Minutes float64
}

// DailySeries is a dense daily time series of study minutes. Start is the
// earliest day with a recorded session; every day from Start to the requested
// as-of date is present, zero-filled when nothing was logged. Days before
// Start do not exist in the series at all: the user was not yet in the
// tracked population, which is a different fact than "studied zero minutes".
type DailySeries struct {
	Start   time.Time
	Minutes []float64
}

func (s DailySeries) Len() int { return len(s.Minutes) }

func (s DailySeries) Empty() bool { return len(s.Minutes) == 0 }

// Date returns the calendar day of entry i.
func (s DailySeries) Date(i int) time.Time {
	return s.Start.AddDate(0, 0, i)
}

// Prepare builds the daily series from raw records up to asOf inclusive.
// Records may be empty, unsorted, or share a date (durations are summed).
// An asOf before the first recorded date clamps to a single-entry series for
// that first date. Pure function; the result is owned by the caller.
func Prepare(records []Record, asOf time.Time) DailySeries {
	if len(records) == 0 {
		return DailySeries{}
	}

	byDay := make(map[time.Time]float64, len(records))
	first := time.Time{}
	for _, record := range records {
		day := midnight(record.Date)
		byDay[day] += record.Minutes
		if first.IsZero() || day.Before(first) {
			first = day
		}
	}

	last := midnight(asOf)
	if last.Before(first) {
		last = first
	}
	days := int(last.Sub(first).Hours()/24) + 1

	minutes := make([]float64, days)
	for i := range minutes {
		minutes[i] = byDay[first.AddDate(0, 0, i)]
	}
	return DailySeries{Start: first, Minutes: minutes}
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
