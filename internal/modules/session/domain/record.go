package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studia/internal/platform/errors"
)

// Record is one logged study session, collapsed to its calendar day. Records
// are immutable once stored; the analytics module only ever reads ranges of
// them.
type Record struct {
	ID          string
	Date        time.Time
	DurationMin int
	Tag         string
}

func (r Record) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: record date is required", apperrors.ErrInvalidInput)
	}
	if r.DurationMin < 0 {
		return fmt.Errorf("%w: duration must be non-negative, got %d", apperrors.ErrInvalidInput, r.DurationMin)
	}
	return nil
}

type Tag struct {
	Name     string
	Category string
}

func (t Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tag name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// Day normalizes a timestamp to midnight UTC so every record addresses
// exactly one calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
