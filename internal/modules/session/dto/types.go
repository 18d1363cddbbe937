package dto

import "time"

type AddInput struct {
	Date        time.Time
	DurationMin int
	Tag         string
}

type RecordOutput struct {
	ID          string
	Date        time.Time
	DurationMin int
	Tag         string
}

type ListInput struct {
	From time.Time
	To   time.Time
	Tag  string
}

type ImportInput struct {
	Path string
}

type ImportOutput struct {
	Imported int
	Skipped  int
}
