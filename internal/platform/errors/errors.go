package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownModelKind = errors.New("unknown model kind")
	ErrNoCurrentResult  = errors.New("no current result")
	ErrCoordinatorDown  = errors.New("coordinator is closed")
)
