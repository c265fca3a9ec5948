package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a record does not exist or is not visible to the caller.
var ErrNotFound = errors.New("domain: not found")

// FormatError reports a time code string that does not match M:SS.S.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time code %q: must be in format M:SS.S", e.Input)
}

// RangeError reports a jump offset outside the playable window of a track.
// Field is "trigger" or "target" so callers can highlight the failing input.
type RangeError struct {
	Field      string
	ValueMs    int
	DurationMs int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s time %dms must be between 0ms and %dms (exclusive)", e.Field, e.ValueMs, e.DurationMs)
}
