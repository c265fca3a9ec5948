package domain

import (
	"fmt"
	"time"
)

// Jump is a user-owned playback directive for one track: when playback
// reaches TriggerMs, it moves to TargetMs. ID, OwnerID, TrackID and
// CreatedAt are immutable after creation.
type Jump struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	TrackID     string    `json:"songId"`
	TriggerMs   int       `json:"trigger"`
	TargetMs    int       `json:"target"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the invariants that hold independently of any track
// metadata: both offsets must be non-negative integers.
func (j Jump) Validate() error {
	if j.TriggerMs < 0 {
		return fmt.Errorf("domain: trigger must be non-negative, got %d", j.TriggerMs)
	}
	if j.TargetMs < 0 {
		return fmt.Errorf("domain: target must be non-negative, got %d", j.TargetMs)
	}
	return nil
}

// ValidateBounds checks both offsets against the track duration supplied by
// the caller. Violations surface as *RangeError naming the failing field.
func (j Jump) ValidateBounds(durationMs int) error {
	if err := ValidateOffset("trigger", j.TriggerMs, durationMs); err != nil {
		return err
	}
	return ValidateOffset("target", j.TargetMs, durationMs)
}

// ValidateOffset enforces 0 <= ms < durationMs for a single named field.
func ValidateOffset(field string, ms int, durationMs int) error {
	if ms < 0 || ms >= durationMs {
		return &RangeError{Field: field, ValueMs: ms, DurationMs: durationMs}
	}
	return nil
}
