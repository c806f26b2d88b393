package domain

import (
	"fmt"
	"time"
)

// AllowedDurations lists the interview lengths, in minutes, a slot may have.
var AllowedDurations = []int{30, 45, 60}

// Interval is the half-open time range [Start, Start+DurationMinutes).
type Interval struct {
	Start           time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// NewInterval returns an Interval starting at start and lasting durationMinutes.
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{Start: start, DurationMinutes: durationMinutes}
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return time.Duration(i.DurationMinutes) * time.Minute
}

// End returns the exclusive end instant.
func (i Interval) End() time.Time {
	return i.Start.Add(i.Duration())
}

// Validate checks the start is set and the duration is one of AllowedDurations.
func (i Interval) Validate() error {
	if i.Start.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInterval)
	}
	for _, d := range AllowedDurations {
		if i.DurationMinutes == d {
			return nil
		}
	}
	return fmt.Errorf("%w: duration must be one of %v minutes, got %d", ErrInvalidInterval, AllowedDurations, i.DurationMinutes)
}

// Overlaps reports whether a and b intersect. Intervals that only touch
// (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End()) && b.Start.Before(a.End())
}

// FindConflict returns the first non-cancelled slot in slots, other than
// excludeID, whose interval overlaps candidate. It returns nil when there is none.
func FindConflict(candidate Interval, slots []*Slot, excludeID string) *Slot {
	for _, s := range slots {
		if s == nil || s.Cancelled || (excludeID != "" && s.ID == excludeID) {
			continue
		}
		if Overlaps(candidate, s.Interval()) {
			return s
		}
	}
	return nil
}
