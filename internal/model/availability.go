package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAvailability is returned when an AvailabilityList is constructed
// from ranges that are unsorted or overlapping. Availability lists are only
// ever built internally from operating hours, so hitting this error means
// the caller has a bug, not that a request was malformed.
var ErrInvalidAvailability = errors.New("availability ranges must be sorted and non-overlapping")

// AvailabilityList holds the free time for a single seat as an ordered,
// non-overlapping sequence of ranges. It starts out as the facility's open
// hours and is narrowed in place as busy intervals are subtracted. Lists
// are built fresh per availability query and never persisted.
type AvailabilityList struct {
	ranges []TimeRange
}

// NewAvailabilityList validates ordering and non-overlap of the given
// ranges and returns a list backed by a copy of them.
func NewAvailabilityList(ranges []TimeRange) (*AvailabilityList, error) {
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Start.Before(ranges[i-1].Start) {
			return nil, fmt.Errorf("%w: entry %d starts before entry %d", ErrInvalidAvailability, i, i-1)
		}
		if ranges[i-1].Overlaps(ranges[i]) {
			return nil, fmt.Errorf("%w: entries %d and %d overlap", ErrInvalidAvailability, i-1, i)
		}
	}
	cp := make([]TimeRange, len(ranges))
	copy(cp, ranges)
	return &AvailabilityList{ranges: cp}, nil
}

// Ranges returns the current free ranges in ascending order. The returned
// slice is a copy; mutating it does not affect the list.
func (a *AvailabilityList) Ranges() []TimeRange {
	cp := make([]TimeRange, len(a.ranges))
	copy(cp, a.ranges)
	return cp
}

// Len returns the number of free ranges remaining.
func (a *AvailabilityList) Len() int { return len(a.ranges) }

// Constrain clips the list so every range lies fully within bounds.
// Ranges entirely outside bounds are dropped; ranges straddling an edge are
// trimmed to it. Constraining may empty the list.
func (a *AvailabilityList) Constrain(bounds TimeRange) {
	out := a.ranges[:0]
	for _, r := range a.ranges {
		if !r.Overlaps(bounds) {
			continue
		}
		if r.Start.Before(bounds.Start) {
			r.Start = bounds.Start
		}
		if r.End.After(bounds.End) {
			r.End = bounds.End
		}
		out = append(out, r)
	}
	a.ranges = out
}

// Subtract removes the busy interval block from every range it touches.
// Untouched ranges pass through; overlapping ranges are replaced by their
// post-subtraction remainders. Sort order and non-overlap are preserved,
// and subtracting the same block twice is a no-op the second time.
func (a *AvailabilityList) Subtract(block TimeRange) {
	out := make([]TimeRange, 0, len(a.ranges)+1)
	for _, r := range a.ranges {
		out = append(out, r.Subtract(block)...)
	}
	a.ranges = out
}

// FilterBelow drops every range shorter than minimum. It is used to remove
// slivers of free time too short to book.
func (a *AvailabilityList) FilterBelow(minimum time.Duration) {
	out := a.ranges[:0]
	for _, r := range a.ranges {
		if r.Duration() >= minimum {
			out = append(out, r)
		}
	}
	a.ranges = out
}

// TotalDuration sums the durations of all free ranges; zero when empty.
func (a *AvailabilityList) TotalDuration() time.Duration {
	var total time.Duration
	for _, r := range a.ranges {
		total += r.Duration()
	}
	return total
}
