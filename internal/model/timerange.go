package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeRange is returned when a time range is constructed with an
// end that is not strictly after its start. Callers building ranges from
// user input should treat this as a bad-request condition; ranges built
// internally hitting this error indicate a programming defect.
var ErrInvalidTimeRange = errors.New("time range end must be after start")

// TimeRange is a half-open interval [Start, End). The end is exclusive, so
// two ranges that merely touch at an endpoint do not overlap. All range
// arithmetic returns new values; a TimeRange is never mutated in place.
//
// Fields:
//  Start – inclusive beginning of the interval (UTC).
//  End   – exclusive end of the interval (UTC).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange validates and constructs a TimeRange. It returns
// ErrInvalidTimeRange when end is at or before start.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, fmt.Errorf("%w: start=%s end=%s", ErrInvalidTimeRange,
			start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints (a.End == b.Start) do not count as overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether the instant t lies inside the interval.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns End - Start.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Subtract removes the overlap with other from this range and returns the
// remaining pieces in order. When the ranges do not overlap the receiver is
// returned unchanged as a single element. When other fully covers the
// receiver, the result is empty. Otherwise the left remainder
// [r.Start, other.Start) and/or the right remainder [other.End, r.End) are
// returned.
func (r TimeRange) Subtract(other TimeRange) []TimeRange {
	if !r.Overlaps(other) {
		return []TimeRange{r}
	}
	out := make([]TimeRange, 0, 2)
	if r.Start.Before(other.Start) {
		out = append(out, TimeRange{Start: r.Start, End: other.Start})
	}
	if r.End.After(other.End) {
		out = append(out, TimeRange{Start: other.End, End: r.End})
	}
	return out
}
