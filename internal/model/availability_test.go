package model

import (
	"errors"
	"testing"
	"time"
)

func mustList(t *testing.T, ranges ...TimeRange) *AvailabilityList {
	t.Helper()
	list, err := NewAvailabilityList(ranges)
	if err != nil {
		t.Fatalf("NewAvailabilityList: %v", err)
	}
	return list
}

func assertRanges(t *testing.T, list *AvailabilityList, want ...TimeRange) {
	t.Helper()
	got := list.Ranges()
	if len(got) != len(want) {
		t.Fatalf("got %d ranges, want %d: %v", len(got), len(want), got)
	}
	for i := range got {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Fatalf("range %d = %v..%v, want %v..%v",
				i, got[i].Start, got[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestNewAvailabilityListRejectsDisorder(t *testing.T) {
	if _, err := NewAvailabilityList([]TimeRange{
		span(t, 12, 0, 13, 0),
		span(t, 9, 0, 10, 0),
	}); !errors.Is(err, ErrInvalidAvailability) {
		t.Fatalf("unsorted input: expected ErrInvalidAvailability, got %v", err)
	}
	if _, err := NewAvailabilityList([]TimeRange{
		span(t, 9, 0, 12, 0),
		span(t, 11, 0, 13, 0),
	}); !errors.Is(err, ErrInvalidAvailability) {
		t.Fatalf("overlapping input: expected ErrInvalidAvailability, got %v", err)
	}
}

func TestNewAvailabilityListCopiesInput(t *testing.T) {
	in := []TimeRange{span(t, 9, 0, 17, 0)}
	list := mustList(t, in...)
	in[0].End = at(10, 0)
	assertRanges(t, list, span(t, 9, 0, 17, 0))
}

func TestSubtractSplitsOpenHours(t *testing.T) {
	// Open 09:00-17:00; a 12:00-12:30 booking leaves morning and afternoon.
	list := mustList(t, span(t, 9, 0, 17, 0))
	list.Subtract(span(t, 12, 0, 12, 30))
	assertRanges(t, list,
		span(t, 9, 0, 12, 0),
		span(t, 12, 30, 17, 0),
	)
	// Subtracting the same block again changes nothing.
	list.Subtract(span(t, 12, 0, 12, 30))
	assertRanges(t, list,
		span(t, 9, 0, 12, 0),
		span(t, 12, 30, 17, 0),
	)
}

func TestSubtractPreservesOrderAcrossRanges(t *testing.T) {
	list := mustList(t,
		span(t, 9, 0, 12, 0),
		span(t, 13, 0, 17, 0),
	)
	// Block spanning the lunch gap trims both neighbors.
	list.Subtract(span(t, 11, 0, 14, 0))
	assertRanges(t, list,
		span(t, 9, 0, 11, 0),
		span(t, 14, 0, 17, 0),
	)
}

func TestConstrain(t *testing.T) {
	list := mustList(t,
		span(t, 8, 0, 10, 0),
		span(t, 11, 0, 12, 0),
		span(t, 16, 0, 20, 0),
	)
	list.Constrain(span(t, 9, 0, 17, 0))
	assertRanges(t, list,
		span(t, 9, 0, 10, 0),
		span(t, 11, 0, 12, 0),
		span(t, 16, 0, 17, 0),
	)

	list.Constrain(span(t, 21, 0, 22, 0))
	if list.Len() != 0 {
		t.Fatalf("constraining outside all ranges should empty the list, got %v", list.Ranges())
	}
}

func TestFilterBelow(t *testing.T) {
	list := mustList(t,
		span(t, 9, 0, 9, 5),
		span(t, 10, 0, 12, 0),
		span(t, 13, 0, 13, 9),
	)
	list.FilterBelow(10 * time.Minute)
	assertRanges(t, list, span(t, 10, 0, 12, 0))
}

func TestTotalDuration(t *testing.T) {
	list := mustList(t,
		span(t, 9, 0, 12, 0),
		span(t, 12, 30, 17, 0),
	)
	if got := list.TotalDuration(); got != 7*time.Hour+30*time.Minute {
		t.Fatalf("TotalDuration = %v, want 7h30m", got)
	}
	empty := mustList(t)
	if got := empty.TotalDuration(); got != 0 {
		t.Fatalf("empty TotalDuration = %v, want 0", got)
	}
}
