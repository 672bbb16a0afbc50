package model

import (
	"testing"
	"time"
)

func TestTransition(t *testing.T) {
	allowed := map[[2]ReservationState]bool{
		{StateDraft, StateConfirmed}:      true,
		{StateDraft, StateCancelled}:      true,
		{StateConfirmed, StateCancelled}:  true,
		{StateCheckedIn, StateCheckedOut}: true,
	}
	states := []ReservationState{
		StateDraft, StateConfirmed, StateCheckedIn, StateCheckedOut, StateCancelled,
	}
	// Every pair outside the allowed table must be a no-op that returns the
	// current state unchanged.
	for _, current := range states {
		for _, requested := range states {
			next, changed := Transition(current, requested)
			if allowed[[2]ReservationState{current, requested}] {
				if !changed || next != requested {
					t.Errorf("Transition(%s, %s) = (%s, %v), want (%s, true)",
						current, requested, next, changed, requested)
				}
				continue
			}
			if changed || next != current {
				t.Errorf("Transition(%s, %s) = (%s, %v), want no-op",
					current, requested, next, changed)
			}
		}
	}
}

func TestTerminalAndActive(t *testing.T) {
	for _, s := range []ReservationState{StateCheckedOut, StateCancelled} {
		if !s.Terminal() || s.Active() {
			t.Errorf("%s should be terminal and inactive", s)
		}
	}
	for _, s := range []ReservationState{StateDraft, StateConfirmed, StateCheckedIn} {
		if s.Terminal() || !s.Active() {
			t.Errorf("%s should be active", s)
		}
	}
}

func TestAdvanceAsOf(t *testing.T) {
	const (
		draftTimeout   = 5 * time.Minute
		checkinTimeout = 10 * time.Minute
	)
	rng := span(t, 10, 0, 12, 0)

	cases := []struct {
		name    string
		res     Reservation
		now     time.Time
		want    ReservationState
		changed bool
	}{
		{
			name:    "stale draft cancels",
			res:     Reservation{State: StateDraft, Range: rng, CreatedAt: at(9, 0)},
			now:     at(9, 5),
			want:    StateCancelled,
			changed: true,
		},
		{
			name: "fresh draft survives",
			res:  Reservation{State: StateDraft, Range: rng, CreatedAt: at(9, 0)},
			now:  at(9, 4),
			want: StateDraft,
		},
		{
			name:    "confirmed without checkin cancels after grace",
			res:     Reservation{State: StateConfirmed, Range: rng, CreatedAt: at(9, 0)},
			now:     at(10, 10),
			want:    StateCancelled,
			changed: true,
		},
		{
			name: "confirmed within grace survives",
			res:  Reservation{State: StateConfirmed, Range: rng, CreatedAt: at(9, 0)},
			now:  at(10, 9),
			want: StateConfirmed,
		},
		{
			name:    "checked in past end checks out",
			res:     Reservation{State: StateCheckedIn, Range: rng, CreatedAt: at(9, 0)},
			now:     at(12, 0),
			want:    StateCheckedOut,
			changed: true,
		},
		{
			name: "checked in before end stays",
			res:  Reservation{State: StateCheckedIn, Range: rng, CreatedAt: at(9, 0)},
			now:  at(11, 59),
			want: StateCheckedIn,
		},
		{
			name: "terminal states never advance",
			res:  Reservation{State: StateCancelled, Range: rng, CreatedAt: at(9, 0)},
			now:  at(23, 0),
			want: StateCancelled,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := tc.res.AdvanceAsOf(tc.now, draftTimeout, checkinTimeout)
			if got != tc.want || changed != tc.changed {
				t.Fatalf("AdvanceAsOf = (%s, %v), want (%s, %v)", got, changed, tc.want, tc.changed)
			}
			// A second sweep after applying the result must be a no-op.
			tc.res.State = got
			again, changedAgain := tc.res.AdvanceAsOf(tc.now, draftTimeout, checkinTimeout)
			if again != got || changedAgain {
				t.Fatalf("re-sweep = (%s, %v), want (%s, false)", again, changedAgain, got)
			}
		})
	}
}

func TestHasUser(t *testing.T) {
	res := Reservation{UserIDs: []uint64{7, 9}}
	if !res.HasUser(7) || !res.HasUser(9) {
		t.Error("party members should be reported")
	}
	if res.HasUser(8) {
		t.Error("non-member should not be reported")
	}
}
