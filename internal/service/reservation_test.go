package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/campuslabs/coworking-reservation/internal/model"
	"github.com/campuslabs/coworking-reservation/internal/queue"
	"github.com/campuslabs/coworking-reservation/internal/repository"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func tAt(hour, min int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func tSpan(t *testing.T, startH, startM, endH, endM int) model.TimeRange {
	t.Helper()
	return mustRange(t, tAt(startH, startM), tAt(endH, endM))
}

// memReservationStore is an in-memory ReservationStore for engine tests.
type memReservationStore struct {
	nextID uint64
	items  map[uint64]*model.Reservation
	now    func() time.Time
}

func newMemReservationStore(now func() time.Time) *memReservationStore {
	return &memReservationStore{items: make(map[uint64]*model.Reservation), now: now}
}

// seed inserts a reservation directly, bypassing the engine.
func (m *memReservationStore) seed(res model.Reservation) *model.Reservation {
	m.nextID++
	res.ID = m.nextID
	cp := res
	m.items[res.ID] = &cp
	return &cp
}

func (m *memReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	m.nextID++
	res.ID = m.nextID
	res.CreatedAt = m.now()
	res.UpdatedAt = res.CreatedAt
	cp := *res
	m.items[res.ID] = &cp
	return nil
}

func (m *memReservationStore) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *memReservationStore) ActiveForSeatsOverlapping(ctx context.Context, seatIDs []uint64, rng model.TimeRange) ([]*model.Reservation, error) {
	want := make(map[uint64]bool, len(seatIDs))
	for _, id := range seatIDs {
		want[id] = true
	}
	return m.filter(func(res *model.Reservation) bool {
		if !res.State.Active() || !res.Range.Overlaps(rng) {
			return false
		}
		for _, sid := range res.SeatIDs {
			if want[sid] {
				return true
			}
		}
		return false
	}), nil
}

func (m *memReservationStore) ActiveForUsersOverlapping(ctx context.Context, userIDs []uint64, rng model.TimeRange) ([]*model.Reservation, error) {
	want := make(map[uint64]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	return m.filter(func(res *model.Reservation) bool {
		if !res.State.Active() || !res.Range.Overlaps(rng) {
			return false
		}
		for _, uid := range res.UserIDs {
			if want[uid] {
				return true
			}
		}
		return false
	}), nil
}

func (m *memReservationStore) ListActiveByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	return m.filter(func(res *model.Reservation) bool {
		return res.State.Active() && res.HasUser(userID)
	}), nil
}

func (m *memReservationStore) UpdateStateCAS(ctx context.Context, id uint64, from, to model.ReservationState) (bool, error) {
	res, ok := m.items[id]
	if !ok || res.State != from {
		return false, nil
	}
	res.State = to
	res.UpdatedAt = m.now()
	return true, nil
}

func (m *memReservationStore) filter(keep func(*model.Reservation) bool) []*model.Reservation {
	out := make([]*model.Reservation, 0, len(m.items))
	for _, res := range m.items {
		if keep(res) {
			cp := *res
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start.Before(out[j].Range.Start) })
	return out
}

// state reads a stored reservation's state directly.
func (m *memReservationStore) state(t *testing.T, id uint64) model.ReservationState {
	t.Helper()
	res, ok := m.items[id]
	if !ok {
		t.Fatalf("reservation %d not stored", id)
	}
	return res.State
}

// memSeatStore resolves seats from a fixed catalog.
type memSeatStore struct {
	seats map[uint64]model.Seat
}

func (m *memSeatStore) GetByIDs(ctx context.Context, ids []uint64) ([]model.Seat, error) {
	out := make([]model.Seat, 0, len(ids))
	for _, id := range ids {
		if seat, ok := m.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

// memUserStore resolves party members from a fixed user table.
type memUserStore struct {
	users map[uint64]model.User
}

func (m *memUserStore) GetByIDs(ctx context.Context, ids []uint64) ([]model.User, error) {
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// engineFixture bundles the reservation engine with its fakes and a
// settable clock.
type engineFixture struct {
	svc    *ReservationService
	store  *memReservationStore
	events []queue.ReservationStateEvent
	now    time.Time
}

// newEngineFixture wires the engine over in-memory stores. Operating hours
// are open 09:00-17:00 on the test day; seat 1 and 2 are reservable, seat 3
// is walk-in only; users 1, 2, 5 and 9 are active and user 6 is
// deactivated. The clock starts at 09:00.
func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{now: tAt(9, 0)}
	clock := func() time.Time { return f.now }

	open := tSpan(t, 9, 0, 17, 0)
	hours := NewOperatingHoursService(&fakeHoursStore{
		OverlappingFn: func(ctx context.Context, rng model.TimeRange) ([]model.OperatingHours, error) {
			if !open.Overlaps(rng) {
				return nil, nil
			}
			return []model.OperatingHours{{ID: 1, Range: open}}, nil
		},
	})

	f.store = newMemReservationStore(clock)
	seats := &memSeatStore{seats: map[uint64]model.Seat{
		1: {ID: 1, Title: "Desk 1", Reservable: true},
		2: {ID: 2, Title: "Desk 2", Reservable: true},
		3: {ID: 3, Title: "Drop-in 3", Reservable: false},
	}}
	users := &memUserStore{users: map[uint64]model.User{
		1: {ID: 1, Role: model.RoleStudent, IsActive: true},
		2: {ID: 2, Role: model.RoleStaff, IsActive: true},
		5: {ID: 5, Role: model.RoleStudent, IsActive: true},
		9: {ID: 9, Role: model.RoleStudent, IsActive: true},
		6: {ID: 6, Role: model.RoleStudent, IsActive: false},
	}}

	f.svc = NewReservationService(
		f.store, seats, users, hours, NewPolicyService(DefaultPolicyConfig()), NewRoleAuthorizer(),
		func(ctx context.Context, ev queue.ReservationStateEvent) error {
			f.events = append(f.events, ev)
			return nil
		},
	).WithClock(clock)
	return f
}

func student(id uint64) *model.User { return &model.User{ID: id, Role: model.RoleStudent} }
func staff(id uint64) *model.User   { return &model.User{ID: id, Role: model.RoleStaff} }

func seatList(t *testing.T, f *engineFixture, ids ...uint64) []model.Seat {
	t.Helper()
	seats, err := f.svc.seats.GetByIDs(context.Background(), ids)
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	return seats
}

func TestSeatAvailabilitySplitsAroundBooking(t *testing.T) {
	f := newEngineFixture(t)
	f.store.seed(model.Reservation{
		Range: tSpan(t, 12, 0, 12, 30), State: model.StateCheckedIn,
		UserIDs: []uint64{5}, SeatIDs: []uint64{1},
	})

	out, err := f.svc.SeatAvailability(context.Background(), seatList(t, f, 1, 2), tSpan(t, 9, 0, 17, 0))
	if err != nil {
		t.Fatalf("SeatAvailability: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d seats, want 2", len(out))
	}

	bySeat := make(map[uint64][]model.TimeRange)
	for _, sa := range out {
		bySeat[sa.Seat.ID] = sa.Availability
	}
	want1 := []model.TimeRange{tSpan(t, 9, 0, 12, 0), tSpan(t, 12, 30, 17, 0)}
	got1 := bySeat[1]
	if len(got1) != 2 {
		t.Fatalf("seat 1: got %v, want two free ranges", got1)
	}
	for i := range want1 {
		if !got1[i].Start.Equal(want1[i].Start) || !got1[i].End.Equal(want1[i].End) {
			t.Errorf("seat 1 range %d = %v..%v, want %v..%v",
				i, got1[i].Start, got1[i].End, want1[i].Start, want1[i].End)
		}
	}
	got2 := bySeat[2]
	if len(got2) != 1 || !got2[0].Start.Equal(tAt(9, 0)) || !got2[0].End.Equal(tAt(17, 0)) {
		t.Errorf("seat 2 should be free all day, got %v", got2)
	}
}

func TestSeatAvailabilityClipsThePast(t *testing.T) {
	f := newEngineFixture(t)
	f.now = tAt(11, 0)

	out, err := f.svc.SeatAvailability(context.Background(), seatList(t, f, 1), tSpan(t, 9, 0, 17, 0))
	if err != nil {
		t.Fatalf("SeatAvailability: %v", err)
	}
	if len(out) != 1 || len(out[0].Availability) != 1 {
		t.Fatalf("unexpected availability: %+v", out)
	}
	free := out[0].Availability[0]
	if !free.Start.Equal(tAt(11, 0)) || !free.End.Equal(tAt(17, 0)) {
		t.Fatalf("free = %v..%v, want 11:00..17:00", free.Start, free.End)
	}

	f.now = tAt(18, 0)
	out, err = f.svc.SeatAvailability(context.Background(), seatList(t, f, 1), tSpan(t, 9, 0, 17, 0))
	if err != nil {
		t.Fatalf("SeatAvailability: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("a range entirely in the past should yield nothing, got %+v", out)
	}
}

func TestDraftWalkinTruncatedBeforeNextBooking(t *testing.T) {
	f := newEngineFixture(t)
	f.store.seed(model.Reservation{
		Range: tSpan(t, 12, 0, 12, 30), State: model.StateCheckedIn,
		UserIDs: []uint64{5}, SeatIDs: []uint64{1},
	})
	f.now = tAt(11, 50)

	res, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(11, 50), End: tAt(13, 50),
		UserIDs: []uint64{1}, SeatIDs: []uint64{1},
	})
	if err != nil {
		t.Fatalf("DraftReservation: %v", err)
	}
	if !res.Walkin {
		t.Error("reservation starting now should be a walk-in")
	}
	if res.State != model.StateDraft {
		t.Errorf("state = %s, want DRAFT", res.State)
	}
	if !res.Range.End.Equal(tAt(12, 0)) {
		t.Errorf("end = %v, want truncation to 12:00", res.Range.End)
	}
}

func TestDraftWalkinTooShortAfterTruncation(t *testing.T) {
	f := newEngineFixture(t)
	f.store.seed(model.Reservation{
		Range: tSpan(t, 12, 0, 12, 30), State: model.StateCheckedIn,
		UserIDs: []uint64{5}, SeatIDs: []uint64{1},
	})
	f.now = tAt(11, 55)

	_, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(11, 55), End: tAt(13, 0),
		UserIDs: []uint64{1}, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrNoSeatsAvailable) {
		t.Fatalf("a 5-minute sliver should not be bookable, got %v", err)
	}
}

func TestDraftWalkinClampedToInitialDuration(t *testing.T) {
	f := newEngineFixture(t)
	f.now = tAt(10, 0)

	res, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(10, 0), End: tAt(16, 0),
		UserIDs: []uint64{1}, SeatIDs: []uint64{3},
	})
	if err != nil {
		t.Fatalf("DraftReservation: %v", err)
	}
	if !res.Walkin {
		t.Error("expected a walk-in")
	}
	if !res.Range.End.Equal(tAt(12, 0)) {
		t.Errorf("end = %v, want clamp to 12:00", res.Range.End)
	}
}

func TestDraftFutureRequiresReservableSeat(t *testing.T) {
	f := newEngineFixture(t)

	// Seat 3 is walk-in only; a future booking on it has no usable seats.
	_, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(14, 0), End: tAt(15, 0),
		UserIDs: []uint64{1}, SeatIDs: []uint64{3},
	})
	if !errors.Is(err, ErrNoSeatsAvailable) {
		t.Fatalf("expected ErrNoSeatsAvailable, got %v", err)
	}

	res, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(14, 0), End: tAt(15, 0),
		UserIDs: []uint64{1}, SeatIDs: []uint64{1},
	})
	if err != nil {
		t.Fatalf("DraftReservation: %v", err)
	}
	if res.Walkin {
		t.Error("a booking an hour out is not a walk-in")
	}
	if !res.Range.Start.Equal(tAt(14, 0)) || !res.Range.End.Equal(tAt(15, 0)) {
		t.Errorf("range = %v..%v, want 14:00..15:00", res.Range.Start, res.Range.End)
	}
}

func TestDraftFutureClampedToMaxInitialDuration(t *testing.T) {
	f := newEngineFixture(t)

	res, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(13, 0), End: tAt(16, 30),
		UserIDs: []uint64{1}, SeatIDs: []uint64{2},
	})
	if err != nil {
		t.Fatalf("DraftReservation: %v", err)
	}
	if !res.Range.End.Equal(tAt(15, 0)) {
		t.Errorf("end = %v, want clamp to 15:00", res.Range.End)
	}
}

func TestDraftOutsideReservationWindow(t *testing.T) {
	f := newEngineFixture(t)

	start := f.now.Add(8 * 24 * time.Hour)
	_, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: start, End: start.Add(time.Hour),
		UserIDs: []uint64{1}, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrOutsideReservationWindow) {
		t.Fatalf("expected ErrOutsideReservationWindow, got %v", err)
	}
}

func TestDraftRequestValidation(t *testing.T) {
	f := newEngineFixture(t)
	rng := tSpan(t, 14, 0, 15, 0)

	_, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: rng.Start, End: rng.End, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrNoUsers) {
		t.Errorf("empty party: expected ErrNoUsers, got %v", err)
	}

	_, err = f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: rng.Start, End: rng.End, UserIDs: []uint64{1},
	})
	if !errors.Is(err, ErrNoSeats) {
		t.Errorf("no seats: expected ErrNoSeats, got %v", err)
	}

	_, err = f.svc.DraftReservation(context.Background(), staff(2), ReservationRequest{
		Start: rng.Start, End: rng.End, UserIDs: []uint64{1, 3}, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrMultiUserNotSupported) {
		t.Errorf("two users: expected ErrMultiUserNotSupported, got %v", err)
	}

	// A student cannot draft for somebody else; staff can.
	_, err = f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: rng.Start, End: rng.End, UserIDs: []uint64{9}, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("student booking for another user: expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.DraftReservation(context.Background(), staff(2), ReservationRequest{
		Start: rng.Start, End: rng.End, UserIDs: []uint64{9}, SeatIDs: []uint64{1},
	}); err != nil {
		t.Errorf("staff booking for another user should succeed, got %v", err)
	}

	// Unknown and deactivated party members are rejected.
	_, err = f.svc.DraftReservation(context.Background(), staff(2), ReservationRequest{
		Start: rng.Start, End: rng.End, UserIDs: []uint64{77}, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("unknown user: expected ErrUnknownUser, got %v", err)
	}
	_, err = f.svc.DraftReservation(context.Background(), staff(2), ReservationRequest{
		Start: rng.Start, End: rng.End, UserIDs: []uint64{6}, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("inactive user: expected ErrUnknownUser, got %v", err)
	}
}

func TestDraftRejectsOverlappingReservationForUser(t *testing.T) {
	f := newEngineFixture(t)
	f.store.seed(model.Reservation{
		Range: tSpan(t, 13, 0, 16, 0), State: model.StateConfirmed,
		UserIDs: []uint64{1}, SeatIDs: []uint64{2},
	})

	_, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(14, 0), End: tAt(15, 0),
		UserIDs: []uint64{1}, SeatIDs: []uint64{1},
	})
	if !errors.Is(err, ErrConflictingReservation) {
		t.Fatalf("expected ErrConflictingReservation, got %v", err)
	}
}

func TestConfirmIsIdempotentAndEmitsOnce(t *testing.T) {
	f := newEngineFixture(t)

	res, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(14, 0), End: tAt(15, 0),
		UserIDs: []uint64{1}, SeatIDs: []uint64{1},
	})
	if err != nil {
		t.Fatalf("DraftReservation: %v", err)
	}

	confirmed, err := f.svc.ChangeReservation(context.Background(), student(1),
		ReservationPatch{ID: res.ID, State: model.StateConfirmed})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.State != model.StateConfirmed {
		t.Fatalf("state = %s, want CONFIRMED", confirmed.State)
	}
	if len(f.events) != 1 || f.events[0].State != string(model.StateConfirmed) {
		t.Fatalf("expected one CONFIRMED event, got %+v", f.events)
	}

	again, err := f.svc.ChangeReservation(context.Background(), student(1),
		ReservationPatch{ID: res.ID, State: model.StateConfirmed})
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if again.State != model.StateConfirmed {
		t.Fatalf("second confirm state = %s, want CONFIRMED", again.State)
	}
	if len(f.events) != 1 {
		t.Fatalf("redundant confirm should not emit again, got %d events", len(f.events))
	}
}

func TestChangeRejectsAmendments(t *testing.T) {
	f := newEngineFixture(t)
	start := tAt(16, 0)

	_, err := f.svc.ChangeReservation(context.Background(), student(1),
		ReservationPatch{ID: 1, Start: &start})
	if !errors.Is(err, ErrAmendmentNotSupported) {
		t.Fatalf("expected ErrAmendmentNotSupported, got %v", err)
	}
}

func TestStaleDraftIsSweptBeforeConfirm(t *testing.T) {
	f := newEngineFixture(t)

	res, err := f.svc.DraftReservation(context.Background(), student(1), ReservationRequest{
		Start: tAt(14, 0), End: tAt(15, 0),
		UserIDs: []uint64{1}, SeatIDs: []uint64{1},
	})
	if err != nil {
		t.Fatalf("DraftReservation: %v", err)
	}

	// Draft timeout is five minutes; confirm six minutes later.
	f.now = tAt(9, 6)
	got, err := f.svc.ChangeReservation(context.Background(), student(1),
		ReservationPatch{ID: res.ID, State: model.StateConfirmed})
	if err != nil {
		t.Fatalf("ChangeReservation: %v", err)
	}
	if got.State != model.StateCancelled {
		t.Fatalf("state = %s, want CANCELLED", got.State)
	}
	if f.store.state(t, res.ID) != model.StateCancelled {
		t.Fatal("cancellation was not persisted")
	}
	if len(f.events) != 0 {
		t.Fatalf("sweep cancellation should not emit a CONFIRMED event, got %+v", f.events)
	}
}

func TestUncheckedInReservationExpires(t *testing.T) {
	f := newEngineFixture(t)
	seeded := f.store.seed(model.Reservation{
		Range: tSpan(t, 10, 0, 12, 0), State: model.StateConfirmed,
		UserIDs: []uint64{1}, SeatIDs: []uint64{1}, CreatedAt: tAt(9, 0),
	})

	// Ten minutes past the start with no check-in: the listing sweeps the
	// reservation to CANCELLED and drops it.
	f.now = tAt(10, 10)
	list, err := f.svc.GetCurrentReservationsForUser(context.Background(), student(1), 1)
	if err != nil {
		t.Fatalf("GetCurrentReservationsForUser: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expired reservation should be filtered, got %+v", list)
	}
	if f.store.state(t, seeded.ID) != model.StateCancelled {
		t.Fatal("expiry was not persisted")
	}
}

func TestStaffCheckin(t *testing.T) {
	f := newEngineFixture(t)
	seeded := f.store.seed(model.Reservation{
		Range: tSpan(t, 10, 0, 12, 0), State: model.StateConfirmed,
		UserIDs: []uint64{1}, SeatIDs: []uint64{1}, CreatedAt: tAt(9, 0),
	})
	f.now = tAt(10, 5)

	if _, err := f.svc.StaffCheckinReservation(context.Background(), student(1), seeded.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("student check-in: expected ErrUnauthorized, got %v", err)
	}

	res, err := f.svc.StaffCheckinReservation(context.Background(), staff(2), seeded.ID)
	if err != nil {
		t.Fatalf("StaffCheckinReservation: %v", err)
	}
	if res.State != model.StateCheckedIn {
		t.Fatalf("state = %s, want CHECKED_IN", res.State)
	}
	if len(f.events) != 1 || f.events[0].State != string(model.StateCheckedIn) {
		t.Fatalf("expected one CHECKED_IN event, got %+v", f.events)
	}

	// Idempotent for an already checked-in reservation.
	res, err = f.svc.StaffCheckinReservation(context.Background(), staff(2), seeded.ID)
	if err != nil {
		t.Fatalf("second check-in: %v", err)
	}
	if res.State != model.StateCheckedIn || len(f.events) != 1 {
		t.Fatalf("second check-in should be a no-op, state=%s events=%d", res.State, len(f.events))
	}
}

func TestStaffCheckinRejectsDraft(t *testing.T) {
	f := newEngineFixture(t)
	seeded := f.store.seed(model.Reservation{
		Range: tSpan(t, 10, 0, 12, 0), State: model.StateDraft,
		UserIDs: []uint64{1}, SeatIDs: []uint64{1}, CreatedAt: tAt(9, 58),
	})
	f.now = tAt(10, 0)

	if _, err := f.svc.StaffCheckinReservation(context.Background(), staff(2), seeded.ID); !errors.Is(err, ErrNotCheckinable) {
		t.Fatalf("expected ErrNotCheckinable, got %v", err)
	}
}

func TestCheckedInReservationChecksOutAtEnd(t *testing.T) {
	f := newEngineFixture(t)
	seeded := f.store.seed(model.Reservation{
		Range: tSpan(t, 10, 0, 12, 0), State: model.StateCheckedIn,
		UserIDs: []uint64{1}, SeatIDs: []uint64{1}, CreatedAt: tAt(9, 0),
	})
	f.now = tAt(12, 30)

	res, err := f.svc.GetReservation(context.Background(), student(1), seeded.ID)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if res.State != model.StateCheckedOut {
		t.Fatalf("state = %s, want CHECKED_OUT", res.State)
	}
	if f.store.state(t, seeded.ID) != model.StateCheckedOut {
		t.Fatal("check-out was not persisted")
	}
}

func TestGetReservationEnforcesAccess(t *testing.T) {
	f := newEngineFixture(t)
	seeded := f.store.seed(model.Reservation{
		Range: tSpan(t, 10, 0, 12, 0), State: model.StateCheckedIn,
		UserIDs: []uint64{1}, SeatIDs: []uint64{1}, CreatedAt: tAt(9, 0),
	})

	if _, err := f.svc.GetReservation(context.Background(), student(4), seeded.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("other student: expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.GetReservation(context.Background(), staff(2), seeded.ID); err != nil {
		t.Fatalf("staff read should succeed, got %v", err)
	}
	if _, err := f.svc.GetReservation(context.Background(), student(1), 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown id: expected ErrNotFound, got %v", err)
	}
}
