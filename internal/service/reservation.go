package service

import (
	"context"
	"log"
	"time"

	"github.com/campuslabs/coworking-reservation/internal/model"
	"github.com/campuslabs/coworking-reservation/internal/queue"
)

// ReservationStore is the persistence surface the reservation engine
// needs. *repository.ReservationRepo satisfies it; tests use an in-memory
// fake.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ActiveForSeatsOverlapping(ctx context.Context, seatIDs []uint64, rng model.TimeRange) ([]*model.Reservation, error)
	ActiveForUsersOverlapping(ctx context.Context, userIDs []uint64, rng model.TimeRange) ([]*model.Reservation, error)
	ListActiveByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error)
	UpdateStateCAS(ctx context.Context, id uint64, from, to model.ReservationState) (bool, error)
}

// SeatStore resolves seats from the catalog; read-only.
type SeatStore interface {
	GetByIDs(ctx context.Context, ids []uint64) ([]model.Seat, error)
}

// UserStore resolves party members against the users table; read-only.
type UserStore interface {
	GetByIDs(ctx context.Context, ids []uint64) ([]model.User, error)
}

// EventPublisher pushes lifecycle events to the broker. Publishing is best
// effort: the engine logs and ignores failures.
type EventPublisher func(ctx context.Context, ev queue.ReservationStateEvent) error

// ReservationRequest carries a caller's desired booking: the window, the
// party and the candidate seats.
type ReservationRequest struct {
	Start   time.Time `json:"start" validate:"required"`
	End     time.Time `json:"end" validate:"required,gtfield=Start"`
	UserIDs []uint64  `json:"user_ids"`
	SeatIDs []uint64  `json:"seat_ids"`
}

// ReservationPatch describes a partial update to an existing reservation.
// Only State is supported today; the presence of any other field fails
// fast with ErrAmendmentNotSupported.
type ReservationPatch struct {
	ID      uint64
	State   model.ReservationState `json:"state"`
	Start   *time.Time             `json:"start,omitempty"`
	End     *time.Time             `json:"end,omitempty"`
	UserIDs []uint64               `json:"user_ids,omitempty"`
	SeatIDs []uint64               `json:"seat_ids,omitempty"`
}

// ReservationService orchestrates seat availability computation, draft
// creation and the reservation lifecycle. All time comparisons flow
// through the injected clock so tests control "now".
type ReservationService struct {
	reservations ReservationStore
	seats        SeatStore
	users        UserStore
	hours        *OperatingHoursService
	policy       *PolicyService
	authz        Authorizer
	publish      EventPublisher
	now          func() time.Time
}

// NewReservationService wires the reservation engine. publish may be nil
// to disable event emission (tests, broker-less deployments).
func NewReservationService(reservations ReservationStore, seats SeatStore, users UserStore, hours *OperatingHoursService, policy *PolicyService, authz Authorizer, publish EventPublisher) *ReservationService {
	if reservations == nil || seats == nil || users == nil || hours == nil || policy == nil || authz == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{
		reservations: reservations,
		seats:        seats,
		users:        users,
		hours:        hours,
		policy:       policy,
		authz:        authz,
		publish:      publish,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the engine's clock. Intended for tests.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// sweep applies the time-based state transitions to every loaded
// reservation as of now and persists the resulting changes before any
// state is returned or compared. Stored states must never be trusted
// without passing through here first. The compare-and-set persistence
// makes concurrent sweeps of the same row converge without error.
func (s *ReservationService) sweep(ctx context.Context, list []*model.Reservation) error {
	now := s.now()
	draftTimeout := s.policy.ReservationDraftTimeout()
	checkinTimeout := s.policy.ReservationCheckinTimeout()
	for _, res := range list {
		next, changed := res.AdvanceAsOf(now, draftTimeout, checkinTimeout)
		if !changed {
			continue
		}
		if _, err := s.reservations.UpdateStateCAS(ctx, res.ID, res.State, next); err != nil {
			return err
		}
		res.State = next
		res.UpdatedAt = now
	}
	return nil
}

// filterActive drops reservations that left the active set during a sweep.
func filterActive(list []*model.Reservation) []*model.Reservation {
	out := list[:0]
	for _, res := range list {
		if res.State.Active() {
			out = append(out, res)
		}
	}
	return out
}

// GetSeatReservations returns the active reservations holding any of the
// given seats within the range, after the time-based sweep has run. It is
// the busy-interval source for availability computation.
func (s *ReservationService) GetSeatReservations(ctx context.Context, seatIDs []uint64, rng model.TimeRange) ([]*model.Reservation, error) {
	list, err := s.reservations.ActiveForSeatsOverlapping(ctx, seatIDs, rng)
	if err != nil {
		return nil, err
	}
	if err := s.sweep(ctx, list); err != nil {
		return nil, err
	}
	return filterActive(list), nil
}

// SeatAvailability computes the free time of each given seat within the
// range: operating hours constrained to the range, minus every active
// reservation on the seat, minus slivers shorter than the minimum bookable
// duration. Seats with no free time are omitted. Past time is never
// available, so the range is clipped to now first; a range entirely in the
// past yields no availability at all.
func (s *ReservationService) SeatAvailability(ctx context.Context, seats []model.Seat, rng model.TimeRange) ([]model.SeatAvailability, error) {
	now := s.now()
	if !rng.End.After(now) {
		return []model.SeatAvailability{}, nil
	}
	if rng.Start.Before(now) {
		rng.Start = now
	}
	hours, err := s.hours.Schedule(ctx, rng)
	if err != nil {
		return nil, err
	}
	open := make([]model.TimeRange, 0, len(hours))
	for _, oh := range hours {
		open = append(open, oh.Range)
	}
	base, err := model.NewAvailabilityList(open)
	if err != nil {
		return nil, err
	}
	base.Constrain(rng)
	if base.Len() == 0 {
		return []model.SeatAvailability{}, nil
	}

	seatIDs := make([]uint64, 0, len(seats))
	for _, seat := range seats {
		seatIDs = append(seatIDs, seat.ID)
	}
	busy, err := s.GetSeatReservations(ctx, seatIDs, rng)
	if err != nil {
		return nil, err
	}
	busyBySeat := make(map[uint64][]model.TimeRange)
	for _, res := range busy {
		for _, sid := range res.SeatIDs {
			busyBySeat[sid] = append(busyBySeat[sid], res.Range)
		}
	}

	minDuration := s.policy.MinimumReservationDuration()
	out := make([]model.SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		avail, err := model.NewAvailabilityList(base.Ranges())
		if err != nil {
			return nil, err
		}
		for _, block := range busyBySeat[seat.ID] {
			avail.Subtract(block)
		}
		avail.FilterBelow(minDuration)
		if avail.Len() == 0 {
			continue
		}
		out = append(out, model.SeatAvailability{Seat: seat, Availability: avail.Ranges()})
	}
	return out, nil
}

// DraftReservation validates a reservation request against policy and
// availability and persists a new DRAFT reservation. Walk-ins (starting
// now or within the walk-in window) may use non-reservable seats and are
// capped at the walk-in initial duration; future reservations must fall
// inside the advance booking window and use reservable seats. The end is
// truncated to the free time actually available on the chosen seats, so a
// walk-in ending before the next booking is shortened rather than
// rejected.
func (s *ReservationService) DraftReservation(ctx context.Context, subject *model.User, req ReservationRequest) (*model.Reservation, error) {
	party := dedupe(req.UserIDs)
	if len(party) == 0 {
		return nil, ErrNoUsers
	}
	for _, uid := range party {
		if uid != subject.ID {
			if err := s.authz.Enforce(subject, ActionManageReservations, "coworking.reservation"); err != nil {
				return nil, err
			}
			break
		}
	}
	if len(party) > 1 {
		return nil, ErrMultiUserNotSupported
	}
	members, err := s.users.GetByIDs(ctx, party)
	if err != nil {
		return nil, err
	}
	if len(members) != len(party) {
		return nil, ErrUnknownUser
	}
	for _, member := range members {
		if !member.IsActive {
			return nil, ErrUnknownUser
		}
	}
	if len(req.SeatIDs) == 0 {
		return nil, ErrNoSeats
	}

	rng, err := model.NewTimeRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	now := s.now()
	walkin := !rng.Start.After(now.Add(s.policy.WalkinWindow(subject)))
	if rng.Start.Before(now) {
		rng.Start = now
	}
	if !rng.End.After(rng.Start) {
		return nil, ErrNoSeatsAvailable
	}
	if walkin {
		if max := s.policy.WalkinInitialDuration(subject); rng.Duration() > max {
			rng.End = rng.Start.Add(max)
		}
	} else {
		if rng.Start.After(now.Add(s.policy.ReservationWindow(subject))) {
			return nil, ErrOutsideReservationWindow
		}
		if max := s.policy.MaximumInitialReservationDuration(subject); rng.Duration() > max {
			rng.End = rng.Start.Add(max)
		}
	}

	seats, err := s.seats.GetByIDs(ctx, dedupe(req.SeatIDs))
	if err != nil {
		return nil, err
	}
	if !walkin {
		eligible := seats[:0]
		for _, seat := range seats {
			if seat.Reservable {
				eligible = append(eligible, seat)
			}
		}
		seats = eligible
	}
	if len(seats) == 0 {
		return nil, ErrNoSeatsAvailable
	}

	availability, err := s.SeatAvailability(ctx, seats, rng)
	if err != nil {
		return nil, err
	}
	// Keep seats whose free time covers the requested start, and truncate
	// the end to the earliest point any chosen seat's free range closes.
	usable := make([]uint64, 0, len(availability))
	truncatedEnd := rng.End
	for _, sa := range availability {
		for _, free := range sa.Availability {
			if free.Contains(rng.Start) {
				usable = append(usable, sa.Seat.ID)
				if free.End.Before(truncatedEnd) {
					truncatedEnd = free.End
				}
				break
			}
		}
	}
	if len(usable) == 0 {
		return nil, ErrNoSeatsAvailable
	}
	rng.End = truncatedEnd
	if rng.Duration() < s.policy.MinimumReservationDuration() {
		return nil, ErrNoSeatsAvailable
	}

	held, err := s.reservations.ActiveForUsersOverlapping(ctx, party, rng)
	if err != nil {
		return nil, err
	}
	if err := s.sweep(ctx, held); err != nil {
		return nil, err
	}
	if len(filterActive(held)) > 0 {
		return nil, ErrConflictingReservation
	}

	res := &model.Reservation{
		Range:   rng,
		State:   model.StateDraft,
		Walkin:  walkin,
		UserIDs: party,
		SeatIDs: usable,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ChangeReservation drives user-initiated state transitions on an
// existing reservation. Transitions outside the allowed table are lenient
// no-ops: the reservation is returned unchanged so redundant client
// requests never error. Seat, party or time changes fail fast with
// ErrAmendmentNotSupported.
func (s *ReservationService) ChangeReservation(ctx context.Context, subject *model.User, patch ReservationPatch) (*model.Reservation, error) {
	if patch.Start != nil || patch.End != nil || len(patch.UserIDs) > 0 || len(patch.SeatIDs) > 0 {
		return nil, ErrAmendmentNotSupported
	}
	res, err := s.reservations.GetByID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	if !res.HasUser(subject.ID) {
		if err := s.authz.Enforce(subject, ActionManageReservations, "coworking.reservation"); err != nil {
			return nil, err
		}
	}
	if err := s.sweep(ctx, []*model.Reservation{res}); err != nil {
		return nil, err
	}
	if patch.State == "" {
		return res, nil
	}
	next, changed := model.Transition(res.State, patch.State)
	if !changed {
		return res, nil
	}
	ok, err := s.reservations.UpdateStateCAS(ctx, res.ID, res.State, next)
	if err != nil {
		return nil, err
	}
	if ok {
		res.State = next
		res.UpdatedAt = s.now()
		if next == model.StateConfirmed {
			s.emit(ctx, res)
		}
	}
	return res, nil
}

// StaffCheckinReservation transitions a confirmed reservation to
// CHECKED_IN on behalf of facility staff. It is idempotent for already
// checked-in reservations and fails with ErrNotCheckinable for drafts and
// terminal states.
func (s *ReservationService) StaffCheckinReservation(ctx context.Context, subject *model.User, reservationID uint64) (*model.Reservation, error) {
	if err := s.authz.Enforce(subject, ActionManageReservations, "coworking.reservation"); err != nil {
		return nil, err
	}
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.sweep(ctx, []*model.Reservation{res}); err != nil {
		return nil, err
	}
	switch res.State {
	case model.StateCheckedIn:
		return res, nil
	case model.StateConfirmed:
		ok, err := s.reservations.UpdateStateCAS(ctx, res.ID, res.State, model.StateCheckedIn)
		if err != nil {
			return nil, err
		}
		if ok {
			res.State = model.StateCheckedIn
			res.UpdatedAt = s.now()
			s.emit(ctx, res)
		}
		return res, nil
	default:
		return nil, ErrNotCheckinable
	}
}

// GetCurrentReservationsForUser lists a user's active reservations ordered
// by start time. Callers other than the user need the manage permission.
func (s *ReservationService) GetCurrentReservationsForUser(ctx context.Context, subject *model.User, userID uint64) ([]*model.Reservation, error) {
	if subject.ID != userID {
		if err := s.authz.Enforce(subject, ActionManageReservations, "coworking.reservation"); err != nil {
			return nil, err
		}
	}
	list, err := s.reservations.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.sweep(ctx, list); err != nil {
		return nil, err
	}
	return filterActive(list), nil
}

// GetReservation loads one reservation after the sweep, enforcing that the
// subject is a party member or holds the manage permission.
func (s *ReservationService) GetReservation(ctx context.Context, subject *model.User, reservationID uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.HasUser(subject.ID) {
		if err := s.authz.Enforce(subject, ActionManageReservations, "coworking.reservation"); err != nil {
			return nil, err
		}
	}
	if err := s.sweep(ctx, []*model.Reservation{res}); err != nil {
		return nil, err
	}
	return res, nil
}

// emit publishes a lifecycle event for the reservation's current state.
// Failures are logged and swallowed.
func (s *ReservationService) emit(ctx context.Context, res *model.Reservation) {
	if s.publish == nil {
		return
	}
	now := s.now()
	ev := queue.ReservationStateEvent{
		ReservationID: res.ID,
		State:         string(res.State),
		Walkin:        res.Walkin,
		UserIDs:       res.UserIDs,
		SeatIDs:       res.SeatIDs,
		StartsAt:      res.Range.Start.Format(time.RFC3339),
		EndsAt:        res.Range.End.Format(time.RFC3339),
		OccurredAt:    now.Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("reservation-service: publish %s event for reservation %d failed: %v", ev.State, res.ID, err)
	}
}

// dedupe returns ids with duplicates and zero values removed, preserving
// first-seen order.
func dedupe(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
