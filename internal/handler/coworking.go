package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/coworking-reservation/internal/model"
	"github.com/campuslabs/coworking-reservation/internal/repository"
	"github.com/campuslabs/coworking-reservation/internal/service"
)

// CoworkingHandler exposes the reservation engine over HTTP: seat
// availability queries, draft creation, state transitions, staff check-in
// and reservation listing. JWT authentication has already run by the time
// these handlers execute; methods answer 401 only when the user ID cannot
// be extracted from context.
type CoworkingHandler struct {
	Reservations *service.ReservationService
	SeatRepo     *repository.SeatRepo
	UserRepo     *repository.UserRepo
}

// NewCoworkingHandler constructs a CoworkingHandler. All dependencies must
// be non-nil.
func NewCoworkingHandler(reservations *service.ReservationService, seatRepo *repository.SeatRepo, userRepo *repository.UserRepo) *CoworkingHandler {
	if reservations == nil || seatRepo == nil || userRepo == nil {
		panic("nil dependency passed to NewCoworkingHandler")
	}
	return &CoworkingHandler{Reservations: reservations, SeatRepo: seatRepo, UserRepo: userRepo}
}

// Availability handles GET /v1/coworking/availability. Query parameters
// start and end (RFC3339) bound the window; an optional seat_ids CSV
// restricts the seats considered, otherwise every seat is checked.
// reservable=1 limits the result to seats that can be booked in advance.
// Seats with no free time are omitted from the response.
func (h *CoworkingHandler) Availability(c echo.Context) error {
	start, ok := queryTime(c, "start")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start is required (RFC3339)"})
	}
	end, ok := queryTime(c, "end")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end is required (RFC3339)"})
	}
	rng, err := model.NewTimeRange(start, end)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	var seats []model.Seat
	switch {
	case c.QueryParam("seat_ids") != "":
		ids, ok := parseIDList(c.QueryParam("seat_ids"))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat_ids"})
		}
		seats, err = h.SeatRepo.GetByIDs(ctx, ids)
	case c.QueryParam("reservable") == "1" || c.QueryParam("reservable") == "true":
		seats, err = h.SeatRepo.ListReservable(ctx)
	default:
		seats, err = h.SeatRepo.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}

	availability, err := h.Reservations.SeatAvailability(ctx, seats, rng)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": availability})
}

// Draft handles POST /v1/coworking/reservation. The body carries the
// desired window, party and candidate seats; a successful draft answers
// 201 with the persisted reservation, whose end may be shorter than
// requested when seat availability truncated it.
func (h *CoworkingHandler) Draft(c echo.Context) error {
	subject, err := subjectFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req service.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	res, err := h.Reservations.DraftReservation(c.Request().Context(), subject, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"reservation": res})
}

// Get handles GET /v1/coworking/reservation/:id.
func (h *CoworkingHandler) Get(c echo.Context) error {
	subject, err := subjectFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.GetReservation(c.Request().Context(), subject, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Change handles PUT /v1/coworking/reservation/:id. Only the state field
// is honored; requesting a transition outside the allowed table returns
// the reservation unchanged rather than an error.
func (h *CoworkingHandler) Change(c echo.Context) error {
	subject, err := subjectFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var patch service.ReservationPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	patch.ID = id
	if patch.State != "" && !model.ValidState(patch.State) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown reservation state"})
	}
	res, err := h.Reservations.ChangeReservation(c.Request().Context(), subject, patch)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// StaffCheckin handles PUT /v1/coworking/reservation/:id/checkin. The
// route is staff-only; the engine enforces the permission again.
func (h *CoworkingHandler) StaffCheckin(c echo.Context) error {
	subject, err := subjectFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.StaffCheckinReservation(c.Request().Context(), subject, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// ListCurrent handles GET /v1/coworking/reservations. It returns the
// caller's active reservations ordered by start; staff may list another
// user's via the user_id query parameter.
func (h *CoworkingHandler) ListCurrent(c echo.Context) error {
	subject, err := subjectFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID := subject.ID
	if raw := c.QueryParam("user_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		if n != subject.ID {
			// Resolve the target so an unknown user answers 404 rather
			// than an empty list.
			if _, err := h.UserRepo.GetByID(c.Request().Context(), n); err != nil {
				return respondServiceError(c, err)
			}
		}
		userID = n
	}
	items, err := h.Reservations.GetCurrentReservationsForUser(c.Request().Context(), subject, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// parseIDList parses a CSV of positive integers.
func parseIDList(raw string) ([]uint64, bool) {
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil || n == 0 {
			return nil, false
		}
		ids = append(ids, n)
	}
	return ids, len(ids) > 0
}
