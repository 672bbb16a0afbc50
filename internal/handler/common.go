// Package handler defines the HTTP handlers. Handlers stay thin: they
// parse and validate the request, call into the service layer, and
// translate typed errors into JSON responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/coworking-reservation/internal/model"
	"github.com/campuslabs/coworking-reservation/internal/repository"
	"github.com/campuslabs/coworking-reservation/internal/service"
)

// subjectFromContext builds the acting user from the JWT claims stored by
// the auth middleware. The profile row is not loaded; the engine only
// needs the ID for party checks and the role for permission checks.
func subjectFromContext(c echo.Context) (*model.User, error) {
	id, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	role, _ := c.Get("role").(string)
	return &model.User{ID: id, Role: role}, nil
}

// getUserID extracts the user_id claim from context and converts it to
// uint64. JWT decoding yields float64 for numeric claims, so several
// representations are tolerated.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// queryTime parses an RFC3339 query parameter, returning ok=false when the
// parameter is absent or malformed.
func queryTime(c echo.Context, name string) (time.Time, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// respondServiceError maps engine and repository errors onto HTTP
// responses. Domain errors carry their message to the client; everything
// unexpected collapses into a 500 without leaking internals.
func respondServiceError(c echo.Context, err error) error {
	var resErr *service.ReservationError
	switch {
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrConflictingReservation),
		errors.Is(err, service.ErrOverlappingHours),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &resErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": resErr.Error()})
	case errors.Is(err, model.ErrInvalidTimeRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
