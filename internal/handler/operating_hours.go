package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/coworking-reservation/internal/model"
	"github.com/campuslabs/coworking-reservation/internal/service"
)

// OperatingHoursHandler exposes the facility's open/closed schedule.
// Reading the schedule is public; creating and deleting spans is limited
// to staff routes.
type OperatingHoursHandler struct {
	Hours *service.OperatingHoursService
}

// NewOperatingHoursHandler constructs an OperatingHoursHandler.
func NewOperatingHoursHandler(hours *service.OperatingHoursService) *OperatingHoursHandler {
	if hours == nil {
		panic("nil service passed to NewOperatingHoursHandler")
	}
	return &OperatingHoursHandler{Hours: hours}
}

// hoursBody is the request body for creating an open span.
type hoursBody struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtfield=Start"`
}

// Schedule handles GET /v1/coworking/operating-hours. Without query
// parameters it returns the coming week's spans.
func (h *OperatingHoursHandler) Schedule(c echo.Context) error {
	now := time.Now().UTC()
	start, ok := queryTime(c, "start")
	if !ok {
		start = now
	}
	end, ok := queryTime(c, "end")
	if !ok {
		end = start.Add(7 * 24 * time.Hour)
	}
	rng, err := model.NewTimeRange(start, end)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.Hours.Schedule(c.Request().Context(), rng)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/coworking/operating-hours/:id.
func (h *OperatingHoursHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operating hours id"})
	}
	oh, err := h.Hours.Get(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"operating_hours": oh})
}

// Create handles POST /v1/coworking/operating-hours (staff only). A span
// overlapping an existing record answers 409.
func (h *OperatingHoursHandler) Create(c echo.Context) error {
	var body hoursBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	rng, err := model.NewTimeRange(body.Start.UTC(), body.End.UTC())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	oh, err := h.Hours.Create(c.Request().Context(), rng)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"operating_hours": oh})
}

// Delete handles DELETE /v1/coworking/operating-hours/:id (staff only).
func (h *OperatingHoursHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operating hours id"})
	}
	if err := h.Hours.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
