package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/coworking-reservation/internal/repository"
)

// CatalogHandler serves the read-only room and seat catalog. These
// endpoints are public so the seat map can render before login.
type CatalogHandler struct {
	RoomRepo *repository.RoomRepo
	SeatRepo *repository.SeatRepo
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(roomRepo *repository.RoomRepo, seatRepo *repository.SeatRepo) *CatalogHandler {
	if roomRepo == nil || seatRepo == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{RoomRepo: roomRepo, SeatRepo: seatRepo}
}

// ListRooms handles GET /v1/rooms.
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	rooms, err := h.RoomRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// ListRoomSeats handles GET /v1/rooms/:id/seats. The room must exist;
// an unknown ID answers 404.
func (h *CatalogHandler) ListRoomSeats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	room, err := h.RoomRepo.GetByID(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	seats, err := h.SeatRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room": room, "items": seats})
}
