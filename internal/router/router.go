// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/campuslabs/coworking-reservation/internal/config"
	"github.com/campuslabs/coworking-reservation/internal/handler"
	"github.com/campuslabs/coworking-reservation/internal/middleware"
	"github.com/campuslabs/coworking-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring hit this to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the public room/seat browse endpoints. These
// carry no JWT middleware so the seat map can render for guests; responses
// are served through the Redis cache when one is configured.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.ResponseCache(cacheCfg, rdb)
	e.GET("/v1/rooms", h.ListRooms, cached)
	e.GET("/v1/rooms/:id/seats", h.ListRoomSeats, cached)
}

// RegisterOperatingHours registers the schedule endpoints. Reading the
// schedule is public and cached; creating and deleting spans requires a
// staff or admin token.
func RegisterOperatingHours(e *echo.Echo, h *handler.OperatingHoursHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.ResponseCache(cacheCfg, rdb)
	e.GET("/v1/coworking/operating-hours", h.Schedule, cached)
	e.GET("/v1/coworking/operating-hours/:id", h.Get, cached)

	staff := e.Group(
		"/v1/coworking/operating-hours",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff, model.RoleAdmin),
	)
	staff.POST("", h.Create)
	staff.DELETE("/:id", h.Delete)
}

// RegisterCoworking registers the authenticated reservation endpoints under
// /v1/coworking. Every route requires a valid JWT; the rate limiter runs
// after authentication so buckets can key on the user.
func RegisterCoworking(e *echo.Echo, h *handler.CoworkingHandler, jwtSecret string, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1/coworking",
		middleware.JWTAuth(jwtSecret),
		middleware.RateLimit(rlCfg, rdb),
	)

	// Availability is the same for every authenticated user, so a short
	// cache TTL is safe and absorbs seat-map polling.
	g.GET("/availability", h.Availability, middleware.ResponseCache(cacheCfg, rdb))

	g.POST("/reservation", h.Draft)
	g.GET("/reservation/:id", h.Get)
	g.PUT("/reservation/:id", h.Change)
	g.GET("/reservations", h.ListCurrent)

	// Check-in is performed at the front desk, not by the reservation
	// holder. The engine enforces the permission again on top of the role
	// middleware.
	g.PUT("/reservation/:id/checkin", h.StaffCheckin, middleware.RequireRole(model.RoleStaff, model.RoleAdmin))
}
