package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the probe endpoint used by load balancers and monitoring to
// verify the service is running. It returns plain "ok" with a 200 status.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
