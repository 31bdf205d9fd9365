package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers GET /healthz with a plain "ok". Load balancers and
// uptime checks poll it to verify the process is serving.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
