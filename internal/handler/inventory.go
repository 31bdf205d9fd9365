package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshmarket/inventory-service/internal/service"
)

// InventoryHandler exposes the read-only stock views: a point
// availability check, the filterable stock table and the low-stock
// alert list. These back the availability and alert screens that
// previously queried the database directly.
type InventoryHandler struct {
	Availability *service.Availability
}

// NewInventoryHandler constructs an InventoryHandler.
func NewInventoryHandler(availability *service.Availability) *InventoryHandler {
	if availability == nil {
		panic("nil availability service passed to NewInventoryHandler")
	}
	return &InventoryHandler{Availability: availability}
}

// Check handles GET /v1/availability?city=...&product=... It returns
// the current snapshot quantity and tier for the pair, or 404 when no
// snapshot row exists.
func (h *InventoryHandler) Check(c echo.Context) error {
	city := c.QueryParam("city")
	product := c.QueryParam("product")
	if city == "" || product == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city and product are required"})
	}
	status, err := h.Availability.Check(c.Request().Context(), city, product)
	if err != nil {
		if errors.Is(err, service.ErrProductUnavailable) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"available": false,
				"error":     err.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available": true,
		"item":      status,
	})
}

// List handles GET /v1/inventory. The optional ?city= query parameter
// filters the table to one city.
func (h *InventoryHandler) List(c echo.Context) error {
	rows, err := h.Availability.Overview(c.Request().Context(), c.QueryParam("city"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load inventory"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}

// Alerts handles GET /v1/inventory/alerts. It lists every pair whose
// stock sits below the replenishment minimum, lowest first.
func (h *InventoryHandler) Alerts(c echo.Context) error {
	alerts, err := h.Availability.Alerts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load alerts"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(alerts),
		"items": alerts,
	})
}
