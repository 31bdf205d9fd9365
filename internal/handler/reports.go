package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshmarket/inventory-service/internal/service"
)

// ReportHandler exposes the descriptive aggregations over the ledger as
// JSON endpoints. The same aggregations are written as CSV artifacts by
// the report CLI.
type ReportHandler struct {
	Reporter *service.Reporter
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reporter *service.Reporter) *ReportHandler {
	if reporter == nil {
		panic("nil reporter passed to NewReportHandler")
	}
	return &ReportHandler{Reporter: reporter}
}

// TopProducts handles GET /v1/reports/top-products: each city's
// best-selling product by total units.
func (h *ReportHandler) TopProducts(c echo.Context) error {
	rows, err := h.Reporter.TopProductByCity(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}

// DeliveryIssues handles GET /v1/reports/delivery-issues: products
// ranked by delayed or cancelled order count.
func (h *ReportHandler) DeliveryIssues(c echo.Context) error {
	rows, err := h.Reporter.DeliveryIssuesByProduct(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}

// DeliverySuccess handles GET /v1/reports/delivery-success: per-city
// delivery success percentages.
func (h *ReportHandler) DeliverySuccess(c echo.Context) error {
	rows, err := h.Reporter.DeliverySuccessByCity(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}
