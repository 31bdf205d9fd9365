package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/freshmarket/inventory-service/internal/service"
)

// OrderHandler is the thin presentation adapter over the order-entry
// workflow. It only translates HTTP requests into drafts and the
// workflow's error taxonomy into status codes; all business rules live
// in service.OrderEntry.
type OrderHandler struct {
	Entry *service.OrderEntry
}

// NewOrderHandler constructs an OrderHandler. The workflow must be
// non-nil.
func NewOrderHandler(entry *service.OrderEntry) *OrderHandler {
	if entry == nil {
		panic("nil workflow passed to NewOrderHandler")
	}
	return &OrderHandler{Entry: entry}
}

// submitRequest mirrors the order-entry form. confirm_shortage plays
// the role of the "continue anyway?" prompt: a shortage response (409)
// carries the shortfall, and the client resubmits with the flag set to
// commit regardless.
type submitRequest struct {
	CustomerID      string          `json:"customer_id"`
	City            string          `json:"city"`
	Product         string          `json:"product"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LeadTimeDays    int             `json:"lead_time_days"`
	ConfirmShortage bool            `json:"confirm_shortage"`
}

// Submit handles POST /v1/orders. On success it returns 201 with the
// committed ledger row and, when stock fell below the replenishment
// threshold, the advisory. Validation failures return 400 naming the
// field, an unknown (city, product) pair returns 404, and an
// unconfirmed shortage returns 409 with the shortfall.
func (h *OrderHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	result, err := h.Entry.Submit(c.Request().Context(), service.OrderDraft{
		CustomerID:      req.CustomerID,
		City:            req.City,
		Product:         req.Product,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		LeadTimeDays:    req.LeadTimeDays,
		ConfirmShortage: req.ConfirmShortage,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": vErr.Error(),
				"field": vErr.Field,
			})
		}
		if errors.Is(err, service.ErrProductUnavailable) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		var sErr *service.ShortageError
		if errors.As(err, &sErr) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":     "insufficient stock",
				"requested": sErr.Requested,
				"available": sErr.Available,
				"shortfall": sErr.Shortfall(),
				"hint":      "resubmit with confirm_shortage=true to commit anyway",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit order"})
	}

	o := result.Order
	resp := echo.Map{
		"order_id":      o.ID,
		"customer_id":   o.CustomerID,
		"city":          o.City,
		"product":       o.Product,
		"quantity":      o.Quantity,
		"unit_price":    o.UnitPrice.StringFixed(2),
		"line_total":    o.LineTotal.StringFixed(2),
		"order_date":    o.OrderDate.Format("2006-01-02"),
		"delivery_date": o.DeliveryDate.Format("2006-01-02"),
		"status":        o.Status,
		"stock_before":  o.StockBefore,
		"stock_after":   o.StockAfter,
	}
	if result.Advisory != nil {
		resp["replenishment_advisory"] = result.Advisory
	}
	return c.JSON(http.StatusCreated, resp)
}
