package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmarket/inventory-service/internal/model"
	"github.com/freshmarket/inventory-service/internal/repository"
	"github.com/freshmarket/inventory-service/internal/service"
)

// stubStore serves one (city, product) pair from memory with the same
// commit semantics as the transactional store.
type stubStore struct {
	city, product string
	quantity      int
	nextID        uint64
}

func (s *stubStore) Snapshot(_ context.Context, city, product string) (*model.InventorySnapshot, error) {
	if city != s.city || product != s.product {
		return nil, repository.ErrSnapshotNotFound
	}
	return &model.InventorySnapshot{City: city, Product: product, Quantity: s.quantity}, nil
}

func (s *stubStore) Commit(_ context.Context, o *model.Order) error {
	s.nextID++
	o.ID = s.nextID
	o.StockBefore = s.quantity
	o.StockAfter = s.quantity - o.Quantity
	if o.StockAfter < 0 {
		o.StockAfter = 0
	}
	s.quantity = o.StockAfter
	return nil
}

func submit(t *testing.T, h *OrderHandler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Submit(e.NewContext(req, rec)))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func newHandler(store *stubStore) *OrderHandler {
	return NewOrderHandler(service.NewOrderEntry(store, nil, 10))
}

func TestSubmitCreated(t *testing.T) {
	h := newHandler(&stubStore{city: "Cali", product: "Arroz", quantity: 40})

	rec, resp := submit(t, h, `{"customer_id":"C-1","city":"Cali","product":"Arroz","quantity":5,"unit_price":"3.50","lead_time_days":3}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), resp["order_id"])
	assert.Equal(t, "17.50", resp["line_total"])
	assert.Equal(t, "In-Transit", resp["status"])
	assert.Equal(t, float64(35), resp["stock_after"])
	assert.NotContains(t, resp, "replenishment_advisory")
}

func TestSubmitLowStockAdvisory(t *testing.T) {
	h := newHandler(&stubStore{city: "Cali", product: "Arroz", quantity: 12})

	rec, resp := submit(t, h, `{"customer_id":"C-1","city":"Cali","product":"Arroz","quantity":5,"unit_price":"3.50","lead_time_days":3}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, resp, "replenishment_advisory")
	adv := resp["replenishment_advisory"].(map[string]any)
	assert.Equal(t, float64(7), adv["remaining"])
}

func TestSubmitValidationError(t *testing.T) {
	h := newHandler(&stubStore{city: "Cali", product: "Arroz", quantity: 40})

	rec, resp := submit(t, h, `{"customer_id":"","city":"Cali","product":"Arroz","quantity":5,"unit_price":"3.50","lead_time_days":3}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "customer_id", resp["field"])
}

func TestSubmitUnknownPairReturns404(t *testing.T) {
	h := newHandler(&stubStore{city: "Cali", product: "Arroz", quantity: 40})

	rec, _ := submit(t, h, `{"customer_id":"C-1","city":"Cali","product":"Frijoles","quantity":5,"unit_price":"3.50","lead_time_days":3}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitShortageConflictAndConfirm(t *testing.T) {
	store := &stubStore{city: "Cali", product: "Arroz", quantity: 3}
	h := newHandler(store)

	rec, resp := submit(t, h, `{"customer_id":"C-1","city":"Cali","product":"Arroz","quantity":5,"unit_price":"3.50","lead_time_days":3}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, float64(2), resp["shortfall"])

	rec, resp = submit(t, h, `{"customer_id":"C-1","city":"Cali","product":"Arroz","quantity":5,"unit_price":"3.50","lead_time_days":3,"confirm_shortage":true}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(0), resp["stock_after"])
}
