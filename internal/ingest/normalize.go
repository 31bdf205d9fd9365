package ingest

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshmarket/inventory-service/internal/model"
)

const dateLayout = "2006-01-02"

// Normalize converts raw records into ledger rows: it parses every
// field, derives the delivery date (order date plus lead time) and the
// exact line total, and drops rows with missing or malformed required
// fields. Pure function, no side effects. It returns the clean rows and
// the number of rows dropped.
//
// City and product identifiers are left unresolved (zero); the caller
// resolves reference data before writing the rows.
func Normalize(records []Record) ([]model.Order, int) {
	orders := make([]model.Order, 0, len(records))
	dropped := 0
	for _, rec := range records {
		o, ok := normalizeOne(rec)
		if !ok {
			dropped++
			continue
		}
		orders = append(orders, o)
	}
	return orders, dropped
}

func normalizeOne(rec Record) (model.Order, bool) {
	var o model.Order

	if rec.CustomerID == "" || rec.City == "" || rec.Product == "" {
		return o, false
	}

	id, err := strconv.ParseUint(rec.OrderID, 10, 64)
	if err != nil || id == 0 {
		return o, false
	}
	orderDate, err := time.Parse(dateLayout, rec.OrderDate)
	if err != nil {
		return o, false
	}
	leadDays, err := strconv.Atoi(rec.LeadTimeDays)
	if err != nil || leadDays <= 0 {
		return o, false
	}
	status, ok := model.ParseDeliveryStatus(rec.Status)
	if !ok {
		return o, false
	}
	quantity, err := strconv.Atoi(rec.Quantity)
	if err != nil || quantity <= 0 {
		return o, false
	}
	unitPrice, err := decimal.NewFromString(rec.UnitPrice)
	if err != nil || !unitPrice.IsPositive() {
		return o, false
	}
	stockBefore, err := strconv.Atoi(rec.StockBefore)
	if err != nil || stockBefore < 0 {
		return o, false
	}
	stockAfter, err := strconv.Atoi(rec.StockAfter)
	if err != nil || stockAfter < 0 {
		return o, false
	}

	o = model.Order{
		ID:           id,
		CustomerID:   rec.CustomerID,
		City:         rec.City,
		Product:      rec.Product,
		OrderDate:    orderDate,
		DeliveryDate: orderDate.AddDate(0, 0, leadDays),
		LeadTimeDays: leadDays,
		Status:       status,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		StockBefore:  stockBefore,
		StockAfter:   stockAfter,
	}
	o.LineTotal = o.Total()
	return o, true
}
