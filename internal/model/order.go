package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one immutable row in the order ledger.  Rows are insert-once:
// a write with an identifier that already exists is silently skipped so
// that bulk replays are idempotent.  Monetary amounts use decimals to
// avoid floating-point drift on line totals.  This struct corresponds to
// a row in the `orders` table.
//
// Fields:
//  ID           – ledger identifier, caller-assigned or next-available.
//  CustomerID   – external customer identifier.
//  CityID       – reference to the destination city.
//  ProductID    – reference to the ordered product.
//  City         – city display name (resolved alongside CityID).
//  Product      – product display name (resolved alongside ProductID).
//  OrderDate    – date the order was placed.
//  DeliveryDate – derived: order date plus lead time.
//  LeadTimeDays – promised delivery lead time in days.
//  Status       – delivery status enum.
//  Quantity     – units ordered (positive).
//  UnitPrice    – price per unit (positive decimal).
//  LineTotal    – derived: quantity × unit price.
//  StockBefore  – snapshot quantity at order time, before fulfilment.
//  StockAfter   – snapshot quantity after fulfilment (floored at zero).
type Order struct {
	ID           uint64          // orders.id
	CustomerID   string          // orders.customer_id
	CityID       uint64          // orders.city_id
	ProductID    uint64          // orders.product_id
	City         string          // joined from cities.name
	Product      string          // joined from products.name
	OrderDate    time.Time       // orders.order_date
	DeliveryDate time.Time       // orders.delivery_date
	LeadTimeDays int             // orders.lead_time_days
	Status       DeliveryStatus  // orders.status
	Quantity     int             // orders.quantity
	UnitPrice    decimal.Decimal // orders.unit_price
	LineTotal    decimal.Decimal // orders.computed_total (generated column)
	StockBefore  int             // orders.stock_before
	StockAfter   int             // orders.stock_after
}

// Total returns quantity × unit price as an exact decimal.
func (o *Order) Total() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
