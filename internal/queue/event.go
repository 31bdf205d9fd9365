// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCommittedEvent is published when an order-entry submission
// commits. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database. Monetary fields carry exact decimal strings.
type OrderCommittedEvent struct {
	OrderID      uint64 `json:"order_id"`
	CustomerID   string `json:"customer_id"`
	City         string `json:"city"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	LineTotal    string `json:"line_total"`
	DeliveryDate string `json:"delivery_date"`
	StockBefore  int    `json:"stock_before"`
	StockAfter   int    `json:"stock_after"`
	CommittedAt  string `json:"committed_at"`
}

// LowStockEvent is the replenishment advisory published when a commit
// leaves a (product, city) pair's stock below the configured threshold.
type LowStockEvent struct {
	City      string `json:"city"`
	Product   string `json:"product"`
	Remaining int    `json:"remaining"`
	Threshold int    `json:"threshold"`
	RaisedAt  string `json:"raised_at"`
}
