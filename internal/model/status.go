package model

// DeliveryStatus tracks where an order is in its delivery lifecycle.
// The set of values is closed and enforced by a CHECK constraint on
// the orders table.
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "Delivered"
	StatusDelayed   DeliveryStatus = "Delayed"
	StatusCancelled DeliveryStatus = "Cancelled"
	StatusInTransit DeliveryStatus = "In-Transit"
)

// Valid reports whether s is one of the four recognised statuses.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusDelivered, StatusDelayed, StatusCancelled, StatusInTransit:
		return true
	}
	return false
}

// legacyStatuses maps the status labels used by the historical CSV
// exports (produced by the previous system in Spanish) onto the
// canonical enum.  Files exported by this service use the canonical
// English labels directly.
var legacyStatuses = map[string]DeliveryStatus{
	"Entregado":  StatusDelivered,
	"Retrasado":  StatusDelayed,
	"Cancelado":  StatusCancelled,
	"En tránsito": StatusInTransit,
}

// ParseDeliveryStatus converts a raw string into a DeliveryStatus.  It
// accepts both the canonical labels and the legacy export labels.  The
// second return value is false when the input matches neither.
func ParseDeliveryStatus(raw string) (DeliveryStatus, bool) {
	s := DeliveryStatus(raw)
	if s.Valid() {
		return s, true
	}
	if mapped, ok := legacyStatuses[raw]; ok {
		return mapped, true
	}
	return "", false
}
