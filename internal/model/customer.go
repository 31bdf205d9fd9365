package model

import "time"

// Customer identifies who placed an order.  Customer identifiers are
// supplied externally (they are not auto-generated); a row is created
// the first time an identifier appears on an order.  This struct
// corresponds to a row in the `customers` table.
//
// Fields:
//  ID        – external customer identifier.
//  CreatedAt – timestamp when the customer was first registered.
type Customer struct {
	ID        string    // customers.id
	CreatedAt time.Time // customers.created_at
}
