package model

import "time"

// Product is an item sold by the operation.  Like cities, products are
// append-only reference data created on first reference.  This struct
// corresponds to a row in the `products` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique display name of the product.
//  CreatedAt – timestamp when the product was first registered.
type Product struct {
	ID        uint64    // products.id
	Name      string    // products.name
	CreatedAt time.Time // products.created_at
}
