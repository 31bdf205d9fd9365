package model

import "time"

// InventorySnapshot holds the current on-hand quantity for one
// (product, city) pair.  Unlike the order ledger it is a derived,
// mutable projection: rows are created by the bulk materialization from
// historical orders and then decremented in place as new orders commit.
// The reconciliation rule is that the quantity must always equal the
// bulk-load stock for the pair minus the quantities of every ledger
// order committed for the pair since the bulk load.  This struct
// corresponds to a row in the `inventory` table, unique on
// (product_id, city_id).
//
// Fields:
//  ProductID – reference to the product.
//  CityID    – reference to the city.
//  Product   – product display name (joined where listed).
//  City      – city display name (joined where listed).
//  Quantity  – current on-hand units.
//  UpdatedAt – timestamp of the last write to the row.
type InventorySnapshot struct {
	ProductID uint64    // inventory.product_id
	CityID    uint64    // inventory.city_id
	Product   string    // joined from products.name
	City      string    // joined from cities.name
	Quantity  int       // inventory.quantity
	UpdatedAt time.Time // inventory.updated_at
}

// StockTier buckets a snapshot quantity for display.  Thresholds are
// configuration; see service.Availability.
type StockTier string

const (
	TierLow    StockTier = "LOW"
	TierMedium StockTier = "MEDIUM"
	TierOK     StockTier = "OK"
)
