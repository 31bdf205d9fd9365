package service

import (
	"context"
	"sort"

	"github.com/freshmarket/inventory-service/internal/model"
)

// SnapshotWriter is the slice of the persistence layer the materializer
// needs: a bulk upsert that fully overwrites the quantity of every pair
// present in the input.
type SnapshotWriter interface {
	UpsertBulk(ctx context.Context, snaps []model.InventorySnapshot) error
}

// Materializer derives the inventory snapshot table from the full order
// history. It is a bulk, one-time initialization: re-running it on the
// same input writes the same rows.
type Materializer struct {
	store SnapshotWriter
}

// NewMaterializer constructs a Materializer over the given store.
func NewMaterializer(store SnapshotWriter) *Materializer {
	return &Materializer{store: store}
}

// Rebuild computes one snapshot per (product, city) pair from the
// normalized history and writes them, overwriting any prior rows for
// those pairs. Returns the number of snapshot rows written. Orders must
// arrive with CityID/ProductID resolved.
func (m *Materializer) Rebuild(ctx context.Context, orders []model.Order) (int, error) {
	snaps := LatestSnapshots(orders)
	if err := m.store.UpsertBulk(ctx, snaps); err != nil {
		return 0, err
	}
	return len(snaps), nil
}

type pairKey struct {
	productID uint64
	cityID    uint64
}

// LatestSnapshots folds the order history into one snapshot per
// (product, city) pair, holding the stock-after value of the
// chronologically latest order for the pair. When several orders share
// the latest date, the one with the highest ledger identifier wins —
// ledger identifiers are monotonic, so the highest id is the last order
// written that day. Output is sorted by city then product name so
// repeated runs produce identical row order. Pure function.
func LatestSnapshots(orders []model.Order) []model.InventorySnapshot {
	latest := make(map[pairKey]model.Order, len(orders))
	for _, o := range orders {
		key := pairKey{productID: o.ProductID, cityID: o.CityID}
		cur, ok := latest[key]
		if !ok || o.OrderDate.After(cur.OrderDate) ||
			(o.OrderDate.Equal(cur.OrderDate) && o.ID > cur.ID) {
			latest[key] = o
		}
	}

	snaps := make([]model.InventorySnapshot, 0, len(latest))
	for key, o := range latest {
		snaps = append(snaps, model.InventorySnapshot{
			ProductID: key.productID,
			CityID:    key.cityID,
			Product:   o.Product,
			City:      o.City,
			Quantity:  o.StockAfter,
		})
	}
	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].City != snaps[j].City {
			return snaps[i].City < snaps[j].City
		}
		return snaps[i].Product < snaps[j].Product
	})
	return snaps
}
