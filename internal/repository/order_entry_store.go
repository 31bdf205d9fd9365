package repository

import (
	"context"
	"database/sql"

	"github.com/freshmarket/inventory-service/internal/model"
)

// OrderEntryStore is the persistence context handed to the order-entry
// workflow. It bundles the ledger and snapshot repositories behind the
// two operations the workflow needs: an unlocked snapshot read for the
// validation step, and an all-or-nothing commit. Keeping the
// transaction machinery here lets the workflow itself stay free of
// database handles and be exercised with an in-memory double in tests.
type OrderEntryStore struct {
	db        *sql.DB
	orders    *OrderRepo
	inventory *InventoryRepo
	customers *CustomerRepo
}

// NewOrderEntryStore constructs an OrderEntryStore over the given
// repositories. All dependencies must be non-nil.
func NewOrderEntryStore(db *sql.DB, orders *OrderRepo, inventory *InventoryRepo, customers *CustomerRepo) *OrderEntryStore {
	if db == nil || orders == nil || inventory == nil || customers == nil {
		panic("nil dependency passed to NewOrderEntryStore")
	}
	return &OrderEntryStore{db: db, orders: orders, inventory: inventory, customers: customers}
}

// Snapshot returns the current inventory snapshot for the pair named by
// city and product. Read-only; used by the workflow's validation step
// and by the availability query. Returns ErrSnapshotNotFound when the
// pair has no snapshot row.
func (s *OrderEntryStore) Snapshot(ctx context.Context, city, product string) (*model.InventorySnapshot, error) {
	return s.inventory.SnapshotByNames(ctx, city, product)
}

// Commit executes the order-entry commit as a single transaction:
// register the customer, re-read the snapshot under a FOR UPDATE lock,
// assign the next ledger identifier, insert the ledger row and
// overwrite the snapshot quantity. Two concurrent commits for the same
// (product, city) pair serialize on the snapshot row lock, so both see
// the stock value left by the other rather than a shared stale read.
//
// The order must arrive with CityID/ProductID resolved and quantity,
// prices, dates and status already set. Commit fills ID, StockBefore
// and StockAfter from the locked snapshot. A failure at any step rolls
// the whole transaction back, leaving ledger and snapshot untouched.
func (s *OrderEntryStore) Commit(ctx context.Context, o *model.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.customers.EnsureTx(ctx, tx, o.CustomerID); err != nil {
		return err
	}

	snap, err := s.inventory.SnapshotForUpdateTx(ctx, tx, o.CityID, o.ProductID)
	if err != nil {
		return err
	}
	o.StockBefore = snap.Quantity
	o.StockAfter = snap.Quantity - o.Quantity
	if o.StockAfter < 0 {
		o.StockAfter = 0
	}

	id, err := s.orders.NextIDTx(ctx, tx)
	if err != nil {
		return err
	}
	o.ID = id

	if err := s.orders.CreateTx(ctx, tx, o); err != nil {
		return err
	}
	if err := s.inventory.SetQuantityTx(ctx, tx, o.CityID, o.ProductID, o.StockAfter); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
