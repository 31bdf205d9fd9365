package repository

import (
	"context"
	"database/sql"

	"github.com/freshmarket/inventory-service/internal/model"
)

// OrderRepo provides write access to the order ledger. Ledger rows are
// insert-once: INSERT IGNORE makes duplicate-identifier writes silent
// no-ops so bulk replays are idempotent, and nothing in this repository
// updates or deletes an existing row.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, customer_id, city_id, product_id, order_date, delivery_date,
	lead_time_days, status, quantity, unit_price, stock_before, stock_after`

// InsertIgnoreBulk replays a batch of ledger rows in a single statement.
// Rows whose identifier already exists are skipped. It returns the
// number of rows actually inserted. Passing an empty slice has no
// effect and returns zero.
func (r *OrderRepo) InsertIgnoreBulk(ctx context.Context, orders []model.Order) (int64, error) {
	if len(orders) == 0 {
		return 0, nil
	}
	query := `INSERT IGNORE INTO orders (` + orderColumns + `) VALUES `
	args := make([]interface{}, 0, len(orders)*12)
	for i, o := range orders {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			o.ID, o.CustomerID, o.CityID, o.ProductID,
			o.OrderDate.Format("2006-01-02"), o.DeliveryDate.Format("2006-01-02"),
			o.LeadTimeDays, string(o.Status), o.Quantity, o.UnitPrice,
			o.StockBefore, o.StockAfter,
		)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CreateTx inserts a single ledger row within the scope of an existing
// transaction. The caller must have assigned the identifier (see
// NextIDTx) and must commit or rollback the transaction.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		o.ID, o.CustomerID, o.CityID, o.ProductID,
		o.OrderDate.Format("2006-01-02"), o.DeliveryDate.Format("2006-01-02"),
		o.LeadTimeDays, string(o.Status), o.Quantity, o.UnitPrice,
		o.StockBefore, o.StockAfter,
	)
	return err
}

// NextIDTx returns one more than the current maximum ledger identifier,
// or 1 when the ledger is empty. It must run inside the same
// transaction as the subsequent insert so two concurrent commits cannot
// be assigned the same identifier.
func (r *OrderRepo) NextIDTx(ctx context.Context, tx *sql.Tx) (uint64, error) {
	const q = `SELECT COALESCE(MAX(id), 0) + 1 FROM orders`
	var next uint64
	if err := tx.QueryRowContext(ctx, q).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}
