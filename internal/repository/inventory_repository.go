package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/freshmarket/inventory-service/internal/model"
)

// InventoryRepo manages the inventory snapshot table: one mutable row
// per (product, city) pair holding the current on-hand quantity. Bulk
// writes (materialization) upsert whole rows; the order-entry commit
// path reads a row FOR UPDATE and decrements it inside the same
// transaction as the ledger insert.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns a new InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// SnapshotByNames returns the snapshot for the pair identified by city
// and product display names. Returns ErrSnapshotNotFound when no row
// exists for the pair.
func (r *InventoryRepo) SnapshotByNames(ctx context.Context, city, product string) (*model.InventorySnapshot, error) {
	const q = `SELECT i.product_id, i.city_id, p.name, c.name, i.quantity, i.updated_at
	           FROM inventory i
	           JOIN products p ON p.id = i.product_id
	           JOIN cities c ON c.id = i.city_id
	           WHERE c.name = ? AND p.name = ?`
	var snap model.InventorySnapshot
	err := r.db.QueryRowContext(ctx, q, city, product).Scan(
		&snap.ProductID, &snap.CityID, &snap.Product, &snap.City, &snap.Quantity, &snap.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// SnapshotForUpdateTx loads the snapshot row for a pair with a FOR
// UPDATE lock so concurrent commits against the same pair serialize.
// Returns ErrSnapshotNotFound when no row exists.
func (r *InventoryRepo) SnapshotForUpdateTx(ctx context.Context, tx *sql.Tx, cityID, productID uint64) (*model.InventorySnapshot, error) {
	const q = `SELECT product_id, city_id, quantity, updated_at
	           FROM inventory
	           WHERE product_id = ? AND city_id = ?
	           FOR UPDATE`
	var snap model.InventorySnapshot
	err := tx.QueryRowContext(ctx, q, productID, cityID).Scan(
		&snap.ProductID, &snap.CityID, &snap.Quantity, &snap.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// SetQuantityTx overwrites the on-hand quantity for a pair within the
// scope of an existing transaction, refreshing updated_at.
func (r *InventoryRepo) SetQuantityTx(ctx context.Context, tx *sql.Tx, cityID, productID uint64, quantity int) error {
	const q = `UPDATE inventory SET quantity = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE product_id = ? AND city_id = ?`
	_, err := tx.ExecContext(ctx, q, quantity, productID, cityID)
	return err
}

// UpsertBulk writes one snapshot row per pair, fully overwriting the
// quantity of any pair already present. Used by the bulk
// materialization; safe to re-run from scratch. Passing an empty slice
// has no effect.
func (r *InventoryRepo) UpsertBulk(ctx context.Context, snaps []model.InventorySnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	query := `INSERT INTO inventory (product_id, city_id, quantity) VALUES `
	args := make([]interface{}, 0, len(snaps)*3)
	for i, s := range snaps {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, s.ProductID, s.CityID, s.Quantity)
	}
	query += ` ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// ListSnapshots returns snapshots joined with display names, optionally
// filtered to one city (empty string means all), ordered by city then
// product for deterministic output.
func (r *InventoryRepo) ListSnapshots(ctx context.Context, city string) ([]model.InventorySnapshot, error) {
	q := `SELECT i.product_id, i.city_id, p.name, c.name, i.quantity, i.updated_at
	      FROM inventory i
	      JOIN products p ON p.id = i.product_id
	      JOIN cities c ON c.id = i.city_id`
	args := make([]interface{}, 0, 1)
	if city != "" {
		q += ` WHERE c.name = ?`
		args = append(args, city)
	}
	q += ` ORDER BY c.name, p.name`
	return r.querySnapshots(ctx, q, args...)
}

// ListBelowThreshold returns snapshots whose quantity is strictly below
// the given threshold, lowest stock first. Backs the replenishment
// alert table.
func (r *InventoryRepo) ListBelowThreshold(ctx context.Context, threshold int) ([]model.InventorySnapshot, error) {
	const q = `SELECT i.product_id, i.city_id, p.name, c.name, i.quantity, i.updated_at
	           FROM inventory i
	           JOIN products p ON p.id = i.product_id
	           JOIN cities c ON c.id = i.city_id
	           WHERE i.quantity < ?
	           ORDER BY i.quantity ASC, c.name, p.name`
	return r.querySnapshots(ctx, q, threshold)
}

func (r *InventoryRepo) querySnapshots(ctx context.Context, q string, args ...interface{}) ([]model.InventorySnapshot, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	snaps := make([]model.InventorySnapshot, 0)
	for rows.Next() {
		var s model.InventorySnapshot
		if err := rows.Scan(&s.ProductID, &s.CityID, &s.Product, &s.City, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}
