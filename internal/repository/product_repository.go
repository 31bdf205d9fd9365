package repository

import (
	"context"
	"database/sql"
)

// ProductRepo provides lookup-or-insert access to the products reference
// table, mirroring CityRepo.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a new ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// EnsureByName returns the identifier of the product with the given
// name, inserting a new row first when none exists. Idempotent under
// replays with overlapping name sets.
func (r *ProductRepo) EnsureByName(ctx context.Context, name string) (uint64, error) {
	const ins = `INSERT IGNORE INTO products (name) VALUES (?)`
	if _, err := r.db.ExecContext(ctx, ins, name); err != nil {
		return 0, err
	}
	const sel = `SELECT id FROM products WHERE name = ?`
	var id uint64
	if err := r.db.QueryRowContext(ctx, sel, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListNames returns all product display names in alphabetical order.
func (r *ProductRepo) ListNames(ctx context.Context) ([]string, error) {
	const q = `SELECT name FROM products ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
