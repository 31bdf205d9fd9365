package repository

import (
	"context"
	"database/sql"
)

// CityRepo provides lookup-or-insert access to the cities reference
// table. Cities are append-only: rows are created the first time a name
// is seen and are never deleted.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo returns a new CityRepo bound to the given database.
func NewCityRepo(db *sql.DB) *CityRepo { return &CityRepo{db: db} }

// EnsureByName returns the identifier of the city with the given name,
// inserting a new row first when none exists. INSERT IGNORE followed by
// a SELECT keeps the operation idempotent under replays: calling it
// twice with the same name always yields the same identifier.
func (r *CityRepo) EnsureByName(ctx context.Context, name string) (uint64, error) {
	const ins = `INSERT IGNORE INTO cities (name) VALUES (?)`
	if _, err := r.db.ExecContext(ctx, ins, name); err != nil {
		return 0, err
	}
	const sel = `SELECT id FROM cities WHERE name = ?`
	var id uint64
	if err := r.db.QueryRowContext(ctx, sel, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListNames returns all city display names in alphabetical order. Used
// to populate the order-entry form choices.
func (r *CityRepo) ListNames(ctx context.Context) ([]string, error) {
	const q = `SELECT name FROM cities ORDER BY name`
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
