package repository

import (
	"context"
	"database/sql"
)

// CustomerRepo registers externally supplied customer identifiers.
// Unlike cities and products there is no generated key: the external id
// is the primary key, so Ensure only has to make the row exist.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a new CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Ensure creates the customer row when it does not already exist.
// Idempotent: replaying the same identifier is a no-op.
func (r *CustomerRepo) Ensure(ctx context.Context, id string) error {
	const ins = `INSERT IGNORE INTO customers (id) VALUES (?)`
	_, err := r.db.ExecContext(ctx, ins, id)
	return err
}

// EnsureTx is Ensure within the scope of an existing transaction.
func (r *CustomerRepo) EnsureTx(ctx context.Context, tx *sql.Tx, id string) error {
	const ins = `INSERT IGNORE INTO customers (id) VALUES (?)`
	_, err := tx.ExecContext(ctx, ins, id)
	return err
}
