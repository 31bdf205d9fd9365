package repository

import (
	"context"
	"database/sql"
)

// ReportRepo runs the descriptive aggregations over the order ledger.
// All queries are read-only.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo returns a new ReportRepo bound to the given database.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// CityTopProduct is the best-selling product of one city by total units.
type CityTopProduct struct {
	City     string `json:"city"`
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

// ProductIssueCount counts delayed or cancelled orders per product.
type ProductIssueCount struct {
	Product string `json:"product"`
	Orders  int64  `json:"orders"`
}

// CityDeliverySuccess summarises delivery outcomes per city.
type CityDeliverySuccess struct {
	City       string  `json:"city"`
	Total      int64   `json:"total_orders"`
	Delivered  int64   `json:"delivered_orders"`
	SuccessPct float64 `json:"success_pct"`
}

// TopProductByCity returns, for each city, the product with the highest
// total quantity sold. Ties break alphabetically by product name so the
// result is deterministic.
func (r *ReportRepo) TopProductByCity(ctx context.Context) ([]CityTopProduct, error) {
	const q = `SELECT city, product, qty FROM (
	             SELECT c.name AS city, p.name AS product, SUM(o.quantity) AS qty,
	                    ROW_NUMBER() OVER (PARTITION BY c.name ORDER BY SUM(o.quantity) DESC, p.name) AS rn
	             FROM orders o
	             JOIN cities c ON c.id = o.city_id
	             JOIN products p ON p.id = o.product_id
	             GROUP BY c.name, p.name
	           ) ranked
	           WHERE rn = 1
	           ORDER BY city`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CityTopProduct, 0)
	for rows.Next() {
		var row CityTopProduct
		if err := rows.Scan(&row.City, &row.Product, &row.Quantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeliveryIssuesByProduct returns products ranked by how many of their
// orders were delayed or cancelled, most problematic first.
func (r *ReportRepo) DeliveryIssuesByProduct(ctx context.Context) ([]ProductIssueCount, error) {
	const q = `SELECT p.name, COUNT(*) AS orders
	           FROM orders o
	           JOIN products p ON p.id = o.product_id
	           WHERE o.status IN ('Delayed', 'Cancelled')
	           GROUP BY p.name
	           ORDER BY orders DESC, p.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ProductIssueCount, 0)
	for rows.Next() {
		var row ProductIssueCount
		if err := rows.Scan(&row.Product, &row.Orders); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeliverySuccessByCity returns, per city, the total order count, the
// delivered count and the delivery success percentage.
func (r *ReportRepo) DeliverySuccessByCity(ctx context.Context) ([]CityDeliverySuccess, error) {
	const q = `SELECT c.name,
	                  COUNT(*) AS total,
	                  COALESCE(SUM(o.status = 'Delivered'), 0) AS delivered
	           FROM orders o
	           JOIN cities c ON c.id = o.city_id
	           GROUP BY c.name
	           ORDER BY c.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CityDeliverySuccess, 0)
	for rows.Next() {
		var row CityDeliverySuccess
		if err := rows.Scan(&row.City, &row.Total, &row.Delivered); err != nil {
			return nil, err
		}
		if row.Total > 0 {
			row.SuccessPct = float64(row.Delivered) / float64(row.Total) * 100
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
