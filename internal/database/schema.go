package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL statements executed by EnsureSchema, in dependency
// order.  Reference tables (cities, products, customers) are append-only;
// orders is the immutable ledger; inventory is the mutable snapshot
// projection, unique per (product, city) pair.  The status CHECK mirrors
// the DeliveryStatus enum, and computed_total is a stored generated
// column so the line total can never drift from quantity × unit price.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(191) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_cities_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(191) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_products_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS customers (
		id VARCHAR(64) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED NOT NULL,
		customer_id VARCHAR(64) NOT NULL,
		city_id BIGINT UNSIGNED NOT NULL,
		product_id BIGINT UNSIGNED NOT NULL,
		order_date DATE NOT NULL,
		delivery_date DATE NOT NULL,
		lead_time_days INT NOT NULL,
		status VARCHAR(16) NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL,
		computed_total DECIMAL(14,2) GENERATED ALWAYS AS (quantity * unit_price) STORED,
		stock_before INT NOT NULL,
		stock_after INT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		CONSTRAINT chk_orders_status CHECK (status IN ('Delivered','Delayed','Cancelled','In-Transit')),
		CONSTRAINT fk_orders_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
		CONSTRAINT fk_orders_city FOREIGN KEY (city_id) REFERENCES cities (id),
		CONSTRAINT fk_orders_product FOREIGN KEY (product_id) REFERENCES products (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS inventory (
		product_id BIGINT UNSIGNED NOT NULL,
		city_id BIGINT UNSIGNED NOT NULL,
		quantity INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (product_id, city_id),
		CONSTRAINT fk_inventory_product FOREIGN KEY (product_id) REFERENCES products (id),
		CONSTRAINT fk_inventory_city FOREIGN KEY (city_id) REFERENCES cities (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all application tables when they do not already
// exist.  It is safe to call on every startup and before a bulk ingest.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
