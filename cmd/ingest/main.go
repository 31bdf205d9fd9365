// Command ingest loads a historical order export into MySQL. It
// normalizes the CSV rows, registers reference data, appends the orders
// to the ledger and rebuilds the inventory snapshot from the result.
// Re-running it on the same file is a no-op for already-loaded rows.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/freshmarket/inventory-service/internal/config"
	"github.com/freshmarket/inventory-service/internal/database"
	"github.com/freshmarket/inventory-service/internal/ingest"
	"github.com/freshmarket/inventory-service/internal/repository"
	"github.com/freshmarket/inventory-service/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	_ = godotenv.Load()

	var path string
	flag.StringVar(&path, "file", "orders.csv", "path to the order export CSV")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("schema setup failed")
	}

	records, err := ingest.ReadFile(path)
	if err != nil {
		logger.Fatal().Err(err).Str("file", path).Msg("read failed")
	}

	orders, dropped := ingest.Normalize(records)
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("rows rejected during normalization")
	}
	if len(orders) == 0 {
		logger.Fatal().Str("file", path).Msg("no usable rows in export")
	}

	cities := repository.NewCityRepo(db)
	products := repository.NewProductRepo(db)
	customers := repository.NewCustomerRepo(db)
	resolver := service.NewResolver(repository.NewReferenceStore(cities, products, customers))

	cityNames := make([]string, 0, len(orders))
	productNames := make([]string, 0, len(orders))
	customerIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		cityNames = append(cityNames, o.City)
		productNames = append(productNames, o.Product)
		customerIDs = append(customerIDs, o.CustomerID)
	}

	cityIDs, err := resolver.ResolveCities(ctx, cityNames)
	if err != nil {
		logger.Fatal().Err(err).Msg("city resolution failed")
	}
	productIDs, err := resolver.ResolveProducts(ctx, productNames)
	if err != nil {
		logger.Fatal().Err(err).Msg("product resolution failed")
	}
	if err := resolver.RegisterCustomers(ctx, customerIDs); err != nil {
		logger.Fatal().Err(err).Msg("customer registration failed")
	}

	for i := range orders {
		orders[i].CityID = cityIDs[orders[i].City]
		orders[i].ProductID = productIDs[orders[i].Product]
	}

	inserted, err := repository.NewOrderRepo(db).InsertIgnoreBulk(ctx, orders)
	if err != nil {
		logger.Fatal().Err(err).Msg("ledger insert failed")
	}

	materializer := service.NewMaterializer(repository.NewInventoryRepo(db))
	snapshots, err := materializer.Rebuild(ctx, orders)
	if err != nil {
		logger.Fatal().Err(err).Msg("inventory rebuild failed")
	}

	logger.Info().
		Str("file", path).
		Int("rows", len(records)).
		Int("normalized", len(orders)).
		Int("dropped", dropped).
		Int64("inserted", inserted).
		Int("snapshots", snapshots).
		Msg("ingest complete")
}
