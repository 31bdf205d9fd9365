package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freshmarket/inventory-service/internal/config"
	"github.com/freshmarket/inventory-service/internal/database"
	"github.com/freshmarket/inventory-service/internal/handler"
	"github.com/freshmarket/inventory-service/internal/queue"
	"github.com/freshmarket/inventory-service/internal/repository"
	"github.com/freshmarket/inventory-service/internal/router"
	"github.com/freshmarket/inventory-service/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("schema setup failed")
	}
	cancel()

	// Redis backs the rate limiter and the response cache. Both degrade
	// to no-ops when the client is nil, so a missing Redis only costs us
	// the caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn().Msg("redis unavailable, rate limiting and response cache disabled")
	}

	// Event publishing is best-effort: without a broker the workflow
	// still commits orders, it just emits no notifications.
	var events service.EventPublisher
	pub, err := queue.NewPublisher(queue.BrokerURL())
	if err != nil {
		logger.Warn().Err(err).Msg("rabbitmq unavailable, order events disabled")
	} else {
		events = pub
		defer pub.Close()
		go func() {
			if err := queue.StartOrderLogConsumer(); err != nil {
				logger.Warn().Err(err).Msg("order log consumer stopped")
			}
		}()
	}

	cities := repository.NewCityRepo(db)
	products := repository.NewProductRepo(db)
	customers := repository.NewCustomerRepo(db)
	ordersRepo := repository.NewOrderRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	entryStore := repository.NewOrderEntryStore(db, ordersRepo, inventoryRepo, customers)
	reportRepo := repository.NewReportRepo(db)

	entry := service.NewOrderEntry(entryStore, events, cfg.LowStockMin)
	availability := service.NewAvailability(inventoryRepo, cfg.LowStockMin, cfg.MediumStockMin)
	reporter := service.NewReporter(reportRepo)

	orders := handler.NewOrderHandler(entry)
	inventory := handler.NewInventoryHandler(availability)
	reports := handler.NewReportHandler(reporter)
	refs := handler.NewReferenceHandler(cities, products)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAPI(e, orders, inventory, reports, refs, rdb)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
