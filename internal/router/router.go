package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/freshmarket/inventory-service/internal/config"
	"github.com/freshmarket/inventory-service/internal/handler"
	"github.com/freshmarket/inventory-service/internal/middleware"
)

// RegisterRoutes registers the health check on the provided Echo
// instance. This endpoint can be used by load balancers or monitoring
// systems to verify that the service is up and running.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires all application endpoints under /v1. The order
// submission endpoint is rate limited; the read-only endpoints sit
// behind the Redis response cache so repeated table refreshes do not
// hit the database on every poll. Both middlewares degrade to no-ops
// when rdb is nil.
func RegisterAPI(e *echo.Echo, orders *handler.OrderHandler, inventory *handler.InventoryHandler, reports *handler.ReportHandler, refs *handler.ReferenceHandler, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The single write path: manual order entry.
	e.POST("/v1/orders", orders.Submit, limiter)

	// Read-only views. Cache entries expire by TTL, which matches the
	// manual-refresh behavior of the old desktop tables.
	reads := e.Group("/v1", cache)
	reads.GET("/availability", inventory.Check)
	reads.GET("/inventory", inventory.List)
	reads.GET("/inventory/alerts", inventory.Alerts)
	reads.GET("/cities", refs.ListCities)
	reads.GET("/products", refs.ListProducts)
	reads.GET("/reports/top-products", reports.TopProducts)
	reads.GET("/reports/delivery-issues", reports.DeliveryIssues)
	reads.GET("/reports/delivery-success", reports.DeliverySuccess)
}
