package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshmarket/inventory-service/internal/repository"
)

// ReferenceHandler lists the reference data the order-entry form needs
// for its city and product choices.
type ReferenceHandler struct {
	Cities   *repository.CityRepo
	Products *repository.ProductRepo
}

// NewReferenceHandler constructs a ReferenceHandler.
func NewReferenceHandler(cities *repository.CityRepo, products *repository.ProductRepo) *ReferenceHandler {
	if cities == nil || products == nil {
		panic("nil repository passed to NewReferenceHandler")
	}
	return &ReferenceHandler{Cities: cities, Products: products}
}

// ListCities handles GET /v1/cities: all city names, alphabetical.
func (h *ReferenceHandler) ListCities(c echo.Context) error {
	names, err := h.Cities.ListNames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cities"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": names})
}

// ListProducts handles GET /v1/products: all product names, alphabetical.
func (h *ReferenceHandler) ListProducts(c echo.Context) error {
	names, err := h.Products.ListNames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load products"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": names})
}
