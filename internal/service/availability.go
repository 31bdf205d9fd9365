package service

import (
	"context"
	"errors"
	"time"

	"github.com/freshmarket/inventory-service/internal/model"
	"github.com/freshmarket/inventory-service/internal/repository"
)

// AvailabilityReader is the slice of the persistence layer the
// availability query needs. All operations are read-only.
type AvailabilityReader interface {
	SnapshotByNames(ctx context.Context, city, product string) (*model.InventorySnapshot, error)
	ListSnapshots(ctx context.Context, city string) ([]model.InventorySnapshot, error)
	ListBelowThreshold(ctx context.Context, threshold int) ([]model.InventorySnapshot, error)
}

// StockStatus is the answer to one availability check: the current
// quantity for a pair and its display tier.
type StockStatus struct {
	City      string          `json:"city"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Tier      model.StockTier `json:"tier"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockAlert flags one pair whose stock fell below the replenishment
// minimum, including how many units short it is.
type StockAlert struct {
	City      string `json:"city"`
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	Minimum   int    `json:"minimum"`
	Shortfall int    `json:"shortfall"`
}

// Availability answers read-only stock questions: a point lookup for
// one (city, product) pair, the full stock table optionally filtered by
// city, and the below-threshold alert list. Tier boundaries come from
// configuration, not constants.
type Availability struct {
	store     AvailabilityReader
	lowMin    int // quantities below this are LOW
	mediumMin int // quantities below this (but >= lowMin) are MEDIUM
}

// NewAvailability constructs the query service with the configured tier
// boundaries.
func NewAvailability(store AvailabilityReader, lowMin, mediumMin int) *Availability {
	return &Availability{store: store, lowMin: lowMin, mediumMin: mediumMin}
}

// Check returns the current stock status for one pair, or
// ErrProductUnavailable when the pair has no snapshot row. No side
// effects.
func (a *Availability) Check(ctx context.Context, city, product string) (*StockStatus, error) {
	snap, err := a.store.SnapshotByNames(ctx, city, product)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, ErrProductUnavailable
	}
	if err != nil {
		return nil, err
	}
	return a.status(snap), nil
}

// Overview returns the stock status of every pair, optionally filtered
// to one city (empty string means all).
func (a *Availability) Overview(ctx context.Context, city string) ([]StockStatus, error) {
	snaps, err := a.store.ListSnapshots(ctx, city)
	if err != nil {
		return nil, err
	}
	out := make([]StockStatus, 0, len(snaps))
	for i := range snaps {
		out = append(out, *a.status(&snaps[i]))
	}
	return out, nil
}

// Alerts returns every pair whose stock is strictly below the LOW
// boundary, lowest stock first.
func (a *Availability) Alerts(ctx context.Context) ([]StockAlert, error) {
	snaps, err := a.store.ListBelowThreshold(ctx, a.lowMin)
	if err != nil {
		return nil, err
	}
	out := make([]StockAlert, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, StockAlert{
			City:      s.City,
			Product:   s.Product,
			Quantity:  s.Quantity,
			Minimum:   a.lowMin,
			Shortfall: a.lowMin - s.Quantity,
		})
	}
	return out, nil
}

// Classify buckets a quantity into its display tier. A quantity exactly
// at a boundary belongs to the tier above it: with the defaults, 10 is
// MEDIUM and 20 is OK.
func (a *Availability) Classify(quantity int) model.StockTier {
	switch {
	case quantity < a.lowMin:
		return model.TierLow
	case quantity < a.mediumMin:
		return model.TierMedium
	default:
		return model.TierOK
	}
}

func (a *Availability) status(snap *model.InventorySnapshot) *StockStatus {
	return &StockStatus{
		City:      snap.City,
		Product:   snap.Product,
		Quantity:  snap.Quantity,
		Tier:      a.Classify(snap.Quantity),
		UpdatedAt: snap.UpdatedAt,
	}
}
