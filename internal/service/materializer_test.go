package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmarket/inventory-service/internal/model"
)

type recordedWriter struct {
	snaps []model.InventorySnapshot
}

func (w *recordedWriter) UpsertBulk(_ context.Context, snaps []model.InventorySnapshot) error {
	w.snaps = snaps
	return nil
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func histOrder(id uint64, city string, cityID uint64, product string, productID uint64, date time.Time, after int) model.Order {
	return model.Order{
		ID:         id,
		City:       city,
		CityID:     cityID,
		Product:    product,
		ProductID:  productID,
		OrderDate:  date,
		StockAfter: after,
	}
}

func TestLatestSnapshotsKeepsNewestPerPair(t *testing.T) {
	orders := []model.Order{
		histOrder(1, "Cali", 1, "Arroz", 1, day(1), 90),
		histOrder(2, "Cali", 1, "Arroz", 1, day(5), 70), // latest for Cali/Arroz
		histOrder(3, "Cali", 1, "Arroz", 1, day(3), 80),
		histOrder(4, "Bogotá", 2, "Arroz", 1, day(2), 55),
	}

	snaps := LatestSnapshots(orders)
	require.Len(t, snaps, 2)

	// Sorted by city then product.
	assert.Equal(t, "Bogotá", snaps[0].City)
	assert.Equal(t, 55, snaps[0].Quantity)
	assert.Equal(t, "Cali", snaps[1].City)
	assert.Equal(t, 70, snaps[1].Quantity)
}

func TestLatestSnapshotsTieBreaksOnLedgerID(t *testing.T) {
	// Two orders on the same day: the higher ledger id was written later.
	orders := []model.Order{
		histOrder(7, "Cali", 1, "Arroz", 1, day(4), 30),
		histOrder(9, "Cali", 1, "Arroz", 1, day(4), 25),
		histOrder(8, "Cali", 1, "Arroz", 1, day(4), 28),
	}

	snaps := LatestSnapshots(orders)
	require.Len(t, snaps, 1)
	assert.Equal(t, 25, snaps[0].Quantity)
}

func TestLatestSnapshotsDistinguishesPairsNotNames(t *testing.T) {
	// Same product in two cities and two products in one city are all
	// separate pairs.
	orders := []model.Order{
		histOrder(1, "Cali", 1, "Arroz", 1, day(1), 10),
		histOrder(2, "Cali", 1, "Frijoles", 2, day(1), 20),
		histOrder(3, "Bogotá", 2, "Arroz", 1, day(1), 30),
	}

	snaps := LatestSnapshots(orders)
	assert.Len(t, snaps, 3)
}

func TestLatestSnapshotsEmptyHistory(t *testing.T) {
	assert.Empty(t, LatestSnapshots(nil))
}

func TestRebuildIsIdempotent(t *testing.T) {
	orders := []model.Order{
		histOrder(1, "Cali", 1, "Arroz", 1, day(1), 90),
		histOrder(2, "Cali", 1, "Arroz", 1, day(5), 70),
	}

	w := &recordedWriter{}
	m := NewMaterializer(w)

	n, err := m.Rebuild(context.Background(), orders)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	first := w.snaps

	n, err = m.Rebuild(context.Background(), orders)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, first, w.snaps)
}
