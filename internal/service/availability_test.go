package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmarket/inventory-service/internal/model"
	"github.com/freshmarket/inventory-service/internal/repository"
)

type fakeReader struct {
	snaps []model.InventorySnapshot
}

func (f *fakeReader) SnapshotByNames(_ context.Context, city, product string) (*model.InventorySnapshot, error) {
	for i := range f.snaps {
		if f.snaps[i].City == city && f.snaps[i].Product == product {
			return &f.snaps[i], nil
		}
	}
	return nil, repository.ErrSnapshotNotFound
}

func (f *fakeReader) ListSnapshots(_ context.Context, city string) ([]model.InventorySnapshot, error) {
	if city == "" {
		return f.snaps, nil
	}
	var out []model.InventorySnapshot
	for _, s := range f.snaps {
		if s.City == city {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeReader) ListBelowThreshold(_ context.Context, threshold int) ([]model.InventorySnapshot, error) {
	var out []model.InventorySnapshot
	for _, s := range f.snaps {
		if s.Quantity < threshold {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestClassifyBoundaries(t *testing.T) {
	a := NewAvailability(&fakeReader{}, 10, 20)

	cases := []struct {
		qty  int
		want model.StockTier
	}{
		{0, model.TierLow},
		{9, model.TierLow},
		{10, model.TierMedium}, // boundary belongs to the tier above
		{19, model.TierMedium},
		{20, model.TierOK},
		{500, model.TierOK},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, a.Classify(tc.qty), "quantity %d", tc.qty)
	}
}

func TestCheckReturnsStatus(t *testing.T) {
	reader := &fakeReader{snaps: []model.InventorySnapshot{
		{City: "Cali", Product: "Arroz", Quantity: 14},
	}}
	a := NewAvailability(reader, 10, 20)

	st, err := a.Check(context.Background(), "Cali", "Arroz")
	require.NoError(t, err)
	assert.Equal(t, 14, st.Quantity)
	assert.Equal(t, model.TierMedium, st.Tier)
}

func TestCheckUnknownPair(t *testing.T) {
	a := NewAvailability(&fakeReader{}, 10, 20)

	_, err := a.Check(context.Background(), "Cali", "Arroz")
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestOverviewCityFilter(t *testing.T) {
	reader := &fakeReader{snaps: []model.InventorySnapshot{
		{City: "Cali", Product: "Arroz", Quantity: 14},
		{City: "Bogotá", Product: "Arroz", Quantity: 3},
		{City: "Cali", Product: "Frijoles", Quantity: 25},
	}}
	a := NewAvailability(reader, 10, 20)

	all, err := a.Overview(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cali, err := a.Overview(context.Background(), "Cali")
	require.NoError(t, err)
	assert.Len(t, cali, 2)
}

func TestAlertsReportShortfall(t *testing.T) {
	reader := &fakeReader{snaps: []model.InventorySnapshot{
		{City: "Bogotá", Product: "Arroz", Quantity: 3},
		{City: "Cali", Product: "Frijoles", Quantity: 25},
	}}
	a := NewAvailability(reader, 10, 20)

	alerts, err := a.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Bogotá", alerts[0].City)
	assert.Equal(t, 7, alerts[0].Shortfall)
	assert.Equal(t, 10, alerts[0].Minimum)
}
