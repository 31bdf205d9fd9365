package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmarket/inventory-service/internal/model"
	"github.com/freshmarket/inventory-service/internal/repository"
)

// fakeOrderStore mimics the transactional store in memory: Commit
// assigns max(id)+1, captures stock before/after and decrements the
// snapshot, all-or-nothing.
type fakeOrderStore struct {
	snapshots map[[2]string]*model.InventorySnapshot // keyed by {city, product}
	orders    []model.Order
	commitErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{snapshots: make(map[[2]string]*model.InventorySnapshot)}
}

func (f *fakeOrderStore) addStock(city, product string, qty int) {
	f.snapshots[[2]string{city, product}] = &model.InventorySnapshot{
		CityID:    uint64(len(f.snapshots)*2 + 1),
		ProductID: uint64(len(f.snapshots)*2 + 2),
		City:      city,
		Product:   product,
		Quantity:  qty,
	}
}

func (f *fakeOrderStore) Snapshot(_ context.Context, city, product string) (*model.InventorySnapshot, error) {
	snap, ok := f.snapshots[[2]string{city, product}]
	if !ok {
		return nil, repository.ErrSnapshotNotFound
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeOrderStore) Commit(_ context.Context, o *model.Order) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	snap := f.snapshots[[2]string{o.City, o.Product}]
	var maxID uint64
	for _, existing := range f.orders {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	o.ID = maxID + 1
	o.StockBefore = snap.Quantity
	o.StockAfter = snap.Quantity - o.Quantity
	if o.StockAfter < 0 {
		o.StockAfter = 0
	}
	snap.Quantity = o.StockAfter
	f.orders = append(f.orders, *o)
	return nil
}

type recordedEvents struct {
	committed []model.Order
	lowStock  []ReplenishmentAdvisory
	fail      bool
}

func (r *recordedEvents) OrderCommitted(_ context.Context, o *model.Order) error {
	if r.fail {
		return errors.New("broker down")
	}
	r.committed = append(r.committed, *o)
	return nil
}

func (r *recordedEvents) LowStock(_ context.Context, adv ReplenishmentAdvisory) error {
	if r.fail {
		return errors.New("broker down")
	}
	r.lowStock = append(r.lowStock, adv)
	return nil
}

func draft() OrderDraft {
	return OrderDraft{
		CustomerID:   "C-1001",
		City:         "Bogotá",
		Product:      "Leche Entera",
		Quantity:     5,
		UnitPrice:    decimal.NewFromFloat(3.50),
		LeadTimeDays: 3,
	}
}

func TestSubmitCommitsOrder(t *testing.T) {
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 40)
	events := &recordedEvents{}

	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	entry := NewOrderEntry(store, events, 10).WithClock(func() time.Time { return fixed })

	res, err := entry.Submit(context.Background(), draft())
	require.NoError(t, err)
	require.Equal(t, StateCommitted, res.State)
	require.NotNil(t, res.Order)

	o := res.Order
	assert.Equal(t, uint64(1), o.ID)
	assert.Equal(t, model.StatusInTransit, o.Status)
	assert.Equal(t, fixed, o.OrderDate)
	assert.Equal(t, fixed.AddDate(0, 0, 3), o.DeliveryDate)
	assert.Equal(t, 40, o.StockBefore)
	assert.Equal(t, 35, o.StockAfter)
	assert.True(t, o.LineTotal.Equal(decimal.NewFromFloat(17.50)), "line total %s", o.LineTotal)

	assert.Nil(t, res.Advisory, "35 units left is above the threshold")
	require.Len(t, events.committed, 1)
	assert.Empty(t, events.lowStock)
}

func TestSubmitAssignsSequentialIDs(t *testing.T) {
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 100)
	entry := NewOrderEntry(store, nil, 10)

	for want := uint64(1); want <= 4; want++ {
		res, err := entry.Submit(context.Background(), draft())
		require.NoError(t, err)
		assert.Equal(t, want, res.Order.ID)
	}
}

func TestSubmitStockConservation(t *testing.T) {
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 50)
	entry := NewOrderEntry(store, nil, 10)

	committed := 0
	for i := 0; i < 6; i++ {
		res, err := entry.Submit(context.Background(), draft())
		require.NoError(t, err)
		require.Equal(t, StateCommitted, res.State)
		committed += res.Order.Quantity
	}

	snap, err := store.Snapshot(context.Background(), "Bogotá", "Leche Entera")
	require.NoError(t, err)
	assert.Equal(t, 50-committed, snap.Quantity)

	// Every ledger row's before/after must chain.
	for _, o := range store.orders {
		assert.Equal(t, o.StockBefore-o.Quantity, o.StockAfter)
	}
}

func TestSubmitValidationRejections(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*OrderDraft)
	}{
		{"customer_id", func(d *OrderDraft) { d.CustomerID = "  " }},
		{"city", func(d *OrderDraft) { d.City = "" }},
		{"product", func(d *OrderDraft) { d.Product = "" }},
		{"quantity", func(d *OrderDraft) { d.Quantity = 0 }},
		{"quantity", func(d *OrderDraft) { d.Quantity = -3 }},
		{"unit_price", func(d *OrderDraft) { d.UnitPrice = decimal.Zero }},
		{"unit_price", func(d *OrderDraft) { d.UnitPrice = decimal.NewFromInt(-1) }},
		{"lead_time_days", func(d *OrderDraft) { d.LeadTimeDays = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			store := newFakeOrderStore()
			store.addStock("Bogotá", "Leche Entera", 40)
			entry := NewOrderEntry(store, nil, 10)

			d := draft()
			tc.mutate(&d)
			res, err := entry.Submit(context.Background(), d)

			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, StateRejected, res.State)
			assert.Empty(t, store.orders, "a rejected submission must not write")
		})
	}
}

func TestSubmitUnknownPair(t *testing.T) {
	store := newFakeOrderStore()
	entry := NewOrderEntry(store, nil, 10)

	res, err := entry.Submit(context.Background(), draft())
	require.ErrorIs(t, err, ErrProductUnavailable)
	assert.Equal(t, StateEditing, res.State)
	assert.Empty(t, store.orders)
}

func TestSubmitShortageRequiresConfirmation(t *testing.T) {
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 3)
	entry := NewOrderEntry(store, nil, 10)

	d := draft() // wants 5, only 3 available
	res, err := entry.Submit(context.Background(), d)

	var shortage *ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 5, shortage.Requested)
	assert.Equal(t, 3, shortage.Available)
	assert.Equal(t, 2, shortage.Shortfall())
	assert.Equal(t, StateEditing, res.State)
	assert.Empty(t, store.orders, "an unconfirmed shortage must not write")

	snap, _ := store.Snapshot(context.Background(), "Bogotá", "Leche Entera")
	assert.Equal(t, 3, snap.Quantity, "stock untouched")
}

func TestSubmitConfirmedShortageFloorsStockAtZero(t *testing.T) {
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 3)
	events := &recordedEvents{}
	entry := NewOrderEntry(store, events, 10)

	d := draft()
	d.ConfirmShortage = true
	res, err := entry.Submit(context.Background(), d)

	require.NoError(t, err)
	require.Equal(t, StateCommitted, res.State)
	assert.Equal(t, 3, res.Order.StockBefore)
	assert.Equal(t, 0, res.Order.StockAfter)

	require.NotNil(t, res.Advisory)
	assert.Equal(t, 0, res.Advisory.Remaining)
	assert.Equal(t, 10, res.Advisory.Threshold)
	require.Len(t, events.lowStock, 1)
}

func TestSubmitAdvisoryThresholdIsStrict(t *testing.T) {
	// stock-after exactly at the threshold emits no advisory; one below does.
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 15)
	entry := NewOrderEntry(store, nil, 10)

	res, err := entry.Submit(context.Background(), draft()) // 15 - 5 = 10
	require.NoError(t, err)
	assert.Nil(t, res.Advisory)

	res, err = entry.Submit(context.Background(), draft()) // 10 - 5 = 5
	require.NoError(t, err)
	require.NotNil(t, res.Advisory)
	assert.Equal(t, 5, res.Advisory.Remaining)
}

func TestSubmitPersistenceFailureLeavesEditing(t *testing.T) {
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 40)
	store.commitErr = errors.New("deadlock found when trying to get lock")
	entry := NewOrderEntry(store, nil, 10)

	res, err := entry.Submit(context.Background(), draft())
	require.Error(t, err)
	assert.Equal(t, StateEditing, res.State)
	assert.Empty(t, store.orders)

	snap, _ := store.Snapshot(context.Background(), "Bogotá", "Leche Entera")
	assert.Equal(t, 40, snap.Quantity)
}

func TestSubmitPublishFailureDoesNotAffectCommit(t *testing.T) {
	store := newFakeOrderStore()
	store.addStock("Bogotá", "Leche Entera", 40)
	events := &recordedEvents{fail: true}
	entry := NewOrderEntry(store, events, 10)

	res, err := entry.Submit(context.Background(), draft())
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, res.State)
	require.Len(t, store.orders, 1)
}
