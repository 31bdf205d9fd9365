package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRefStore mints a new id per distinct name, like the INSERT IGNORE
// + SELECT pattern does against MySQL.
type fakeRefStore struct {
	cities    map[string]uint64
	products  map[string]uint64
	customers map[string]int // ensure call count per id
}

func newFakeRefStore() *fakeRefStore {
	return &fakeRefStore{
		cities:    make(map[string]uint64),
		products:  make(map[string]uint64),
		customers: make(map[string]int),
	}
}

func ensureIn(m map[string]uint64, name string) uint64 {
	if id, ok := m[name]; ok {
		return id
	}
	id := uint64(len(m) + 1)
	m[name] = id
	return id
}

func (f *fakeRefStore) EnsureCity(_ context.Context, name string) (uint64, error) {
	return ensureIn(f.cities, name), nil
}

func (f *fakeRefStore) EnsureProduct(_ context.Context, name string) (uint64, error) {
	return ensureIn(f.products, name), nil
}

func (f *fakeRefStore) EnsureCustomer(_ context.Context, id string) error {
	f.customers[id]++
	return nil
}

func TestResolveCitiesIsStable(t *testing.T) {
	store := newFakeRefStore()
	r := NewResolver(store)

	first, err := r.ResolveCities(context.Background(), []string{"Cali", "Bogotá", "Cali"})
	require.NoError(t, err)
	assert.Len(t, first, 2)

	// Resolving an overlapping set later reuses the same identifiers.
	second, err := r.ResolveCities(context.Background(), []string{"Bogotá", "Medellín"})
	require.NoError(t, err)
	assert.Equal(t, first["Bogotá"], second["Bogotá"])
	assert.NotEqual(t, second["Bogotá"], second["Medellín"])
}

func TestResolveProductsRejectsBlankName(t *testing.T) {
	r := NewResolver(newFakeRefStore())

	_, err := r.ResolveProducts(context.Background(), []string{"Arroz", "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "product", verr.Field)
}

func TestRegisterCustomersDeduplicates(t *testing.T) {
	store := newFakeRefStore()
	r := NewResolver(store)

	err := r.RegisterCustomers(context.Background(), []string{"C-1", "C-2", "C-1", "C-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.customers["C-1"])
	assert.Equal(t, 1, store.customers["C-2"])
}

func TestRegisterCustomersRejectsBlankID(t *testing.T) {
	r := NewResolver(newFakeRefStore())

	err := r.RegisterCustomers(context.Background(), []string{"C-1", ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customer_id", verr.Field)
}
