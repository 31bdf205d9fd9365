package repository

import "context"

// ReferenceStore bundles the three reference-data repositories behind
// the interface the resolver works against.
type ReferenceStore struct {
	cities    *CityRepo
	products  *ProductRepo
	customers *CustomerRepo
}

// NewReferenceStore constructs a ReferenceStore over the given
// repositories. All dependencies must be non-nil.
func NewReferenceStore(cities *CityRepo, products *ProductRepo, customers *CustomerRepo) *ReferenceStore {
	if cities == nil || products == nil || customers == nil {
		panic("nil repository passed to NewReferenceStore")
	}
	return &ReferenceStore{cities: cities, products: products, customers: customers}
}

// EnsureCity returns the identifier for a city name, creating the row
// when needed.
func (s *ReferenceStore) EnsureCity(ctx context.Context, name string) (uint64, error) {
	return s.cities.EnsureByName(ctx, name)
}

// EnsureProduct returns the identifier for a product name, creating the
// row when needed.
func (s *ReferenceStore) EnsureProduct(ctx context.Context, name string) (uint64, error) {
	return s.products.EnsureByName(ctx, name)
}

// EnsureCustomer registers an externally supplied customer identifier.
func (s *ReferenceStore) EnsureCustomer(ctx context.Context, id string) error {
	return s.customers.Ensure(ctx, id)
}
