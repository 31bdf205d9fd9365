package service

import (
	"context"
	"strings"
)

// ReferenceStore is the slice of the persistence layer the resolver
// needs: lookup-or-insert for each reference category.
type ReferenceStore interface {
	EnsureCity(ctx context.Context, name string) (uint64, error)
	EnsureProduct(ctx context.Context, name string) (uint64, error)
	EnsureCustomer(ctx context.Context, id string) error
}

// Resolver assigns stable identifiers to reference data names. For each
// distinct name it reuses the existing row's identifier or creates a
// new row, so resolving overlapping input sets repeatedly never mints a
// second identifier for the same name.
type Resolver struct {
	store ReferenceStore
}

// NewResolver constructs a Resolver over the given store.
func NewResolver(store ReferenceStore) *Resolver {
	return &Resolver{store: store}
}

// ResolveCities maps every distinct city name to its identifier,
// creating rows as needed. A blank name fails with a ValidationError
// before any lookup for it happens.
func (r *Resolver) ResolveCities(ctx context.Context, names []string) (map[string]uint64, error) {
	return r.resolve(ctx, "city", names, r.store.EnsureCity)
}

// ResolveProducts maps every distinct product name to its identifier,
// creating rows as needed.
func (r *Resolver) ResolveProducts(ctx context.Context, names []string) (map[string]uint64, error) {
	return r.resolve(ctx, "product", names, r.store.EnsureProduct)
}

// RegisterCustomers ensures a reference row exists for every distinct
// externally supplied customer identifier.
func (r *Resolver) RegisterCustomers(ctx context.Context, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return &ValidationError{Field: "customer_id", Reason: "must not be empty"}
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if err := r.store.EnsureCustomer(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolve(ctx context.Context, field string, names []string, ensure func(context.Context, string) (uint64, error)) (map[string]uint64, error) {
	out := make(map[string]uint64, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, &ValidationError{Field: field, Reason: "must not be empty"}
		}
		if _, ok := out[name]; ok {
			continue
		}
		id, err := ensure(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, nil
}
