package ingest

import (
	"context"
	"errors"
	"fmt"

	"pricetracker/internal/storage"
)

// Resolver maps a (site, url) pair to its canonical product id, creating
// the product on first encounter. Resolution is idempotent: the display
// name is written once and never overwritten on later encounters.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the product id for (site, url), inserting a new product
// when none exists. A unique-constraint conflict means another worker just
// created the row, so the pair is re-read instead of failing.
func (r *Resolver) Resolve(ctx context.Context, site, url, name string) (int64, error) {
	p, err := r.store.GetProductByKey(ctx, site, url)
	if err == nil {
		return p.ProductID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}

	id, err := r.store.InsertProduct(ctx, site, url, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, storage.ErrUniqueConflict) {
		return 0, err
	}

	p, err = r.store.GetProductByKey(ctx, site, url)
	if err != nil {
		return 0, fmt.Errorf("re-read after conflict for (%s, %s): %w", site, url, err)
	}
	return p.ProductID, nil
}
