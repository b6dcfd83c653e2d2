package ingest

import (
	"context"

	"pricetracker/internal/domain"
)

// Store is the persistence surface the ingestion pipeline writes through.
// Implementations signal storage.ErrNotFound, storage.ErrUniqueConflict and
// storage.ErrUnavailable from the corresponding operations.
type Store interface {
	GetProductByKey(ctx context.Context, site, url string) (*domain.Product, error)
	InsertProduct(ctx context.Context, site, url, name string) (int64, error)
	AppendObservation(ctx context.Context, obs domain.PriceObservation) (int64, error)
}
