package detect

import (
	"context"
	"time"

	"pricetracker/internal/domain"
)

// HistorySource provides the observation history Detect consumes.
type HistorySource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListObservations(ctx context.Context, productID int64, since time.Time) ([]domain.PriceObservation, error)
}

// LoadSeries reads the full observation history for every product. The
// full history is loaded on purpose: the drop baseline may predate any
// reporting window, which only Detect applies.
func LoadSeries(ctx context.Context, src HistorySource) (map[int64][]domain.PriceObservation, map[int64]domain.Product, error) {
	products, err := src.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}

	series := make(map[int64][]domain.PriceObservation, len(products))
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
		obs, err := src.ListObservations(ctx, p.ProductID, time.Time{})
		if err != nil {
			return nil, nil, err
		}
		if len(obs) > 0 {
			series[p.ProductID] = obs
		}
	}
	return series, byID, nil
}
