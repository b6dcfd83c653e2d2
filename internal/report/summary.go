// Package report builds latest-price summaries over recent history.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pricetracker/internal/detect"
	"pricetracker/internal/domain"
)

// LatestPrice is the most recent priced snapshot for one product.
type LatestPrice struct {
	Product     domain.Product
	Observation domain.PriceObservation
}

// Latest returns the newest observation per product captured within the
// trailing window. Products with no snapshot in the window are omitted.
func Latest(ctx context.Context, src detect.HistorySource, window time.Duration) ([]LatestPrice, error) {
	products, err := src.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	since := time.Now().UTC().Add(-window)

	var out []LatestPrice
	for _, p := range products {
		obs, err := src.ListObservations(ctx, p.ProductID, since)
		if err != nil {
			return nil, err
		}
		if len(obs) == 0 {
			continue
		}
		out = append(out, LatestPrice{Product: p, Observation: obs[len(obs)-1]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Product.Site == out[j].Product.Site {
			return out[i].Product.Name < out[j].Product.Name
		}
		return out[i].Product.Site < out[j].Product.Site
	})
	return out, nil
}

// RenderSummary formats latest prices into the operator-facing digest.
func RenderSummary(latest []LatestPrice) string {
	if len(latest) == 0 {
		return "No new price snapshots in the past 24h."
	}
	lines := make([]string, 0, len(latest))
	for _, lp := range latest {
		price := "n/a"
		if lp.Observation.Price != nil {
			price = lp.Observation.Price.StringFixed(2)
		}
		lines = append(lines, fmt.Sprintf("%s – %s: %s %s",
			lp.Product.Site, lp.Product.Name, price, lp.Observation.Currency))
	}
	return "Latest price summary:\n" + strings.Join(lines, "\n")
}
