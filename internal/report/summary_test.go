package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricetracker/internal/domain"
	"pricetracker/internal/storage"
)

func TestLatest(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	bookID, err := store.InsertProduct(ctx, "books.toscrape.com", "https://books.toscrape.com/x", "Book")
	require.NoError(t, err)
	staleID, err := store.InsertProduct(ctx, "scrapeme.live", "https://scrapeme.live/shop/y", "Stale")
	require.NoError(t, err)

	old := decimal.RequireFromString("55.00")
	fresh := decimal.RequireFromString("51.77")
	stale := decimal.RequireFromString("10.00")

	_, err = store.AppendObservation(ctx, domain.PriceObservation{
		ProductID: bookID, TS: time.Now().UTC().Add(-2 * time.Hour), Price: &old, Currency: "GBP",
	})
	require.NoError(t, err)
	_, err = store.AppendObservation(ctx, domain.PriceObservation{
		ProductID: bookID, TS: time.Now().UTC().Add(-time.Hour), Price: &fresh, Currency: "GBP",
	})
	require.NoError(t, err)
	_, err = store.AppendObservation(ctx, domain.PriceObservation{
		ProductID: staleID, TS: time.Now().UTC().Add(-48 * time.Hour), Price: &stale, Currency: "GBP",
	})
	require.NoError(t, err)

	latest, err := Latest(ctx, store, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, latest, 1, "products without a snapshot in the window are omitted")
	assert.Equal(t, bookID, latest[0].Product.ProductID)
	require.NotNil(t, latest[0].Observation.Price)
	assert.Equal(t, "51.77", latest[0].Observation.Price.StringFixed(2), "newest snapshot wins")
}

func TestRenderSummary(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		assert.Equal(t, "No new price snapshots in the past 24h.", RenderSummary(nil))
	})

	t.Run("one line per product", func(t *testing.T) {
		price := decimal.RequireFromString("51.77")
		latest := []LatestPrice{
			{
				Product:     domain.Product{Site: "books.toscrape.com", Name: "Book"},
				Observation: domain.PriceObservation{Price: &price, Currency: "GBP"},
			},
			{
				Product:     domain.Product{Site: "scrapeme.live", Name: "Poliwhirl"},
				Observation: domain.PriceObservation{Currency: "GBP"},
			},
		}
		msg := RenderSummary(latest)
		assert.Contains(t, msg, "Latest price summary:")
		assert.Contains(t, msg, "books.toscrape.com – Book: 51.77 GBP")
		assert.Contains(t, msg, "scrapeme.live – Poliwhirl: n/a GBP", "unpriced snapshots render as n/a")
	})
}
