package detect

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

func TestLoadSeries(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	id, err := store.InsertProduct(ctx, "books.toscrape.com", "https://books.toscrape.com/x", "Book")
	require.NoError(t, err)
	emptyID, err := store.InsertProduct(ctx, "scrapeme.live", "https://scrapeme.live/shop/y", "No Snapshots")
	require.NoError(t, err)

	p1 := decimal.RequireFromString("10.00")
	p2 := decimal.RequireFromString("8.00")
	_, err = store.AppendObservation(ctx, domain.PriceObservation{
		ProductID: id, TS: time.Now().UTC().Add(-48 * time.Hour), Price: &p1,
	})
	require.NoError(t, err)
	_, err = store.AppendObservation(ctx, domain.PriceObservation{
		ProductID: id, TS: time.Now().UTC(), Price: &p2,
	})
	require.NoError(t, err)

	series, products, err := LoadSeries(ctx, store)
	require.NoError(t, err)

	assert.Len(t, products, 2)
	require.Contains(t, series, id)
	assert.Len(t, series[id], 2, "full history is loaded so the baseline can predate any window")
	assert.NotContains(t, series, emptyID)

	events := Detect(series, Options{Since: time.Now().UTC().Add(-12 * time.Hour)})
	require.Len(t, events, 1)
	assert.Equal(t, "20.00", events[0].DropPct.StringFixed(2))
}
