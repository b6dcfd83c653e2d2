package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWooCommerce_Parse(t *testing.T) {
	a := &WooCommerce{}
	pageURL := "https://scrapeme.live/shop/Charmander/"

	t.Run("regular price", func(t *testing.T) {
		html := `<html><body>
			<h1 class="product_title entry-title">Charmander</h1>
			<p class="price"><span class="woocommerce-Price-amount amount">£65.00</span></p>
			<p class="stock in-stock">45 in stock</p>
		</body></html>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)

		assert.Equal(t, "scrapeme.live", rec.Site)
		assert.Equal(t, "Charmander", rec.Name)
		require.NotNil(t, rec.Price)
		assert.Equal(t, "65.00", rec.Price.StringFixed(2))
		assert.Equal(t, "GBP", rec.Currency)
		require.NotNil(t, rec.InStock)
		assert.True(t, *rec.InStock)
	})

	t.Run("sale price inside ins wins over struck-through price", func(t *testing.T) {
		html := `<html><body>
			<h1 class="product_title">Poliwhirl</h1>
			<p class="price">
				<del><span class="amount">£130.00</span></del>
				<ins><span class="amount">£99.50</span></ins>
			</p>
		</body></html>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)
		require.NotNil(t, rec.Price)
		assert.Equal(t, "99.50", rec.Price.StringFixed(2))
	})

	t.Run("thousands separator", func(t *testing.T) {
		html := `<h1 class="product_title">X</h1><p class="price"><span class="amount">£1,295.00</span></p>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)
		require.NotNil(t, rec.Price)
		assert.Equal(t, "1295.00", rec.Price.StringFixed(2))
	})

	t.Run("stock flagged only by class", func(t *testing.T) {
		html := `<h1 class="product_title">X</h1><p class="stock in-stock">ships soon</p>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)
		require.NotNil(t, rec.InStock)
		assert.True(t, *rec.InStock)
	})

	t.Run("no stock element leaves stock indeterminate", func(t *testing.T) {
		html := `<h1 class="product_title">X</h1>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)
		assert.Nil(t, rec.InStock)
	})
}

func TestWebScraperIO_Parse(t *testing.T) {
	a := &WebScraperIO{}

	t.Run("product card", func(t *testing.T) {
		html := `<html><body><div class="caption">
			<h4 class="price">$1,139.54</h4>
			<h4>Asus ROG Strix</h4>
		</div></body></html>`
		rec, err := a.Parse([]byte(html), "https://WebScraper.io/test-sites/e-commerce/allinone/product/545")
		require.NoError(t, err)

		assert.Equal(t, "webscraper.io", rec.Site, "site is the lower-cased url host")
		assert.Equal(t, "Asus ROG Strix", rec.Name)
		require.NotNil(t, rec.Price)
		assert.Equal(t, "1139.54", rec.Price.StringFixed(2))
		assert.Equal(t, "USD", rec.Currency)
		require.NotNil(t, rec.InStock)
		assert.True(t, *rec.InStock)
	})

	t.Run("unparseable url host", func(t *testing.T) {
		rec, err := a.Parse([]byte(`<h1>X</h1>`), "::not a url::")
		require.NoError(t, err)
		assert.Equal(t, "unknown", rec.Site)
	})
}
