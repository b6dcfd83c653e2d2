package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const booksFixture = `<!DOCTYPE html>
<html>
<body>
<div class="product_main">
  <h1>A Light in the Attic</h1>
  <p class="price_color">£51.77</p>
  <p class="availability">In stock (22 available)</p>
</div>
</body>
</html>`

func TestBooksToScrape_Parse(t *testing.T) {
	a := &BooksToScrape{}
	pageURL := "https://books.toscrape.com/catalogue/a-light-in-the-attic_1000/index.html"

	t.Run("full product page", func(t *testing.T) {
		rec, err := a.Parse([]byte(booksFixture), pageURL)
		require.NoError(t, err)

		assert.Equal(t, "books.toscrape.com", rec.Site)
		assert.Equal(t, pageURL, rec.URL)
		assert.Equal(t, "A Light in the Attic", rec.Name)
		require.NotNil(t, rec.Price)
		assert.Equal(t, "51.77", rec.Price.StringFixed(2))
		assert.Equal(t, "GBP", rec.Currency)
		require.NotNil(t, rec.InStock)
		assert.True(t, *rec.InStock)
		require.NotNil(t, rec.OnSale)
		assert.False(t, *rec.OnSale)
	})

	t.Run("mojibake currency symbol", func(t *testing.T) {
		html := `<div class="product_main"><h1>B</h1><p class="price_color">Â£10.00</p></div>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)
		require.NotNil(t, rec.Price)
		assert.Equal(t, "10.00", rec.Price.StringFixed(2))
	})

	t.Run("missing fields degrade to nil", func(t *testing.T) {
		rec, err := a.Parse([]byte(`<html><body><p>not a product page</p></body></html>`), pageURL)
		require.NoError(t, err)
		assert.Empty(t, rec.Name)
		assert.Nil(t, rec.Price)
		assert.Nil(t, rec.InStock)
	})

	t.Run("unparseable price degrades to nil", func(t *testing.T) {
		html := `<div class="product_main"><h1>B</h1><p class="price_color">call us</p></div>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)
		assert.Equal(t, "B", rec.Name)
		assert.Nil(t, rec.Price)
	})

	t.Run("out of stock", func(t *testing.T) {
		html := `<div class="product_main"><h1>B</h1><p class="availability">Out of stock</p></div>`
		rec, err := a.Parse([]byte(html), pageURL)
		require.NoError(t, err)
		require.NotNil(t, rec.InStock)
		assert.False(t, *rec.InStock)
	})

	t.Run("empty document is a parse error", func(t *testing.T) {
		_, err := a.Parse([]byte("   \n"), pageURL)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, pageURL, perr.URL)
	})
}
