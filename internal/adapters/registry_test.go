package adapters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricetracker/internal/domain"
)

type stubAdapter struct {
	label string
}

func (s *stubAdapter) Parse(html []byte, pageURL string) (domain.NormalizedRecord, error) {
	return domain.NormalizedRecord{Site: s.label, URL: pageURL}, nil
}

func TestRegistry_Resolve(t *testing.T) {
	t.Run("no adapter registered", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Resolve("https://example.com/product/1")
		assert.ErrorIs(t, err, ErrNoAdapter)
	})

	t.Run("substring host match", func(t *testing.T) {
		r := NewRegistry()
		r.Register("books.toscrape.com", &stubAdapter{label: "books"})

		a, err := r.Resolve("https://books.toscrape.com/catalogue/some-book/index.html")
		require.NoError(t, err)
		assert.Equal(t, "books", a.(*stubAdapter).label)

		_, err = r.Resolve("https://other-shop.example/item")
		assert.ErrorIs(t, err, ErrNoAdapter)
	})

	t.Run("first registered adapter wins deterministically", func(t *testing.T) {
		r := NewRegistry()
		r.Register("shop.example", &stubAdapter{label: "first"})
		r.Register("shop.example", &stubAdapter{label: "second"})

		for i := 0; i < 50; i++ {
			a, err := r.Resolve("https://shop.example/item/42")
			require.NoError(t, err)
			assert.Equal(t, "first", a.(*stubAdapter).label)
		}
	})
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	a, err := r.Resolve("https://books.toscrape.com/catalogue/x/index.html")
	require.NoError(t, err)
	assert.IsType(t, &BooksToScrape{}, a)

	a, err = r.Resolve("https://scrapeme.live/shop/Charmander/")
	require.NoError(t, err)
	assert.IsType(t, &WooCommerce{}, a)

	a, err = r.Resolve("https://webscraper.io/test-sites/e-commerce/allinone/product/123")
	require.NoError(t, err)
	assert.IsType(t, &WebScraperIO{}, a)

	_, err = r.Resolve("https://unsupported-site.example/product")
	assert.True(t, errors.Is(err, ErrNoAdapter))
}
