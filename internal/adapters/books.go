package adapters

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricetracker/internal/domain"
)

// BooksToScrape parses product pages from books.toscrape.com.
type BooksToScrape struct{}

func (b *BooksToScrape) Parse(html []byte, pageURL string) (domain.NormalizedRecord, error) {
	doc, err := newDocument(html, pageURL)
	if err != nil {
		return domain.NormalizedRecord{}, err
	}

	rec := domain.NormalizedRecord{
		Site:     "books.toscrape.com",
		URL:      pageURL,
		Currency: "GBP",
		OnSale:   boolPtr(false),
	}

	rec.Name = strings.TrimSpace(doc.Find(".product_main h1").First().Text())
	rec.Price = parsePrice(doc.Find(".product_main .price_color").First().Text())

	if avail := doc.Find(".product_main .availability"); avail.Length() > 0 {
		txt := strings.ToLower(strings.TrimSpace(avail.Text()))
		rec.InStock = boolPtr(strings.Contains(txt, "in stock"))
	}

	return rec, nil
}

// newDocument builds a goquery document, rejecting empty or unparseable
// content as a ParseError.
func newDocument(html []byte, pageURL string) (*goquery.Document, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		return nil, &ParseError{URL: pageURL, Err: errors.New("empty document")}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &ParseError{URL: pageURL, Err: err}
	}
	return doc, nil
}
