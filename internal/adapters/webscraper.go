package adapters

import (
	"net/url"
	"strings"

	"pricetracker/internal/domain"
)

// WebScraperIO parses product pages on the webscraper.io test e-commerce
// site. The test site keeps everything permanently in stock.
type WebScraperIO struct{}

func (w *WebScraperIO) Parse(html []byte, pageURL string) (domain.NormalizedRecord, error) {
	doc, err := newDocument(html, pageURL)
	if err != nil {
		return domain.NormalizedRecord{}, err
	}

	site := "unknown"
	if u, err := url.Parse(pageURL); err == nil && u.Hostname() != "" {
		site = strings.ToLower(u.Hostname())
	}

	rec := domain.NormalizedRecord{
		Site:     site,
		URL:      pageURL,
		Currency: "USD",
		InStock:  boolPtr(true),
		OnSale:   boolPtr(false),
	}

	rec.Name = strings.TrimSpace(doc.Find(".caption h4:nth-of-type(2), .product-title, h1").First().Text())
	rec.Price = parsePrice(doc.Find(".price, .price.pull-right, .caption h4.price").First().Text())

	return rec, nil
}
