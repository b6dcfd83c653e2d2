package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricetracker/internal/domain"
)

// WooCommerce parses product pages from scrapeme.live, a WooCommerce
// storefront. A discounted price is wrapped in <ins>, so that selector is
// tried before the plain amount.
type WooCommerce struct{}

func (w *WooCommerce) Parse(html []byte, pageURL string) (domain.NormalizedRecord, error) {
	doc, err := newDocument(html, pageURL)
	if err != nil {
		return domain.NormalizedRecord{}, err
	}

	rec := domain.NormalizedRecord{
		Site:     "scrapeme.live",
		URL:      pageURL,
		Currency: "GBP",
		OnSale:   boolPtr(false),
	}

	rec.Name = strings.TrimSpace(doc.Find("h1.product_title, .product_title.entry-title").First().Text())
	rec.Price = parsePrice(wooPriceText(doc))

	if stock := doc.Find("p.stock"); stock.Length() > 0 {
		txt := strings.ToLower(strings.TrimSpace(stock.Text()))
		class, _ := stock.Attr("class")
		inStock := strings.Contains(txt, "in stock") ||
			strings.Contains(txt, "available") ||
			strings.Contains(class, "in-stock")
		rec.InStock = boolPtr(inStock)
	}

	return rec, nil
}

func wooPriceText(doc *goquery.Document) string {
	if ins := doc.Find("p.price ins .amount, p.price ins .woocommerce-Price-amount"); ins.Length() > 0 {
		return strings.TrimSpace(ins.First().Text())
	}
	return strings.TrimSpace(doc.Find("p.price .amount, p.price .woocommerce-Price-amount").First().Text())
}
