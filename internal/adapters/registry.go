package adapters

import (
	"errors"
	"fmt"
	"strings"

	"pricetracker/internal/domain"
)

// ErrNoAdapter is returned by Resolve when no registered matcher matches
// the URL. Unsupported sites are expected; callers treat this as a skip,
// not a failure.
var ErrNoAdapter = errors.New("no adapter registered for url")

// ParseError signals a structurally unusable document. Adapters return it
// only for catastrophic input; missing fields degrade to nil instead.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Adapter converts raw page content into a normalized record. Adapters are
// pure functions of content and URL and must never perform I/O.
type Adapter interface {
	Parse(html []byte, pageURL string) (domain.NormalizedRecord, error)
}

type registration struct {
	match   string
	adapter Adapter
}

// Registry maps URLs to adapters by substring match against registered
// host patterns. Matching order is registration order; first match wins.
type Registry struct {
	entries []registration
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an adapter for URLs containing match.
func (r *Registry) Register(match string, a Adapter) {
	r.entries = append(r.entries, registration{match: match, adapter: a})
}

// Resolve returns the first registered adapter whose pattern matches url.
func (r *Registry) Resolve(url string) (Adapter, error) {
	for _, e := range r.entries {
		if strings.Contains(url, e.match) {
			return e.adapter, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoAdapter, url)
}

// Default returns a registry with all built-in site adapters.
func Default() *Registry {
	r := NewRegistry()
	r.Register("books.toscrape.com", &BooksToScrape{})
	r.Register("scrapeme.live", &WooCommerce{})
	r.Register("webscraper.io", &WebScraperIO{})
	return r
}
