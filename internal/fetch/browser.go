package fetch

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders pages through headless Chrome for sites that
// populate prices with client-side scripts. Allocator contexts are pooled
// across fetches.
type BrowserFetcher struct {
	timeout time.Duration
	ctxPool sync.Pool
}

func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	f := &BrowserFetcher{timeout: timeout}
	f.ctxPool.New = func() interface{} {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", ""),
			chromedp.Flag("disable-dev-shm-usage", ""),
		)
		allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
		return allocCtx
	}
	return f
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	allocCtx := f.ctxPool.Get().(context.Context)
	defer f.ctxPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, f.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, 0, &Error{URL: url, Err: err}
	}
	return []byte(html), http.StatusOK, nil
}
