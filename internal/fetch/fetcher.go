package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error reports a failed page fetch. Status is zero when the request never
// produced a response.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves raw page content. Retries and politeness are the
// caller's policy; a Fetcher makes exactly one attempt.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, int, error)
}

// HTTPFetcher fetches pages with a plain HTTP client.
type HTTPFetcher struct {
	client *http.Client
	agents *AgentPool
}

func NewHTTPFetcher(timeout time.Duration, agents *AgentPool) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		agents: agents,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.agents.Get())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &Error{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{URL: url, Err: err}
	}
	return body, resp.StatusCode, nil
}
