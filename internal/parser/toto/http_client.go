package toto

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher yields the final page markup for a URL. Implementations must
// honor the context deadline; the engine applies no timeout of its own.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// DefaultUserAgent is sent on static fetches so the page serves the same
// markup it would to a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// StaticFetcher retrieves the page with a single HTTP GET. Panels hidden
// behind "Bekijk meer" controls stay collapsed; use RenderedFetcher for the
// expanded view.
type StaticFetcher struct {
	client    *http.Client
	userAgent string
}

// NewStaticFetcher creates a plain-HTTP fetcher. An empty userAgent falls
// back to DefaultUserAgent.
func NewStaticFetcher(timeout time.Duration, userAgent string) *StaticFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &StaticFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (f *StaticFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}
