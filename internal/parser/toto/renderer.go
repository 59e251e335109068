package toto

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// cookieButtonSelectors are the consent-dialog buttons seen on the page,
// clicked best-effort before reading content.
var cookieButtonSelectors = []string{
	`//button[contains(., 'Akkoord')]`,
	`//button[contains(., 'Accepteer')]`,
	`//button[contains(., 'Alle cookies')]`,
}

// allesTabSelector selects the combined "Alles" tab so every market group
// is present in one view.
const allesTabSelector = `//a[contains(., 'Alles')]`

// RenderedFetcher drives a headless browser to a fully expanded DOM:
// cookie dialog accepted, "Alles" tab selected, and every "Bekijk meer"
// panel clicked open up to a bounded number of rounds.
type RenderedFetcher struct {
	userAgent       string
	maxExpandRounds int
}

// NewRenderedFetcher creates a browser-backed fetcher. maxExpandRounds
// bounds the expand loop; values below 1 mean a single pass.
func NewRenderedFetcher(userAgent string, maxExpandRounds int) *RenderedFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if maxExpandRounds < 1 {
		maxExpandRounds = 1
	}
	return &RenderedFetcher{userAgent: userAgent, maxExpandRounds: maxExpandRounds}
}

func (f *RenderedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(f.userAgent),
		chromedp.WindowSize(1300, 1800),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}

	// Consent dialog and tab selection are best-effort: absence of either
	// is the common case once cookies are persisted.
	for _, sel := range cookieButtonSelectors {
		_ = clickIfPresent(browserCtx, sel)
	}
	_ = clickIfPresent(browserCtx, allesTabSelector)

	if err := f.expandAll(browserCtx); err != nil {
		return "", err
	}

	var markup string
	if err := chromedp.Run(browserCtx,
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("read rendered markup: %w", err)
	}
	return markup, nil
}

// expandAll re-queries and clicks every "Bekijk meer" control until none
// remain or the round bound is hit. Clicking appends content, which can
// materialize further controls, hence the outer loop.
func (f *RenderedFetcher) expandAll(ctx context.Context) error {
	for round := 0; round < f.maxExpandRounds; round++ {
		var remaining int
		err := chromedp.Run(ctx,
			chromedp.Evaluate(countExpandButtonsJS, &remaining),
		)
		if err != nil {
			return fmt.Errorf("count expand controls: %w", err)
		}
		if remaining == 0 {
			return nil
		}
		slog.Debug("expanding show-more controls", "round", round, "remaining", remaining)
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(clickExpandButtonsJS, nil),
			chromedp.Sleep(600*time.Millisecond), // let appended content settle
		); err != nil {
			return fmt.Errorf("click expand controls: %w", err)
		}
	}
	return nil
}

func clickIfPresent(ctx context.Context, sel string) error {
	clickCtx, cancel := context.WithTimeout(ctx, 1500*time.Millisecond)
	defer cancel()
	return chromedp.Run(clickCtx,
		chromedp.Click(sel, chromedp.BySearch, chromedp.NodeVisible),
	)
}

const countExpandButtonsJS = `[...document.querySelectorAll('button,a')]
	.filter(el => el.textContent.includes('Bekijk meer')).length`

const clickExpandButtonsJS = `[...document.querySelectorAll('button,a')]
	.filter(el => el.textContent.includes('Bekijk meer'))
	.forEach(el => { try { el.click(); } catch (e) {} })`
