package fetch

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP
// fetch before a browser render is attempted.
const MinContentLength = 500

// DefaultSettle is how long a rendered page is given to run its scripts.
const DefaultSettle = 3 * time.Second

// NeedsBrowser reports whether text extracted from a plain fetch is too short
// to be the real posting, which usually means the page is rendered client-side.
func NeedsBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// Renderer returns the fully rendered HTML for a URL.
type Renderer func(ctx context.Context, url string) (string, error)

// BrowserRenderer returns a Renderer backed by a headless Chrome instance.
// Chrome or Chromium must be installed.
func BrowserRenderer(timeout time.Duration, verbose bool) Renderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return func(ctx context.Context, url string) (string, error) {
		return Render(ctx, url, timeout, verbose)
	}
}

// Render loads url in headless Chrome and returns the page's outer HTML.
func Render(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if err := ValidateURL(url); err != nil {
		return "", err
	}
	if verbose {
		log.Printf("[BROWSER] rendering %s", url)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(DefaultSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	if verbose {
		log.Printf("[BROWSER] rendered %d bytes", len(html))
	}
	return html, nil
}
