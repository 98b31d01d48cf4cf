package site

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"culturefeed-backend/internal/errors"
)

const challengeTimeout = 20 * time.Second

// ChallengeClient drives a headless Chrome tab to get past a JS
// challenge page, the fallback named in spec.md §4.7 step 2. It is the
// teacher's previously-unused chromedp dependency's first caller.
type ChallengeClient struct {
	allocatorOpts []chromedp.ExecAllocatorOption
}

func NewChallengeClient() *ChallengeClient {
	return &ChallengeClient{
		allocatorOpts: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
		),
	}
}

// Fetch navigates to url and returns the rendered document's outer HTML
// once the challenge has had a chance to resolve.
func (c *ChallengeClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, challengeTimeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, c.allocatorOpts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, errors.NewTransientIO("challenge fetch "+url, err)
	}
	return []byte(html), nil
}
