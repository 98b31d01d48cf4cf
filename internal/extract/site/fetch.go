package site

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"culturefeed-backend/internal/errors"
)

const (
	fetchTimeout        = 10 * time.Second
	botChallengeMaxSize = 5 * 1024
)

var botChallengeMarkers = []string{"cloudflare", "just a moment", "checking your browser"}

// Fetcher performs the plain HTTP half of spec.md §4.7 step 2: one
// request, one retry, then a bot-challenge check on the body.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch returns the response body and whether it looks bot-challenged.
// A non-2xx status or a transport error triggers one retry before
// surfacing a TransientIO error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, bool, error) {
	body, status, err := f.doOnce(ctx, url)
	if err != nil || status >= 400 {
		body, status, err = f.doOnce(ctx, url)
	}
	if err != nil {
		return nil, false, errors.NewTransientIO("fetch "+url, err)
	}
	if status >= 400 {
		return nil, false, errors.NewTransientIO("fetch "+url, nil)
	}
	return body, looksBotChallenged(status, body), nil
}

func (f *Fetcher) doOnce(ctx context.Context, url string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; culturefeed-bot/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func looksBotChallenged(status int, body []byte) bool {
	if status >= 400 {
		return true
	}
	if len(body) >= botChallengeMaxSize {
		return false
	}
	lower := strings.ToLower(string(bytes.TrimSpace(body)))
	for _, marker := range botChallengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
