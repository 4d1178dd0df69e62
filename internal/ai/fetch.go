package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// WebsiteFetcher retrieves a supplier website and reduces it to plain text
// suitable for a model prompt.
type WebsiteFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

type httpWebsiteFetcher struct {
	client *http.Client
}

// NewWebsiteFetcher creates a fetcher with a fixed request timeout. There is
// no retry, caching or rate limiting; a single failure triggers the caller's
// fallback path.
func NewWebsiteFetcher() WebsiteFetcher {
	return &httpWebsiteFetcher{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

const (
	maxFetchBytes = 512 * 1024
	maxPromptText = 6000
)

var (
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

func (f *httpWebsiteFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building website request: %w", err)
	}
	req.Header.Set("User-Agent", "asset-inventory-backend/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching website: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", fmt.Errorf("reading website body: %w", err)
	}

	text := scriptRe.ReplaceAllString(string(body), " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}
	return text, nil
}
