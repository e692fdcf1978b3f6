package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/nabheet/opencausenx/internal/event"
)

// Fetcher retrieves feed items and normalizes them into events.
// A shared rate limiter keeps total request volume polite regardless of
// how many sources are configured.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		// 2 requests/second with a small burst is plenty for feed polling
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// Fetch retrieves one source and returns its items as normalized,
// classified events. Does NOT store them - the caller decides that.
//
// Respects context cancellation, both while waiting on the rate limiter
// and during the request itself.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]event.Event, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set a user agent to be a good citizen
	req.Header.Set("User-Agent", "opencausenx/0.1 (https://github.com/nabheet/opencausenx)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	parser := gofeed.NewParser()
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := time.Now()
	events := make([]event.Event, 0, len(feed.Items))
	for _, feedItem := range feed.Items {
		events = append(events, convertFeedItem(feedItem, src, now))
	}

	return events, nil
}

// convertFeedItem normalizes a gofeed.Item into an event.Event,
// running classification over the item text.
func convertFeedItem(feedItem *gofeed.Item, src Source, fetchTime time.Time) event.Event {
	occurred := fetchTime
	if feedItem.PublishedParsed != nil {
		occurred = *feedItem.PublishedParsed
	} else if feedItem.UpdatedParsed != nil {
		occurred = *feedItem.UpdatedParsed
	}

	text := feedItem.Title
	if feedItem.Description != "" {
		text += " " + feedItem.Description
	}

	summary := feedItem.Title
	if feedItem.Description != "" {
		summary = feedItem.Title + ". " + truncate(feedItem.Description, 300)
	}

	return event.Event{
		ID:         generateID(feedItem),
		Category:   ClassifyCategory(text),
		Summary:    summary,
		Region:     ExtractRegion(text),
		OccurredAt: occurred,
		Entities:   ExtractEntities(text),
		Confidence: ScoreConfidence(src, feedItem),
		SourceName: src.Name,
		URL:        feedItem.Link,
		Metadata: map[string]string{
			"feed_url": src.URL,
		},
	}
}

// generateID creates a deterministic ID for a feed item.
// Uses the GUID if available, otherwise hashes the URL.
func generateID(feedItem *gofeed.Item) string {
	if feedItem.GUID != "" {
		return hashString(feedItem.GUID)
	}
	if feedItem.Link != "" {
		return hashString(feedItem.Link)
	}
	// Last resort: hash title + published time
	key := feedItem.Title
	if feedItem.PublishedParsed != nil {
		key += feedItem.PublishedParsed.String()
	}
	return hashString(key)
}

// hashString creates a short hash of a string for use as an ID.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8]) // 16 character hex string
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
