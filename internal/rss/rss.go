// Package rss is the feed-source collaborator: it downloads and parses a
// single feed, retrying transient failures before giving up on that feed.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"gaizette/internal/retry"
)

// Feed is the parsed result of one fetch.
type Feed struct {
	SourceTitle string
	Items       []*gofeed.Item
}

type Client struct {
	parser *gofeed.Parser
	retry  retry.Config
}

// NewClient builds a feed client. attempts is the number of tries per feed,
// delay the pause between them; timeout bounds each HTTP call.
func NewClient(attempts int, delay, timeout time.Duration) *Client {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	return &Client{
		parser: parser,
		retry: retry.Config{
			MaxAttempts: attempts,
			Delay:       delay,
		},
	}
}

// Fetch downloads and parses one feed. Failures are per-feed: the caller
// decides whether to continue with the next feed.
func (c *Client) Fetch(ctx context.Context, url string) (*Feed, error) {
	var feed *gofeed.Feed

	err := retry.Do(ctx, c.retry, func() error {
		f, err := c.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			return err
		}
		feed = f
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}

	return &Feed{
		SourceTitle: feed.Title,
		Items:       feed.Items,
	}, nil
}
