package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Tech News</title>
    <item>
      <title>AI beats benchmark</title>
      <link>https://a.example.com/1</link>
      <description>&lt;p&gt;An AI system.&lt;/p&gt;</description>
      <pubDate>Thu, 27 Aug 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Gardening tips</title>
      <link>https://a.example.com/2</link>
      <description>Roses and tulips.</description>
    </item>
  </channel>
</rss>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient(1, 0, 5*time.Second)
	feed, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Example Tech News", feed.SourceTitle)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "AI beats benchmark", feed.Items[0].Title)
	require.NotNil(t, feed.Items[0].PublishedParsed)
	assert.Nil(t, feed.Items[1].PublishedParsed)
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient(2, time.Millisecond, 5*time.Second)
	feed, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Example Tech News", feed.SourceTitle)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchFailsPerFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	c := NewClient(2, time.Millisecond, 5*time.Second)
	_, err := c.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch feed")
}
