package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched     int64
	FeedErrors       int64
	EntriesAnalyzed  int64
	ArticlesAccepted int64
	CompletionCalls  int64
	CompletionErrors int64
	CacheHits        int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedErrors++
}

func (m *Metrics) IncrementEntriesAnalyzed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesAnalyzed++
}

func (m *Metrics) IncrementArticlesAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesAccepted++
}

func (m *Metrics) IncrementCompletionCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompletionCalls++
}

func (m *Metrics) IncrementCompletionErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompletionErrors++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastErrorTime = time.Now()
	m.LastError = err.Error()
	m.IsHealthy = false
}

// GetStats returns a snapshot for the monitoring endpoints.
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":     m.FeedsFetched,
		"feed_errors":       m.FeedErrors,
		"entries_analyzed":  m.EntriesAnalyzed,
		"articles_accepted": m.ArticlesAccepted,
		"completion_calls":  m.CompletionCalls,
		"completion_errors": m.CompletionErrors,
		"cache_hits":        m.CacheHits,
		"last_run_time":     m.LastRunTime,
		"last_run_duration": m.LastRunDuration.String(),
		"last_error":        m.LastError,
		"is_healthy":        m.IsHealthy,
	}
}
