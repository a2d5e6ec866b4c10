// Package llm provides the text-completion collaborator used by the
// curation pipeline, with interchangeable providers behind one interface.
package llm

import (
	"context"
	"fmt"
	"sync"

	"gaizette/internal/cache"
	"gaizette/internal/config"
	"gaizette/internal/metrics"
)

// Completer sends a prompt to a completion service and returns the raw
// response text. Implementations report transport and service failures as
// errors; the consumers decide how to degrade.
type Completer interface {
	Complete(ctx context.Context, prompt, model string) (string, error)
}

// CloseFunc releases provider resources once the run is over.
type CloseFunc func()

// New builds the configured provider wrapped with metrics, the optional
// per-run request budget, and the response cache.
func New(cfg *config.Config) (Completer, CloseFunc, error) {
	var base Completer
	closeFn := CloseFunc(func() {})

	switch cfg.Provider {
	case "ollama":
		base = NewOllama(cfg.OllamaBaseURL, cfg.RequestTimeout)
	case "gemini":
		g, err := NewGemini(cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini provider: %w", err)
		}
		base = g
		closeFn = g.Close
	case "openai":
		base = NewOpenAI(cfg.OpenAIAPIKey, cfg.RequestTimeout)
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	var c Completer = &instrumented{next: base}
	if cfg.MaxCompletions > 0 {
		c = &budgeted{next: c, max: cfg.MaxCompletions}
	}
	c = &cached{next: c, store: cache.New(cfg.CacheTTL)}
	return c, closeFn, nil
}

// instrumented counts calls and failures.
type instrumented struct {
	next Completer
}

func (i *instrumented) Complete(ctx context.Context, prompt, model string) (string, error) {
	metrics.Global.IncrementCompletionCalls()
	resp, err := i.next.Complete(ctx, prompt, model)
	if err != nil {
		metrics.Global.IncrementCompletionErrors()
	}
	return resp, err
}

// ErrBudgetExhausted is returned once the per-run completion budget is
// used up. Consumers absorb it fail-closed like any other service error.
var ErrBudgetExhausted = fmt.Errorf("completion budget exhausted")

type budgeted struct {
	next Completer
	max  int

	mu   sync.Mutex
	used int
}

func (b *budgeted) Complete(ctx context.Context, prompt, model string) (string, error) {
	b.mu.Lock()
	if b.used >= b.max {
		b.mu.Unlock()
		return "", ErrBudgetExhausted
	}
	b.used++
	b.mu.Unlock()

	return b.next.Complete(ctx, prompt, model)
}

// cached memoizes successful responses by model+prompt so a repeated
// prompt within the TTL skips the service (and the budget) entirely.
type cached struct {
	next  Completer
	store *cache.Cache
}

func (c *cached) Complete(ctx context.Context, prompt, model string) (string, error) {
	key := cache.Key(model, prompt)
	if resp, ok := c.store.Get(key); ok {
		metrics.Global.IncrementCacheHits()
		return resp, nil
	}

	resp, err := c.next.Complete(ctx, prompt, model)
	if err != nil {
		return "", err
	}
	c.store.Set(key, resp)
	return resp, nil
}
