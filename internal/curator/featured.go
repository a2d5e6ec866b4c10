package curator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gaizette/internal/llm"
	"gaizette/internal/logger"
)

const (
	// maxListed bounds how many articles the selection prompt lists.
	maxListed = 20
	// maxFeatured bounds how many indices are taken from the response.
	maxFeatured = 4
	// fallbackCount is the size of the deterministic fallback selection.
	fallbackCount = 3
	// snippetLimit bounds the per-article summary snippet in the prompt.
	snippetLimit = 200
)

// Selector asks the completion service to pick the featured stories.
// Selection authority is fully delegated to the model; the selector only
// sanitizes the answer.
type Selector struct {
	completer llm.Completer
	model     string
}

func NewSelector(completer llm.Completer, model string) *Selector {
	return &Selector{completer: completer, model: model}
}

// Select returns 0-based indices into articles, in the model's ranking
// order. An empty input returns nil without a service call. A response the
// selector cannot get a single number out of (including the empty response
// a failed call produces) falls back to the first fallbackCount indices; a
// response whose numbers are all out of range legitimately selects nothing.
func (s *Selector) Select(ctx context.Context, articles []Article) []int {
	if len(articles) == 0 {
		return nil
	}

	resp, err := s.completer.Complete(ctx, s.buildPrompt(articles), s.model)
	if err != nil {
		logger.Debug("featured selection failed, using fallback", "err", err)
		return fallbackIndices(len(articles))
	}

	indices, ok := parseIndices(resp, len(articles))
	if !ok {
		logger.Debug("unparseable featured selection, using fallback", "response", firstRunes(resp, 120))
		return fallbackIndices(len(articles))
	}
	return indices
}

func (s *Selector) buildPrompt(articles []Article) string {
	var b strings.Builder
	b.WriteString("You are picking featured stories for a news digest.\n")
	b.WriteString("Articles:\n")

	n := len(articles)
	if n > maxListed {
		n = maxListed
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, articles[i].Title, firstRunes(articles[i].Summary, snippetLimit))
	}

	b.WriteString(
		"Pick the 3-4 most newsworthy articles, judging impact, breaking-news " +
			"character, public interest and significance. Answer only with their " +
			"numbers, comma-separated, most newsworthy first (e.g. 2, 5, 1).")
	return b.String()
}

var digitsRe = regexp.MustCompile(`\d+`)

// parseIndices extracts all decimal integers from the response, keeps at
// most the first maxFeatured, converts 1-based to 0-based and discards
// anything outside [0, count). ok is false when nothing parseable was
// found, which triggers the fallback.
func parseIndices(resp string, count int) ([]int, bool) {
	matches := digitsRe.FindAllString(resp, -1)
	if len(matches) == 0 {
		return nil, false
	}
	if len(matches) > maxFeatured {
		matches = matches[:maxFeatured]
	}

	seen := make(map[int]bool, len(matches))
	indices := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil, false
		}
		idx := n - 1
		if idx < 0 || idx >= count || seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	return indices, true
}

func fallbackIndices(count int) []int {
	n := fallbackCount
	if count < n {
		n = count
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
