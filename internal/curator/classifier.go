package curator

import (
	"context"
	"fmt"
	"strings"

	"gaizette/internal/llm"
	"gaizette/internal/logger"
)

// summaryPromptLimit bounds how much of the summary goes into the
// relevance prompt, to stay clear of token limits.
const summaryPromptLimit = 500

// Classifier asks the completion service whether an article matches any of
// the reader's topics.
type Classifier struct {
	completer llm.Completer
	model     string
	topics    []string
}

func NewClassifier(completer llm.Completer, model string, topics []string) *Classifier {
	return &Classifier{
		completer: completer,
		model:     model,
		topics:    topics,
	}
}

// IsRelevant is fail-closed: any service failure or answer other than a
// "yes" rejects the article. Service errors never escape as pipeline
// errors, they degrade silently to rejection.
func (c *Classifier) IsRelevant(ctx context.Context, art Article) bool {
	prompt := fmt.Sprintf(
		"Topics of interest: %s\n"+
			"Article title: %s\n"+
			"Article summary: %s...\n"+
			"Does this article relate to any of the topics? Answer only 'yes' or 'no'.",
		strings.Join(c.topics, ", "),
		art.Title,
		firstRunes(art.Summary, summaryPromptLimit),
	)

	resp, err := c.completer.Complete(ctx, prompt, c.model)
	if err != nil {
		logger.Debug("relevance check failed, rejecting", "title", art.Title, "err", err)
		return false
	}

	return strings.Contains(strings.ToLower(resp), "yes")
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
