package curator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter lets tests script the completion service.
type stubCompleter struct {
	fn      func(prompt string) (string, error)
	calls   int
	prompts []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt, _ string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.fn(prompt)
}

func answering(resp string) *stubCompleter {
	return &stubCompleter{fn: func(string) (string, error) { return resp, nil }}
}

func failing(err error) *stubCompleter {
	return &stubCompleter{fn: func(string) (string, error) { return "", err }}
}

func TestClassifierIsRelevant(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"plain yes", "yes", true},
		{"yes with decoration", "Yes, it clearly matches AI.", true},
		{"plain no", "no", false},
		{"empty response", "", false},
		{"unrelated chatter", "I cannot decide.", false},
	}

	art := Article{Title: "New AI model released", Summary: "A lab shipped a model."}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(answering(tt.response), "test-model", []string{"AI"})
			assert.Equal(t, tt.want, c.IsRelevant(context.Background(), art))
		})
	}
}

func TestClassifierFailClosed(t *testing.T) {
	c := NewClassifier(failing(fmt.Errorf("service down")), "test-model", []string{"AI", "Science"})
	assert.False(t, c.IsRelevant(context.Background(), Article{Title: "Anything"}))
}

func TestClassifierPrompt(t *testing.T) {
	stub := answering("no")
	c := NewClassifier(stub, "test-model", []string{"AI", "Space"})

	longSummary := strings.Repeat("x", 800)
	c.IsRelevant(context.Background(), Article{Title: "Probe launch", Summary: longSummary})

	require.Len(t, stub.prompts, 1)
	prompt := stub.prompts[0]
	assert.Contains(t, prompt, "Topics of interest: AI, Space")
	assert.Contains(t, prompt, "Article title: Probe launch")
	assert.Contains(t, prompt, "'yes' or 'no'")
	// summary is truncated to 500 characters in the prompt
	assert.Contains(t, prompt, strings.Repeat("x", 500))
	assert.NotContains(t, prompt, strings.Repeat("x", 501))
}
