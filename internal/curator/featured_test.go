package curator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleArticles(n int) []Article {
	arts := make([]Article, n)
	for i := range arts {
		arts[i] = Article{Title: fmt.Sprintf("Article %d", i+1)}
	}
	return arts
}

func TestSelectorEmptyInputNoCall(t *testing.T) {
	stub := answering("1, 2")
	s := NewSelector(stub, "test-model")

	assert.Nil(t, s.Select(context.Background(), nil))
	assert.Zero(t, stub.calls)
}

func TestSelectorParsesIndices(t *testing.T) {
	tests := []struct {
		name     string
		response string
		count    int
		want     []int
	}{
		{"comma separated", "2, 4, 9", 5, []int{1, 3}},
		{"ranked list", "3, 1, 2", 5, []int{2, 0, 1}},
		{"numbers buried in prose", "I would pick articles 1 and 4.", 5, []int{0, 3}},
		{"at most four taken", "1, 2, 3, 4, 5", 5, []int{0, 1, 2, 3}},
		{"duplicates collapse", "2, 2, 2", 5, []int{1}},
		{"all out of range", "9, 12", 5, []int{}},
		{"zero is out of range", "0", 5, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(answering(tt.response), "test-model")
			got := s.Select(context.Background(), sampleArticles(tt.count))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectorFallback(t *testing.T) {
	// A response without a single number falls back to the first three.
	s := NewSelector(answering("none of these are newsworthy"), "test-model")
	assert.Equal(t, []int{0, 1, 2}, s.Select(context.Background(), sampleArticles(5)))

	// So does a failed service call.
	s = NewSelector(failing(fmt.Errorf("timeout")), "test-model")
	assert.Equal(t, []int{0, 1, 2}, s.Select(context.Background(), sampleArticles(5)))

	// Fallback shrinks with the article list.
	s = NewSelector(answering(""), "test-model")
	assert.Equal(t, []int{0, 1}, s.Select(context.Background(), sampleArticles(2)))
}

func TestSelectorPromptListsAtMostTwenty(t *testing.T) {
	stub := answering("1")
	s := NewSelector(stub, "test-model")
	s.Select(context.Background(), sampleArticles(25))

	prompt := stub.prompts[0]
	assert.Contains(t, prompt, "20. Article 20")
	assert.NotContains(t, prompt, "21. Article 21")
}
