package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSources(t *testing.T) {
	path := writeSources(t, `
feeds:
  - https://a.example.com/rss
  - https://b.example.com/rss
topics:
  - AI
  - Science
`)

	src, err := LoadSources(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com/rss", "https://b.example.com/rss"}, src.Feeds)
	assert.Equal(t, []string{"AI", "Science"}, src.Topics)
}

func TestLoadSourcesMissingFile(t *testing.T) {
	_, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSourcesRequiresFeedsAndTopics(t *testing.T) {
	_, err := LoadSources(writeSources(t, "topics:\n  - AI\n"))
	assert.ErrorContains(t, err, "no feeds")

	_, err = LoadSources(writeSources(t, "feeds:\n  - https://a.example.com/rss\n"))
	assert.ErrorContains(t, err, "no topics")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Provider: "ollama", OllamaBaseURL: "http://localhost:11434", Model: "gemma3:12b"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Provider: "gemini", Model: "gemini-1.5-flash"}
	assert.ErrorContains(t, cfg.Validate(), "GEMINI_API_KEY")

	cfg = &Config{Provider: "openai", Model: "gpt-4o-mini"}
	assert.ErrorContains(t, cfg.Validate(), "OPENAI_API_KEY")

	cfg = &Config{Provider: "carrier-pigeon", Model: "m"}
	assert.ErrorContains(t, cfg.Validate(), "unknown provider")

	cfg = &Config{Provider: "ollama", OllamaBaseURL: "http://localhost:11434"}
	assert.ErrorContains(t, cfg.Validate(), "MODEL")
}

func TestLoadDefaults(t *testing.T) {
	// Load reads the real environment; only assert on defaults we did not
	// override and that CI is unlikely to set.
	t.Setenv("PROVIDER", "ollama")
	t.Setenv("MODEL", "gemma3:12b")
	t.Setenv("OLLAMA_BASE_URL", "http://localhost:11434")
	t.Setenv("WITH_IMAGES", "")
	t.Setenv("MAX_FEATURED", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.WithImages)
	assert.Equal(t, 4, cfg.MaxFeatured)
	assert.Equal(t, "news.html", cfg.OutputPath)
	assert.Equal(t, 3, cfg.RetryAttempts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROVIDER", "ollama")
	t.Setenv("MODEL", "llama3")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")
	t.Setenv("WITH_IMAGES", "false")
	t.Setenv("MAX_FEATURED", "2")
	t.Setenv("MAX_COMPLETIONS", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "llama3", cfg.Model)
	assert.False(t, cfg.WithImages)
	assert.Equal(t, 2, cfg.MaxFeatured)
	assert.Equal(t, 50, cfg.MaxCompletions)
}
