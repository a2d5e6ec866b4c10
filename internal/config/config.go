package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Completion service settings
	Provider      string // ollama | gemini | openai
	Model         string
	OllamaBaseURL string
	GeminiAPIKey  string
	OpenAIAPIKey  string

	// Curation settings
	SourcesPath string
	WithImages  bool
	MaxFeatured int

	// Output settings
	OutputPath string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int // per-feed fetch attempts
	RetryDelay     time.Duration

	// Completion budget/cache
	MaxCompletions int // per run, 0 = unlimited
	CacheTTL       time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Provider:       "ollama",
		Model:          "gemma3:12b",
		OllamaBaseURL:  "http://localhost:11434",
		SourcesPath:    "configs/feeds.yaml",
		WithImages:     true,
		MaxFeatured:    4,
		OutputPath:     "news.html",
		RequestTimeout: 30 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     5 * time.Second,
		CacheTTL:       time.Hour,
	}

	if v := os.Getenv("PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.OllamaBaseURL = v
	}
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	cfg.SourcesPath = getEnvOrDefault("SOURCES_PATH", cfg.SourcesPath)
	cfg.OutputPath = getEnvOrDefault("OUTPUT_PATH", cfg.OutputPath)

	if v := os.Getenv("WITH_IMAGES"); v != "" {
		cfg.WithImages = v != "false" && v != "0"
	}
	if v := getEnvIntOrDefault("MAX_FEATURED", cfg.MaxFeatured); v >= 0 && v <= 4 {
		cfg.MaxFeatured = v
	}
	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("FEED_RETRY_ATTEMPTS", cfg.RetryAttempts); v > 0 {
		cfg.RetryAttempts = v
	}
	if v := getEnvIntOrDefault("FEED_RETRY_DELAY_SECONDS", 0); v > 0 {
		cfg.RetryDelay = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("MAX_COMPLETIONS", 0); v > 0 {
		cfg.MaxCompletions = v
	}
	if v := getEnvIntOrDefault("CACHE_TTL_MINUTES", 0); v > 0 {
		cfg.CacheTTL = time.Duration(v) * time.Minute
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Provider {
	case "ollama":
		if c.OllamaBaseURL == "" {
			return fmt.Errorf("OLLAMA_BASE_URL is required for the ollama provider")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown provider %q (valid: ollama, gemini, openai)", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("MODEL must not be empty")
	}
	return nil
}

// Sources is the YAML config with the reader's feeds and topics of interest.
//
// feeds:
//   - https://example.com/rss
// topics:
//   - AI
type Sources struct {
	Feeds  []string `yaml:"feeds"`
	Topics []string `yaml:"topics"`
}

// LoadSources reads the feeds/topics list from a YAML file.
func LoadSources(path string) (*Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src Sources
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&src); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(src.Feeds) == 0 {
		return nil, fmt.Errorf("no feeds in %s", path)
	}
	if len(src.Topics) == 0 {
		return nil, fmt.Errorf("no topics in %s", path)
	}
	return &src, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
