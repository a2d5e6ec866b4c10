// Package app wires configuration, the completion provider, the feed
// client and the renderer into a single digest run.
package app

import (
	"context"
	"fmt"
	"time"

	"gaizette/internal/config"
	"gaizette/internal/curator"
	"gaizette/internal/llm"
	"gaizette/internal/logger"
	"gaizette/internal/metrics"
	"gaizette/internal/render"
	"gaizette/internal/rss"
)

// Run executes one curation run end to end. Only configuration problems
// are returned as errors; everything downstream degrades per component.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Debug)

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}
	logger.Info("starting curation run",
		"feeds", len(sources.Feeds),
		"topics", len(sources.Topics),
		"provider", cfg.Provider,
		"model", cfg.Model,
	)

	completer, closeCompleter, err := llm.New(cfg)
	if err != nil {
		return fmt.Errorf("create completion provider: %w", err)
	}
	defer closeCompleter()

	pipeline := curator.NewPipeline(curator.Options{
		Source:      rss.NewClient(cfg.RetryAttempts, cfg.RetryDelay, cfg.RequestTimeout),
		Completer:   completer,
		Model:       cfg.Model,
		Topics:      sources.Topics,
		WithImages:  cfg.WithImages,
		MaxFeatured: cfg.MaxFeatured,
	})

	start := time.Now()
	result := pipeline.Run(ctx, sources.Feeds)
	metrics.Global.RecordRun(time.Since(start))

	digest := render.Digest{
		GeneratedAt: time.Now(),
		Topics:      sources.Topics,
		Result:      result,
	}
	if err := render.WriteHTML(cfg.OutputPath, digest); err != nil {
		metrics.Global.RecordError(err)
		return fmt.Errorf("write digest: %w", err)
	}

	logger.Info("digest written",
		"path", cfg.OutputPath,
		"featured", len(result.Featured),
		"regular", len(result.Regular),
		"analyzed", result.TotalAnalyzed,
		"took", time.Since(start).String(),
	)
	return nil
}
