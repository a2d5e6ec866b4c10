package curator

import (
	"context"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"gaizette/internal/images"
	"gaizette/internal/llm"
	"gaizette/internal/logger"
	"gaizette/internal/metrics"
	"gaizette/internal/rss"
	"gaizette/internal/textclean"
)

// FeedSource fetches and parses one feed. Failures are per-feed.
type FeedSource interface {
	Fetch(ctx context.Context, url string) (*rss.Feed, error)
}

// Options wires the pipeline's collaborators and knobs.
type Options struct {
	Source      FeedSource
	Completer   llm.Completer
	Model       string
	Topics      []string
	WithImages  bool
	MaxFeatured int // capped at 4; zero means the default of 4
}

// Pipeline runs the curation flow: fetch, clean, extract image, classify,
// sort, select featured, partition. Strictly sequential, no state survives
// a run.
type Pipeline struct {
	source      FeedSource
	classifier  *Classifier
	selector    *Selector
	withImages  bool
	maxFeatured int
}

func NewPipeline(opts Options) *Pipeline {
	maxF := opts.MaxFeatured
	if maxF <= 0 || maxF > maxFeatured {
		maxF = maxFeatured
	}
	return &Pipeline{
		source:      opts.Source,
		classifier:  NewClassifier(opts.Completer, opts.Model, opts.Topics),
		selector:    NewSelector(opts.Completer, opts.Model),
		withImages:  opts.WithImages,
		maxFeatured: maxF,
	}
}

// Run processes the feeds in order. A feed that cannot be fetched is
// logged and skipped; an entry whose classification fails is rejected.
// Nothing here aborts the run.
func (p *Pipeline) Run(ctx context.Context, feedURLs []string) CurationResult {
	var accepted []Article
	total := 0

	for _, url := range feedURLs {
		feed, err := p.source.Fetch(ctx, url)
		if err != nil {
			logger.Warn("skipping feed", "url", url, "err", err)
			metrics.Global.IncrementFeedErrors()
			continue
		}
		metrics.Global.IncrementFeedsFetched()
		logger.Info("fetched feed", "source", feed.SourceTitle, "entries", len(feed.Items))

		for _, item := range feed.Items {
			if item == nil {
				continue
			}
			total++
			metrics.Global.IncrementEntriesAnalyzed()

			art := p.buildArticle(item, feed.SourceTitle)
			if !p.classifier.IsRelevant(ctx, art) {
				continue
			}
			accepted = append(accepted, art)
			metrics.Global.IncrementArticlesAccepted()
			logger.Debug("accepted article", "title", art.Title, "source", art.SourceName)
		}
	}

	// Newest first. Entries without a parseable date carry the time they
	// were processed, so they sort to the top of their batch; that is the
	// intended modeling, not an accident.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].PublishedAt.After(accepted[j].PublishedAt)
	})

	selected := p.selector.Select(ctx, accepted)
	if len(selected) > p.maxFeatured {
		selected = selected[:p.maxFeatured]
	}

	isFeatured := make(map[int]bool, len(selected))
	for _, idx := range selected {
		isFeatured[idx] = true
	}

	result := CurationResult{TotalAnalyzed: total}
	for i, art := range accepted {
		if isFeatured[i] {
			result.Featured = append(result.Featured, art)
		} else {
			result.Regular = append(result.Regular, art)
		}
	}
	return result
}

// buildArticle normalizes one feed entry. Missing fields become defaults,
// never errors.
func (p *Pipeline) buildArticle(item *gofeed.Item, sourceName string) Article {
	title := item.Title
	if title == "" {
		title = "Untitled"
	}
	link := item.Link
	if link == "" {
		link = "#"
	}

	published := time.Now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	art := Article{
		Title:       title,
		Summary:     textclean.Clean(summary),
		Link:        link,
		PublishedAt: published,
		SourceName:  sourceName,
	}
	if p.withImages {
		art.ImageURL = images.FromEntry(item)
	}
	return art
}
