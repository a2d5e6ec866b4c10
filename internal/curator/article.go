// Package curator implements the digest curation pipeline: it gates feed
// entries through a relevance classifier, attaches a representative image,
// and asks the completion service to pick a featured subset.
package curator

import "time"

// Article is an accepted feed entry. Immutable once created; only its
// position in the final ordering changes. Lives for one pipeline run.
type Article struct {
	Title       string
	Summary     string // plain text, already cleaned
	Link        string
	PublishedAt time.Time
	SourceName  string
	ImageURL    string // empty when no image passed validation
}

// CurationResult is the terminal output of a run, consumed by the
// renderer. Featured and Regular are disjoint and together contain every
// accepted article, both sorted by publish time descending.
type CurationResult struct {
	Featured      []Article
	Regular       []Article
	TotalAnalyzed int
}

// Accepted returns the total number of accepted articles.
func (r CurationResult) Accepted() int {
	return len(r.Featured) + len(r.Regular)
}
