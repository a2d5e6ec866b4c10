// Package images picks a representative image for a feed entry.
//
// Candidates are gathered from the entry's structured media metadata
// (media:content, media:thumbnail), file enclosures, and finally from <img>
// tags inside the rich content block. The plain summary is consulted only
// when nothing else yielded a candidate. Every candidate passes the URL
// heuristics in IsValidNewsImage before it is admitted.
package images

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Base priorities per candidate source. Structured media with known
// dimensions uses width*height instead of the default.
const (
	mediaDefaultPriority = 100000
	enclosurePriority    = 75000
	contentPriority      = 60000
	thumbDefaultPriority = 50000
	summaryPriority      = 40000
)

// minMarkupDimension rejects declared-tiny markup images (icons, tracking
// pixels). Images without size attributes are not rejected on this basis.
const minMarkupDimension = 50

type candidate struct {
	url      string
	priority int
}

// FromEntry returns the best image URL for the entry, resolved against the
// entry link when relative, or "" when the entry has no acceptable image.
// Absence is not an error.
func FromEntry(item *gofeed.Item) string {
	if item == nil {
		return ""
	}

	var cands []candidate
	cands = append(cands, mediaCandidates(item)...)
	cands = append(cands, thumbnailCandidates(item)...)
	cands = append(cands, enclosureCandidates(item)...)
	if u, ok := firstMarkupImage(item.Content); ok {
		cands = append(cands, candidate{url: u, priority: contentPriority})
	}

	// The plain summary is a last resort.
	if len(cands) == 0 {
		if u, ok := firstMarkupImage(item.Description); ok {
			cands = append(cands, candidate{url: u, priority: summaryPriority})
		}
	}

	if len(cands) == 0 {
		return ""
	}

	// Highest priority wins; ties go to the earliest candidate in
	// source order.
	best := cands[0]
	for _, c := range cands[1:] {
		if c.priority > best.priority {
			best = c
		}
	}

	return resolveURL(best.url, item.Link)
}

func mediaCandidates(item *gofeed.Item) []candidate {
	var cands []candidate
	for _, e := range mediaExtensions(item, "content") {
		u := e.Attrs["url"]
		if !isImageMedia(e.Attrs) || !IsValidNewsImage(u) {
			continue
		}
		prio := mediaDefaultPriority
		if w, h := attrDimensions(e.Attrs); w > 0 && h > 0 {
			prio = w * h
		}
		cands = append(cands, candidate{url: u, priority: prio})
	}
	return cands
}

func thumbnailCandidates(item *gofeed.Item) []candidate {
	var cands []candidate
	for _, e := range mediaExtensions(item, "thumbnail") {
		u := e.Attrs["url"]
		if !IsValidNewsImage(u) {
			continue
		}
		prio := thumbDefaultPriority
		if w, h := attrDimensions(e.Attrs); w > 0 && h > 0 {
			prio = w * h
		}
		cands = append(cands, candidate{url: u, priority: prio})
	}
	return cands
}

func enclosureCandidates(item *gofeed.Item) []candidate {
	var cands []candidate
	for _, enc := range item.Enclosures {
		if enc == nil || !strings.HasPrefix(enc.Type, "image/") {
			continue
		}
		if !IsValidNewsImage(enc.URL) {
			continue
		}
		cands = append(cands, candidate{url: enc.URL, priority: enclosurePriority})
	}
	return cands
}

// mediaExtensions collects media-namespace extensions by name, looking both
// at the item level and inside media:group blocks.
func mediaExtensions(item *gofeed.Item, name string) []mediaExt {
	media, ok := item.Extensions["media"]
	if !ok {
		return nil
	}

	var out []mediaExt
	for _, e := range media[name] {
		out = append(out, mediaExt{Attrs: e.Attrs})
	}
	for _, g := range media["group"] {
		for _, e := range g.Children[name] {
			out = append(out, mediaExt{Attrs: e.Attrs})
		}
	}
	return out
}

type mediaExt struct {
	Attrs map[string]string
}

func isImageMedia(attrs map[string]string) bool {
	if t := attrs["type"]; t != "" {
		return strings.HasPrefix(t, "image/")
	}
	return attrs["medium"] == "image"
}

func attrDimensions(attrs map[string]string) (int, int) {
	w, _ := strconv.Atoi(attrs["width"])
	h, _ := strconv.Atoi(attrs["height"])
	return w, h
}

// firstMarkupImage scans <img> tags in document order and returns the first
// one that survives the alt-text and declared-size filters and passes URL
// validation.
func firstMarkupImage(markup string) (string, bool) {
	if strings.TrimSpace(markup) == "" {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		// Malformed markup means no candidate, never an error.
		return "", false
	}

	found := ""
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return true
		}
		if skipByAlt(s.AttrOr("alt", "")) {
			return true
		}
		if tinyDeclaredSize(s.AttrOr("width", ""), s.AttrOr("height", "")) {
			return true
		}
		if !IsValidNewsImage(src) {
			return true
		}
		found = src
		return false
	})
	return found, found != ""
}

var altDenylist = []string{"logo", "icon", "avatar", "profile", "share", "twitter", "facebook"}

func skipByAlt(alt string) bool {
	if alt == "" {
		return false
	}
	alt = strings.ToLower(alt)
	for _, word := range altDenylist {
		if strings.Contains(alt, word) {
			return true
		}
	}
	return false
}

// tinyDeclaredSize fires only when an attribute is present and parses as an
// integer below the threshold. Missing or non-numeric attributes pass.
func tinyDeclaredSize(width, height string) bool {
	if w, err := strconv.Atoi(strings.TrimSuffix(width, "px")); err == nil && w < minMarkupDimension {
		return true
	}
	if h, err := strconv.Atoi(strings.TrimSuffix(height, "px")); err == nil && h < minMarkupDimension {
		return true
	}
	return false
}

// urlDenylist covers social-media domains, ad/tracking/analytics hosts,
// URL words that signal chrome rather than content, and well-known blank
// pixel filenames.
var urlDenylist = []string{
	// social media
	"facebook.com", "twitter.com", "instagram.com", "linkedin.com",
	"pinterest.com",
	// ads, tracking, analytics
	"doubleclick.net", "googlesyndication.com", "google-analytics.com",
	"googletagmanager.com", "scorecardresearch.com", "quantserve.com",
	"adsystem", "outbrain.com", "taboola.com",
	// chrome, not content
	"pixel", "tracking", "beacon", "avatar", "logo", "icon", "badge",
	"button", "share", "social", "comment", "rss", "ad.", "ads.",
	// blank / 1x1 pixels
	"spacer.gif", "blank.gif", "1x1.", "transparent.gif", "clear.gif",
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".bmp"}

var hostHints = []string{"cdn", "images", "media", "static", "assets", "upload"}

// IsValidNewsImage applies the URL pattern heuristics: denylisted
// substrings reject the URL outright, and URLs without a recognized image
// extension must at least look like they come from a content host.
func IsValidNewsImage(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	lower := strings.ToLower(rawURL)

	for _, bad := range urlDenylist {
		if strings.Contains(lower, bad) {
			return false
		}
	}

	for _, extn := range imageExtensions {
		if strings.Contains(lower, extn) {
			return true
		}
	}
	for _, hint := range hostHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func resolveURL(raw, base string) string {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() {
		return raw
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return raw
	}
	return b.ResolveReference(u).String()
}
