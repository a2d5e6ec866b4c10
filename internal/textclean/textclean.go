// Package textclean turns markup-bearing feed summaries into plain text.
package textclean

import "strings"

// entityReplacer decodes the minimal entity set that shows up in feed
// summaries. Anything more exotic is left as-is.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Clean strips tag-delimited markup, decodes entities and collapses
// whitespace. Best-effort: malformed markup never makes it fail, an empty
// input yields an empty string.
func Clean(markup string) string {
	if markup == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(markup))
	inTag := false
	for _, r := range markup {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			// A stray '>' with no opening '<' is kept as text.
			if inTag {
				inTag = false
				b.WriteRune(' ')
			} else {
				b.WriteRune(r)
			}
		case !inTag:
			b.WriteRune(r)
		}
	}

	text := entityReplacer.Replace(b.String())
	return strings.Join(strings.Fields(text), " ")
}
