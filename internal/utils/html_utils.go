package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the plain text of an HTML fragment. Notification
// messages embed short excerpts of rendered story content, so the
// markup has to go.
func ExtractText(htmlStr string) string {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	text := doc.Text()
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt shortens s to at most max runes, appending an ellipsis when
// truncated.
func Excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
