package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Elements stripped before text extraction. These carry navigation chrome and
// scripts rather than page content.
var strippedSelectors = []string{
	"script", "style", "noscript", "iframe",
	"nav", "header", "footer", "aside",
}

// cleanHTML strips non-content elements from raw HTML, extracts the visible
// text, collapses all whitespace runs to single spaces and truncates the
// result to maxLength characters. Input that fails to parse as HTML is
// treated as plain text and still normalized.
func cleanHTML(raw string, maxLength int) string {
	text := raw

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err == nil {
		for _, selector := range strippedSelectors {
			doc.Find(selector).Remove()
		}
		text = doc.Text()
	}

	text = collapseWhitespace(text)
	if maxLength > 0 && len(text) > maxLength {
		// Truncate on rune boundaries, Swedish text is not pure ASCII
		runes := []rune(text)
		if len(runes) > maxLength {
			text = string(runes[:maxLength])
		}
	}
	return text
}

// collapseWhitespace reduces every run of whitespace, newlines included, to a
// single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
