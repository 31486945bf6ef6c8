package sitefetch

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// truncationMarker is appended when extracted text exceeds the budget.
const truncationMarker = "…"

// Extract parses HTML and pulls out the title, meta description, og:image
// hint, and a cleaned plain-text rendering of the main content area.
func Extract(body []byte, maxChars int) (PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return PageContent{}, err
	}

	var content PageContent
	content.Title = collapseInline(doc.Find("title").First().Text())

	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if name, ok := s.Attr("name"); ok && strings.EqualFold(name, "description") && content.MetaDescription == "" {
			content.MetaDescription = strings.TrimSpace(s.AttrOr("content", ""))
		}
		if prop, ok := s.Attr("property"); ok && strings.EqualFold(prop, "og:image") && content.OGImage == "" {
			content.OGImage = strings.TrimSpace(s.AttrOr("content", ""))
		}
		return content.MetaDescription == "" || content.OGImage == ""
	})

	// Drop elements that carry no text signal before extraction.
	doc.Find("script, style, noscript, svg").Remove()

	// Prefer the semantic content container when the page has one.
	main := doc.Find("main, article").First()
	if main.Length() == 0 {
		main = doc.Find("body").First()
	}
	if main.Length() == 0 {
		main = doc.Selection
	}

	content.Text = cleanText(extractText(main), maxChars)
	return content, nil
}

// extractText walks the node tree collecting trimmed text nodes joined by
// newlines, so block boundaries survive as line breaks.
func extractText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// cleanText collapses whitespace runs and enforces the character budget.
// Truncation counts runes so multi-byte text is never split mid-character.
func cleanText(text string, maxChars int) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if maxChars > 0 {
		runes := []rune(text)
		if len(runes) > maxChars {
			text = string(runes[:maxChars]) + truncationMarker
		}
	}
	return text
}

func collapseInline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
