package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const snippetMaxRunes = 160

// Extractor derives short preview snippets from fetched message bodies
type Extractor struct {
	whitespaceRegex *regexp.Regexp
	invisibleRegex  *regexp.Regexp
}

// NewExtractor creates a new snippet extractor
func NewExtractor() *Extractor {
	return &Extractor{
		whitespaceRegex: regexp.MustCompile(`\s+`),
		// Invisible Unicode characters (zero-width spaces, soft hyphens, etc.)
		invisibleRegex: regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}\x{00AD}\x{2060}-\x{2064}]+`),
	}
}

// HTMLText extracts readable text from an HTML body
func (e *Extractor) HTMLText(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, head, meta, link").Remove()

	text := doc.Text()
	text = e.invisibleRegex.ReplaceAllString(text, "")
	text = e.whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text), nil
}

// Snippet derives a preview snippet from the bodies of a fetched message,
// preferring plain text over HTML. The second return is false when neither
// body yields any text.
func (e *Extractor) Snippet(bodyText, bodyHTML *string) (string, bool) {
	var text string
	if bodyText != nil && strings.TrimSpace(*bodyText) != "" {
		text = *bodyText
	} else if bodyHTML != nil {
		extracted, err := e.HTMLText(*bodyHTML)
		if err == nil {
			text = extracted
		}
	}

	text = e.invisibleRegex.ReplaceAllString(text, "")
	text = strings.TrimSpace(e.whitespaceRegex.ReplaceAllString(text, " "))
	if text == "" {
		return "", false
	}

	runes := []rune(text)
	if len(runes) > snippetMaxRunes {
		text = string(runes[:snippetMaxRunes])
	}
	return text, true
}
