package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSnippetPrefersPlainText(t *testing.T) {
	e := NewExtractor()

	snippet, ok := e.Snippet(strPtr("plain text wins"), strPtr("<p>html loses</p>"))
	require.True(t, ok)
	require.Equal(t, "plain text wins", snippet)
}

func TestSnippetFallsBackToHTML(t *testing.T) {
	e := NewExtractor()

	html := `<html><head><style>p { color: red }</style></head>
		<body><p>Hello</p><script>alert(1)</script><p>world</p></body></html>`
	snippet, ok := e.Snippet(nil, &html)
	require.True(t, ok)
	require.Equal(t, "Hello world", snippet)
}

func TestSnippetCollapsesWhitespace(t *testing.T) {
	e := NewExtractor()

	snippet, ok := e.Snippet(strPtr("  line one\n\n\tline   two  "), nil)
	require.True(t, ok)
	require.Equal(t, "line one line two", snippet)
}

func TestSnippetTruncates(t *testing.T) {
	e := NewExtractor()

	long := strings.Repeat("a", 500)
	snippet, ok := e.Snippet(&long, nil)
	require.True(t, ok)
	require.Len(t, []rune(snippet), snippetMaxRunes)
}

func TestSnippetEmptyBodies(t *testing.T) {
	e := NewExtractor()

	_, ok := e.Snippet(nil, nil)
	require.False(t, ok)

	_, ok = e.Snippet(strPtr("   "), strPtr(""))
	require.False(t, ok)
}

func TestHTMLTextStripsInvisibleRunes(t *testing.T) {
	e := NewExtractor()

	text, err := e.HTMLText("<p>zero​width</p>")
	require.NoError(t, err)
	require.Equal(t, "zerowidth", text)
}
