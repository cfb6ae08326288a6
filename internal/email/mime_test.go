package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// crlf converts test fixtures written with plain newlines to wire format
func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func TestParseHeaderDecodesEncodedWords(t *testing.T) {
	raw := crlf(`Subject: =?UTF-8?Q?Caf=C3=A9?= =?UTF-8?Q?_par=C3=ADs?=
From: =?UTF-8?Q?Andr=C3=A9?= <andre@example.com>
Date: Mon, 01 Jan 2024 10:00:00 +0000

`)

	subject, from, dateRaw, err := parseHeader(strings.NewReader(raw))
	require.NoError(t, err)
	// Adjacent encoded words recombine into one logical string.
	require.Equal(t, "Café parís", subject)
	require.Contains(t, from, "André")
	require.Contains(t, from, "andre@example.com")
	require.Equal(t, "Mon, 01 Jan 2024 10:00:00 +0000", dateRaw)
}

func TestParseHeaderPlainFields(t *testing.T) {
	raw := crlf(`Subject: hello
From: sender@example.com

`)

	subject, from, dateRaw, err := parseHeader(strings.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, "hello", subject)
	require.Equal(t, "sender@example.com", from)
	require.Empty(t, dateRaw)
}

func TestParseFullMessageMultipart(t *testing.T) {
	raw := crlf(`From: a@example.com
Subject: multipart test
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: multipart/alternative; boundary="inner"

--inner
Content-Type: text/plain; charset="utf-8"

plain body
--inner
Content-Type: text/html; charset="utf-8"

<p>html body</p>
--inner--
--outer
Content-Type: application/pdf
Content-Disposition: attachment; filename="doc.pdf"

%PDF-fake
--outer--
`)

	full, err := parseFullMessage(strings.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, full.BodyText)
	require.Equal(t, "plain body", *full.BodyText)
	require.NotNil(t, full.BodyHTML)
	require.Equal(t, "<p>html body</p>", *full.BodyHTML)
	require.Equal(t, "multipart test", full.Subject)
}

func TestParseFullMessageSkipsAttachmentParts(t *testing.T) {
	raw := crlf(`Subject: attached text
Content-Type: multipart/mixed; boundary="b"

--b
Content-Type: text/plain
Content-Disposition: attachment; filename="notes.txt"

attached notes
--b
Content-Type: text/plain

inline body
--b--
`)

	full, err := parseFullMessage(strings.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, full.BodyText)
	require.Equal(t, "inline body", *full.BodyText)
	require.Nil(t, full.BodyHTML)
}

func TestParseFullMessageFirstPartWins(t *testing.T) {
	raw := crlf(`Subject: duplicates
Content-Type: multipart/mixed; boundary="b"

--b
Content-Type: text/plain

first plain
--b
Content-Type: text/plain

second plain
--b--
`)

	full, err := parseFullMessage(strings.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, full.BodyText)
	require.Equal(t, "first plain", *full.BodyText)
}

func TestParseFullMessageSinglePartHTML(t *testing.T) {
	raw := crlf(`Subject: html only
Content-Type: text/html; charset="utf-8"

<p>hi</p>
`)

	full, err := parseFullMessage(strings.NewReader(raw))
	require.NoError(t, err)
	require.Nil(t, full.BodyText)
	require.NotNil(t, full.BodyHTML)
	require.Equal(t, "<p>hi</p>", *full.BodyHTML)
}

func TestParseFullMessageSinglePartPlain(t *testing.T) {
	raw := crlf(`Subject: plain only

just text
`)

	full, err := parseFullMessage(strings.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, full.BodyText)
	require.Equal(t, "just text", *full.BodyText)
	require.Nil(t, full.BodyHTML)
}

func TestParseFullMessageDecodesCharset(t *testing.T) {
	raw := crlf(`Subject: latin1
Content-Type: text/plain; charset="iso-8859-1"
Content-Transfer-Encoding: quoted-printable

caf=E9
`)

	full, err := parseFullMessage(strings.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, full.BodyText)
	require.Equal(t, "café", *full.BodyText)
}

func TestParseFullMessageEmptyBodyIsPresent(t *testing.T) {
	raw := crlf(`Subject: empty

`)

	full, err := parseFullMessage(strings.NewReader(raw))
	require.NoError(t, err)
	// An empty body is still "fetched": present but empty, not absent.
	require.NotNil(t, full.BodyText)
	require.Empty(t, *full.BodyText)
}
