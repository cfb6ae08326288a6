package email

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// parseHeader decodes the subject, from and raw date fields from a fetched
// header section. Encoded words are recombined into a single logical string.
func parseHeader(r io.Reader) (subject, from, dateRaw string, err error) {
	ent, err := message.Read(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return "", "", "", fmt.Errorf("failed to parse header: %w", err)
	}

	h := mail.Header{Header: ent.Header}
	if v, err := h.Text("Subject"); err == nil {
		subject = v
	} else {
		subject = h.Get("Subject")
	}
	if v, err := h.Text("From"); err == nil {
		from = v
	} else {
		from = h.Get("From")
	}
	dateRaw = h.Get("Date")
	return subject, from, dateRaw, nil
}

// parseFullMessage parses a complete RFC822 message and extracts its bodies.
func parseFullMessage(r io.Reader) (*FullMessage, error) {
	ent, err := message.Read(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	h := mail.Header{Header: ent.Header}
	full := &FullMessage{DateRaw: h.Get("Date")}
	if v, err := h.Text("Subject"); err == nil {
		full.Subject = v
	} else {
		full.Subject = h.Get("Subject")
	}
	if v, err := h.Text("From"); err == nil {
		full.From = v
	} else {
		full.From = h.Get("From")
	}

	full.BodyText, full.BodyHTML = extractBodies(ent)
	return full, nil
}

// extractBodies walks the MIME part tree depth-first and picks the first
// text/plain and first text/html parts, skipping attachments and stopping
// once both are found. A non-multipart message is classified by its single
// content type: text/html yields an html-only result, anything else text-only.
func extractBodies(ent *message.Entity) (text, html *string) {
	if mr := ent.MultipartReader(); mr != nil {
		walkParts(mr, &text, &html)
		return text, html
	}

	body := readPartText(ent)
	mediaType, _, _ := ent.Header.ContentType()
	if mediaType == "text/html" {
		return nil, &body
	}
	return &body, nil
}

func walkParts(mr message.MultipartReader, text, html **string) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return
		}
		if part == nil {
			return
		}

		if nested := part.MultipartReader(); nested != nil {
			walkParts(nested, text, html)
		} else {
			disp, _, _ := part.Header.ContentDisposition()
			if strings.EqualFold(disp, "attachment") {
				continue
			}

			mediaType, _, _ := part.Header.ContentType()
			switch {
			case mediaType == "text/plain" && *text == nil:
				s := readPartText(part)
				*text = &s
			case mediaType == "text/html" && *html == nil:
				s := readPartText(part)
				*html = &s
			}
		}

		if *text != nil && *html != nil {
			return
		}
	}
}

// readPartText reads a decoded part body. Unknown charsets pass the raw
// bytes through, so invalid UTF-8 is replaced rather than stored broken.
func readPartText(ent *message.Entity) string {
	b, err := io.ReadAll(ent.Body)
	if err != nil {
		return ""
	}
	s := string(b)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return strings.TrimSpace(s)
}
