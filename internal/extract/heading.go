package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// headingRE matches a bracketed section heading at the start of a verse text:
// "<title> body text". The corpus occasionally nests markers.
var headingRE = regexp.MustCompile(`^\s*<([^>]+)>\s*(.*)$`)

// ParseHeading splits a verse text that opens with a heading marker into its
// title and trailing body. The title is unwrapped to its innermost marker
// content when markers are nested.
func ParseHeading(text string) (title, body string, ok bool) {
	m := headingRE.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	title = normalizeText(m[1])
	for strings.HasPrefix(title, "<") {
		title = normalizeText(strings.TrimPrefix(title, "<"))
	}
	return title, normalizeText(m[2]), true
}

// StripHeadings removes every leading heading marker, returning the bare
// verse text. Applied to the first verse of a span before it is quoted.
func StripHeadings(text string) string {
	text = strings.TrimSpace(text)
	for {
		m := headingRE.FindStringSubmatch(text)
		if m == nil {
			return text
		}
		text = strings.TrimSpace(m[2])
	}
}

// headingKeyRE keeps only Hangul syllables, Latin letters and digits
var headingKeyRE = regexp.MustCompile(`[^가-힣A-Za-z0-9]+`)

// HeadingKey normalizes a heading title to its strict-equality match key
func HeadingKey(title string) string {
	return normalizeText(headingKeyRE.ReplaceAllString(title, ""))
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
