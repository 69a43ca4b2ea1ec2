package util

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	// Match any HTML tag
	tagRe = regexp.MustCompile(`<[^>]*>`)

	// Match <a href="..."> to extract URLs
	anchorRe = regexp.MustCompile(`(?i)<a\s[^>]*href\s*=\s*["']([^"']*)["'][^>]*>`)

	// Match closing </a>
	anchorCloseRe = regexp.MustCompile(`(?i)</a\s*>`)

	// Collapse runs of blank lines into at most two newlines (one blank line)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)

	// Collapse runs of spaces (not newlines) into one
	spacesRe = regexp.MustCompile(`[^\S\n]+`)

	brRe = regexp.MustCompile(`(?i)<br\s*/?\s*>`)

	// Block tags that produce paragraph breaks
	blockCloseRe = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|blockquote|pre|table|tr)\s*>`)
	blockOpenRe  = regexp.MustCompile(`(?i)<(?:p|div|h[1-6]|blockquote|pre|table|tr)(?:\s[^>]*)?\s*>`)

	liOpenRe   = regexp.MustCompile(`(?i)<li(?:\s[^>]*)?\s*>`)
	liCloseRe  = regexp.MustCompile(`(?i)</li\s*>`)
	listWrapRe = regexp.MustCompile(`(?i)</?(?:ul|ol)(?:\s[^>]*)?\s*>`)
)

// HTMLToText converts an event description to plain text suitable for a
// digest that is pasted elsewhere. Links become "text (url)", list items
// become "- " lines and entities are decoded. Plain-text input with no tags
// passes through with only whitespace cleanup.
func HTMLToText(s string) string {
	if s == "" {
		return s
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = brRe.ReplaceAllString(s, "\n")
	s = blockCloseRe.ReplaceAllString(s, "\n\n")
	s = blockOpenRe.ReplaceAllString(s, "\n")

	s = listWrapRe.ReplaceAllString(s, "")
	s = liOpenRe.ReplaceAllString(s, "\n- ")
	s = liCloseRe.ReplaceAllString(s, "")

	s = convertLinks(s)
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = spacesRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// convertLinks replaces <a href="url">text</a> with "text (url)", or just
// the url when the text is empty or already equal to it. Google redirect
// URLs are unwrapped to the real target.
func convertLinks(s string) string {
	for {
		aLoc := anchorRe.FindStringSubmatchIndex(s)
		if aLoc == nil {
			break
		}

		href := unwrapRedirect(s[aLoc[2]:aLoc[3]])
		afterOpen := s[aLoc[1]:]

		closeLoc := anchorCloseRe.FindStringIndex(afterOpen)
		if closeLoc == nil {
			// Malformed, drop the opening tag and move on
			s = s[:aLoc[0]] + s[aLoc[1]:]
			continue
		}

		text := strings.TrimSpace(tagRe.ReplaceAllString(afterOpen[:closeLoc[0]], ""))

		replacement := href
		if text != "" && text != href {
			replacement = text + " (" + href + ")"
		}

		s = s[:aLoc[0]] + replacement + afterOpen[closeLoc[1]:]
	}
	return s
}

// unwrapRedirect extracts the real URL from Google redirect wrappers
// like https://www.google.com/url?q=REAL_URL&...
func unwrapRedirect(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if u.Host == "www.google.com" && u.Path == "/url" {
		if q := u.Query().Get("q"); q != "" {
			return q
		}
	}

	return rawURL
}
