// Package render converts the small amount of markup found in user-facing
// error messages into terminal text.
package render

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// MarkupToText flattens raw to plain text. Links keep their text and gain
// the target in parentheses; other tags are dropped. The result is word
// wrapped at width when width is positive.
func MarkupToText(raw string, width int) string {
	if raw == "" {
		return ""
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	var href string

	for {
		switch tokenizer.Next() {
		case xhtml.ErrorToken:
			return wrapText(collapseSpaces(sb.String()), width)

		case xhtml.StartTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "a":
				href = attr(t, "href")
			case "br", "p":
				sb.WriteString("\n")
			}

		case xhtml.SelfClosingTagToken:
			if tokenizer.Token().Data == "br" {
				sb.WriteString("\n")
			}

		case xhtml.EndTagToken:
			if tokenizer.Token().Data == "a" && href != "" {
				sb.WriteString(" (")
				sb.WriteString(href)
				sb.WriteString(")")
				href = ""
			}

		case xhtml.TextToken:
			sb.WriteString(tokenizer.Token().Data)
		}
	}
}

func attr(t xhtml.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpaces squeezes runs of spaces and tabs within each line.
func collapseSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// wrapText performs simple word wrapping to the given width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		lineLen := 0
		for j, word := range strings.Fields(paragraph) {
			if j > 0 && lineLen+1+len(word) > width {
				result.WriteString("\n")
				lineLen = 0
			} else if j > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += len(word)
		}
	}
	return result.String()
}
