package sanitizer

import (
	"html"
	"strings"
)

// Sanitize is the boundary sanitizer for free-text form fields.
// It strips <script> blocks, drops every remaining '<' and '>',
// normalizes to NFC and trims surrounding whitespace.
func Sanitize(raw string) string {
	return Apply(raw,
		StripScriptTags,
		StripAngleBrackets,
		NormalizeNFC,
		Trim,
	)
}

// StripScriptTags removes all <script>...</script> blocks, case-insensitively
// and across line breaks.
func StripScriptTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return scriptBlockRegex.ReplaceAllString(s, "")
}

// StripAngleBrackets removes every '<' and '>' character.
func StripAngleBrackets(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
}

// EscapeHTML escapes HTML special characters for safe interpolation into markup.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// CountLinks reports how many http(s):// or www. links appear in s.
func CountLinks(s string) int {
	return len(linkRegex.FindAllStringIndex(s, -1))
}
