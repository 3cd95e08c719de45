package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeNFC converts s to Unicode normalization form C so visually equal
// strings compare and measure the same.
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// SingleLine collapses all whitespace runs, including line breaks, into a
// single space. Use it for values that end up in email headers.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlChars drops control characters except tab and newline.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			return -1
		}
		return r
	}, s)
}

// ToLower lowercases s.
func ToLower(s string) string {
	return strings.ToLower(s)
}
