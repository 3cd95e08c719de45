package sanitizer

import "regexp"

var (
	// scriptBlockRegex is non-greedy and spans newlines so each block is removed
	// separately and text between two blocks survives.
	scriptBlockRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)

	whitespaceRegex = regexp.MustCompile(`\s+`)

	linkRegex = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
)
