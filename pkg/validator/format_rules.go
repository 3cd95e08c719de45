package validator

import "regexp"

const KeyEmail = "validation.email"

// emailShapeRegex is deliberately permissive: something@something.something
// with no whitespace and a single '@'.
var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s has the shape of an email address.
func IsEmail(s string) bool {
	return emailShapeRegex.MatchString(s)
}

// ValidEmail validates that value has the shape of an email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: KeyEmail,
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
