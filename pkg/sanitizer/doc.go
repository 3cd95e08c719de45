// Package sanitizer cleans untrusted free-text input before it is used,
// stored, or echoed into an email.
//
// The core entry point is Sanitize, which removes <script> blocks and any
// remaining angle brackets, normalizes to Unicode NFC and trims whitespace.
// Sanitize is idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
//
// The smaller helpers can be chained with Apply and Compose:
//
//	subject := sanitizer.Compose(
//	    sanitizer.Sanitize,
//	    sanitizer.SingleLine,
//	)
//
//	clean := subject("New brief:\r\nBcc: attacker@example.com") // "New brief: Bcc: attacker@example.com"
//
// All functions are pure and safe for concurrent use.
package sanitizer
