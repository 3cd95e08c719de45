// Package requestid attaches a correlation ID to every HTTP request.
//
// A client supplied X-Request-ID is reused when it is short and made of
// URL-safe characters; otherwise a fresh UUID is generated. The chosen ID is
// echoed in the response header, stored in the request context and exposed to
// slog through LoggerExtractor.
package requestid
