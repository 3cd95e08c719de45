// Package binder decodes HTTP request bodies into typed request structs.
//
// JSON enforces the media type, a body size limit and a single top-level
// value, and can run every decoded string field through a transform such as
// a sanitizer before the handler sees it.
package binder
