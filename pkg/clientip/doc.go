// Package clientip resolves the originating client address of an HTTP
// request and offers a keyed hash so addresses can be compared and stored
// without keeping the raw value.
//
// By default only RemoteAddr is used. A Resolver configured with trusted
// proxies also reads an optional edge header (for example CF-Connecting-IP),
// then X-Forwarded-For from the right, then X-Real-IP, and only when the
// direct peer is one of those proxies.
package clientip
