// Package redis connects to Redis with bounded retries and exposes a
// readiness check for the resulting client.
package redis
