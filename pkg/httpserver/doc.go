// Package httpserver runs an http.Handler with configured timeouts and a
// graceful shutdown bound to a context, and provides liveness/readiness
// handlers for orchestrator health checks.
package httpserver
