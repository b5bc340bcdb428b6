// Package httpserver provides an http.Server wrapper with signal-driven
// graceful shutdown, drain hooks for dependent resources, and probe
// handlers for liveness and readiness checks.
package httpserver
