// Package middleware provides the HTTP middleware chain: per-request trace
// IDs and loggers, bearer token authentication and Prometheus
// instrumentation.
package middleware
