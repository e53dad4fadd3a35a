// Package api holds the HTTP handlers for accounts and tasks, the request
// and response models, and the single mapping from service errors to HTTP
// status codes and client-safe messages.
package api
