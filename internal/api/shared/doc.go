// Package shared holds request-scoped context helpers and the JSON
// request/response codec used by both the api package and its middleware.
package shared
