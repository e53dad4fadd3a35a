// Package mocks provides in-memory implementations of the store interfaces
// for tests. They enforce the same owner predicate and uniqueness rules as
// the PostgreSQL stores but keep everything in process memory.
package mocks
