// Package service implements the account and task use cases.
//
// AccountService owns registration, login and session token verification.
// TaskService performs task CRUD restricted to the verified caller; it never
// reads an owner from request data. Both return the sentinel errors declared
// in errors.go so the API layer can translate them uniformly.
package service
