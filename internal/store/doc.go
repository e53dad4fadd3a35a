// Package store defines the persistence interfaces for users and tasks.
// Implementations live under internal/platform; the interfaces keep the
// services independent of the database and make ownership scoping part of
// every task method's signature.
package store
