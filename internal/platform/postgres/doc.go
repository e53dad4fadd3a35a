// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver, and embeds the schema migrations
// applied with goose.
//
// Task statements always carry the owner predicate (user_id = $n) so a
// caller can never read or modify another user's rows.
package postgres
