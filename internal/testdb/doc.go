// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database.
//
// Tests using it carry the "integration" build tag and are skipped unless
// GENOPS_TEST_DATABASE_URL (or DATABASE_URL) is set:
//
//	//go:build integration
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        store := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The schema is brought up to date with the embedded goose migrations, and
// every WithTx body is rolled back so tests can share one database.
package testdb
