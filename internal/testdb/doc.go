//go:build integration

// Package testdb provides helpers for PostgreSQL integration tests.
//
// Each test runs in its own transaction that is rolled back when the test
// completes, so tests can run in parallel against the same schema without
// cleanup:
//
//	func TestCreateBook(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        books := postgres.NewPostgresBookStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when neither DATABASE_URL nor BOOKLIST_TEST_DB_URL is set.
package testdb
