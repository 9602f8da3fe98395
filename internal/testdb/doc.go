// Package testdb holds helpers for tests that talk to a real PostgreSQL
// database.
//
// Each test runs inside its own transaction, which is rolled back when the
// test function returns, so tests can share one database and run in
// parallel without cleanup:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.SetupTestDatabaseSchema(t, db)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        jobs := postgres.NewPostgresJobStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when neither DATABASE_URL nor JOBS_TEST_DB_URL is set.
package testdb
