// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests call GetTestDBWithT, which skips the test unless DATABASE_URL (or
// EMPLOYEE_TEST_DB_URL) is set, applies the embedded migrations and empties
// the employees table:
//
//	func TestEmployeeStore_Postgres(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    s := postgres.NewPostgresEmployeeStore(db, nil)
//	    ...
//	}
//
// Integration tests carry the `integration` build tag and run with
// `go test -tags=integration ./...`.
package testdb
