// Package postgres provides the PostgreSQL implementation of store.EmployeeStore
// on top of the pgx database/sql driver, together with the embedded goose
// schema and the mapping from PostgreSQL error codes to store errors.
package postgres
