// Package store defines the EmployeeStore contract implemented by the memory,
// SQLite and PostgreSQL backends, the sentinel errors they wrap, and the
// transaction helper the SQL backends share.
package store
