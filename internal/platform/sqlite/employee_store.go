// Package sqlite provides an embedded SQLite implementation of
// store.EmployeeStore using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/platform/sqlutil"
	"github.com/phrazzld/employee-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Column formats for values SQLite stores as TEXT.
const (
	birthDateLayout = "2006-01-02"
	createdAtLayout = time.RFC3339Nano
)

const employeeColumns = `id, first_name, middle_name, last_name, second_last_name,
	age, sex, birth_date, position, created_at, active`

// Open opens a SQLite database and verifies the connection. The pool is
// limited to one connection: SQLite serializes writers, and every ":memory:"
// connection is a separate database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return db, nil
}

// SQLiteEmployeeStore implements store.EmployeeStore on a SQLite database.
type SQLiteEmployeeStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteEmployeeStore implements store.EmployeeStore interface
var _ store.EmployeeStore = (*SQLiteEmployeeStore)(nil)

// NewSQLiteEmployeeStore creates a store on db. The schema must already be
// applied with Migrate.
func NewSQLiteEmployeeStore(db *sql.DB, log *slog.Logger) *SQLiteEmployeeStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteEmployeeStore{
		db:     db,
		logger: log.With(slog.String("component", "employee_store")),
	}
}

// Create inserts a new employee and sets its ID.
func (s *SQLiteEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	if err := insertEmployee(ctx, s.db, employee); err != nil {
		s.log(ctx).Error("failed to create employee", slog.String("error", err.Error()))
		return store.NewStoreError("employee", "create", "insert failed", MapError(err))
	}
	return nil
}

// CreateMultiple inserts all employees in one transaction. On failure no row
// is kept and every ID is reset to zero.
func (s *SQLiteEmployeeStore) CreateMultiple(ctx context.Context, employees []*domain.Employee) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for i, e := range employees {
			if err := insertEmployee(ctx, tx, e); err != nil {
				return fmt.Errorf("insert employee %d of %d: %w", i+1, len(employees), err)
			}
		}
		return nil
	})
	if err != nil {
		for _, e := range employees {
			e.ID = 0
		}
		s.log(ctx).Error("failed to create employee batch",
			slog.Int("batch_size", len(employees)),
			slog.String("error", err.Error()))
		return store.NewStoreError("employee", "create_multiple", "batch insert failed", MapError(err))
	}
	return nil
}

// GetByID retrieves an employee by id.
func (s *SQLiteEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEmployeeNotFound
		}
		s.log(ctx).Error("failed to get employee", slog.Int64("employee_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError("employee", "get", "query failed", err)
	}
	return employee, nil
}

// List returns all employees ordered by id.
func (s *SQLiteEmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		s.log(ctx).Error("failed to list employees", slog.String("error", err.Error()))
		return nil, store.NewStoreError("employee", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, store.NewStoreError("employee", "list", "scan failed", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("employee", "list", "row iteration failed", err)
	}
	return employees, nil
}

// Update overwrites every mutable column of the employee row.
func (s *SQLiteEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET first_name = ?, middle_name = ?, last_name = ?, second_last_name = ?,
			age = ?, sex = ?, birth_date = ?, position = ?, active = ?
		WHERE id = ?`,
		employee.FirstName,
		sqlutil.NullString(employee.MiddleName),
		employee.LastName,
		sqlutil.NullString(employee.SecondLastName),
		sqlutil.NullInt(employee.Age),
		sqlutil.NullString(employee.Sex),
		formatBirthDate(employee.BirthDate),
		sqlutil.NullString(employee.Position),
		employee.Active,
		employee.ID,
	)
	if err != nil {
		s.log(ctx).Error("failed to update employee",
			slog.Int64("employee_id", employee.ID),
			slog.String("error", err.Error()))
		return store.NewStoreError("employee", "update", "update failed", MapError(err))
	}
	return checkRowsAffected(result)
}

// Delete removes the employee row.
func (s *SQLiteEmployeeStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		s.log(ctx).Error("failed to delete employee", slog.Int64("employee_id", id), slog.String("error", err.Error()))
		return store.NewStoreError("employee", "delete", "delete failed", err)
	}
	return checkRowsAffected(result)
}

// Close closes the database.
func (s *SQLiteEmployeeStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteEmployeeStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// MapError maps SQLite constraint failures to store errors.
func MapError(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch code := sqliteErr.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case code&0xff == sqlite3.SQLITE_CONSTRAINT:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	default:
		return err
	}
}

func checkRowsAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrEmployeeNotFound
	}
	return nil
}

func insertEmployee(ctx context.Context, db store.DBTX, e *domain.Employee) error {
	result, err := db.ExecContext(ctx, `
		INSERT INTO employees (first_name, middle_name, last_name, second_last_name,
			age, sex, birth_date, position, created_at, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.FirstName,
		sqlutil.NullString(e.MiddleName),
		e.LastName,
		sqlutil.NullString(e.SecondLastName),
		sqlutil.NullInt(e.Age),
		sqlutil.NullString(e.Sex),
		formatBirthDate(e.BirthDate),
		sqlutil.NullString(e.Position),
		e.CreatedAt.UTC().Format(createdAtLayout),
		e.Active,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	e.ID = id
	return nil
}

func scanEmployee(row sqlutil.Scanner) (*domain.Employee, error) {
	var (
		e              domain.Employee
		middleName     sql.NullString
		secondLastName sql.NullString
		age            sql.NullInt64
		sex            sql.NullString
		birthDate      sql.NullString
		position       sql.NullString
		createdAt      string
	)
	err := row.Scan(
		&e.ID,
		&e.FirstName,
		&middleName,
		&e.LastName,
		&secondLastName,
		&age,
		&sex,
		&birthDate,
		&position,
		&createdAt,
		&e.Active,
	)
	if err != nil {
		return nil, err
	}

	e.MiddleName = sqlutil.StringPtr(middleName)
	e.SecondLastName = sqlutil.StringPtr(secondLastName)
	e.Age = sqlutil.IntPtr(age)
	e.Sex = sqlutil.StringPtr(sex)
	e.Position = sqlutil.StringPtr(position)

	if birthDate.Valid {
		t, err := time.Parse(birthDateLayout, birthDate.String)
		if err != nil {
			return nil, fmt.Errorf("invalid birth_date %q: %w", birthDate.String, err)
		}
		d := domain.DateOf(t)
		e.BirthDate = &d
	}

	e.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	return &e, nil
}

func formatBirthDate(d *domain.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Time().Format(birthDateLayout), Valid: true}
}
