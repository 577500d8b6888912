package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/platform/sqlutil"
	"github.com/phrazzld/employee-api/internal/store"
)

const employeeColumns = `id, first_name, middle_name, last_name, second_last_name,
	age, sex, birth_date, position, created_at, active`

// PostgresEmployeeStore implements the store.EmployeeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEmployeeStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure PostgresEmployeeStore implements store.EmployeeStore interface
var _ store.EmployeeStore = (*PostgresEmployeeStore)(nil)

// NewPostgresEmployeeStore creates a new PostgreSQL implementation of the EmployeeStore interface.
func NewPostgresEmployeeStore(db *sql.DB, log *slog.Logger) *PostgresEmployeeStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresEmployeeStore{
		db:     db,
		logger: log.With(slog.String("component", "employee_store")),
	}
}

// Create inserts a new employee and sets its ID.
func (s *PostgresEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	if err := insertEmployee(ctx, s.db, employee); err != nil {
		s.log(ctx).Error("failed to create employee", slog.String("error", err.Error()))
		return store.NewStoreError("employee", "create", "insert failed", MapError(err))
	}
	s.log(ctx).Debug("employee created", slog.Int64("employee_id", employee.ID))
	return nil
}

// CreateMultiple inserts all employees in one transaction. On failure no row
// is kept and every ID is reset to zero.
func (s *PostgresEmployeeStore) CreateMultiple(ctx context.Context, employees []*domain.Employee) error {
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
	s.log(ctx).Debug("employee batch created", slog.Int("batch_size", len(employees)))
	return nil
}

// GetByID retrieves an employee by id.
func (s *PostgresEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEmployeeNotFound
		}
		s.log(ctx).Error("failed to get employee", slog.Int64("employee_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError("employee", "get", "query failed", MapError(err))
	}
	return employee, nil
}

// List returns all employees ordered by id.
func (s *PostgresEmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		s.log(ctx).Error("failed to list employees", slog.String("error", err.Error()))
		return nil, store.NewStoreError("employee", "list", "query failed", MapError(err))
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
func (s *PostgresEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET first_name = $1, middle_name = $2, last_name = $3, second_last_name = $4,
			age = $5, sex = $6, birth_date = $7, position = $8, active = $9
		WHERE id = $10`,
		employee.FirstName,
		sqlutil.NullString(employee.MiddleName),
		employee.LastName,
		sqlutil.NullString(employee.SecondLastName),
		sqlutil.NullInt(employee.Age),
		sqlutil.NullString(employee.Sex),
		nullDate(employee.BirthDate),
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
	return CheckRowsAffected(result, store.ErrEmployeeNotFound)
}

// Delete removes the employee row.
func (s *PostgresEmployeeStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		s.log(ctx).Error("failed to delete employee", slog.Int64("employee_id", id), slog.String("error", err.Error()))
		return store.NewStoreError("employee", "delete", "delete failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrEmployeeNotFound)
}

// Close closes the underlying connection pool.
func (s *PostgresEmployeeStore) Close() error {
	return s.db.Close()
}

func (s *PostgresEmployeeStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func insertEmployee(ctx context.Context, db store.DBTX, e *domain.Employee) error {
	row := db.QueryRowContext(ctx, `
		INSERT INTO employees (first_name, middle_name, last_name, second_last_name,
			age, sex, birth_date, position, created_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		e.FirstName,
		sqlutil.NullString(e.MiddleName),
		e.LastName,
		sqlutil.NullString(e.SecondLastName),
		sqlutil.NullInt(e.Age),
		sqlutil.NullString(e.Sex),
		nullDate(e.BirthDate),
		sqlutil.NullString(e.Position),
		e.CreatedAt.UTC(),
		e.Active,
	)
	return row.Scan(&e.ID)
}

func scanEmployee(row sqlutil.Scanner) (*domain.Employee, error) {
	var (
		e              domain.Employee
		middleName     sql.NullString
		secondLastName sql.NullString
		age            sql.NullInt64
		sex            sql.NullString
		birthDate      sql.NullTime
		position       sql.NullString
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
		&e.CreatedAt,
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
		d := domain.DateOf(birthDate.Time)
		e.BirthDate = &d
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func nullDate(d *domain.Date) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time(), Valid: true}
}
