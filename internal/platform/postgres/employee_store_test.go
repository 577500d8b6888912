package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*PostgresEmployeeStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresEmployeeStore(db, nil), mock
}

func employeeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "middle_name", "last_name", "second_last_name",
		"age", "sex", "birth_date", "position", "created_at", "active",
	})
}

func newEmployee(first string) *domain.Employee {
	return &domain.Employee{FirstName: first, LastName: "Lopez", CreatedAt: createdAt, Active: true}
}

func TestNewPostgresEmployeeStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresEmployeeStore(nil, nil) })
}

func TestPostgresEmployeeStore_Create(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	e := newEmployee("Ana")
	require.NoError(t, s.Create(context.Background(), e))
	assert.Equal(t, int64(11), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEmployeeStore_CreateMapsConstraintErrors(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WillReturnError(&pgconn.PgError{Code: checkViolationCode, ConstraintName: "employees_age_check"})

	err := s.Create(context.Background(), newEmployee("Ana"))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresEmployeeStore_CreateMultiple(t *testing.T) {
	t.Run("commits all rows", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
		mock.ExpectCommit()

		batch := []*domain.Employee{newEmployee("Ana"), newEmployee("Luis")}
		require.NoError(t, s.CreateMultiple(context.Background(), batch))
		assert.Equal(t, int64(1), batch[0].ID)
		assert.Equal(t, int64(2), batch[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		batch := []*domain.Employee{newEmployee("Ana"), newEmployee("Luis")}
		err := s.CreateMultiple(context.Background(), batch)
		require.Error(t, err)
		assert.Zero(t, batch[0].ID, "ids are reset when the batch fails")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresEmployeeStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)
		birth := time.Date(1990, 3, 5, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = $1")).
			WithArgs(int64(3)).
			WillReturnRows(employeeRows().AddRow(
				int64(3), "Ana", "Maria", "Lopez", nil, int64(34), nil, birth, "Engineer", createdAt, true))

		e, err := s.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), e.ID)
		assert.Equal(t, "Maria", *e.MiddleName)
		assert.Nil(t, e.SecondLastName)
		assert.Equal(t, 34, *e.Age)
		assert.Nil(t, e.Sex)
		assert.Equal(t, domain.NewDate(1990, time.March, 5), *e.BirthDate)
		assert.Equal(t, createdAt, e.CreatedAt)
		assert.True(t, e.Active)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = $1")).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, store.ErrEmployeeNotFound)
	})
}

func TestPostgresEmployeeStore_List(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM employees ORDER BY id")).
		WillReturnRows(employeeRows().
			AddRow(int64(1), "Ana", nil, "Lopez", nil, nil, nil, nil, nil, createdAt, true).
			AddRow(int64(2), "Luis", nil, "Perez", "Diaz", nil, "M", nil, nil, createdAt, false))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Diaz", *list[1].SecondLastName)
	assert.False(t, list[1].Active)
}

func TestPostgresEmployeeStore_ListEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM employees ORDER BY id")).WillReturnRows(employeeRows())

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPostgresEmployeeStore_UpdateAndDelete(t *testing.T) {
	t.Run("update missing row", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE employees")).WillReturnResult(sqlmock.NewResult(0, 0))

		e := newEmployee("Ana")
		e.ID = 9
		assert.ErrorIs(t, s.Update(context.Background(), e), store.ErrEmployeeNotFound)
	})

	t.Run("update", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE employees")).WillReturnResult(sqlmock.NewResult(0, 1))

		e := newEmployee("Ana")
		e.ID = 9
		assert.NoError(t, s.Update(context.Background(), e))
	})

	t.Run("delete", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees WHERE id = $1")).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, s.Delete(context.Background(), 9))
	})

	t.Run("delete missing row", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees WHERE id = $1")).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Delete(context.Background(), 9), store.ErrEmployeeNotFound)
	})
}
