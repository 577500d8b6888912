package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/migrate"
	"github.com/phrazzld/employee-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 1, 15, 12, 0, 0, 123456000, time.UTC)

func newTestStore(t *testing.T) *SQLiteEmployeeStore {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db, migrate.CommandUp, nil))

	s := NewSQLiteEmployeeStore(db, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newEmployee(first string) *domain.Employee {
	return &domain.Employee{FirstName: first, LastName: "Lopez", CreatedAt: createdAt, Active: true}
}

func TestNewSQLiteEmployeeStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewSQLiteEmployeeStore(nil, nil) })
}

func TestSQLiteEmployeeStore_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	birth := domain.NewDate(1990, time.March, 5)
	e := newEmployee("Ana")
	e.MiddleName = strPtr("Maria")
	e.Age = intPtr(34)
	e.BirthDate = &birth
	e.Position = strPtr("Engineer")

	require.NoError(t, s.Create(ctx, e))
	require.Equal(t, int64(1), e.ID)

	got, err := s.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestSQLiteEmployeeStore_GetByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrEmployeeNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestSQLiteEmployeeStore_CreateMultiple(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []*domain.Employee{newEmployee("Ana"), newEmployee("Luis"), newEmployee("Eva")}
	require.NoError(t, s.CreateMultiple(ctx, batch))
	for i, e := range batch {
		assert.Equal(t, int64(i+1), e.ID)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Luis", list[1].FirstName)
}

func TestSQLiteEmployeeStore_CreateMultipleIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bad := newEmployee("Luis")
	bad.Age = intPtr(200)
	batch := []*domain.Employee{newEmployee("Ana"), bad}

	err := s.CreateMultiple(ctx, batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.Zero(t, batch[0].ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteEmployeeStore_ListEmpty(t *testing.T) {
	s := newTestStore(t)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSQLiteEmployeeStore_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := newEmployee("Ana")
	e.Sex = strPtr("F")
	require.NoError(t, s.Create(ctx, e))

	e.FirstName = "Anita"
	e.Sex = nil
	e.Active = false
	require.NoError(t, s.Update(ctx, e))

	got, err := s.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anita", got.FirstName)
	assert.Nil(t, got.Sex)
	assert.False(t, got.Active)
	assert.Equal(t, createdAt, got.CreatedAt)

	missing := newEmployee("Nobody")
	missing.ID = 99
	assert.ErrorIs(t, s.Update(ctx, missing), store.ErrEmployeeNotFound)
}

func TestSQLiteEmployeeStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := newEmployee("Ana")
	require.NoError(t, s.Create(ctx, e))

	require.NoError(t, s.Delete(ctx, e.ID))
	_, err := s.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrEmployeeNotFound)

	assert.ErrorIs(t, s.Delete(ctx, e.ID), store.ErrEmployeeNotFound)
}

func TestSQLiteEmployeeStore_IDsAreNotReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := newEmployee("Ana")
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Delete(ctx, first.ID))

	second := newEmployee("Luis")
	require.NoError(t, s.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestMapError_PassesThroughOtherErrors(t *testing.T) {
	other := errors.New("disk I/O error")
	assert.Equal(t, other, MapError(other))
}
