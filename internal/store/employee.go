package store

import (
	"context"

	"github.com/phrazzld/employee-api/internal/domain"
)

// EmployeeStore persists employee records keyed by a store-assigned id.
// Implementations must be safe for concurrent use.
type EmployeeStore interface {
	// Create saves a new record and sets its ID.
	Create(ctx context.Context, employee *domain.Employee) error

	// CreateMultiple saves all records atomically: either every record is
	// stored and has its ID set, or none is.
	CreateMultiple(ctx context.Context, employees []*domain.Employee) error

	// GetByID returns ErrEmployeeNotFound when no record has the id.
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)

	// List returns every record ordered by id. The result is never nil.
	List(ctx context.Context) ([]*domain.Employee, error)

	// Update replaces every mutable field of the record with the same ID.
	// CreatedAt is never written. Returns ErrEmployeeNotFound when absent.
	Update(ctx context.Context, employee *domain.Employee) error

	// Delete removes the record. Returns ErrEmployeeNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// Close releases any resources held by the store.
	Close() error
}
