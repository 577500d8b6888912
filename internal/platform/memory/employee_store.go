// Package memory provides an in-process implementation of store.EmployeeStore.
// Records live in a map guarded by a read-write mutex and are lost on exit.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/store"
)

// EmployeeStore keeps employees in memory. Stored records are copies, so
// callers never share state with the store.
type EmployeeStore struct {
	mu     sync.RWMutex
	rows   map[int64]*domain.Employee
	nextID int64
	logger *slog.Logger
}

// Ensure EmployeeStore implements store.EmployeeStore interface
var _ store.EmployeeStore = (*EmployeeStore)(nil)

// NewEmployeeStore returns an empty store whose first id is 1.
func NewEmployeeStore(log *slog.Logger) *EmployeeStore {
	if log == nil {
		log = slog.Default()
	}
	return &EmployeeStore{
		rows:   make(map[int64]*domain.Employee),
		nextID: 1,
		logger: log.With(slog.String("component", "employee_store")),
	}
}

// Create stores a copy of employee and sets its ID.
func (s *EmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertLocked(employee)
	logger.FromContextOrDefault(ctx, s.logger).Debug("employee created", slog.Int64("employee_id", employee.ID))
	return nil
}

// CreateMultiple stores every employee under a single lock, so readers see
// either none or all of the batch.
func (s *EmployeeStore) CreateMultiple(ctx context.Context, employees []*domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range employees {
		s.insertLocked(e)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("employee batch created", slog.Int("batch_size", len(employees)))
	return nil
}

// GetByID returns a copy of the stored employee.
func (s *EmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[id]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	return e.Clone(), nil
}

// List returns copies of all employees ordered by id.
func (s *EmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]*domain.Employee, 0, len(s.rows))
	for _, e := range s.rows {
		employees = append(employees, e.Clone())
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

// Update replaces the stored record. The stored CreatedAt is kept.
func (s *EmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.rows[employee.ID]
	if !ok {
		return store.ErrEmployeeNotFound
	}
	updated := employee.Clone()
	updated.CreatedAt = current.CreatedAt
	s.rows[employee.ID] = updated
	return nil
}

// Delete removes the record.
func (s *EmployeeStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return store.ErrEmployeeNotFound
	}
	delete(s.rows, id)
	return nil
}

// Close is a no-op.
func (s *EmployeeStore) Close() error {
	return nil
}

func (s *EmployeeStore) insertLocked(e *domain.Employee) {
	e.ID = s.nextID
	s.nextID++
	s.rows[e.ID] = e.Clone()
}
