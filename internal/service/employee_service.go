package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/store"
)

// EmployeeService provides the employee record operations.
type EmployeeService interface {
	// List returns every employee ordered by id.
	List(ctx context.Context) ([]*domain.Employee, error)

	// Get returns the employee with id, or a KindNotFound error.
	Get(ctx context.Context, id int64) (*domain.Employee, error)

	// Search returns the employees whose full name contains name,
	// ignoring case and surrounding whitespace. An empty name matches nothing.
	Search(ctx context.Context, name string) ([]*domain.Employee, error)

	// Create validates and stores every draft, all or nothing. The result
	// holds the stored records in input order.
	Create(ctx context.Context, drafts []*domain.EmployeeDraft) ([]*domain.Employee, error)

	// Update merges the present fields of patch into the employee with id.
	Update(ctx context.Context, id int64, patch *domain.EmployeePatch) (*domain.Employee, error)

	// Delete removes the employee with id.
	Delete(ctx context.Context, id int64) error
}

// EmployeeServiceError wraps unexpected failures from the employee service.
type EmployeeServiceError struct {
	// Operation is the operation that failed (e.g., "create", "update")
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for EmployeeServiceError.
func (e *EmployeeServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("employee service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("employee service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *EmployeeServiceError) Unwrap() error {
	return e.Err
}

// NewEmployeeServiceError wraps err with the failed operation. Classified
// domain errors are returned unchanged.
func NewEmployeeServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return &EmployeeServiceError{Operation: operation, Message: message, Err: err}
}

// employeeServiceImpl implements the EmployeeService interface
type employeeServiceImpl struct {
	store  store.EmployeeStore
	now    func() time.Time
	logger *slog.Logger
}

// NewEmployeeService creates an EmployeeService backed by employeeStore. now
// supplies creation timestamps and the reference date for birthDate; nil
// means time.Now.
func NewEmployeeService(
	employeeStore store.EmployeeStore,
	now func() time.Time,
	log *slog.Logger,
) (EmployeeService, error) {
	if employeeStore == nil {
		return nil, &EmployeeServiceError{
			Operation: "create_service",
			Message:   "employeeStore cannot be nil",
		}
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &employeeServiceImpl{
		store:  employeeStore,
		now:    now,
		logger: log.With(slog.String("component", "employee_service")),
	}, nil
}

func (s *employeeServiceImpl) List(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.store.List(ctx)
	if err != nil {
		return nil, NewEmployeeServiceError("list", "failed to list employees", err)
	}
	return employees, nil
}

func (s *employeeServiceImpl) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError("get", id, err)
	}
	return employee, nil
}

func (s *employeeServiceImpl) Search(ctx context.Context, name string) ([]*domain.Employee, error) {
	query := domain.NormalizeQuery(name)
	if query == "" {
		return []*domain.Employee{}, nil
	}

	employees, err := s.store.List(ctx)
	if err != nil {
		return nil, NewEmployeeServiceError("search", "failed to list employees", err)
	}
	return domain.FilterByName(employees, query), nil
}

func (s *employeeServiceImpl) Create(
	ctx context.Context,
	drafts []*domain.EmployeeDraft,
) ([]*domain.Employee, error) {
	if len(drafts) == 0 {
		return nil, domain.NewBadRequestError(domain.MsgEmptyBatch, nil)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	for i, d := range drafts {
		if d == nil {
			return nil, domain.NewBadRequestError(domain.MsgInvalidPayload, fmt.Errorf("element %d is null", i))
		}
		if err := domain.ValidateDraft(d, now); err != nil {
			log.Debug("employee draft rejected",
				slog.Int("index", i),
				slog.Int("batch_size", len(drafts)))
			return nil, err
		}
	}

	// SQL stores keep microsecond precision.
	createdAt := now.UTC().Truncate(time.Microsecond)
	employees := make([]*domain.Employee, len(drafts))
	for i, d := range drafts {
		employees[i] = domain.NewEmployee(d, createdAt)
	}

	var err error
	if len(employees) == 1 {
		err = s.store.Create(ctx, employees[0])
	} else {
		err = s.store.CreateMultiple(ctx, employees)
	}
	if err != nil {
		return nil, NewEmployeeServiceError("create", "failed to store employees", err)
	}

	log.Info("employees created", slog.Int("count", len(employees)))
	return employees, nil
}

func (s *employeeServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch *domain.EmployeePatch,
) (*domain.Employee, error) {
	if err := domain.ValidatePatch(patch, s.now()); err != nil {
		return nil, err
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError("update", id, err)
	}

	updated := current.Apply(patch)
	if err := s.store.Update(ctx, updated); err != nil {
		return nil, s.storeError("update", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("employee updated", slog.Int64("employee_id", id))
	return updated, nil
}

func (s *employeeServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.storeError("delete", id, err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("employee deleted", slog.Int64("employee_id", id))
	return nil
}

func (s *employeeServiceImpl) storeError(operation string, id int64, err error) error {
	if store.IsNotFoundError(err) {
		return domain.NewNotFoundError(id)
	}
	return NewEmployeeServiceError(operation, fmt.Sprintf("failed to %s employee %d", operation, id), err)
}
