package mocks

import (
	"context"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/service"
)

// MockEmployeeService implements service.EmployeeService for testing.
// Methods without a function field return the zero value and Err.
type MockEmployeeService struct {
	ListFn   func(ctx context.Context) ([]*domain.Employee, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Employee, error)
	SearchFn func(ctx context.Context, name string) ([]*domain.Employee, error)
	CreateFn func(ctx context.Context, drafts []*domain.EmployeeDraft) ([]*domain.Employee, error)
	UpdateFn func(ctx context.Context, id int64, patch *domain.EmployeePatch) (*domain.Employee, error)
	DeleteFn func(ctx context.Context, id int64) error

	Err error
}

// Ensure MockEmployeeService implements service.EmployeeService interface
var _ service.EmployeeService = (*MockEmployeeService)(nil)

// List implements the service.EmployeeService interface
func (m *MockEmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, m.Err
}

// Get implements the service.EmployeeService interface
func (m *MockEmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.Err
}

// Search implements the service.EmployeeService interface
func (m *MockEmployeeService) Search(ctx context.Context, name string) ([]*domain.Employee, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, name)
	}
	return nil, m.Err
}

// Create implements the service.EmployeeService interface
func (m *MockEmployeeService) Create(
	ctx context.Context,
	drafts []*domain.EmployeeDraft,
) ([]*domain.Employee, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, drafts)
	}
	return nil, m.Err
}

// Update implements the service.EmployeeService interface
func (m *MockEmployeeService) Update(
	ctx context.Context,
	id int64,
	patch *domain.EmployeePatch,
) (*domain.Employee, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, m.Err
}

// Delete implements the service.EmployeeService interface
func (m *MockEmployeeService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}
