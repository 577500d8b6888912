package service

import (
	"context"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockEmployeeStore mocks the store.EmployeeStore interface
type MockEmployeeStore struct {
	mock.Mock
}

func (m *MockEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeStore) CreateMultiple(ctx context.Context, employees []*domain.Employee) error {
	args := m.Called(ctx, employees)
	return args.Error(0)
}

func (m *MockEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Employee), args.Error(1)
}

func (m *MockEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
