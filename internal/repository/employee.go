package repository

import (
	"context"

	"fleet/internal/domain"
)

// EmployeeRepository defines the persistence operations for employees
// and departments.
type EmployeeRepository interface {
	// Create persists a new employee.
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves an employee by ID.
	GetByID(ctx context.Context, id string) (*domain.Employee, error)

	// GetByEmail retrieves an employee by email.
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// GetAll retrieves all employees.
	GetAll(ctx context.Context) ([]*domain.Employee, error)

	// ListActiveByRole retrieves active employees with the given role.
	ListActiveByRole(ctx context.Context, role domain.Role) ([]*domain.Employee, error)

	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]*domain.Department, error)
}
