package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// EmployeeRepository is a PostgreSQL implementation of repository.EmployeeRepository.
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, first_name, last_name, email, phone, role, department_id, active, joined_at`

// Create adds a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.Role,
		employee.DepartmentID,
		employee.Active,
		employee.JoinedAt,
	)
	return err
}

// GetByID retrieves an employee by ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByEmail retrieves an employee by email.
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	return r.get(ctx, query, email)
}

// GetAll retrieves all employees.
func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY joined_at DESC`
	return r.list(ctx, query)
}

// ListActiveByRole retrieves active employees with the given role.
func (r *EmployeeRepository) ListActiveByRole(ctx context.Context, role domain.Role) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE role = $1 AND active ORDER BY id`
	return r.list(ctx, query, role)
}

// ListDepartments retrieves all departments.
func (r *EmployeeRepository) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	query := `SELECT id, name, phone FROM departments ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

func (r *EmployeeRepository) get(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.Role, &e.DepartmentID, &e.Active, &e.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(
			&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
			&e.Role, &e.DepartmentID, &e.Active, &e.JoinedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, &e)
	}
	return employees, rows.Err()
}
