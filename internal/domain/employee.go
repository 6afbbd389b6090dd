package domain

import "time"

// Role represents an employee's role in the dispatch system.
type Role string

const (
	RoleStaff    Role = "staff"
	RoleManager  Role = "manager"
	RoleDriver   Role = "driver"
	RoleApprover Role = "approver"
	RoleAdmin    Role = "admin"
)

// Employee represents an employee. Drivers and approvers are employees
// with the corresponding role.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Role         Role
	DepartmentID string
	Active       bool
	JoinedAt     time.Time
}

// Department is the organizational unit an employee belongs to.
type Department struct {
	ID    string
	Name  string
	Phone string
}
