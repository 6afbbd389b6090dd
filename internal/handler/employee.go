package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// EmployeeHandler handles HTTP requests for the employee directory.
type EmployeeHandler struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeRepo repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{employeeRepo: employeeRepo}
}

// RegisterEmployeeBody is the HTTP request body for employee registration.
type RegisterEmployeeBody struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
}

// EmployeeResponse is the HTTP representation of an employee.
type EmployeeResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
	Active       bool   `json:"active"`
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		Role:         string(e.Role),
		DepartmentID: e.DepartmentID,
		Active:       e.Active,
	}
}

// Register handles POST /v1/employees
func (h *EmployeeHandler) Register(c *gin.Context) {
	var body RegisterEmployeeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if body.FirstName == "" || body.LastName == "" || body.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "first_name, last_name and email are required"})
		return
	}

	switch domain.Role(body.Role) {
	case domain.RoleStaff, domain.RoleManager, domain.RoleDriver, domain.RoleApprover, domain.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown role"})
		return
	}

	existing, err := h.employeeRepo.GetByEmail(c.Request.Context(), body.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message":  "employee already registered",
			"employee": toEmployeeResponse(existing),
		})
		return
	}

	employee := &domain.Employee{
		ID:           uuid.New().String(),
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Email:        body.Email,
		Phone:        body.Phone,
		Role:         domain.Role(body.Role),
		DepartmentID: body.DepartmentID,
		Active:       true,
		JoinedAt:     time.Now(),
	}

	if err := h.employeeRepo.Create(c.Request.Context(), employee); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// GetAll handles GET /v1/employees
func (h *EmployeeHandler) GetAll(c *gin.Context) {
	employees, err := h.employeeRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		response = append(response, toEmployeeResponse(e))
	}
	c.JSON(http.StatusOK, response)
}

// GetDepartments handles GET /v1/departments
func (h *EmployeeHandler) GetDepartments(c *gin.Context) {
	departments, err := h.employeeRepo.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, departments)
}
