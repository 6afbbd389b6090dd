package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
)

const (
	employeeIDHeader   = "X-Employee-ID"
	employeeRoleHeader = "X-Employee-Role"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// actorFrom builds the explicit caller context from the identity headers
// resolved by the upstream auth layer.
func actorFrom(c *gin.Context) (domain.Actor, bool) {
	actor := domain.Actor{
		EmployeeID: c.GetHeader(employeeIDHeader),
		Role:       domain.Role(c.GetHeader(employeeRoleHeader)),
	}
	if actor.EmployeeID == "" || actor.Role == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "caller identity headers are required"})
		return domain.Actor{}, false
	}
	return actor, true
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRequestID),
		errors.Is(err, service.ErrInvalidPurpose),
		errors.Is(err, service.ErrInvalidDestination),
		errors.Is(err, service.ErrInvalidPassengerCount),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrInvalidPlate),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidFuelLevel),
		errors.Is(err, service.ErrRejectionReasonRequired),
		errors.Is(err, service.ErrInvalidVehicleStatus):
		return http.StatusBadRequest

	// Authorization errors
	case errors.Is(err, service.ErrNotRequestOwner),
		errors.Is(err, service.ErrNotAssignedApprover),
		errors.Is(err, service.ErrNotAssignedDriver),
		errors.Is(err, service.ErrRoleNotAllowed),
		errors.Is(err, service.ErrEmployeeInactive):
		return http.StatusForbidden

	// State conflicts
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrRequestNotPending),
		errors.Is(err, service.ErrRequestBusy),
		errors.Is(err, service.ErrVehicleNotIdle),
		errors.Is(err, repository.ErrStatusConflict):
		return http.StatusConflict

	// Resource exhaustion - expected, retryable
	case errors.Is(err, service.ErrNoApproverAvailable),
		errors.Is(err, service.ErrNoVehicleAvailable),
		errors.Is(err, service.ErrNoDriverAvailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
