package repository

import (
	"context"

	"fleet/internal/domain"
)

// RequestRepository defines the persistence operations for trip requests.
type RequestRepository interface {
	// Create persists a new trip request.
	Create(ctx context.Context, req *domain.TripRequest) error

	// GetByID retrieves a trip request by ID.
	GetByID(ctx context.Context, id string) (*domain.TripRequest, error)

	// ListByRequester retrieves all requests submitted by an employee,
	// newest first.
	ListByRequester(ctx context.Context, requesterID string) ([]*domain.TripRequest, error)

	// ListByApprover retrieves all requests stamped with the given
	// approver, optionally filtered by status.
	ListByApprover(ctx context.Context, approverID string, status domain.RequestStatus) ([]*domain.TripRequest, error)

	// ListByDriver retrieves all requests assigned to the given driver.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.TripRequest, error)

	// GetCommittedWindows returns the time windows of the driver's
	// requests in assigned or in_progress status.
	GetCommittedWindows(ctx context.Context, driverID string) ([]domain.TimeWindow, error)

	// Update updates an existing trip request.
	Update(ctx context.Context, req *domain.TripRequest) error

	// UpdateIfStatus updates the request only if its stored status still
	// matches expected. Returns ErrStatusConflict when the guard fails.
	UpdateIfStatus(ctx context.Context, req *domain.TripRequest, expected domain.RequestStatus) error
}
