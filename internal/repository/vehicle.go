package repository

import (
	"context"

	"fleet/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// ListByStatus retrieves all vehicles in the given status.
	ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error)

	// UpdateStatus unconditionally sets a vehicle's status.
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error

	// UpdateStatusIf sets the status only if the stored status still
	// matches expected. Returns ErrStatusConflict when the guard fails.
	UpdateStatusIf(ctx context.Context, id string, expected, next domain.VehicleStatus) error

	// UpdateTelemetry overwrites mileage and/or fuel level. A nil field
	// leaves the stored value untouched.
	UpdateTelemetry(ctx context.Context, id string, mileage, fuel *float64) error
}
