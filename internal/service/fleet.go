package service

import (
	"context"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// FleetService handles administrative vehicle operations. The assigned
// status is owned by the allocator and the trip lifecycle; this service
// only toggles the externally administered states.
type FleetService struct {
	vehicleRepo repository.VehicleRepository
}

// NewFleetService creates a new FleetService.
func NewFleetService(vehicleRepo repository.VehicleRepository) *FleetService {
	return &FleetService{vehicleRepo: vehicleRepo}
}

// RegisterVehicleInput contains the parameters for registering a vehicle.
type RegisterVehicleInput struct {
	Plate     string
	Brand     string
	Model     string
	Color     string
	Capacity  int
	Mileage   float64
	FuelLevel float64
}

// RegisterVehicle adds a vehicle to the fleet in available status.
func (s *FleetService) RegisterVehicle(ctx context.Context, actor domain.Actor, input RegisterVehicleInput) (*domain.Vehicle, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleManager {
		return nil, ErrRoleNotAllowed
	}
	if input.Plate == "" {
		return nil, ErrInvalidPlate
	}
	if input.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if input.FuelLevel < 0 || input.FuelLevel > 100 {
		return nil, ErrInvalidFuelLevel
	}

	vehicle := &domain.Vehicle{
		ID:        uuid.New().String(),
		Plate:     input.Plate,
		Brand:     input.Brand,
		Model:     input.Model,
		Color:     input.Color,
		Capacity:  input.Capacity,
		Status:    domain.VehicleStatusAvailable,
		Mileage:   input.Mileage,
		FuelLevel: input.FuelLevel,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// SetVehicleStatus applies a manual status change. Only available,
// maintenance and scrapped can be set this way, and never while the
// vehicle is assigned to an active request.
func (s *FleetService) SetVehicleStatus(ctx context.Context, actor domain.Actor, vehicleID string, status domain.VehicleStatus) (*domain.Vehicle, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleManager {
		return nil, ErrRoleNotAllowed
	}

	switch status {
	case domain.VehicleStatusAvailable, domain.VehicleStatusMaintenance, domain.VehicleStatusScrapped:
	default:
		return nil, ErrInvalidVehicleStatus
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status == domain.VehicleStatusAssigned {
		return nil, ErrVehicleNotIdle
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, vehicleID, status); err != nil {
		return nil, err
	}

	vehicle.Status = status
	return vehicle, nil
}
