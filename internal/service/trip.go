package service

import (
	"context"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// TripService handles the driver-side transitions of an assigned
// request: starting the trip and completing it with telemetry.
type TripService struct {
	requestRepo repository.RequestRepository
	vehicleRepo repository.VehicleRepository
	txFactory   repository.TxFactory
}

// NewTripService creates a new TripService.
func NewTripService(
	requestRepo repository.RequestRepository,
	vehicleRepo repository.VehicleRepository,
	txFactory repository.TxFactory,
) *TripService {
	return &TripService{
		requestRepo: requestRepo,
		vehicleRepo: vehicleRepo,
		txFactory:   txFactory,
	}
}

// Telemetry carries the optional end-of-trip vehicle readings.
type Telemetry struct {
	Mileage *float64
	Fuel    *float64
}

// Start moves an assigned request to in_progress. Only the assigned
// driver may start the trip.
func (s *TripService) Start(ctx context.Context, actor domain.Actor, requestID string) (*domain.TripRequest, error) {
	req, err := s.authorizeDriver(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransitionTo(domain.RequestStatusInProgress) {
		return nil, ErrInvalidTransition
	}

	previous := req.Status
	req.Status = domain.RequestStatusInProgress

	if err := s.requestRepo.UpdateIfStatus(ctx, req, previous); err != nil {
		if err == repository.ErrStatusConflict {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	return req, nil
}

// Complete moves an in-progress request to completed, releases the
// vehicle back to available and records the supplied telemetry. Fuel is
// validated against [0,100] before anything is written; an out-of-range
// value rejects the whole update and the vehicle stays assigned.
func (s *TripService) Complete(ctx context.Context, actor domain.Actor, requestID string, telemetry Telemetry) (*domain.TripRequest, error) {
	req, err := s.authorizeDriver(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransitionTo(domain.RequestStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	if telemetry.Fuel != nil && (*telemetry.Fuel < 0 || *telemetry.Fuel > 100) {
		return nil, ErrInvalidFuelLevel
	}

	previous := req.Status
	req.Status = domain.RequestStatusCompleted

	tx, err := s.txFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.Requests().UpdateIfStatus(ctx, req, previous); err != nil {
		_ = tx.Rollback()
		if err == repository.ErrStatusConflict {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if err := tx.Vehicles().UpdateStatusIf(ctx, req.AssignedVehicleID, domain.VehicleStatusAssigned, domain.VehicleStatusAvailable); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if telemetry.Mileage != nil || telemetry.Fuel != nil {
		if err := tx.Vehicles().UpdateTelemetry(ctx, req.AssignedVehicleID, telemetry.Mileage, telemetry.Fuel); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *TripService) authorizeDriver(ctx context.Context, actor domain.Actor, requestID string) (*domain.TripRequest, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	if actor.Role != domain.RoleDriver {
		return nil, ErrRoleNotAllowed
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.AssignedDriverID != actor.EmployeeID {
		return nil, ErrNotAssignedDriver
	}

	return req, nil
}
