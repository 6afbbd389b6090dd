package tests

import (
	"context"
	"errors"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/service"
)

type tripFixture struct {
	requests *MockRequestRepository
	vehicles *MockVehicleRepository
	svc      *service.TripService
}

func newTripFixture() *tripFixture {
	f := &tripFixture{
		requests: NewMockRequestRepository(),
		vehicles: NewMockVehicleRepository(),
	}
	f.svc = service.NewTripService(f.requests, f.vehicles, NewMockTxFactory(f.requests, f.vehicles))
	return f
}

func (f *tripFixture) seedAssigned(status domain.RequestStatus) {
	f.vehicles.Seed(&domain.Vehicle{
		ID:        "veh-1",
		Plate:     "B 1234 XY",
		Status:    domain.VehicleStatusAssigned,
		Mileage:   1000,
		FuelLevel: 80,
	})
	f.requests.Seed(&domain.TripRequest{
		ID:                "req-1",
		RequesterID:       "staff-1",
		Status:            status,
		AssignedVehicleID: "veh-1",
		AssignedDriverID:  "driver-1",
		Window:            window(9, 11),
	})
}

var driverActor = domain.Actor{EmployeeID: "driver-1", Role: domain.RoleDriver}

func TestStartTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedAssigned(domain.RequestStatusAssigned)

	req, err := f.svc.Start(context.Background(), driverActor, "req-1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if req.Status != domain.RequestStatusInProgress {
		t.Errorf("status = %q, want in_progress", req.Status)
	}
	// The trip keeps its assignment ids while running.
	if req.AssignedVehicleID != "veh-1" || req.AssignedDriverID != "driver-1" {
		t.Errorf("assignment ids lost: vehicle=%q driver=%q", req.AssignedVehicleID, req.AssignedDriverID)
	}
}

func TestStartTrip_OnlyAssignedDriver(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedAssigned(domain.RequestStatusAssigned)

	_, err := f.svc.Start(context.Background(), domain.Actor{EmployeeID: "driver-2", Role: domain.RoleDriver}, "req-1")
	if !errors.Is(err, service.ErrNotAssignedDriver) {
		t.Errorf("error = %v, want ErrNotAssignedDriver", err)
	}

	_, err = f.svc.Start(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, "req-1")
	if !errors.Is(err, service.ErrRoleNotAllowed) {
		t.Errorf("error = %v, want ErrRoleNotAllowed", err)
	}
}

func TestStartTrip_InvalidFromPending(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedAssigned(domain.RequestStatusPending)

	_, err := f.svc.Start(context.Background(), driverActor, "req-1")
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestCompleteTrip_ReleasesVehicleAndRecordsTelemetry(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedAssigned(domain.RequestStatusInProgress)

	mileage := 1042.5
	fuel := 57.5
	req, err := f.svc.Complete(context.Background(), driverActor, "req-1", service.Telemetry{
		Mileage: &mileage,
		Fuel:    &fuel,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if req.Status != domain.RequestStatusCompleted {
		t.Errorf("status = %q, want completed", req.Status)
	}
	// Completed requests keep their assignment ids for the record.
	if req.AssignedVehicleID != "veh-1" || req.AssignedDriverID != "driver-1" {
		t.Errorf("assignment ids lost: vehicle=%q driver=%q", req.AssignedVehicleID, req.AssignedDriverID)
	}

	vehicle := f.vehicles.Stored("veh-1")
	if vehicle.Status != domain.VehicleStatusAvailable {
		t.Errorf("vehicle status = %q, want available", vehicle.Status)
	}
	if vehicle.Mileage != 1042.5 {
		t.Errorf("mileage = %v, want 1042.5", vehicle.Mileage)
	}
	if vehicle.FuelLevel != 57.5 {
		t.Errorf("fuel = %v, want 57.5", vehicle.FuelLevel)
	}
}

func TestCompleteTrip_WithoutTelemetry(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedAssigned(domain.RequestStatusInProgress)

	_, err := f.svc.Complete(context.Background(), driverActor, "req-1", service.Telemetry{})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	vehicle := f.vehicles.Stored("veh-1")
	if vehicle.Mileage != 1000 || vehicle.FuelLevel != 80 {
		t.Errorf("telemetry changed without readings: mileage=%v fuel=%v", vehicle.Mileage, vehicle.FuelLevel)
	}
}

func TestCompleteTrip_FuelOutOfRange(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedAssigned(domain.RequestStatusInProgress)

	fuel := 150.0
	_, err := f.svc.Complete(context.Background(), driverActor, "req-1", service.Telemetry{Fuel: &fuel})
	if !errors.Is(err, service.ErrInvalidFuelLevel) {
		t.Fatalf("error = %v, want ErrInvalidFuelLevel", err)
	}

	// Nothing moved: the request is still in progress and the vehicle
	// still assigned.
	if got := f.requests.Stored("req-1").Status; got != domain.RequestStatusInProgress {
		t.Errorf("request status = %q, want in_progress", got)
	}
	if got := f.vehicles.Stored("veh-1").Status; got != domain.VehicleStatusAssigned {
		t.Errorf("vehicle status = %q, want assigned", got)
	}
}

func TestCompleteTrip_InvalidFromAssigned(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedAssigned(domain.RequestStatusAssigned)

	_, err := f.svc.Complete(context.Background(), driverActor, "req-1", service.Telemetry{})
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
}
