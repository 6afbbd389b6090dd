package tests

import (
	"context"
	"errors"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/service"
)

var adminActor = domain.Actor{EmployeeID: "admin-1", Role: domain.RoleAdmin}

func TestRegisterVehicle(t *testing.T) {
	t.Parallel()

	vehicles := NewMockVehicleRepository()
	svc := service.NewFleetService(vehicles)

	vehicle, err := svc.RegisterVehicle(context.Background(), adminActor, service.RegisterVehicleInput{
		Plate:     "B 1234 XY",
		Brand:     "Toyota",
		Model:     "HiAce",
		Capacity:  12,
		FuelLevel: 100,
	})
	if err != nil {
		t.Fatalf("RegisterVehicle() error = %v", err)
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		t.Errorf("status = %q, want available", vehicle.Status)
	}
	if vehicles.Stored(vehicle.ID) == nil {
		t.Error("vehicle not persisted")
	}
}

func TestRegisterVehicle_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewFleetService(NewMockVehicleRepository())

	cases := []struct {
		name    string
		actor   domain.Actor
		input   service.RegisterVehicleInput
		wantErr error
	}{
		{"staff forbidden", domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, service.RegisterVehicleInput{Plate: "B 1 A", Capacity: 4}, service.ErrRoleNotAllowed},
		{"empty plate", adminActor, service.RegisterVehicleInput{Capacity: 4}, service.ErrInvalidPlate},
		{"zero capacity", adminActor, service.RegisterVehicleInput{Plate: "B 1 A"}, service.ErrInvalidCapacity},
		{"fuel over 100", adminActor, service.RegisterVehicleInput{Plate: "B 1 A", Capacity: 4, FuelLevel: 101}, service.ErrInvalidFuelLevel},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.RegisterVehicle(context.Background(), tc.actor, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetVehicleStatus(t *testing.T) {
	t.Parallel()

	vehicles := NewMockVehicleRepository()
	vehicles.Seed(&domain.Vehicle{ID: "veh-1", Plate: "B 1 A", Status: domain.VehicleStatusAvailable})
	svc := service.NewFleetService(vehicles)

	vehicle, err := svc.SetVehicleStatus(context.Background(), adminActor, "veh-1", domain.VehicleStatusMaintenance)
	if err != nil {
		t.Fatalf("SetVehicleStatus() error = %v", err)
	}
	if vehicle.Status != domain.VehicleStatusMaintenance {
		t.Errorf("status = %q, want maintenance", vehicle.Status)
	}
}

func TestSetVehicleStatus_AssignedIsUntouchable(t *testing.T) {
	t.Parallel()

	vehicles := NewMockVehicleRepository()
	vehicles.Seed(&domain.Vehicle{ID: "veh-1", Plate: "B 1 A", Status: domain.VehicleStatusAssigned})
	svc := service.NewFleetService(vehicles)

	_, err := svc.SetVehicleStatus(context.Background(), adminActor, "veh-1", domain.VehicleStatusMaintenance)
	if !errors.Is(err, service.ErrVehicleNotIdle) {
		t.Errorf("error = %v, want ErrVehicleNotIdle", err)
	}
}

func TestSetVehicleStatus_AssignedNotSettable(t *testing.T) {
	t.Parallel()

	vehicles := NewMockVehicleRepository()
	vehicles.Seed(&domain.Vehicle{ID: "veh-1", Plate: "B 1 A", Status: domain.VehicleStatusAvailable})
	svc := service.NewFleetService(vehicles)

	_, err := svc.SetVehicleStatus(context.Background(), adminActor, "veh-1", domain.VehicleStatusAssigned)
	if !errors.Is(err, service.ErrInvalidVehicleStatus) {
		t.Errorf("error = %v, want ErrInvalidVehicleStatus", err)
	}
}
