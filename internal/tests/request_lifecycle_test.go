package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/service"
)

func window(startHour, endHour int) domain.TimeWindow {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return domain.TimeWindow{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func seedEmployee(repo *MockEmployeeRepository, id string, role domain.Role) *domain.Employee {
	e := &domain.Employee{
		ID:        id,
		FirstName: "Test",
		LastName:  id,
		Email:     id + "@example.com",
		Role:      role,
		Active:    true,
	}
	repo.Seed(e)
	return e
}

func newRequestService(requests *MockRequestRepository, employees *MockEmployeeRepository, vehicles *MockVehicleRepository, locks *MockLockStore, picker service.Picker) *service.RequestService {
	assigner := service.NewApproverAssigner(employees, picker)
	txFactory := NewMockTxFactory(requests, vehicles)
	return service.NewRequestService(requests, employees, assigner, txFactory, locks)
}

func TestCreateRequest_StampsApprover(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	employees := NewMockEmployeeRepository()
	seedEmployee(employees, "staff-1", domain.RoleStaff)
	seedEmployee(employees, "approver-1", domain.RoleApprover)

	svc := newRequestService(requests, employees, NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})

	req, err := svc.Create(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, service.CreateRequestInput{
		Purpose:        "client visit",
		Destination:    "downtown office",
		PassengerCount: 2,
		Window:         window(9, 11),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if req.Status != domain.RequestStatusPending {
		t.Errorf("status = %q, want %q", req.Status, domain.RequestStatusPending)
	}
	if req.ApproverID != "approver-1" {
		t.Errorf("approver = %q, want approver-1", req.ApproverID)
	}
	if req.ID == "" {
		t.Error("expected generated request id")
	}
	if requests.Stored(req.ID) == nil {
		t.Error("request not persisted")
	}
}

func TestCreateRequest_ApproverNeverSelfApproves(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	employees := NewMockEmployeeRepository()
	// The requester is themselves an approver and the only other
	// approver must always be chosen.
	seedEmployee(employees, "approver-1", domain.RoleApprover)
	seedEmployee(employees, "approver-2", domain.RoleApprover)

	svc := newRequestService(requests, employees, NewMockVehicleRepository(), NewMockLockStore(), service.NewSeededPicker(1))

	for i := 0; i < 20; i++ {
		req, err := svc.Create(context.Background(), domain.Actor{EmployeeID: "approver-1", Role: domain.RoleApprover}, service.CreateRequestInput{
			Purpose:        "audit",
			Destination:    "warehouse",
			PassengerCount: 1,
			Window:         window(9, 10),
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if req.ApproverID == "approver-1" {
			t.Fatal("request stamped with its own requester as approver")
		}
	}
}

func TestCreateRequest_NoApproverAvailable(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	employees := NewMockEmployeeRepository()
	seedEmployee(employees, "staff-1", domain.RoleStaff)

	svc := newRequestService(requests, employees, NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})

	_, err := svc.Create(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, service.CreateRequestInput{
		Purpose:        "offsite",
		Destination:    "airport",
		PassengerCount: 1,
		Window:         window(9, 10),
	})
	if !errors.Is(err, service.ErrNoApproverAvailable) {
		t.Errorf("error = %v, want ErrNoApproverAvailable", err)
	}
}

func TestCreateRequest_Validation(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	employees := NewMockEmployeeRepository()
	seedEmployee(employees, "staff-1", domain.RoleStaff)
	seedEmployee(employees, "approver-1", domain.RoleApprover)

	svc := newRequestService(requests, employees, NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})
	actor := domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}

	valid := service.CreateRequestInput{
		Purpose:        "offsite",
		Destination:    "airport",
		PassengerCount: 1,
		Window:         window(9, 10),
	}

	cases := []struct {
		name    string
		mutate  func(*service.CreateRequestInput)
		wantErr error
	}{
		{"empty purpose", func(in *service.CreateRequestInput) { in.Purpose = "" }, service.ErrInvalidPurpose},
		{"empty destination", func(in *service.CreateRequestInput) { in.Destination = "" }, service.ErrInvalidDestination},
		{"zero passengers", func(in *service.CreateRequestInput) { in.PassengerCount = 0 }, service.ErrInvalidPassengerCount},
		{"end before start", func(in *service.CreateRequestInput) { in.Window = window(11, 9) }, service.ErrInvalidTimeWindow},
		{"zero-length window", func(in *service.CreateRequestInput) { in.Window = window(9, 9) }, service.ErrInvalidTimeWindow},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			input := valid
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), actor, input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateRequest_InactiveRequester(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	employees := NewMockEmployeeRepository()
	inactive := &domain.Employee{ID: "staff-1", Email: "s@example.com", Role: domain.RoleStaff, Active: false}
	employees.Seed(inactive)
	seedEmployee(employees, "approver-1", domain.RoleApprover)

	svc := newRequestService(requests, employees, NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})

	_, err := svc.Create(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, service.CreateRequestInput{
		Purpose:        "offsite",
		Destination:    "airport",
		PassengerCount: 1,
		Window:         window(9, 10),
	})
	if !errors.Is(err, service.ErrEmployeeInactive) {
		t.Errorf("error = %v, want ErrEmployeeInactive", err)
	}
}

func TestCancelRequest_Pending(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	requests.Seed(&domain.TripRequest{
		ID:          "req-1",
		RequesterID: "staff-1",
		Status:      domain.RequestStatusPending,
		Window:      window(9, 11),
	})

	svc := newRequestService(requests, NewMockEmployeeRepository(), NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})

	req, err := svc.Cancel(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, "req-1")
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if req.Status != domain.RequestStatusCancelled {
		t.Errorf("status = %q, want cancelled", req.Status)
	}
}

func TestCancelRequest_AssignedReleasesVehicle(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	vehicles := NewMockVehicleRepository()
	vehicles.Seed(&domain.Vehicle{ID: "veh-1", Plate: "B 1234 XY", Status: domain.VehicleStatusAssigned})
	requests.Seed(&domain.TripRequest{
		ID:                "req-1",
		RequesterID:       "staff-1",
		Status:            domain.RequestStatusAssigned,
		AssignedVehicleID: "veh-1",
		AssignedDriverID:  "driver-1",
		Window:            window(9, 11),
	})

	svc := newRequestService(requests, NewMockEmployeeRepository(), vehicles, NewMockLockStore(), fixedPicker{0})

	req, err := svc.Cancel(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, "req-1")
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if req.Status != domain.RequestStatusCancelled {
		t.Errorf("status = %q, want cancelled", req.Status)
	}
	if req.AssignedVehicleID != "" || req.AssignedDriverID != "" {
		t.Errorf("assignment ids not cleared: vehicle=%q driver=%q", req.AssignedVehicleID, req.AssignedDriverID)
	}
	if got := vehicles.Stored("veh-1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("vehicle status = %q, want available", got)
	}
}

func TestCancelRequest_NotOwner(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	requests.Seed(&domain.TripRequest{
		ID:          "req-1",
		RequesterID: "staff-1",
		Status:      domain.RequestStatusPending,
		Window:      window(9, 11),
	})

	svc := newRequestService(requests, NewMockEmployeeRepository(), NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})

	_, err := svc.Cancel(context.Background(), domain.Actor{EmployeeID: "staff-2", Role: domain.RoleStaff}, "req-1")
	if !errors.Is(err, service.ErrNotRequestOwner) {
		t.Errorf("error = %v, want ErrNotRequestOwner", err)
	}
}

func TestCancelRequest_TerminalStates(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.RequestStatus{
		domain.RequestStatusCompleted,
		domain.RequestStatusRejected,
		domain.RequestStatusCancelled,
		domain.RequestStatusInProgress,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()

			requests := NewMockRequestRepository()
			requests.Seed(&domain.TripRequest{
				ID:          "req-1",
				RequesterID: "staff-1",
				Status:      status,
				Window:      window(9, 11),
			})

			svc := newRequestService(requests, NewMockEmployeeRepository(), NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})

			_, err := svc.Cancel(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, "req-1")
			if !errors.Is(err, service.ErrInvalidTransition) {
				t.Errorf("error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestCancelRequest_LockHeld(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	requests.Seed(&domain.TripRequest{
		ID:          "req-1",
		RequesterID: "staff-1",
		Status:      domain.RequestStatusPending,
		Window:      window(9, 11),
	})

	locks := NewMockLockStore()
	if ok, _ := locks.AcquireRequestLock(context.Background(), "req-1", time.Minute); !ok {
		t.Fatal("setup: could not pre-acquire lock")
	}

	svc := newRequestService(requests, NewMockEmployeeRepository(), NewMockVehicleRepository(), locks, fixedPicker{0})

	_, err := svc.Cancel(context.Background(), domain.Actor{EmployeeID: "staff-1", Role: domain.RoleStaff}, "req-1")
	if !errors.Is(err, service.ErrRequestBusy) {
		t.Errorf("error = %v, want ErrRequestBusy", err)
	}
}

func TestListRequests_ByRole(t *testing.T) {
	t.Parallel()

	requests := NewMockRequestRepository()
	requests.Seed(&domain.TripRequest{ID: "req-1", RequesterID: "staff-1", ApproverID: "approver-1", Status: domain.RequestStatusPending})
	requests.Seed(&domain.TripRequest{ID: "req-2", RequesterID: "staff-2", ApproverID: "approver-1", Status: domain.RequestStatusRejected})
	requests.Seed(&domain.TripRequest{ID: "req-3", RequesterID: "staff-2", ApproverID: "approver-2", Status: domain.RequestStatusAssigned, AssignedDriverID: "driver-1"})

	svc := newRequestService(requests, NewMockEmployeeRepository(), NewMockVehicleRepository(), NewMockLockStore(), fixedPicker{0})

	own, err := svc.List(context.Background(), domain.Actor{EmployeeID: "staff-2", Role: domain.RoleStaff}, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(own) != 2 {
		t.Errorf("staff list = %d requests, want 2", len(own))
	}

	queue, err := svc.List(context.Background(), domain.Actor{EmployeeID: "approver-1", Role: domain.RoleApprover}, domain.RequestStatusPending)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(queue) != 1 || queue[0].ID != "req-1" {
		t.Errorf("approver queue = %v, want [req-1]", queue)
	}

	driving, err := svc.List(context.Background(), domain.Actor{EmployeeID: "driver-1", Role: domain.RoleDriver}, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(driving) != 1 || driving[0].ID != "req-3" {
		t.Errorf("driver list = %v, want [req-3]", driving)
	}
}
