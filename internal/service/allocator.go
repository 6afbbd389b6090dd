package service

import (
	"context"
	"time"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

const driverLockTTL = 10 * time.Second

// AllocationService binds one available vehicle and one conflict-free
// driver to an approved request, or records a rejection. Selection is
// uniformly random over the candidate sets.
type AllocationService struct {
	requestRepo  repository.RequestRepository
	vehicleRepo  repository.VehicleRepository
	employeeRepo repository.EmployeeRepository
	txFactory    repository.TxFactory
	lockStore    redis.LockStoreInterface
	picker       Picker
}

// NewAllocationService creates a new AllocationService.
func NewAllocationService(
	requestRepo repository.RequestRepository,
	vehicleRepo repository.VehicleRepository,
	employeeRepo repository.EmployeeRepository,
	txFactory repository.TxFactory,
	lockStore redis.LockStoreInterface,
	picker Picker,
) *AllocationService {
	return &AllocationService{
		requestRepo:  requestRepo,
		vehicleRepo:  vehicleRepo,
		employeeRepo: employeeRepo,
		txFactory:    txFactory,
		lockStore:    lockStore,
		picker:       picker,
	}
}

// AllocationResult contains the outcome of a successful allocation.
type AllocationResult struct {
	Request  *domain.TripRequest
	Vehicle  *domain.Vehicle
	DriverID string
}

// Allocate assigns a vehicle and driver to a pending request. Only the
// approver stamped on the request may call it. On success the request is
// assigned, the vehicle is assigned, and the driver's committed windows
// gain the request's window; on any failure nothing is persisted.
func (s *AllocationService) Allocate(ctx context.Context, actor domain.Actor, requestID string) (*AllocationResult, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	if actor.Role != domain.RoleApprover {
		return nil, ErrRoleNotAllowed
	}

	// One allocation (or cancellation) per request at a time.
	locked, err := s.lockStore.AcquireRequestLock(ctx, requestID, requestLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrRequestBusy
	}
	defer s.lockStore.ReleaseRequestLock(ctx, requestID)

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.ApproverID != actor.EmployeeID {
		return nil, ErrNotAssignedApprover
	}
	if req.Status != domain.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	vehicles, err := s.vehicleRepo.ListByStatus(ctx, domain.VehicleStatusAvailable)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, ErrNoVehicleAvailable
	}

	driverID, err := s.pickDriver(ctx, req.Window)
	if err != nil {
		return nil, err
	}

	// Commit against a random available vehicle. The conditional status
	// update inside the transaction is the authority: if another
	// allocation grabbed the vehicle first, drop that candidate and try
	// the next one.
	for len(vehicles) > 0 {
		i := s.picker.Pick(len(vehicles))
		vehicle := vehicles[i]
		vehicles = append(vehicles[:i], vehicles[i+1:]...)

		result, err := s.commitAssignment(ctx, req, vehicle, driverID)
		if err == repository.ErrStatusConflict {
			continue
		}
		if err != nil {
			_ = s.lockStore.ReleaseDriverLock(ctx, driverID)
			return nil, err
		}
		// Driver lock expires via TTL.
		return result, nil
	}

	_ = s.lockStore.ReleaseDriverLock(ctx, driverID)
	return nil, ErrNoVehicleAvailable
}

// pickDriver selects a random active driver whose committed windows do
// not overlap the request window. The winning driver is returned with
// their lock held; the lock plus a post-lock re-read closes the race
// where two allocations pick the same driver for overlapping windows.
func (s *AllocationService) pickDriver(ctx context.Context, window domain.TimeWindow) (string, error) {
	drivers, err := s.employeeRepo.ListActiveByRole(ctx, domain.RoleDriver)
	if err != nil {
		return "", err
	}

	var candidates []string
	for _, driver := range drivers {
		free, err := s.driverIsFree(ctx, driver.ID, window)
		if err != nil {
			return "", err
		}
		if free {
			candidates = append(candidates, driver.ID)
		}
	}

	// No fallback to a least-conflicted driver: a fully booked fleet is
	// an expected, recoverable outcome for the caller.
	for len(candidates) > 0 {
		i := s.picker.Pick(len(candidates))
		driverID := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)

		locked, err := s.lockStore.AcquireDriverLock(ctx, driverID, driverLockTTL)
		if err != nil {
			return "", err
		}
		if !locked {
			continue
		}

		// Re-verify under the lock: another allocation may have committed
		// a window for this driver between the scan and the lock.
		free, err := s.driverIsFree(ctx, driverID, window)
		if err != nil {
			_ = s.lockStore.ReleaseDriverLock(ctx, driverID)
			return "", err
		}
		if !free {
			_ = s.lockStore.ReleaseDriverLock(ctx, driverID)
			continue
		}

		return driverID, nil
	}

	return "", ErrNoDriverAvailable
}

func (s *AllocationService) driverIsFree(ctx context.Context, driverID string, window domain.TimeWindow) (bool, error) {
	committed, err := s.requestRepo.GetCommittedWindows(ctx, driverID)
	if err != nil {
		return false, err
	}
	for _, w := range committed {
		if w.Overlaps(window) {
			return false, nil
		}
	}
	return true, nil
}

// commitAssignment performs the transactional unit: vehicle to assigned,
// request to assigned with both ids set and any stale rejection reason
// cleared. Returns repository.ErrStatusConflict when the vehicle was
// taken by a concurrent allocation.
func (s *AllocationService) commitAssignment(ctx context.Context, req *domain.TripRequest, vehicle *domain.Vehicle, driverID string) (*AllocationResult, error) {
	tx, err := s.txFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.Vehicles().UpdateStatusIf(ctx, vehicle.ID, domain.VehicleStatusAvailable, domain.VehicleStatusAssigned); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	assigned := *req
	assigned.Status = domain.RequestStatusAssigned
	assigned.AssignedVehicleID = vehicle.ID
	assigned.AssignedDriverID = driverID
	assigned.RejectionReason = ""

	if err := tx.Requests().UpdateIfStatus(ctx, &assigned, domain.RequestStatusPending); err != nil {
		_ = tx.Rollback()
		if err == repository.ErrStatusConflict {
			return nil, ErrRequestNotPending
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	vehicle.Status = domain.VehicleStatusAssigned
	return &AllocationResult{
		Request:  &assigned,
		Vehicle:  vehicle,
		DriverID: driverID,
	}, nil
}

// Reject records a rejection with its reason. Only the stamped approver
// may reject, only from pending, and no resources are touched.
func (s *AllocationService) Reject(ctx context.Context, actor domain.Actor, requestID, reason string) (*domain.TripRequest, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	if actor.Role != domain.RoleApprover {
		return nil, ErrRoleNotAllowed
	}
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.ApproverID != actor.EmployeeID {
		return nil, ErrNotAssignedApprover
	}
	if req.Status != domain.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	req.Status = domain.RequestStatusRejected
	req.RejectionReason = reason

	if err := s.requestRepo.UpdateIfStatus(ctx, req, domain.RequestStatusPending); err != nil {
		if err == repository.ErrStatusConflict {
			return nil, ErrRequestNotPending
		}
		return nil, err
	}

	return req, nil
}
