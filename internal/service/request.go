package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

const requestLockTTL = 30 * time.Second

// RequestService owns the trip-request lifecycle: creation with approver
// stamping, cancellation with resource release, and the read surface.
type RequestService struct {
	requestRepo  repository.RequestRepository
	employeeRepo repository.EmployeeRepository
	assigner     *ApproverAssigner
	txFactory    repository.TxFactory
	lockStore    redis.LockStoreInterface
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requestRepo repository.RequestRepository,
	employeeRepo repository.EmployeeRepository,
	assigner *ApproverAssigner,
	txFactory repository.TxFactory,
	lockStore redis.LockStoreInterface,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		assigner:     assigner,
		txFactory:    txFactory,
		lockStore:    lockStore,
	}
}

// CreateRequestInput contains the parameters for creating a trip request.
type CreateRequestInput struct {
	Purpose        string
	Destination    string
	PassengerCount int
	Notes          string
	Window         domain.TimeWindow
}

// Create validates the input, stamps a random active approver and
// persists the request in pending state.
func (s *RequestService) Create(ctx context.Context, actor domain.Actor, input CreateRequestInput) (*domain.TripRequest, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	requester, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !requester.Active {
		return nil, ErrEmployeeInactive
	}

	approver, err := s.assigner.PickApprover(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	req := &domain.TripRequest{
		ID:             uuid.New().String(),
		RequesterID:    requester.ID,
		Purpose:        input.Purpose,
		Destination:    input.Destination,
		PassengerCount: input.PassengerCount,
		Notes:          input.Notes,
		Window:         input.Window,
		Status:         domain.RequestStatusPending,
		ApproverID:     approver.ID,
		CreatedAt:      time.Now(),
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// Cancel cancels a request. Only the requester may cancel, and only from
// pending or assigned. Cancelling an assigned request releases the
// vehicle and clears both assignment ids in the same transaction, so the
// vehicle never stays stuck in assigned with no live request.
func (s *RequestService) Cancel(ctx context.Context, actor domain.Actor, requestID string) (*domain.TripRequest, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}

	// Serialize against a concurrent allocation of the same request.
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

	if req.RequesterID != actor.EmployeeID {
		return nil, ErrNotRequestOwner
	}

	if !req.Status.CanTransitionTo(domain.RequestStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	previous := req.Status

	if previous == domain.RequestStatusPending {
		req.Status = domain.RequestStatusCancelled
		if err := s.requestRepo.UpdateIfStatus(ctx, req, previous); err != nil {
			if err == repository.ErrStatusConflict {
				return nil, ErrInvalidTransition
			}
			return nil, err
		}
		return req, nil
	}

	// Assigned: release the reserved vehicle and driver atomically with
	// the status change.
	tx, err := s.txFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}

	vehicleID := req.AssignedVehicleID
	req.Status = domain.RequestStatusCancelled
	req.AssignedVehicleID = ""
	req.AssignedDriverID = ""

	if err := tx.Requests().UpdateIfStatus(ctx, req, previous); err != nil {
		_ = tx.Rollback()
		if err == repository.ErrStatusConflict {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if err := tx.Vehicles().UpdateStatusIf(ctx, vehicleID, domain.VehicleStatusAssigned, domain.VehicleStatusAvailable); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return req, nil
}

// Get retrieves a request by ID.
func (s *RequestService) Get(ctx context.Context, requestID string) (*domain.TripRequest, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	return s.requestRepo.GetByID(ctx, requestID)
}

// List returns the requests relevant to the actor: own submissions for
// staff, the stamped queue for approvers, the assignment list for
// drivers.
func (s *RequestService) List(ctx context.Context, actor domain.Actor, status domain.RequestStatus) ([]*domain.TripRequest, error) {
	switch actor.Role {
	case domain.RoleApprover:
		return s.requestRepo.ListByApprover(ctx, actor.EmployeeID, status)
	case domain.RoleDriver:
		return s.requestRepo.ListByDriver(ctx, actor.EmployeeID)
	default:
		return s.requestRepo.ListByRequester(ctx, actor.EmployeeID)
	}
}

func validateCreateInput(input CreateRequestInput) error {
	if input.Purpose == "" {
		return ErrInvalidPurpose
	}
	if input.Destination == "" {
		return ErrInvalidDestination
	}
	if input.PassengerCount < 1 {
		return ErrInvalidPassengerCount
	}
	if !input.Window.Valid() {
		return ErrInvalidTimeWindow
	}
	return nil
}
