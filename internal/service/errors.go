package service

import "errors"

var (
	// ErrInvalidRequestID is returned when a request ID is empty.
	ErrInvalidRequestID = errors.New("invalid request id")

	// ErrInvalidPurpose is returned when the trip purpose is empty.
	ErrInvalidPurpose = errors.New("purpose is required")

	// ErrInvalidDestination is returned when the destination is empty.
	ErrInvalidDestination = errors.New("destination is required")

	// ErrInvalidPassengerCount is returned when the passenger count is below one.
	ErrInvalidPassengerCount = errors.New("passenger count must be at least 1")

	// ErrInvalidTimeWindow is returned when end time is not after start time.
	ErrInvalidTimeWindow = errors.New("end time must be after start time")

	// ErrInvalidPlate is returned when a vehicle plate is empty.
	ErrInvalidPlate = errors.New("plate is required")

	// ErrInvalidCapacity is returned when a vehicle capacity is below one.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrInvalidFuelLevel is returned when a reported fuel level is outside [0,100].
	ErrInvalidFuelLevel = errors.New("fuel level must be between 0 and 100")

	// ErrNoApproverAvailable is returned when no active approver exists.
	ErrNoApproverAvailable = errors.New("no available approvers")

	// ErrNoVehicleAvailable is returned when no vehicle is available for allocation.
	ErrNoVehicleAvailable = errors.New("no available vehicles")

	// ErrNoDriverAvailable is returned when every eligible driver has a
	// conflicting committed window.
	ErrNoDriverAvailable = errors.New("no conflict-free drivers for the requested time period")

	// ErrInvalidTransition is returned when the state machine rejects the move.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRequestNotPending is returned when a decision targets a request
	// that already left the pending state.
	ErrRequestNotPending = errors.New("request is not pending")

	// ErrRequestBusy is returned when another operation holds the request lock.
	ErrRequestBusy = errors.New("request is being processed")

	// ErrNotRequestOwner is returned when a non-owner tries to cancel a request.
	ErrNotRequestOwner = errors.New("only the requester may cancel this request")

	// ErrNotAssignedApprover is returned when the actor is not the approver
	// stamped on the request.
	ErrNotAssignedApprover = errors.New("request is assigned to a different approver")

	// ErrNotAssignedDriver is returned when the actor is not the driver
	// assigned to the request.
	ErrNotAssignedDriver = errors.New("request is assigned to a different driver")

	// ErrRoleNotAllowed is returned when the actor's role cannot perform
	// the operation.
	ErrRoleNotAllowed = errors.New("role not allowed for this operation")

	// ErrEmployeeInactive is returned when the acting employee is deactivated.
	ErrEmployeeInactive = errors.New("employee is not active")

	// ErrRejectionReasonRequired is returned when a reject decision has no reason.
	ErrRejectionReasonRequired = errors.New("rejection reason is required")

	// ErrVehicleNotIdle is returned when a manual vehicle status change
	// targets an assigned vehicle.
	ErrVehicleNotIdle = errors.New("vehicle is assigned to an active request")

	// ErrInvalidVehicleStatus is returned when a manual status change names
	// a status only the allocator may set.
	ErrInvalidVehicleStatus = errors.New("status cannot be set manually")
)
