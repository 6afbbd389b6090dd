package domain

import "time"

// RequestStatus represents the current status of a trip request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusAssigned   RequestStatus = "assigned"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// requestTransitions is the single source of truth for legal status moves.
// Rejected, completed and cancelled are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusAssigned, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusAssigned:   {RequestStatusInProgress, RequestStatusCancelled},
	RequestStatusInProgress: {RequestStatusCompleted},
}

// CanTransitionTo reports whether a request in status s may move to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// TripRequest represents an employee's demand for a vehicle and driver
// over a time window.
type TripRequest struct {
	ID                string
	RequesterID       string
	Purpose           string
	Destination       string
	PassengerCount    int
	Notes             string
	Window            TimeWindow
	Status            RequestStatus
	ApproverID        string // stamped at creation, immutable
	AssignedVehicleID string // set together with AssignedDriverID or not at all
	AssignedDriverID  string
	RejectionReason   string
	CreatedAt         time.Time
}

// HasAssignment reports whether both resource ids are set.
func (r *TripRequest) HasAssignment() bool {
	return r.AssignedVehicleID != "" && r.AssignedDriverID != ""
}
