package service

import (
	"context"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// ApproverAssigner picks an approver for a newly created request using a
// load-spreading random policy. Approvers are interchangeable, so a
// uniform draw spreads approval load without a queue model. The binding
// is permanent: the assigner runs exactly once per request.
type ApproverAssigner struct {
	employeeRepo repository.EmployeeRepository
	picker       Picker
}

// NewApproverAssigner creates a new ApproverAssigner.
func NewApproverAssigner(employeeRepo repository.EmployeeRepository, picker Picker) *ApproverAssigner {
	return &ApproverAssigner{
		employeeRepo: employeeRepo,
		picker:       picker,
	}
}

// PickApprover selects a uniformly random active approver, excluding the
// requester. Returns ErrNoApproverAvailable when the candidate set is empty.
func (a *ApproverAssigner) PickApprover(ctx context.Context, requesterID string) (*domain.Employee, error) {
	approvers, err := a.employeeRepo.ListActiveByRole(ctx, domain.RoleApprover)
	if err != nil {
		return nil, err
	}

	candidates := approvers[:0]
	for _, approver := range approvers {
		if approver.ID != requesterID {
			candidates = append(candidates, approver)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoApproverAvailable
	}

	return candidates[a.picker.Pick(len(candidates))], nil
}
