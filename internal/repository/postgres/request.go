package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// RequestRepository is a PostgreSQL implementation of repository.RequestRepository.
type RequestRepository struct {
	q Querier
}

// NewRequestRepository creates a new PostgreSQL request repository.
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{q: db}
}

// NewRequestRepositoryWithTx creates a request repository using a transaction.
func NewRequestRepositoryWithTx(tx *sql.Tx) *RequestRepository {
	return &RequestRepository{q: tx}
}

const requestColumns = `
	id, requester_id, purpose, destination, passenger_count, notes,
	start_time, end_time, status, approver_id,
	assigned_vehicle_id, assigned_driver_id, rejection_reason, created_at
`

// Create persists a new trip request.
func (r *RequestRepository) Create(ctx context.Context, req *domain.TripRequest) error {
	query := `
		INSERT INTO trip_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		req.ID,
		req.RequesterID,
		req.Purpose,
		req.Destination,
		req.PassengerCount,
		req.Notes,
		req.Window.Start,
		req.Window.End,
		req.Status,
		req.ApproverID,
		nullString(req.AssignedVehicleID),
		nullString(req.AssignedDriverID),
		nullString(req.RejectionReason),
		req.CreatedAt,
	)

	return err
}

// GetByID retrieves a trip request by ID.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.TripRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM trip_requests WHERE id = $1`

	req, err := scanRequest(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// ListByRequester retrieves all requests submitted by an employee.
func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domain.TripRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM trip_requests WHERE requester_id = $1 ORDER BY created_at DESC`

	return r.list(ctx, query, requesterID)
}

// ListByApprover retrieves requests stamped with the given approver,
// optionally filtered by status.
func (r *RequestRepository) ListByApprover(ctx context.Context, approverID string, status domain.RequestStatus) ([]*domain.TripRequest, error) {
	if status == "" {
		query := `SELECT ` + requestColumns + `
			FROM trip_requests WHERE approver_id = $1 ORDER BY created_at DESC`
		return r.list(ctx, query, approverID)
	}

	query := `SELECT ` + requestColumns + `
		FROM trip_requests WHERE approver_id = $1 AND status = $2 ORDER BY created_at DESC`
	return r.list(ctx, query, approverID, status)
}

// ListByDriver retrieves all requests assigned to the given driver.
func (r *RequestRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.TripRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM trip_requests WHERE assigned_driver_id = $1 ORDER BY start_time DESC`

	return r.list(ctx, query, driverID)
}

// GetCommittedWindows returns the windows of the driver's assigned and
// in-progress requests.
func (r *RequestRepository) GetCommittedWindows(ctx context.Context, driverID string) ([]domain.TimeWindow, error) {
	query := `
		SELECT start_time, end_time FROM trip_requests
		WHERE assigned_driver_id = $1 AND status IN ('assigned', 'in_progress')
	`

	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []domain.TimeWindow
	for rows.Next() {
		var w domain.TimeWindow
		if err := rows.Scan(&w.Start, &w.End); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// Update updates an existing trip request.
func (r *RequestRepository) Update(ctx context.Context, req *domain.TripRequest) error {
	query := updateRequestQuery + ` WHERE id = $12`

	result, err := r.q.ExecContext(ctx, query, updateRequestArgs(req)...)
	if err != nil {
		return err
	}
	return checkAffected(result, repository.ErrNotFound)
}

// UpdateIfStatus updates the request only if its stored status still
// matches expected. This is the guard that keeps a concurrent cancel and
// allocation from interleaving.
func (r *RequestRepository) UpdateIfStatus(ctx context.Context, req *domain.TripRequest, expected domain.RequestStatus) error {
	query := updateRequestQuery + ` WHERE id = $12 AND status = $13`

	result, err := r.q.ExecContext(ctx, query, append(updateRequestArgs(req), expected)...)
	if err != nil {
		return err
	}
	return checkAffected(result, repository.ErrStatusConflict)
}

const updateRequestQuery = `
	UPDATE trip_requests
	SET purpose = $1, destination = $2, passenger_count = $3, notes = $4,
	    start_time = $5, end_time = $6, status = $7, approver_id = $8,
	    assigned_vehicle_id = $9, assigned_driver_id = $10, rejection_reason = $11
`

func updateRequestArgs(req *domain.TripRequest) []any {
	return []any{
		req.Purpose,
		req.Destination,
		req.PassengerCount,
		req.Notes,
		req.Window.Start,
		req.Window.End,
		req.Status,
		req.ApproverID,
		nullString(req.AssignedVehicleID),
		nullString(req.AssignedDriverID),
		nullString(req.RejectionReason),
		req.ID,
	}
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...any) ([]*domain.TripRequest, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.TripRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (*domain.TripRequest, error) {
	var req domain.TripRequest
	var vehicleID, driverID, rejectionReason sql.NullString

	err := s.Scan(
		&req.ID,
		&req.RequesterID,
		&req.Purpose,
		&req.Destination,
		&req.PassengerCount,
		&req.Notes,
		&req.Window.Start,
		&req.Window.End,
		&req.Status,
		&req.ApproverID,
		&vehicleID,
		&driverID,
		&rejectionReason,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.AssignedVehicleID = vehicleID.String
	req.AssignedDriverID = driverID.String
	req.RejectionReason = rejectionReason.String
	return &req, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func checkAffected(result sql.Result, onZero error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return onZero
	}
	return nil
}
