package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, plate, brand, model, color, capacity, status, mileage, fuel_level`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Plate,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Color,
		vehicle.Capacity,
		vehicle.Status,
		vehicle.Mileage,
		vehicle.FuelLevel,
	)

	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	var v domain.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Plate, &v.Brand, &v.Model, &v.Color,
		&v.Capacity, &v.Status, &v.Mileage, &v.FuelLevel,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetAll retrieves all vehicles.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY plate`
	return r.list(ctx, query)
}

// ListByStatus retrieves all vehicles in the given status.
func (r *VehicleRepository) ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = $1 ORDER BY plate`
	return r.list(ctx, query, status)
}

// UpdateStatus unconditionally sets a vehicle's status.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffected(result, repository.ErrNotFound)
}

// UpdateStatusIf sets the status only if the stored status still matches
// expected. Two concurrent allocations racing for the same vehicle
// resolve here: the loser gets ErrStatusConflict.
func (r *VehicleRepository) UpdateStatusIf(ctx context.Context, id string, expected, next domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, next, id, expected)
	if err != nil {
		return err
	}
	return checkAffected(result, repository.ErrStatusConflict)
}

// UpdateTelemetry overwrites mileage and/or fuel level. A nil field
// leaves the stored value untouched.
func (r *VehicleRepository) UpdateTelemetry(ctx context.Context, id string, mileage, fuel *float64) error {
	query := `
		UPDATE vehicles
		SET mileage = COALESCE($1, mileage), fuel_level = COALESCE($2, fuel_level)
		WHERE id = $3
	`

	var mileageArg, fuelArg sql.NullFloat64
	if mileage != nil {
		mileageArg = sql.NullFloat64{Float64: *mileage, Valid: true}
	}
	if fuel != nil {
		fuelArg = sql.NullFloat64{Float64: *fuel, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query, mileageArg, fuelArg, id)
	if err != nil {
		return err
	}
	return checkAffected(result, repository.ErrNotFound)
}

func (r *VehicleRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Vehicle, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Plate, &v.Brand, &v.Model, &v.Color,
			&v.Capacity, &v.Status, &v.Mileage, &v.FuelLevel,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}
