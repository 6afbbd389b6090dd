package postgres

import (
	"context"
	"database/sql"

	"fleet/internal/repository"
)

// TxFactory creates SQL-backed units of work.
type TxFactory struct {
	db *sql.DB
}

// NewTxFactory creates a new TxFactory.
func NewTxFactory(db *sql.DB) *TxFactory {
	return &TxFactory{db: db}
}

// Begin starts a transaction. Default isolation is enough here: the
// races that matter are closed by conditional updates on the status
// columns, not by snapshot semantics.
func (f *TxFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &unitOfWork{tx: tx}, nil
}

type unitOfWork struct {
	tx *sql.Tx
}

func (u *unitOfWork) Requests() repository.RequestRepository {
	return NewRequestRepositoryWithTx(u.tx)
}

func (u *unitOfWork) Vehicles() repository.VehicleRepository {
	return NewVehicleRepositoryWithTx(u.tx)
}

func (u *unitOfWork) Commit() error {
	return u.tx.Commit()
}

func (u *unitOfWork) Rollback() error {
	return u.tx.Rollback()
}
