package repository

import "context"

// UnitOfWork is a transaction scope over the two mutable stores the core
// writes to. Either every write in the scope commits or none does.
type UnitOfWork interface {
	Requests() RequestRepository
	Vehicles() VehicleRepository
	Commit() error
	Rollback() error
}

// TxFactory begins units of work. Implemented by the postgres package
// and by the in-memory store used in tests.
type TxFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
