package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the locking contract, so tests can swap in
// an in-memory implementation.
type LockStoreInterface interface {
	AcquireRequestLock(ctx context.Context, requestID string, ttl time.Duration) (bool, error)
	ReleaseRequestLock(ctx context.Context, requestID string) error
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleaseDriverLock(ctx context.Context, driverID string) error
}

// Ensure the Redis implementation satisfies the contract.
var _ LockStoreInterface = (*LockStore)(nil)
