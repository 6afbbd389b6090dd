package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStatusConflict is returned by conditional updates when the
	// stored status no longer matches the expected one.
	ErrStatusConflict = errors.New("status changed concurrently")
)
