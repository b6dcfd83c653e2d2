package storage

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrUniqueConflict is returned when an insert loses a race on the
	// (site, url) uniqueness constraint. Callers recover by re-reading.
	ErrUniqueConflict = errors.New("unique conflict")

	// ErrUnavailable is returned when the store itself cannot be reached.
	// No further writes can succeed, so ingestion runs abort on it.
	ErrUnavailable = errors.New("store unavailable")
)
