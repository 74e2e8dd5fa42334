package index

import "errors"

var (
	// ErrBuildFailed indicates the index could not be built. The cause is wrapped.
	ErrBuildFailed = errors.New("index build failed")

	// ErrCorruptIndex indicates persisted index data disagrees with its manifest.
	ErrCorruptIndex = errors.New("index is corrupt")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidK indicates a search was asked for fewer than one result.
	ErrInvalidK = errors.New("k must be positive")
)
