package retrieval

import "errors"

var (
	// ErrEmptyQuery is returned when the query is empty or only whitespace.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrInvalidLimit is returned when a result limit is below one.
	ErrInvalidLimit = errors.New("limit must be at least 1")

	// ErrIndexRequired is returned when no vector index is provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrCatalogRequired is returned when no catalog is provided.
	ErrCatalogRequired = errors.New("catalog required")
)
