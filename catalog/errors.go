package catalog

import "errors"

var (
	// ErrDuplicateID indicates two catalog rows share a game ID.
	ErrDuplicateID = errors.New("duplicate game id")

	// ErrMissingColumn indicates a required CSV column is absent.
	ErrMissingColumn = errors.New("missing required column")
)
