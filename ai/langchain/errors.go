package langchain

import "errors"

var (
	// ErrMalformedIDList is returned when a model reply is not a strict list of integer IDs.
	ErrMalformedIDList = errors.New("malformed id list")
)
