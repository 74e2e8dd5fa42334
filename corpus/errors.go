package corpus

import "errors"

var (
	// ErrInvalidChunk indicates a chunk does not start with a game ID.
	ErrInvalidChunk = errors.New("chunk has no leading game id")

	// ErrInvalidChunkSize indicates bad chunk size or overlap settings.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
)
