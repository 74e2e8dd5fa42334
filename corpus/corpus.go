package corpus

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/gamerec/core"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters, ID prefix included.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the number of characters shared by adjacent chunks.
	DefaultChunkOverlap = 50
)

type settings struct {
	chunkSize    int
	chunkOverlap int
}

// Option configures Build.
type Option func(*settings) error

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(size int) Option {
	return func(s *settings) error {
		if size < 1 {
			return fmt.Errorf("%w: size %d", ErrInvalidChunkSize, size)
		}
		s.chunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks of one game.
func WithChunkOverlap(overlap int) Option {
	return func(s *settings) error {
		if overlap < 0 {
			return fmt.Errorf("%w: overlap %d", ErrInvalidChunkSize, overlap)
		}
		s.chunkOverlap = overlap
		return nil
	}
}

// Build splits each game's description into chunks. Every chunk text starts
// with the game ID followed by a space, so ExtractID recovers the ID from any
// chunk. A game with an empty description yields one chunk holding only its ID.
// Seq numbers follow the order of games.
func Build(games []*core.Game, opts ...Option) ([]*core.Chunk, error) {
	s := &settings{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.chunkOverlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than size %d",
			ErrInvalidChunkSize, s.chunkOverlap, s.chunkSize)
	}

	var chunks []*core.Chunk
	for _, game := range games {
		if err := core.ValidateGameID(game.ID); err != nil {
			return nil, err
		}

		id := strconv.FormatInt(int64(game.ID), 10)
		pieces, err := splitDescription(game.Description, s.chunkSize-len(id)-1, s.chunkOverlap)
		if err != nil {
			return nil, fmt.Errorf("splitting game %d: %w", game.ID, err)
		}

		if len(pieces) == 0 {
			chunks = append(chunks, &core.Chunk{
				Seq:      uint64(len(chunks)),
				SourceID: game.ID,
				Text:     id,
			})
			continue
		}

		for _, piece := range pieces {
			chunks = append(chunks, &core.Chunk{
				Seq:      uint64(len(chunks)),
				SourceID: game.ID,
				Text:     id + " " + piece,
			})
		}
	}

	return chunks, nil
}

func splitDescription(description string, size, overlap int) ([]string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, nil
	}

	if size < 1 {
		size = 1
	}
	if overlap >= size {
		overlap = size - 1
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
	)
	raw, err := splitter.SplitText(description)
	if err != nil {
		return nil, err
	}

	pieces := raw[:0]
	for _, piece := range raw {
		if piece = strings.TrimSpace(piece); piece != "" {
			pieces = append(pieces, piece)
		}
	}
	return pieces, nil
}

// ExtractID returns the game ID at the start of a chunk text. Surrounding
// double quotes are ignored and the first whitespace-separated token must be
// a positive base-10 integer.
func ExtractID(text string) (core.GameID, error) {
	fields := strings.Fields(strings.Trim(text, `"`))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty text", ErrInvalidChunk)
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidChunk, fields[0])
	}
	if err := core.ValidateGameID(core.GameID(id)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}
	return core.GameID(id), nil
}

// ExtractIDs returns the distinct IDs of chunks in first-seen order. Chunks
// without a valid ID are logged and skipped.
func ExtractIDs(chunks []*core.Chunk, logger *slog.Logger) []core.GameID {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[core.GameID]struct{}, len(chunks))
	ids := make([]core.GameID, 0, len(chunks))
	for _, chunk := range chunks {
		id, err := ExtractID(chunk.Text)
		if err != nil {
			logger.Warn("skipping chunk without game id", "seq", chunk.Seq, "err", err)
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
