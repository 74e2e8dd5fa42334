package storage

import (
	"context"

	"github.com/poiesic/gamerec/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close releases resources held by the repository.
	// The underlying backend is closed separately by its owner.
	Close() error
}

// ChunkRepository stores embedded document chunks and answers similarity queries.
type ChunkRepository interface {
	Repository

	// AddChunks stores one or more chunks keyed by their Seq.
	// A chunk with an existing Seq replaces the stored one.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// ForEachChunk calls fn for every stored chunk in Seq order.
	// Iteration stops at the first error returned by fn or by decoding.
	ForEachChunk(ctx context.Context, fn func(chunk *core.Chunk) error) error

	// FindSimilar returns up to limit chunks ordered by similarity to vector,
	// highest first. Vectors are compared by dot product, so both sides are
	// expected to be unit length.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.ScoredChunk, error)

	// DeleteAllChunks removes every stored chunk.
	DeleteAllChunks(ctx context.Context) error
}

// ManifestRepository persists the marker describing a completed index build.
type ManifestRepository interface {
	// SaveManifest stores the manifest, replacing any previous one.
	SaveManifest(ctx context.Context, manifest *core.Manifest) error

	// LoadManifest retrieves the manifest.
	// Returns nil, nil if no manifest exists.
	LoadManifest(ctx context.Context) (*core.Manifest, error)

	// DeleteManifest removes the manifest if present.
	DeleteManifest(ctx context.Context) error
}
