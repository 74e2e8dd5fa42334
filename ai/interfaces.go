package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// CandidatePicker asks a language model to choose the best matches for a
// query from a list of retrieval candidates.
// Implementations must be thread-safe for concurrent use.
type CandidatePicker interface {
	// PickCandidates returns up to limit candidate IDs, best first.
	// Only IDs present in candidates are returned.
	// Returns an error if the model reply is not a strict JSON list of integers.
	PickCandidates(ctx context.Context, query, tone string, candidates []Candidate, limit int) ([]int64, error)
}

// Candidate is a short summary of a game offered to a CandidatePicker.
type Candidate struct {
	ID      int64
	Title   string
	Summary string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// CandidatePicker returns the candidate picking service, or nil when
	// picking is not configured.
	CandidatePicker() CandidatePicker

	// EmbeddingModel names the model behind Embedder. It is recorded in the
	// index manifest.
	EmbeddingModel() string

	// Close releases resources held by the provider and its services.
	Close() error
}
