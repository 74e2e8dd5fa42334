package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/poiesic/gamerec/ai"
	"github.com/poiesic/gamerec/core"
	"github.com/poiesic/gamerec/storage"
	"golang.org/x/time/rate"
)

// Index answers nearest-neighbor queries over persisted chunk embeddings.
// It is read-only once Open returns and safe for concurrent use.
type Index struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	manifest *core.Manifest
	logger   *slog.Logger
}

type settings struct {
	logger         *slog.Logger
	rebuild        bool
	batchSize      int
	poolSize       int
	rateLimit      rate.Limit
	burst          int
	maxRetries     int
	retryDelay     time.Duration
	progress       io.Writer
	reportInterval int
	embeddingModel string
}

// Option configures Open.
type Option func(*settings) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRebuild discards any persisted index and builds a new one.
func WithRebuild(rebuild bool) Option {
	return func(s *settings) error {
		s.rebuild = rebuild
		return nil
	}
}

// WithBatchSize sets how many chunks are sent per embedding request.
// Default is 100.
func WithBatchSize(size int) Option {
	return func(s *settings) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		s.batchSize = size
		return nil
	}
}

// WithPoolSize sets the number of concurrent embedding workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *settings) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithRateLimit caps embedding requests per second across all workers.
// rate.Inf disables limiting. Default is 10 requests/s with burst 1.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *settings) error {
		if burst < 1 {
			burst = 1
		}
		s.rateLimit = limit
		s.burst = burst
		return nil
	}
}

// WithRetry sets attempts per embedding request and the first backoff delay.
// Default is 3 attempts starting at 1s.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(s *settings) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		s.maxRetries = maxAttempts
		s.retryDelay = baseDelay
		return nil
	}
}

// WithProgress sets where build progress is written. Default is io.Discard.
func WithProgress(w io.Writer) Option {
	return func(s *settings) error {
		if w == nil {
			w = io.Discard
		}
		s.progress = w
		return nil
	}
}

// WithEmbeddingModel records the model name in the manifest of a new build.
func WithEmbeddingModel(model string) Option {
	return func(s *settings) error {
		s.embeddingModel = model
		return nil
	}
}

func defaultSettings() *settings {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &settings{
		logger:         slog.Default(),
		batchSize:      100,
		poolSize:       poolSize,
		rateLimit:      10,
		burst:          1,
		maxRetries:     3,
		retryDelay:     time.Second,
		progress:       io.Discard,
		reportInterval: 100,
	}
}

// Open returns an index over corpus. When a manifest is persisted the stored
// chunks are verified against it and reused. Otherwise, or when WithRebuild
// is set, any partial data is cleared and the index is built from corpus.
//
// Returns ErrCorruptIndex if persisted data disagrees with its manifest and
// ErrBuildFailed if a build could not complete.
func Open(
	ctx context.Context,
	chunkRepo storage.ChunkRepository,
	manifestRepo storage.ManifestRepository,
	embedder ai.Embedder,
	corpus []*core.Chunk,
	opts ...Option,
) (*Index, error) {
	s := defaultSettings()
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	logger := s.logger.With("component", "index")

	fingerprint := fingerprintOf(corpus)

	manifest, err := manifestRepo.LoadManifest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading manifest: %w", ErrCorruptIndex, err)
	}

	if manifest != nil && !s.rebuild {
		if err := verify(ctx, chunkRepo, manifest); err != nil {
			return nil, err
		}
		if manifest.Fingerprint != fingerprint {
			logger.Warn("stale index: corpus changed since build, use a rebuild to refresh",
				"builtAt", time.Unix(manifest.BuiltAt, 0).UTC(),
				"chunks", manifest.ChunkCount)
		}
		logger.Info("loaded index", "chunks", manifest.ChunkCount, "dimensions", manifest.Dimensions,
			"model", manifest.EmbeddingModel)
	} else {
		b := &builder{
			chunks:    chunkRepo,
			manifests: manifestRepo,
			embedder:  embedder,
			settings:  s,
			logger:    logger,
		}
		manifest, err = b.build(ctx, corpus, fingerprint)
		if err != nil {
			return nil, err
		}
	}

	return &Index{
		chunks:   chunkRepo,
		embedder: embedder,
		manifest: manifest,
		logger:   logger,
	}, nil
}

// Search returns up to k chunks nearest to query, nearest first.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]*core.ScoredChunk, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	vector, err := idx.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return idx.chunks.FindSimilar(ctx, NormalizeVector(vector), k)
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return idx.manifest.ChunkCount
}

// Manifest returns a copy of the index manifest.
func (idx *Index) Manifest() core.Manifest {
	return *idx.manifest
}

// verify checks every stored chunk decodes and agrees with manifest.
func verify(ctx context.Context, chunkRepo storage.ChunkRepository, manifest *core.Manifest) error {
	if manifest.ChunkCount > 0 && manifest.Dimensions <= 0 {
		return fmt.Errorf("%w: manifest records %d dimensions", ErrCorruptIndex, manifest.Dimensions)
	}

	count, err := chunkRepo.CountChunks(ctx)
	if err != nil {
		return fmt.Errorf("%w: counting chunks: %w", ErrCorruptIndex, err)
	}
	if count != manifest.ChunkCount {
		return fmt.Errorf("%w: found %d chunks, manifest expects %d", ErrCorruptIndex, count, manifest.ChunkCount)
	}

	err = chunkRepo.ForEachChunk(ctx, func(chunk *core.Chunk) error {
		if len(chunk.Vector) != manifest.Dimensions {
			return fmt.Errorf("chunk %d has %d dimensions, manifest expects %d",
				chunk.Seq, len(chunk.Vector), manifest.Dimensions)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}
	return nil
}

func fingerprintOf(corpus []*core.Chunk) string {
	texts := make([]string, len(corpus))
	for i, chunk := range corpus {
		texts[i] = chunk.Text
	}
	return core.Fingerprint(texts)
}
