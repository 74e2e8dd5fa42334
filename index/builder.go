package index

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/gamerec/ai"
	"github.com/poiesic/gamerec/core"
	"github.com/poiesic/gamerec/storage"
	"golang.org/x/time/rate"
)

// builder embeds a corpus and persists it. The manifest is written last, so
// an interrupted build leaves no manifest and is redone on the next Open.
type builder struct {
	chunks    storage.ChunkRepository
	manifests storage.ManifestRepository
	embedder  ai.Embedder
	settings  *settings
	logger    *slog.Logger

	mu         sync.Mutex
	dimensions int
	firstErr   error
}

func (b *builder) build(ctx context.Context, corpus []*core.Chunk, fingerprint string) (*core.Manifest, error) {
	b.logger.Info("building index", "chunks", len(corpus), "batchSize", b.settings.batchSize,
		"workers", b.settings.poolSize)

	if err := b.manifests.DeleteManifest(ctx); err != nil {
		return nil, fmt.Errorf("%w: clearing manifest: %w", ErrBuildFailed, err)
	}
	if err := b.chunks.DeleteAllChunks(ctx); err != nil {
		return nil, fmt.Errorf("%w: clearing chunks: %w", ErrBuildFailed, err)
	}

	if err := b.embedAll(ctx, corpus); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildFailed, err)
	}

	manifest := &core.Manifest{
		ChunkCount:     len(corpus),
		Dimensions:     b.dimensions,
		EmbeddingModel: b.settings.embeddingModel,
		Fingerprint:    fingerprint,
		BuiltAt:        time.Now().Unix(),
	}
	if err := b.manifests.SaveManifest(ctx, manifest); err != nil {
		return nil, fmt.Errorf("%w: saving manifest: %w", ErrBuildFailed, err)
	}

	b.logger.Info("index built", "chunks", manifest.ChunkCount, "dimensions", manifest.Dimensions)
	return manifest, nil
}

// embedAll fans batches out to a worker pool. The first failure cancels the
// remaining batches.
func (b *builder) embedAll(ctx context.Context, corpus []*core.Chunk) error {
	if len(corpus) == 0 {
		return nil
	}

	pool, err := ants.NewPool(b.settings.poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limiter := rate.NewLimiter(b.settings.rateLimit, b.settings.burst)
	tracker := newProgressTracker(b.settings.progress, len(corpus), b.settings.reportInterval)

	var wg sync.WaitGroup
	for start := 0; start < len(corpus); start += b.settings.batchSize {
		end := min(start+b.settings.batchSize, len(corpus))
		batch := corpus[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := b.embedBatch(ctx, limiter, batch); err != nil {
				b.fail(err)
				cancel()
				return
			}
			tracker.increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			b.fail(submitErr)
			cancel()
			break
		}
	}
	wg.Wait()

	if b.firstErr != nil {
		return b.firstErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tracker.finish()
	elapsed := tracker.elapsed()
	b.logger.Debug("embedding complete", "chunks", len(corpus), "elapsed", elapsed.Round(time.Millisecond))
	return nil
}

// embedBatch embeds one batch with retry, normalizes the vectors and stores
// copies of the chunks. The caller's chunks are not modified.
func (b *builder) embedBatch(ctx context.Context, limiter *rate.Limiter, batch []*core.Chunk) error {
	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.Text
	}

	var embeddings [][]float32
	err := retryWithBackoff(ctx, b.logger, b.settings.maxRetries, b.settings.retryDelay, func(ctx context.Context) error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		embeddings, err = b.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", b.settings.maxRetries, err)
	}

	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	stored := make([]*core.Chunk, len(batch))
	for i, chunk := range batch {
		vector := NormalizeVector(embeddings[i])
		if err := b.checkDimensions(len(vector)); err != nil {
			return fmt.Errorf("chunk %d: %w", chunk.Seq, err)
		}
		c := *chunk
		c.Vector = vector
		stored[i] = &c
	}

	if err := b.chunks.AddChunks(ctx, stored...); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}
	return nil
}

// checkDimensions records the first vector length seen and rejects any
// vector that differs from it.
func (b *builder) checkDimensions(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n == 0 {
		return fmt.Errorf("embedding is empty")
	}
	if b.dimensions == 0 {
		b.dimensions = n
		return nil
	}
	if n != b.dimensions {
		return fmt.Errorf("embedding has %d dimensions, expected %d", n, b.dimensions)
	}
	return nil
}

func (b *builder) fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.firstErr == nil {
		b.firstErr = err
	}
}
