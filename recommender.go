// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gamerec

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/gamerec/ai"
	"github.com/poiesic/gamerec/ai/googleai"
	"github.com/poiesic/gamerec/ai/openai"
	"github.com/poiesic/gamerec/catalog"
	"github.com/poiesic/gamerec/config"
	"github.com/poiesic/gamerec/core"
	"github.com/poiesic/gamerec/corpus"
	"github.com/poiesic/gamerec/index"
	"github.com/poiesic/gamerec/present"
	"github.com/poiesic/gamerec/retrieval"
	"github.com/poiesic/gamerec/storage/badger"
	"golang.org/x/time/rate"
)

// Recommender owns every component needed to answer recommendation
// requests. The index is built or loaded before Open returns.
type Recommender struct {
	backend  *badger.Backend
	provider ai.AIProvider
	catalog  *catalog.Store
	index    *index.Index
	engine   *retrieval.Engine
	logger   *slog.Logger
}

// Option configures a Recommender.
type Option func(*options)

type options struct {
	provider ai.AIProvider
	logger   *slog.Logger
	progress io.Writer
	rebuild  bool
}

// WithProvider injects an AI provider instead of building one from config.
// The Recommender takes ownership and closes it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress sets where index build progress is written.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithRebuild discards any persisted index and builds a new one.
func WithRebuild(rebuild bool) Option {
	return func(o *options) {
		o.rebuild = rebuild
	}
}

// Open loads the catalog, prepares the AI provider, and builds or loads the
// index described by cfg.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Recommender, error) {
	o := &options{
		logger:   slog.Default(),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := catalog.LoadFile(cfg.Catalog.Path, o.logger)
	if err != nil {
		return nil, err
	}

	chunks, err := corpus.Build(store.All(),
		corpus.WithChunkSize(cfg.Catalog.ChunkSize),
		corpus.WithChunkOverlap(cfg.Catalog.ChunkOverlap))
	if err != nil {
		return nil, err
	}

	provider := o.provider
	if provider == nil {
		provider, err = newProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(cfg.Index.Path, false)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("opening index at %s: %w", cfg.Index.Path, err)
	}

	indexOpts := []index.Option{
		index.WithLogger(o.logger),
		index.WithRebuild(o.rebuild),
		index.WithProgress(o.progress),
		index.WithBatchSize(cfg.Index.BatchSize),
		index.WithRateLimit(rate.Limit(cfg.Index.RequestsPerSecond), 1),
		index.WithRetry(cfg.Index.MaxRetries, cfg.Index.RetryDelay),
		index.WithEmbeddingModel(provider.EmbeddingModel()),
	}
	if cfg.Index.Workers > 0 {
		indexOpts = append(indexOpts, index.WithPoolSize(cfg.Index.Workers))
	}

	idx, err := index.Open(ctx,
		badger.NewChunkRepository(backend),
		badger.NewManifestRepository(backend),
		provider.Embedder(),
		chunks,
		indexOpts...)
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	engine, err := retrieval.NewEngine(idx, store,
		retrieval.WithLogger(o.logger),
		retrieval.WithInitialTopK(cfg.Retrieval.InitialTopK),
		retrieval.WithFinalTopK(cfg.Retrieval.FinalTopK),
		retrieval.WithPicker(provider.CandidatePicker()))
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	logger := o.logger.With("component", "recommender")
	logger.Info("recommender ready", "games", store.Len(), "chunks", idx.Len(),
		"picker", provider.CandidatePicker() != nil)

	return &Recommender{
		backend:  backend,
		provider: provider,
		catalog:  store,
		index:    idx,
		engine:   engine,
		logger:   logger,
	}, nil
}

func newProvider(ctx context.Context, cfg *config.Config) (ai.AIProvider, error) {
	aiConfig := ai.NewConfig(cfg.AIOptions()...)
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	switch aiConfig.Provider {
	case ai.ProviderOpenAI:
		return openai.NewProvider(aiConfig)
	default:
		return googleai.NewProvider(ctx, aiConfig)
	}
}

// Recommend returns formatted recommendations for query and tone.
func (r *Recommender) Recommend(ctx context.Context, query, tone string) ([]present.Recommendation, error) {
	games, err := r.engine.Retrieve(ctx, query, tone)
	if err != nil {
		return nil, err
	}
	return present.FormatAll(games), nil
}

// Manifest describes the loaded index build.
func (r *Recommender) Manifest() core.Manifest {
	return r.index.Manifest()
}

// GameCount returns the number of catalog games.
func (r *Recommender) GameCount() int {
	return r.catalog.Len()
}

// ChunkCount returns the number of indexed chunks.
func (r *Recommender) ChunkCount() int {
	return r.index.Len()
}

// Close releases the AI provider and the index storage.
func (r *Recommender) Close() error {
	if err := r.provider.Close(); err != nil {
		r.logger.Error("error closing AI provider", "err", err)
	}

	if err := r.backend.Close(); err != nil {
		r.logger.Error("error closing index storage", "err", err)
		return err
	}
	return nil
}
