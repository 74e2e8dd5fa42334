package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/gamerec/ai"
	"github.com/poiesic/gamerec/core"
	"github.com/poiesic/gamerec/corpus"
)

const (
	// DefaultInitialTopK is the number of chunks fetched from the index.
	DefaultInitialTopK = 50

	// DefaultFinalTopK is the maximum number of games returned.
	DefaultFinalTopK = 12

	summaryWords = 30
)

// VectorIndex finds the chunks nearest to a query.
type VectorIndex interface {
	Search(ctx context.Context, query string, k int) ([]*core.ScoredChunk, error)
}

// Catalog resolves game IDs to records.
type Catalog interface {
	Select(ids []core.GameID) []*core.Game
	HasEmotion(e core.Emotion) bool
}

// Engine retrieves games for a query. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	index       VectorIndex
	catalog     Catalog
	picker      ai.CandidatePicker
	initialTopK int
	finalTopK   int
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithInitialTopK sets how many chunks are fetched from the index.
// Default is 50.
func WithInitialTopK(k int) Option {
	return func(e *Engine) error {
		if k < 1 {
			return fmt.Errorf("%w: initial top k %d", ErrInvalidLimit, k)
		}
		e.initialTopK = k
		return nil
	}
}

// WithFinalTopK sets the maximum number of games returned.
// Default is 12.
func WithFinalTopK(k int) Option {
	return func(e *Engine) error {
		if k < 1 {
			return fmt.Errorf("%w: final top k %d", ErrInvalidLimit, k)
		}
		e.finalTopK = k
		return nil
	}
}

// WithPicker enables model-based filtering of catalog candidates.
// A nil picker disables the stage.
func WithPicker(picker ai.CandidatePicker) Option {
	return func(e *Engine) error {
		e.picker = picker
		return nil
	}
}

// NewEngine creates a retrieval engine over index and catalog.
func NewEngine(index VectorIndex, catalog Catalog, opts ...Option) (*Engine, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	e := &Engine{
		index:       index,
		catalog:     catalog,
		initialTopK: DefaultInitialTopK,
		finalTopK:   DefaultFinalTopK,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "retrieval")

	return e, nil
}

// Retrieve returns at most the engine's final top k games for query,
// ordered by tone when the tone maps to a catalog emotion column.
func (e *Engine) Retrieve(ctx context.Context, query, tone string) ([]*core.Game, error) {
	return e.retrieve(ctx, query, tone, e.initialTopK, e.finalTopK, nil)
}

// RetrieveWithLimits is Retrieve with explicit limits.
func (e *Engine) RetrieveWithLimits(ctx context.Context, query, tone string, initialTopK, finalTopK int) ([]*core.Game, error) {
	return e.retrieve(ctx, query, tone, initialTopK, finalTopK, nil)
}

// RetrieveWithMonitor is Retrieve with a monitor that receives callbacks at
// each stage.
func (e *Engine) RetrieveWithMonitor(ctx context.Context, query, tone string, monitor Monitor) ([]*core.Game, error) {
	return e.retrieve(ctx, query, tone, e.initialTopK, e.finalTopK, monitor)
}

func (e *Engine) retrieve(ctx context.Context, query, rawTone string, initialTopK, finalTopK int, monitor Monitor) ([]*core.Game, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if initialTopK < 1 || finalTopK < 1 {
		return nil, fmt.Errorf("%w: initial %d, final %d", ErrInvalidLimit, initialTopK, finalTopK)
	}

	tone := core.ParseTone(rawTone)
	monitor.Start(query, tone)

	// 1. Nearest chunks
	chunks, err := e.index.Search(ctx, query, initialTopK)
	if err != nil {
		e.logger.Error("vector search failed", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(chunks)

	// 2. Candidate IDs
	plain := make([]*core.Chunk, len(chunks))
	for i, scored := range chunks {
		plain[i] = scored.Chunk
	}
	ids := corpus.ExtractIDs(plain, e.logger)
	monitor.AfterIDExtraction(ids)

	// 3. Catalog lookup, in catalog order
	games := e.catalog.Select(ids)
	monitor.AfterCatalogSelect(games)

	// 4. Optional picker
	if e.picker != nil && len(games) > 0 {
		games, err = e.pick(ctx, query, tone, games, finalTopK)
		if err != nil {
			return nil, err
		}
	}
	monitor.AfterPick(games)

	// 5. Tone re-rank
	if emotion, ok := tone.Emotion(); ok && e.catalog.HasEmotion(emotion) {
		rerankByEmotion(games, emotion)
	}
	monitor.AfterRerank(games)

	// 6. Truncate
	if len(games) > finalTopK {
		games = games[:finalTopK]
	}
	monitor.Finish(games)

	e.logger.Debug("retrieved games", "chunks", len(chunks), "candidates", len(ids), "results", len(games),
		"tone", tone)
	return games, nil
}

// pick keeps the games the picker selects, preserving their incoming order.
func (e *Engine) pick(ctx context.Context, query string, tone core.Tone, games []*core.Game, limit int) ([]*core.Game, error) {
	candidates := make([]ai.Candidate, len(games))
	for i, game := range games {
		candidates[i] = ai.Candidate{
			ID:      int64(game.ID),
			Title:   game.Title,
			Summary: summarize(game.Description),
		}
	}

	picked, err := e.picker.PickCandidates(ctx, query, string(tone), candidates, limit)
	if err != nil {
		e.logger.Error("candidate picking failed", "candidates", len(candidates), "err", err)
		return nil, fmt.Errorf("picking candidates: %w", err)
	}

	keep := make(map[core.GameID]struct{}, len(picked))
	for _, id := range picked {
		keep[core.GameID(id)] = struct{}{}
	}

	kept := make([]*core.Game, 0, len(picked))
	for _, game := range games {
		if _, ok := keep[game.ID]; ok {
			kept = append(kept, game)
		}
	}
	return kept, nil
}

func summarize(description string) string {
	words := strings.Fields(description)
	if len(words) > summaryWords {
		words = words[:summaryWords]
	}
	return strings.Join(words, " ")
}
