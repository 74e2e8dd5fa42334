package googleai

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/gamerec/ai"
	"github.com/poiesic/gamerec/ai/langchain"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Provider implements ai.AIProvider using Google Generative AI.
type Provider struct {
	config   *ai.Config
	client   io.Closer
	embedder *langchain.Embedder
	picker   *langchain.Picker
	logger   *slog.Logger
}

// NewProvider creates a provider backed by Google Generative AI.
// The config must carry an API key; a missing key returns ai.ErrMissingAPIKey.
func NewProvider(ctx context.Context, config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default().With("provider", ai.ProviderGoogleAI)

	opts := []googleai.Option{
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultEmbeddingModel(config.EmbeddingModel),
	}
	if config.PickerModel != "" {
		opts = append(opts, googleai.WithDefaultModel(config.PickerModel))
	}

	client, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	embedder, err := langchain.NewEmbedder(client, logger)
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("error closing genai client", "err", closeErr)
		}
		return nil, err
	}

	p := &Provider{
		config:   config,
		client:   client,
		embedder: embedder,
		logger:   logger.With("component", "googleai-provider"),
	}
	// The same client serves chat generation
	if config.PickerModel != "" {
		p.picker = langchain.NewPicker(client, logger)
	}
	return p, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// CandidatePicker returns the picker, or nil when no picker model is configured.
func (p *Provider) CandidatePicker() ai.CandidatePicker {
	if p.picker == nil {
		return nil
	}
	return p.picker
}

// EmbeddingModel returns the configured embedding model name.
func (p *Provider) EmbeddingModel() string {
	return p.config.EmbeddingModel
}

// Close releases the genai client and its gRPC connection.
func (p *Provider) Close() error {
	p.logger.Debug("closing googleai provider")
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
