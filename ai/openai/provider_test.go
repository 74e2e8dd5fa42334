package openai

import (
	"testing"

	"github.com/poiesic/gamerec/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("embedder only", func(t *testing.T) {
		cfg := ai.NewConfig(
			ai.WithProvider(ai.ProviderOpenAI),
			ai.WithEmbeddingHost("http://localhost:11434"),
			ai.WithEmbeddingModel("embeddinggemma"),
		)
		provider, err := NewProvider(cfg)
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.Embedder())
		assert.Nil(t, provider.CandidatePicker())
		assert.Equal(t, "embeddinggemma", provider.EmbeddingModel())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("with picker model", func(t *testing.T) {
		cfg := ai.NewConfig(
			ai.WithProvider(ai.ProviderOpenAI),
			ai.WithPickerModel("qwen2.5:3b"),
		)
		provider, err := NewProvider(cfg)
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.CandidatePicker())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := ai.NewConfig(ai.WithProvider(ai.ProviderOpenAI), ai.WithEmbeddingModel(""))
		_, err := NewProvider(cfg)
		assert.Error(t, err)
	})
}
