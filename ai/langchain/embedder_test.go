package langchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient implements embeddings.EmbedderClient.
type fakeClient struct {
	seen [][]string
	err  error
}

func (f *fakeClient) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	f.seen = append(f.seen, texts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func TestEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds batches in order", func(t *testing.T) {
		client := &fakeClient{}
		embedder, err := NewEmbedder(client, nil)
		require.NoError(t, err)

		vectors, err := embedder.EmbedTexts(ctx, []string{"a", "bbb"})
		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Equal(t, float32(1), vectors[0][0])
		assert.Equal(t, float32(3), vectors[1][0])
	})

	t.Run("strips newlines", func(t *testing.T) {
		client := &fakeClient{}
		embedder, err := NewEmbedder(client, nil)
		require.NoError(t, err)

		_, err = embedder.EmbedText(ctx, "line one\nline two")
		require.NoError(t, err)
		require.NotEmpty(t, client.seen)
		assert.NotContains(t, client.seen[0][0], "\n")
	})

	t.Run("propagates client errors", func(t *testing.T) {
		client := &fakeClient{err: errors.New("quota exceeded")}
		embedder, err := NewEmbedder(client, nil)
		require.NoError(t, err)

		_, err = embedder.EmbedText(ctx, "x")
		assert.Error(t, err)
	})
}
