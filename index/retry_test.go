package index

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	logger := slog.Default()

	t.Run("success first try", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(context.Background(), logger, 3, time.Millisecond, func(ctx context.Context) error {
			attempts++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("eventual success", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(context.Background(), logger, 5, time.Millisecond, func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("temporary error")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("all attempts fail", func(t *testing.T) {
		expectedErr := errors.New("persistent error")
		attempts := 0
		err := retryWithBackoff(context.Background(), logger, 3, time.Millisecond, func(ctx context.Context) error {
			attempts++
			return expectedErr
		})
		assert.Equal(t, expectedErr, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := retryWithBackoff(ctx, logger, 5, time.Second, func(ctx context.Context) error {
			attempts++
			cancel()
			return errors.New("fail")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := retryWithBackoff(context.Background(), logger, 0, time.Millisecond, func(ctx context.Context) error {
			return nil
		})
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}
