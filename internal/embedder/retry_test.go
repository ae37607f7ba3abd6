package embedder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastBackoff(attempts int) backoffPolicy {
	return backoffPolicy{
		attempts: attempts,
		initial:  time.Millisecond,
		cap:      5 * time.Millisecond,
		factor:   2.0,
	}
}

func TestWithRetries(t *testing.T) {
	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		result, err := withRetries(context.Background(), fastBackoff(3), func() (string, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		result, err := withRetries(context.Background(), fastBackoff(3), func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.Equal(t, 3, calls)
	})

	t.Run("attempt budget exhausted returns last error", func(t *testing.T) {
		calls := 0
		lastErr := errors.New("still failing")
		_, err := withRetries(context.Background(), fastBackoff(3), func() (int, error) {
			calls++
			return 0, lastErr
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, lastErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		_, err := withRetries(ctx, fastBackoff(3), func() (int, error) {
			calls++
			return 0, errors.New("transient")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("single attempt policy never sleeps", func(t *testing.T) {
		calls := 0
		start := time.Now()
		_, err := withRetries(context.Background(), fastBackoff(1), func() (int, error) {
			calls++
			return 0, errors.New("fail")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})
}
