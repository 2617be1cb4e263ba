package preview_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagemeta/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows the first request immediately", func(t *testing.T) {
		t.Parallel()

		limiter := preview.NewDomainLimiter(10)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := preview.NewDomainLimiter(10)
		ctx := context.Background()

		require.NoError(t, limiter.Wait(ctx, "example.com"))
		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("does not delay other domains", func(t *testing.T) {
		t.Parallel()

		limiter := preview.NewDomainLimiter(1)
		ctx := context.Background()

		require.NoError(t, limiter.Wait(ctx, "a.example.com"))
		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "b.example.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context is cancelled", func(t *testing.T) {
		t.Parallel()

		limiter := preview.NewDomainLimiter(0.1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	a := preview.ComputeHash("<html></html>")
	assert.Len(t, a, 16)
	assert.Equal(t, a, preview.ComputeHash("<html></html>"))
	assert.NotEqual(t, a, preview.ComputeHash("<html> </html>"))
}
