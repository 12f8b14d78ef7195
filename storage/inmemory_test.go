package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-link-shortener/types"
	"go.uber.org/zap"
)

func TestInMemoryStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewInMemoryStorage(zap.NewNop())

	t.Run("NewInMemoryStorage", func(t *testing.T) {
		storage := NewInMemoryStorage(nil)
		assert.NotNil(t, storage.logger, "Logger should be initialized when input is nil")
		assert.Equal(t, 0, storage.Len())
	})

	t.Run("Create", func(t *testing.T) {
		err := storage.Create(ctx, types.Link{Slug: "abc1234", URL: "https://example.com"})
		require.NoError(t, err)

		link, err := storage.GetLink(ctx, "abc1234")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", link.URL)
		assert.Zero(t, link.VisitCount)
		assert.False(t, link.CreatedAt.IsZero(), "CreatedAt should be set on create")

		// Test duplicate creation
		err = storage.Create(ctx, types.Link{Slug: "abc1234", URL: "https://other.com"})
		assert.Equal(t, ErrSlugExists, err)

		link, err = storage.GetLink(ctx, "abc1234")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", link.URL, "Duplicate create must not overwrite")

		// Test context cancellation
		cancelStorage := NewInMemoryStorage(zap.NewNop())
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()

		err = cancelStorage.Create(cancelCtx, types.Link{Slug: "cancelx", URL: "https://cancelled.com"})
		assert.Equal(t, context.Canceled, err, "Expected error to be context.Canceled")
		assert.Equal(t, 0, cancelStorage.Len(), "Nothing should have been stored")
	})

	t.Run("Create keeps CreatedAt", func(t *testing.T) {
		createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		require.NoError(t, storage.Create(ctx, types.Link{Slug: "keepts1", URL: "https://example.com", CreatedAt: createdAt}))

		link, err := storage.GetLink(ctx, "keepts1")
		require.NoError(t, err)
		assert.Equal(t, createdAt, link.CreatedAt)
	})

	t.Run("IncrementVisits", func(t *testing.T) {
		link, err := storage.IncrementVisits(ctx, "abc1234")
		require.NoError(t, err)
		assert.Equal(t, int64(1), link.VisitCount)
		assert.Equal(t, "https://example.com", link.URL)

		link, err = storage.IncrementVisits(ctx, "abc1234")
		require.NoError(t, err)
		assert.Equal(t, int64(2), link.VisitCount)
		assert.Equal(t, "https://example.com", link.URL, "URL must not change across resolutions")

		// Test non-existent slug
		_, err = storage.IncrementVisits(ctx, "nonexistent")
		assert.Equal(t, ErrLinkNotFound, err)

		// Test context cancellation
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = storage.IncrementVisits(cancelCtx, "abc1234")
		assert.Equal(t, context.Canceled, err)

		link, err = storage.GetLink(ctx, "abc1234")
		require.NoError(t, err)
		assert.Equal(t, int64(2), link.VisitCount, "Cancelled increment must not be applied")
	})

	t.Run("GetLink", func(t *testing.T) {
		_, err := storage.GetLink(ctx, "nonexistent")
		assert.Equal(t, ErrLinkNotFound, err)

		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = storage.GetLink(cancelCtx, "abc1234")
		assert.Equal(t, context.Canceled, err)
	})

	t.Run("Ping and Close", func(t *testing.T) {
		assert.NoError(t, storage.Ping(ctx))
		assert.NoError(t, storage.Close(ctx))
	})

	t.Run("Concurrent increments", func(t *testing.T) {
		storage := NewInMemoryStorage(zap.NewNop())
		require.NoError(t, storage.Create(ctx, types.Link{Slug: "conc123", URL: "http://example.com"}))

		var wg sync.WaitGroup
		numOperations := 200

		for i := 0; i < numOperations; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := storage.IncrementVisits(context.Background(), "conc123")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		link, err := storage.GetLink(ctx, "conc123")
		require.NoError(t, err)
		assert.Equal(t, int64(numOperations), link.VisitCount, "No increment should be lost")
	})

	t.Run("Concurrent creates", func(t *testing.T) {
		storage := NewInMemoryStorage(zap.NewNop())
		var wg sync.WaitGroup
		numOperations := 100

		for i := 0; i < numOperations; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := storage.Create(context.Background(), types.Link{
					Slug: fmt.Sprintf("s%06d", i),
					URL:  fmt.Sprintf("https://example.com/%d", i),
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, numOperations, storage.Len())
	})
}
