package sqlite_test

import (
	"context"
	"testing"

	"github.com/pagesift/pagesift/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTracker_MarkProcessed(t *testing.T) {
	t.Parallel()

	t.Run("marks a domain as processed", func(t *testing.T) {
		t.Parallel()

		tracker, err := sqlite.NewTracker(openDB(t))
		require.NoError(t, err)
		ctx := context.Background()

		processed, err := tracker.IsProcessed(ctx, "https://www.oakfurniture.co.uk/contact")
		require.NoError(t, err)
		assert.False(t, processed)

		require.NoError(t, tracker.MarkProcessed(ctx, "https://www.oakfurniture.co.uk/contact", true))

		processed, err = tracker.IsProcessed(ctx, "https://www.oakfurniture.co.uk/contact")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("domain variants collapse to one entry", func(t *testing.T) {
		t.Parallel()

		tracker, err := sqlite.NewTracker(openDB(t))
		require.NoError(t, err)
		ctx := context.Background()

		require.NoError(t, tracker.MarkProcessed(ctx, "https://shop.oakfurniture.com/items", true))

		processed, err := tracker.IsProcessed(ctx, "https://www.oakfurniture.co.uk")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("remarking updates the outcome instead of failing", func(t *testing.T) {
		t.Parallel()

		tracker, err := sqlite.NewTracker(openDB(t))
		require.NoError(t, err)
		ctx := context.Background()

		require.NoError(t, tracker.MarkProcessed(ctx, "https://acme.com", false))
		require.NoError(t, tracker.MarkProcessed(ctx, "https://acme.com", true))

		stats, err := tracker.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Total)
		assert.Equal(t, 1, stats.Succeeded)
	})
}

func TestTracker_FilterNew(t *testing.T) {
	t.Parallel()

	t.Run("filters processed and in-batch duplicate domains", func(t *testing.T) {
		t.Parallel()

		tracker, err := sqlite.NewTracker(openDB(t))
		require.NoError(t, err)
		ctx := context.Background()

		require.NoError(t, tracker.MarkProcessed(ctx, "https://seen.com", true))

		fresh, err := tracker.FilterNew(ctx, []string{
			"https://seen.com/about",
			"https://new-one.com",
			"https://www.new-one.com/contact",
			"https://another.com",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://new-one.com", "https://another.com"}, fresh)
	})
}

func TestTracker_Stats(t *testing.T) {
	t.Parallel()

	tracker, err := sqlite.NewTracker(openDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, tracker.MarkProcessed(ctx, "https://a.com", true))
	require.NoError(t, tracker.MarkProcessed(ctx, "https://b.com", false))
	require.NoError(t, tracker.MarkProcessed(ctx, "https://c.com", true))

	stats, err := tracker.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Succeeded)
}

func TestTracker_Sources(t *testing.T) {
	t.Parallel()

	tracker, err := sqlite.NewTracker(openDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, tracker.MarkProcessed(ctx, "https://www.alpha.com/contact", true))
	require.NoError(t, tracker.MarkProcessed(ctx, "https://beta.org", false))

	sources, err := tracker.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	byDomain := make(map[string]bool, len(sources))
	for _, src := range sources {
		byDomain[src.Domain] = src.Succeeded
		assert.NotEmpty(t, src.ID)
		assert.False(t, src.ProcessedAt.IsZero())
	}
	assert.True(t, byDomain["alpha"])
	assert.False(t, byDomain["beta"])
}

func TestTracker_SeedsFilterFromStorage(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	ctx := context.Background()

	first, err := sqlite.NewTracker(db)
	require.NoError(t, err)
	require.NoError(t, first.MarkProcessed(ctx, "https://persisted.com", true))

	// A second tracker over the same database sees the earlier mark.
	second, err := sqlite.NewTracker(db)
	require.NoError(t, err)

	processed, err := second.IsProcessed(ctx, "https://persisted.com")
	require.NoError(t, err)
	assert.True(t, processed)
}
