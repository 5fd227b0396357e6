package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlinks/internal/shortlink"
	"github.com/serroba/shortlinks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func insertLink(t *testing.T, links *store.MemoryLinkStore, token string, active bool) *shortlink.ShortLink {
	t.Helper()

	link := &shortlink.ShortLink{
		Token:       token,
		OriginalURL: "https://example.com/" + token,
		Active:      true,
		DueDate:     baseTime.Add(time.Hour),
		CreatedAt:   baseTime,
	}
	require.NoError(t, links.Insert(context.Background(), link))

	if !active {
		changed, err := links.Deactivate(context.Background(), token)
		require.NoError(t, err)
		require.True(t, changed)
	}

	return link
}

func TestMemoryLinkStoreInsert(t *testing.T) {
	t.Run("assigns increasing ids", func(t *testing.T) {
		links := store.NewMemoryLinkStore()

		first := insertLink(t, links, "token0001", true)
		second := insertLink(t, links, "token0002", true)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("rejects duplicate tokens", func(t *testing.T) {
		links := store.NewMemoryLinkStore()
		insertLink(t, links, "token0001", true)

		err := links.Insert(context.Background(), &shortlink.ShortLink{
			Token:       "token0001",
			OriginalURL: "https://example.com/other",
			Active:      true,
			DueDate:     baseTime.Add(time.Hour),
		})

		assert.ErrorIs(t, err, shortlink.ErrDuplicateToken)
	})
}

func TestMemoryLinkStoreFind(t *testing.T) {
	links := store.NewMemoryLinkStore()
	insertLink(t, links, "active001", true)
	insertLink(t, links, "gone00001", false)

	t.Run("find by token ignores active state", func(t *testing.T) {
		link, err := links.FindByToken(context.Background(), "gone00001")

		require.NoError(t, err)
		assert.False(t, link.Active)
	})

	t.Run("find active skips deactivated links", func(t *testing.T) {
		_, err := links.FindActiveByToken(context.Background(), "gone00001")

		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		_, err := links.FindByToken(context.Background(), "missing99")

		assert.ErrorIs(t, err, shortlink.ErrNotFound)
	})

	t.Run("callers get copies, not store internals", func(t *testing.T) {
		link, err := links.FindByToken(context.Background(), "active001")
		require.NoError(t, err)

		link.Active = false

		again, err := links.FindByToken(context.Background(), "active001")
		require.NoError(t, err)
		assert.True(t, again.Active)
	})
}

func TestMemoryLinkStoreDeactivate(t *testing.T) {
	links := store.NewMemoryLinkStore()
	insertLink(t, links, "token0001", true)

	changed, err := links.Deactivate(context.Background(), "token0001")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = links.Deactivate(context.Background(), "token0001")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = links.Deactivate(context.Background(), "missing99")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMemoryLinkStoreList(t *testing.T) {
	links := store.NewMemoryLinkStore()
	insertLink(t, links, "token0001", true)
	insertLink(t, links, "token0002", false)
	insertLink(t, links, "token0003", true)
	insertLink(t, links, "token0004", true)

	t.Run("all links in id order", func(t *testing.T) {
		got, total, err := links.List(context.Background(), shortlink.FilterAll, 0, -1)

		require.NoError(t, err)
		assert.Equal(t, 4, total)
		require.Len(t, got, 4)

		for i, link := range got {
			assert.Equal(t, int64(i+1), link.ID)
		}
	})

	t.Run("active filter", func(t *testing.T) {
		got, total, err := links.List(context.Background(), shortlink.FilterActive, 0, -1)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, got, 3)

		for _, link := range got {
			assert.True(t, link.Active)
		}
	})

	t.Run("inactive filter", func(t *testing.T) {
		got, total, err := links.List(context.Background(), shortlink.FilterInactive, 0, -1)

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "token0002", got[0].Token)
	})

	t.Run("offset and limit slice the result", func(t *testing.T) {
		got, total, err := links.List(context.Background(), shortlink.FilterAll, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, 4, total)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("offset past the end is empty", func(t *testing.T) {
		got, total, err := links.List(context.Background(), shortlink.FilterAll, 10, 5)

		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Empty(t, got)
	})
}

func TestMemoryLinkStoreBulkDeactivate(t *testing.T) {
	links := store.NewMemoryLinkStore()

	overdue := &shortlink.ShortLink{
		Token:       "overdue01",
		OriginalURL: "https://example.com/a",
		Active:      true,
		DueDate:     baseTime.Add(-time.Minute),
	}
	require.NoError(t, links.Insert(context.Background(), overdue))

	current := &shortlink.ShortLink{
		Token:       "current01",
		OriginalURL: "https://example.com/b",
		Active:      true,
		DueDate:     baseTime.Add(time.Hour),
	}
	require.NoError(t, links.Insert(context.Background(), current))

	count, err := links.BulkDeactivate(context.Background(), baseTime)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	link, err := links.FindByToken(context.Background(), "overdue01")
	require.NoError(t, err)
	assert.False(t, link.Active)

	count, err = links.BulkDeactivate(context.Background(), baseTime)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryClickStore(t *testing.T) {
	clicks := store.NewMemoryClickStore()

	require.NoError(t, clicks.Record(context.Background(), 1, baseTime.Add(-2*time.Hour)))
	require.NoError(t, clicks.Record(context.Background(), 1, baseTime.Add(-30*time.Minute)))
	require.NoError(t, clicks.Record(context.Background(), 2, baseTime.Add(-30*time.Minute)))

	t.Run("counts only the requested link", func(t *testing.T) {
		count, err := clicks.CountSince(context.Background(), 1, baseTime.Add(-24*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("since bound is inclusive", func(t *testing.T) {
		count, err := clicks.CountSince(context.Background(), 1, baseTime.Add(-30*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unknown link has no clicks", func(t *testing.T) {
		count, err := clicks.CountSince(context.Background(), 42, baseTime.Add(-24*time.Hour))

		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
