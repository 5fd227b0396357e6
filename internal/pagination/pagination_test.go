package pagination_test

import (
	"testing"

	"github.com/serroba/shortlinks/internal/pagination"
	"github.com/stretchr/testify/assert"
)

func TestOffsets(t *testing.T) {
	t.Run("first page starts at zero", func(t *testing.T) {
		min, max := pagination.Offsets(1, 10)

		assert.Equal(t, 0, min)
		assert.Equal(t, 10, max)
	})

	t.Run("later pages advance by the page size", func(t *testing.T) {
		min, max := pagination.Offsets(3, 25)

		assert.Equal(t, 50, min)
		assert.Equal(t, 75, max)
	})
}

func TestPaginate(t *testing.T) {
	t.Run("first page of a three page set", func(t *testing.T) {
		page := pagination.Paginate(1, 10, 25)

		assert.Equal(t, 0, page.OffsetMin)
		assert.Equal(t, 10, page.OffsetMax)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrev)
	})

	t.Run("second to last page already reports no next page", func(t *testing.T) {
		page := pagination.Paginate(2, 10, 25)

		assert.Equal(t, 3, page.TotalPages)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})

	t.Run("last page has no next page", func(t *testing.T) {
		page := pagination.Paginate(3, 10, 25)

		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})

	t.Run("partial final page rounds total pages up", func(t *testing.T) {
		page := pagination.Paginate(1, 10, 11)

		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("exact multiple does not add an empty page", func(t *testing.T) {
		page := pagination.Paginate(1, 10, 30)

		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("empty result set has zero pages", func(t *testing.T) {
		page := pagination.Paginate(1, 10, 0)

		assert.Equal(t, 0, page.TotalPages)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrev)
	})

	t.Run("page beyond the data keeps its requested window", func(t *testing.T) {
		page := pagination.Paginate(5, 10, 25)

		assert.Equal(t, 40, page.OffsetMin)
		assert.Equal(t, 50, page.OffsetMax)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})
}

func TestClamp(t *testing.T) {
	t.Run("window inside the slice is unchanged", func(t *testing.T) {
		min, max := pagination.Clamp(0, 10, 25)

		assert.Equal(t, 0, min)
		assert.Equal(t, 10, max)
	})

	t.Run("window past the end collapses to the length", func(t *testing.T) {
		min, max := pagination.Clamp(30, 40, 25)

		assert.Equal(t, 25, min)
		assert.Equal(t, 25, max)
	})

	t.Run("partial overlap trims only the upper bound", func(t *testing.T) {
		min, max := pagination.Clamp(20, 30, 25)

		assert.Equal(t, 20, min)
		assert.Equal(t, 25, max)
	})
}
