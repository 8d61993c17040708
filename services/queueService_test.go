package services

import (
	"ClinicFlow/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPageMetaFirstPage(t *testing.T) {
	meta := BuildPageMeta(1, 10, 25)

	assert.Equal(t, 1, meta.CurrentPage)
	assert.Nil(t, meta.PreviousPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 2, *meta.NextPage)
	require.NotNil(t, meta.TotalPage)
	assert.Equal(t, 3, *meta.TotalPage)
	assert.Equal(t, int64(25), meta.TotalData)
}

func TestBuildPageMetaMiddlePage(t *testing.T) {
	meta := BuildPageMeta(2, 10, 25)

	require.NotNil(t, meta.PreviousPage)
	assert.Equal(t, 1, *meta.PreviousPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 3, *meta.NextPage)
}

func TestBuildPageMetaLastPage(t *testing.T) {
	meta := BuildPageMeta(3, 10, 25)

	require.NotNil(t, meta.PreviousPage)
	assert.Equal(t, 2, *meta.PreviousPage)
	assert.Nil(t, meta.NextPage)
}

func TestBuildPageMetaExactFit(t *testing.T) {
	// 20 rows at 10 per page is exactly 2 pages, no partial third.
	meta := BuildPageMeta(2, 10, 20)

	require.NotNil(t, meta.TotalPage)
	assert.Equal(t, 2, *meta.TotalPage)
	assert.Nil(t, meta.NextPage)
}

func TestBuildPageMetaEmptyResult(t *testing.T) {
	meta := BuildPageMeta(1, 10, 0)

	require.NotNil(t, meta.TotalPage)
	assert.Equal(t, 0, *meta.TotalPage)
	assert.Nil(t, meta.PreviousPage)
	assert.Nil(t, meta.NextPage)
	assert.Equal(t, int64(0), meta.TotalData)
}

func TestUnpaginatedMetaHasNilTotalPage(t *testing.T) {
	meta := UnpaginatedMeta(7)

	assert.Equal(t, 1, meta.CurrentPage)
	assert.Nil(t, meta.TotalPage)
	assert.Nil(t, meta.PreviousPage)
	assert.Nil(t, meta.NextPage)
	assert.Equal(t, int64(7), meta.TotalData)
}

func TestSplitQueueEmpty(t *testing.T) {
	view := splitQueue(nil)

	assert.Nil(t, view.Current)
	assert.Empty(t, view.NextQueues)
	assert.NotNil(t, view.NextQueues)
}

func TestSplitQueueSingleEntry(t *testing.T) {
	view := splitQueue([]models.CareSession{
		{ID: 1, QueueNumber: "U001"},
	})

	require.NotNil(t, view.Current)
	assert.Equal(t, "U001", view.Current.QueueNumber)
	assert.Empty(t, view.NextQueues)
}

func TestSplitQueuePreservesArrivalOrder(t *testing.T) {
	view := splitQueue([]models.CareSession{
		{ID: 1, QueueNumber: "U001"},
		{ID: 2, QueueNumber: "U002"},
		{ID: 3, QueueNumber: "U003"},
	})

	require.NotNil(t, view.Current)
	assert.Equal(t, "U001", view.Current.QueueNumber)
	require.Len(t, view.NextQueues, 2)
	assert.Equal(t, QueueEntry{ID: 2, QueueNumber: "U002"}, view.NextQueues[0])
	assert.Equal(t, QueueEntry{ID: 3, QueueNumber: "U003"}, view.NextQueues[1])
}
