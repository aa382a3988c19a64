package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaranai/yaranai/internal/api"
	"github.com/yaranai/yaranai/internal/domain"
)

func TestItemService_AddBlankTitleMakesNoCall(t *testing.T) {
	srv, items, _, obs := newTestServices(t)

	for _, title := range []string{"", "   ", "\t"} {
		err := items.Add(context.Background(), title, "a description")
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	}

	assert.Empty(t, srv.Calls())
	assert.Empty(t, obs.Events())
}

func TestItemService_AddThenListReflectsItem(t *testing.T) {
	srv, items, _, obs := newTestServices(t)

	require.NoError(t, items.Add(context.Background(), "  Doomscrolling ", "  "))

	got, err := items.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	events := obs.Events()
	require.Len(t, events, 2)
	assert.Equal(t, UseCaseListItems, events[1].UseCase)
	assert.Equal(t, 1, events[1].ItemCount)
	assert.Equal(t, "Doomscrolling", got[0].Title)
	assert.Nil(t, got[0].Description, "blank description is sent as null")
	assert.Equal(t, 1, srv.CallCount(http.MethodPost, "/api/yaranai-items"))
}

func TestItemService_AddFailureIsRequestFailed(t *testing.T) {
	srv, items, _, obs := newTestServices(t)
	srv.Fail(http.MethodPost, "/yaranai-items", http.StatusInternalServerError)

	err := items.Add(context.Background(), "TV", "")

	assert.ErrorIs(t, err, api.ErrRequestFailed)
	events := obs.Events()
	require.Len(t, events, 1)
	assert.Equal(t, UseCaseAddItem, events[0].UseCase)
	assert.True(t, events[0].Failed())
}

func TestItemService_UpdateReturnsRefreshedEstimate(t *testing.T) {
	srv, items, _, obs := newTestServices(t)
	srv.Seed(domain.Item{ID: 3, Title: "Snacks"})
	srv.EstimateHours("Sweets", 1.25)

	got, err := items.Update(context.Background(), 3, domain.ItemPayload{Title: "Sweets"})

	require.NoError(t, err)
	assert.Equal(t, "Sweets", got.Title)
	require.NotNil(t, got.HoursPerDay)
	assert.InDelta(t, 1.25, *got.HoursPerDay, 1e-9)

	events := obs.Events()
	require.Len(t, events, 1)
	assert.Equal(t, UseCaseUpdateItem, events[0].UseCase)
	assert.Equal(t, int64(3), events[0].ItemID)
	assert.False(t, events[0].Failed())
}

func TestItemService_DeleteFailureLeavesServerState(t *testing.T) {
	srv, items, _, _ := newTestServices(t)
	srv.Seed(domain.Item{ID: 7, Title: "Gacha"})
	srv.Fail(http.MethodDelete, "/yaranai-items/{id}", http.StatusServiceUnavailable)

	err := items.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, api.ErrRequestFailed)
	assert.Len(t, srv.Items(), 1)
}

func TestItemService_ListFailure(t *testing.T) {
	srv, items, _, _ := newTestServices(t)
	srv.Fail(http.MethodGet, "/yaranai-items", http.StatusInternalServerError)

	got, err := items.List(context.Background())

	assert.ErrorIs(t, err, api.ErrRequestFailed)
	assert.Nil(t, got)
}
