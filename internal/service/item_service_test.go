package service

import (
	"context"
	"testing"

	"lendit/internal/database"
	"lendit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(1)).Return(true, nil)
	repo.On("CreateItem", mock.Anything, mock.AnythingOfType("*models.Item")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Item).ID = 7
	}).Return(nil)

	item := &models.Item{Name: "  Дрель  ", Description: "Ударная дрель", Available: true}
	require.NoError(t, svc.CreateItem(context.Background(), 1, item))
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, "Дрель", item.Name)
	assert.Equal(t, int64(1), item.OwnerID)
}

func TestCreateItemUnknownOwner(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(99)).Return(false, nil)

	item := &models.Item{Name: "Дрель", Description: "Ударная дрель", Available: true}
	err := svc.CreateItem(context.Background(), 99, item)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCreateItemMissingFields(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(1)).Return(true, nil)

	err := svc.CreateItem(context.Background(), 1, &models.Item{Description: "без имени"})
	assert.ErrorIs(t, err, database.ErrInvalidCondition)

	err = svc.CreateItem(context.Background(), 1, &models.Item{Name: "без описания"})
	assert.ErrorIs(t, err, database.ErrInvalidCondition)
}

func TestCreateItemUnknownRequest(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(1)).Return(true, nil)
	repo.On("GetRequest", mock.Anything, int64(5)).Return(nil, database.ErrNotFound)

	requestID := int64(5)
	item := &models.Item{Name: "Дрель", Description: "По запросу", Available: true, RequestID: &requestID}
	err := svc.CreateItem(context.Background(), 1, item)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestUpdateItemOwnerOnly(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("GetItem", mock.Anything, int64(7)).Return(&models.Item{ID: 7, Name: "Дрель", OwnerID: 1}, nil)

	_, err := svc.UpdateItem(context.Background(), 2, 7, models.ItemPatch{})
	assert.ErrorIs(t, err, database.ErrForbidden)
}

func TestUpdateItemPatch(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("GetItem", mock.Anything, int64(7)).
		Return(&models.Item{ID: 7, Name: "Дрель", Description: "старое", Available: true, OwnerID: 1}, nil)
	repo.On("UpdateItem", mock.Anything, mock.AnythingOfType("*models.Item")).Return(nil)

	available := false
	updated, err := svc.UpdateItem(context.Background(), 1, 7, models.ItemPatch{Available: &available})
	require.NoError(t, err)
	assert.False(t, updated.Available)
	// Остальные поля не тронуты
	assert.Equal(t, "Дрель", updated.Name)
	assert.Equal(t, "старое", updated.Description)
}

func TestGetItemDetailOwnerView(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("GetItem", mock.Anything, int64(7)).Return(&models.Item{ID: 7, OwnerID: 1}, nil)
	repo.On("GetCommentsByItem", mock.Anything, int64(7)).Return([]models.Comment{{ID: 3, Text: "ок"}}, nil)
	repo.On("GetLastBooking", mock.Anything, int64(7), mock.AnythingOfType("time.Time")).
		Return(&models.BookingSummary{ID: 10, BookerID: 2}, nil)
	repo.On("GetNextBooking", mock.Anything, int64(7), mock.AnythingOfType("time.Time")).
		Return(&models.BookingSummary{ID: 11, BookerID: 3}, nil)

	detail, err := svc.GetItemDetail(context.Background(), 1, 7)
	require.NoError(t, err)
	require.NotNil(t, detail.LastBooking)
	require.NotNil(t, detail.NextBooking)
	assert.Equal(t, int64(10), detail.LastBooking.ID)
	assert.Len(t, detail.Comments, 1)
}

func TestGetItemDetailNonOwnerHidesBookings(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("GetItem", mock.Anything, int64(7)).Return(&models.Item{ID: 7, OwnerID: 1}, nil)
	repo.On("GetCommentsByItem", mock.Anything, int64(7)).Return([]models.Comment{}, nil)

	detail, err := svc.GetItemDetail(context.Background(), 2, 7)
	require.NoError(t, err)
	assert.Nil(t, detail.LastBooking)
	assert.Nil(t, detail.NextBooking)
	// GetLastBooking/GetNextBooking не вызывались
	repo.AssertNotCalled(t, "GetLastBooking", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetNextBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddComment(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("GetUser", mock.Anything, int64(2)).Return(&models.User{ID: 2, Name: "Павел"}, nil)
	repo.On("GetItem", mock.Anything, int64(7)).Return(&models.Item{ID: 7, OwnerID: 1}, nil)
	repo.On("HasFinishedBooking", mock.Anything, int64(7), int64(2), mock.AnythingOfType("time.Time")).Return(true, nil)
	repo.On("CreateComment", mock.Anything, mock.AnythingOfType("*models.Comment")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 3
	}).Return(nil)

	comment, err := svc.AddComment(context.Background(), 2, 7, "Отличная дрель")
	require.NoError(t, err)
	assert.Equal(t, int64(3), comment.ID)
	assert.Equal(t, "Павел", comment.AuthorName)
}

func TestAddCommentWithoutFinishedBooking(t *testing.T) {
	repo := new(mockRepo)
	svc := NewItemService(repo, testLogger())

	repo.On("GetUser", mock.Anything, int64(2)).Return(&models.User{ID: 2, Name: "Павел"}, nil)
	repo.On("GetItem", mock.Anything, int64(7)).Return(&models.Item{ID: 7, OwnerID: 1}, nil)
	repo.On("HasFinishedBooking", mock.Anything, int64(7), int64(2), mock.AnythingOfType("time.Time")).Return(false, nil)

	_, err := svc.AddComment(context.Background(), 2, 7, "Отличная дрель")
	assert.ErrorIs(t, err, database.ErrInvalidCondition)
}

func TestAddCommentBlankText(t *testing.T) {
	svc := NewItemService(new(mockRepo), testLogger())

	_, err := svc.AddComment(context.Background(), 2, 7, "   ")
	assert.ErrorIs(t, err, database.ErrInvalidCondition)
}
