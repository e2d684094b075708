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

func TestCreateRequest(t *testing.T) {
	repo := new(mockRepo)
	svc := NewRequestService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(2)).Return(true, nil)
	repo.On("CreateRequest", mock.Anything, mock.AnythingOfType("*models.ItemRequest")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.ItemRequest).ID = 5
	}).Return(nil)

	request, err := svc.CreateRequest(context.Background(), 2, "  Нужна дрель  ")
	require.NoError(t, err)
	assert.Equal(t, int64(5), request.ID)
	assert.Equal(t, "Нужна дрель", request.Description)
	assert.Equal(t, int64(2), request.RequesterID)
}

func TestCreateRequestBlankDescription(t *testing.T) {
	svc := NewRequestService(new(mockRepo), testLogger())

	_, err := svc.CreateRequest(context.Background(), 2, "   ")
	assert.ErrorIs(t, err, database.ErrInvalidCondition)
}

func TestCreateRequestUnknownUser(t *testing.T) {
	repo := new(mockRepo)
	svc := NewRequestService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(99)).Return(false, nil)

	_, err := svc.CreateRequest(context.Background(), 99, "Нужна дрель")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGetOwnRequestsEnriched(t *testing.T) {
	repo := new(mockRepo)
	svc := NewRequestService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(2)).Return(true, nil)
	repo.On("GetRequestsByRequester", mock.Anything, int64(2)).
		Return([]models.ItemRequest{{ID: 5, Description: "Нужна дрель", RequesterID: 2}}, nil)
	repo.On("GetItemsByRequest", mock.Anything, int64(5)).
		Return([]models.Item{{ID: 7, Name: "Дрель"}}, nil)

	details, err := svc.GetOwnRequests(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Items, 1)
	assert.Equal(t, "Дрель", details[0].Items[0].Name)
}

func TestGetOtherRequestsPaginated(t *testing.T) {
	repo := new(mockRepo)
	svc := NewRequestService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(2)).Return(true, nil)
	repo.On("GetOtherRequests", mock.Anything, int64(2), 5, 10).
		Return([]models.ItemRequest{{ID: 6, RequesterID: 3}}, nil)
	repo.On("GetItemsByRequest", mock.Anything, int64(6)).Return([]models.Item{}, nil)

	details, err := svc.GetOtherRequests(context.Background(), 2, models.PageRequest{From: 10, Size: 5})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Empty(t, details[0].Items)
}

func TestGetRequestNotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewRequestService(repo, testLogger())

	repo.On("UserExists", mock.Anything, int64(2)).Return(true, nil)
	repo.On("GetRequest", mock.Anything, int64(99)).Return(nil, database.ErrNotFound)

	_, err := svc.GetRequest(context.Background(), 2, 99)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
