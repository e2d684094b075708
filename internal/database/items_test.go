package database

import (
	"context"
	"testing"

	"lendit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestItem(t *testing.T, db *DB, ownerID int64, name string, available bool) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:        name,
		Description: name + " description",
		Available:   available,
		OwnerID:     ownerID,
	}
	require.NoError(t, db.CreateItem(context.Background(), item))
	require.NotZero(t, item.ID)
	return item
}

func TestCreateAndGetItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Анна", "anna@example.com")
	item := createTestItem(t, db, owner.ID, "Дрель", true)

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Дрель", got.Name)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.True(t, got.Available)
	assert.Nil(t, got.RequestID)
}

func TestGetItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetItem(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateItemWithRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Анна", "anna@example.com")
	requester := createTestUser(t, db, "Павел", "pavel@example.com")

	request := &models.ItemRequest{Description: "Нужна дрель", RequesterID: requester.ID}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{
		Name:        "Дрель",
		Description: "Ударная дрель",
		Available:   true,
		OwnerID:     owner.ID,
		RequestID:   &request.ID,
	}
	require.NoError(t, db.CreateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RequestID)
	assert.Equal(t, request.ID, *got.RequestID)

	byRequest, err := db.GetItemsByRequest(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, byRequest, 1)
	assert.Equal(t, item.ID, byRequest[0].ID)
}

func TestUpdateItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Анна", "anna@example.com")
	item := createTestItem(t, db, owner.ID, "Дрель", true)

	item.Name = "Дрель Makita"
	item.Available = false
	require.NoError(t, db.UpdateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Дрель Makita", got.Name)
	assert.False(t, got.Available)
}

func TestGetItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	anna := createTestUser(t, db, "Анна", "anna@example.com")
	pavel := createTestUser(t, db, "Павел", "pavel@example.com")

	createTestItem(t, db, anna.ID, "Дрель", true)
	createTestItem(t, db, anna.ID, "Палатка", true)
	createTestItem(t, db, pavel.ID, "Проектор", true)

	items, err := db.GetItemsByOwner(ctx, anna.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Пагинация
	items, err = db.GetItemsByOwner(ctx, anna.ID, 1, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Анна", "anna@example.com")

	createTestItem(t, db, owner.ID, "Cordless Drill", true)
	unavailable := &models.Item{Name: "Old drill", Description: "broken", Available: false, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, unavailable))
	byDescription := &models.Item{Name: "Screwdriver", Description: "comes with drill bits", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, byDescription))

	// Регистронезависимый поиск по имени и описанию, только доступные вещи
	found, err := db.SearchItems(ctx, "DRILL", 10, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = db.SearchItems(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}
