package database

import (
	"context"
	"os"
	"testing"

	"lendit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, db.CreateUser(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "Анна", "anna@example.com")

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Анна", got.Name)
	assert.Equal(t, "anna@example.com", got.Email)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	createTestUser(t, db, "Анна", "anna@example.com")

	err := db.CreateUser(ctx, &models.User{Name: "Другая Анна", Email: "anna@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	createTestUser(t, db, "Анна", "anna@example.com")
	createTestUser(t, db, "Павел", "pavel@example.com")

	users, err := db.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "Анна", "anna@example.com")

	newName := "Анна Смирнова"
	updated, err := db.UpdateUser(ctx, user.ID, models.UserPatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Анна Смирнова", updated.Name)
	// Email не менялся
	assert.Equal(t, "anna@example.com", updated.Email)

	newEmail := "anna.s@example.com"
	updated, err = db.UpdateUser(ctx, user.ID, models.UserPatch{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "anna.s@example.com", updated.Email)
	assert.Equal(t, "Анна Смирнова", updated.Name)
}

func TestUpdateUserSameEmailAllowed(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "Анна", "anna@example.com")

	// Обновление на собственный email не считается дубликатом
	email := "anna@example.com"
	_, err := db.UpdateUser(ctx, user.ID, models.UserPatch{Email: &email})
	assert.NoError(t, err)
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	createTestUser(t, db, "Анна", "anna@example.com")
	user := createTestUser(t, db, "Павел", "pavel@example.com")

	email := "anna@example.com"
	_, err := db.UpdateUser(ctx, user.ID, models.UserPatch{Email: &email})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	name := "Никто"
	_, err := db.UpdateUser(context.Background(), 999, models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := createTestUser(t, db, "Анна", "anna@example.com")

	item := &models.Item{Name: "Дрель", Description: "Ударная дрель", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	require.NoError(t, db.DeleteUser(ctx, owner.ID))

	_, err := db.GetUser(ctx, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.DeleteUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserExists(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "Анна", "anna@example.com")

	ok, err := db.UserExists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.UserExists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}
