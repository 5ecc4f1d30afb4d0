package repositories

import (
	"testing"

	"hela9_backend/internal/models"
	"hela9_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	// 1. Подготовка
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()
	existing := testutil.CreateUser(t, db, models.UserRoleClient)

	// 2. Действие
	err := repo.Create(db, &models.User{
		Name:         "Other",
		Email:        existing.Email,
		PasswordHash: "x",
		Role:         models.UserRoleClient,
	})

	// 3. Проверка
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_CodeLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()
	user := testutil.CreateUser(t, db, models.UserRoleClient, testutil.Unconfirmed("123456"))

	inUse, err := repo.CodeInUse(db, "123456")
	require.NoError(t, err)
	assert.True(t, inUse)

	require.NoError(t, repo.Confirm(db, user.ID))

	reloaded, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsConfirmed)
	assert.Nil(t, reloaded.ConfirmationCode)

	inUse, err = repo.CodeInUse(db, "123456")
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()

	_, err := repo.FindByEmail(db, "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = repo.UpdatePassword(db, "missing-id", "hash")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindNames(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()
	a := testutil.CreateUser(t, db, models.UserRoleClient, testutil.WithName("Amine"))
	b := testutil.CreateUser(t, db, models.UserRoleClient, testutil.WithName("Sara"))

	names, err := repo.FindNames(db, []string{a.ID, b.ID})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{a.ID: "Amine", b.ID: "Sara"}, names)
}
