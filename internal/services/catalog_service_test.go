package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hela9_backend/internal/imageprocessor"
	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/testutil"
	"hela9_backend/pkg/apperrors"
)

func TestCatalog_ServicesAndMenu(t *testing.T) {
	f := newFixture(t)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil)
	other, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil)

	_, err := f.svc.CatalogService.AddService(ctx, f.db, stylist.ID, &dto.ServiceRequest{Name: "Brushing", Price: decimal.NewFromInt(-1)})
	assert.Equal(t, 400, apperrors.StatusCode(err))

	svc, err := f.svc.CatalogService.AddService(ctx, f.db, stylist.ID, &dto.ServiceRequest{Name: "Brushing", Price: decimal.RequireFromString("25.50")})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(30)
	updated, err := f.svc.CatalogService.UpdateService(ctx, f.db, stylist.ID, svc.ID, &dto.UpdateServiceRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "Brushing", updated.Name)

	assert.Error(t, f.svc.CatalogService.DeleteService(ctx, f.db, other.ID, svc.ID))
	require.NoError(t, f.svc.CatalogService.DeleteService(ctx, f.db, stylist.ID, svc.ID))

	item, err := f.svc.CatalogService.AddMenuItem(ctx, f.db, stylist.ID, &dto.MenuItemRequest{Name: "Soin kératine", Price: decimal.NewFromInt(60)})
	require.NoError(t, err)

	profile, err := f.svc.StylistService.GetProfile(ctx, f.db, "", stylist.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Services)
	require.Len(t, profile.Menu, 1)
	assert.Equal(t, item.ID, profile.Menu[0].ID)
}

func TestCatalog_PhotoLifecycle(t *testing.T) {
	f := newFixture(t)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil)

	photo, err := f.svc.CatalogService.AddPhoto(ctx, f.db, stylist.ID, imageFile(t, "work.png"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.storage.Count())

	require.NoError(t, f.svc.CatalogService.DeletePhoto(ctx, f.db, stylist.ID, photo.ID))
	assert.Zero(t, f.storage.Count())
}

func TestAddReview(t *testing.T) {
	f := newFixture(t)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient, testutil.WithName("Karim"))

	_, err := f.svc.ReviewService.AddReview(ctx, f.db, client.ID, "missing", &dto.ReviewRequest{Text: "Top"})
	assert.ErrorIs(t, err, apperrors.ErrStylistNotFound)

	resp, err := f.svc.ReviewService.AddReview(ctx, f.db, client.ID, stylist.ID, &dto.ReviewRequest{Text: "Top"})
	require.NoError(t, err)
	assert.Equal(t, "Karim", resp.ClientName)
}

// Если коммит не прошел, файл не должен остаться в хранилище.
func TestAddPhoto_CommitFailureRemovesFile(t *testing.T) {
	// 1. Подготовка
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "email", "role", "is_confirmed", "created_at", "updated_at"}).
			AddRow("stylist-1", "Hamza", "hamza@example.com", string(models.UserRoleStylist), true, now, now))
	mock.ExpectQuery(`SELECT \* FROM "stylist_profiles"`).WillReturnRows(
		sqlmock.NewRows([]string{"user_id", "category", "status"}).
			AddRow("stylist-1", string(models.CategoryMen), string(models.StylistStatusActive)))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "photos"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	store := testutil.NewMemoryStorage()
	uploads := NewUploadService(store, imageprocessor.NewProcessor(80, 64), 1<<20)
	svc := NewCatalogService(
		repositories.NewUserRepository(),
		repositories.NewStylistRepository(),
		repositories.NewCatalogRepository(),
		uploads,
	)

	// 2. Действие
	_, err = svc.AddPhoto(ctx, db, "stylist-1", imageFile(t, "work.png"))

	// 3. Проверка
	assert.Equal(t, 500, apperrors.StatusCode(err))
	assert.Zero(t, store.Count())
	assert.NoError(t, mock.ExpectationsWereMet())
}
