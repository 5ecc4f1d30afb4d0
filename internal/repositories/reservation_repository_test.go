package repositories

import (
	"testing"

	"hela9_backend/internal/models"
	"hela9_backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_ListForStylistOrdered(t *testing.T) {
	// 1. Подготовка
	db := testutil.NewTestDB(t)
	repo := NewReservationRepository()
	catalog := NewCatalogRepository()
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryMen, nil)
	client := testutil.CreateUser(t, db, models.UserRoleClient, testutil.WithName("Karim"), testutil.WithPhone(""))

	service := &models.Service{StylistID: stylist.ID, Name: "Fade", Price: decimal.NewFromInt(20)}
	require.NoError(t, catalog.CreateService(db, service))

	late := &models.Reservation{ClientID: client.ID, StylistID: stylist.ID, Date: "2025-06-02", Time: "09:00", Status: models.ReservationStatusPending}
	early := &models.Reservation{ClientID: client.ID, StylistID: stylist.ID, ServiceID: &service.ID, Date: "2025-06-01", Time: "15:30", Status: models.ReservationStatusPending}
	require.NoError(t, repo.CreateReservation(db, late))
	require.NoError(t, repo.CreateReservation(db, early))

	// 2. Действие
	rows, err := repo.ListForStylist(db, stylist.ID)

	// 3. Проверка
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, early.ID, rows[0].ID)
	require.NotNil(t, rows[0].ServiceName)
	assert.Equal(t, "Fade", *rows[0].ServiceName)
	assert.Nil(t, rows[1].ServiceName)
	assert.Equal(t, "Karim", rows[1].ClientName)
	assert.Equal(t, "", rows[1].ClientPhone)
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReservationRepository()
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryMen, nil)
	client := testutil.CreateUser(t, db, models.UserRoleClient)
	r := &models.Reservation{ClientID: client.ID, StylistID: stylist.ID, Date: "2025-06-01", Time: "10:00", Status: models.ReservationStatusPending}
	require.NoError(t, repo.CreateReservation(db, r))

	require.NoError(t, repo.UpdateStatus(db, r.ID, models.ReservationStatusCompleted))
	assert.ErrorIs(t, repo.UpdateStatus(db, "missing", models.ReservationStatusCompleted), ErrReservationNotFound)

	reloaded, err := repo.FindByID(db, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCompleted, reloaded.Status)

	upcoming, err := repo.ListUpcomingForClient(db, client.ID, "2025-01-01")
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestCatalogRepository_ScopedToStylist(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCatalogRepository()
	owner, _ := testutil.CreateStylist(t, db, models.CategoryMen, nil)
	other, _ := testutil.CreateStylist(t, db, models.CategoryMen, nil)

	item := &models.MenuItem{StylistID: owner.ID, Name: "Beard", Price: decimal.RequireFromString("12.50")}
	require.NoError(t, repo.CreateMenuItem(db, item))

	_, err := repo.FindMenuItemForStylist(db, other.ID, item.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	found, err := repo.FindMenuItemForStylist(db, owner.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(found.Price))
}
