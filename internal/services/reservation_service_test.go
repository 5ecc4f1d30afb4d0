package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hela9_backend/internal/models"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/testutil"
	"hela9_backend/pkg/apperrors"
)

func TestReserve(t *testing.T) {
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient, testutil.WithName("Omar"))
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil)
	other, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil)
	inactive, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil, testutil.WithStatus(models.StylistStatusRejected))

	svc, err := f.svc.CatalogService.AddService(ctx, f.db, stylist.ID, &dto.ServiceRequest{Name: "Dégradé", Price: decimal.NewFromInt(15)})
	require.NoError(t, err)
	foreign, err := f.svc.CatalogService.AddService(ctx, f.db, other.ID, &dto.ServiceRequest{Name: "Barbe", Price: decimal.NewFromInt(8)})
	require.NoError(t, err)

	t.Run("service of another stylist", func(t *testing.T) {
		_, err := f.svc.ReservationService.Reserve(ctx, f.db, client.ID, &dto.ReserveRequest{StylistID: stylist.ID, ServiceID: &foreign.ID, Date: "2099-01-02", Time: "10:00"})
		assert.ErrorIs(t, err, apperrors.ErrServiceNotOfStylist)
	})

	t.Run("inactive stylist", func(t *testing.T) {
		_, err := f.svc.ReservationService.Reserve(ctx, f.db, client.ID, &dto.ReserveRequest{StylistID: inactive.ID, Date: "2099-01-02", Time: "10:00"})
		assert.ErrorIs(t, err, apperrors.ErrProfileNotActive)
	})

	t.Run("bad time", func(t *testing.T) {
		_, err := f.svc.ReservationService.Reserve(ctx, f.db, client.ID, &dto.ReserveRequest{StylistID: stylist.ID, Date: "2099-01-02", Time: "10h"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidDateTime)
	})

	t.Run("created pending", func(t *testing.T) {
		resp, err := f.svc.ReservationService.Reserve(ctx, f.db, client.ID, &dto.ReserveRequest{StylistID: stylist.ID, ServiceID: &svc.ID, Date: "2099-01-02", Time: "10:00"})
		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusPending, resp.Status)

		items, err := f.svc.ReservationService.ListForStylist(ctx, f.db, stylist.ID, stylist.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Omar", items[0].ClientName)
		assert.Equal(t, "Dégradé", items[0].Service)
	})

	_, err = f.svc.ReservationService.ListForStylist(ctx, f.db, other.ID, stylist.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
}

func TestReservationStatusUpdate(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil)
	intruder, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil)
	created, err := f.svc.ReservationService.Reserve(ctx, f.db, client.ID, &dto.ReserveRequest{StylistID: stylist.ID, Date: "2099-03-04", Time: "09:30"})
	require.NoError(t, err)

	// 2. Действие
	resp, err := f.svc.ReservationService.UpdateStatus(ctx, f.db, stylist.ID, created.ID, &dto.ReservationStatusRequest{Status: "Confirmed"})

	// 3. Проверка
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, resp.NewStatus)
	assert.Equal(t, "Reservation "+created.ID+" status updated to Confirmed successfully.", resp.Message)

	_, err = f.svc.ReservationService.UpdateStatus(ctx, f.db, intruder.ID, created.ID, &dto.ReservationStatusRequest{Status: "Cancelled"})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	_, err = f.svc.ReservationService.UpdateStatus(ctx, f.db, stylist.ID, created.ID, &dto.ReservationStatusRequest{Status: "Done"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReservationStatus)

	upcoming, err := f.svc.DashboardService.Get(ctx, f.db, client.ID)
	require.NoError(t, err)
	require.NotNil(t, upcoming.Client)
	require.Len(t, upcoming.Client.Reservations, 1)
	assert.Equal(t, models.ReservationStatusConfirmed, upcoming.Client.Reservations[0].Status)
}

func TestDashboard_Stylist(t *testing.T) {
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)
	mobile, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, nil)
	_, err := f.svc.DeplacementService.Broadcast(ctx, f.db, client.ID, haircutDowntown())
	require.NoError(t, err)

	resp, err := f.svc.DashboardService.Get(ctx, f.db, mobile.ID)

	require.NoError(t, err)
	require.NotNil(t, resp.Stylist)
	assert.Len(t, resp.Stylist.DeplacementRequests, 1)
	assert.Nil(t, resp.Client)

	unconfirmed := testutil.CreateUser(t, f.db, models.UserRoleClient, testutil.Unconfirmed("555555"))
	_, err = f.svc.DashboardService.Get(ctx, f.db, unconfirmed.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotConfirmed)
}
