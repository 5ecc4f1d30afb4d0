package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hela9_backend/internal/models"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/testutil"
	"hela9_backend/pkg/apperrors"
)

func TestSearch_DefaultsToViewerCity(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	viewer := testutil.CreateUser(t, f.db, models.UserRoleClient, testutil.WithCity("Casablanca"))
	low, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, []testutil.UserOption{testutil.WithCity("Casablanca")}, testutil.WithRating(3.9))
	high, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, []testutil.UserOption{testutil.WithCity("Casablanca")}, testutil.WithRating(4.8))
	testutil.CreateStylist(t, f.db, models.CategoryMen, []testutil.UserOption{testutil.WithCity("Rabat")})
	testutil.CreateStylist(t, f.db, models.CategoryMen, []testutil.UserOption{testutil.WithCity("Casablanca")},
		testutil.WithStatus(models.StylistStatusPendingActivation))

	// 2. Действие
	cards, err := f.svc.StylistService.Search(ctx, f.db, viewer.ID, &dto.SearchQuery{Sort: "rating"})

	// 3. Проверка
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, high.ID, cards[0].ID)
	assert.Equal(t, low.ID, cards[1].ID)
	assert.True(t, strings.HasPrefix(cards[0].ProfileImage, "/static/uploads/"))
}

func TestSearch_Filters(t *testing.T) {
	f := newFixture(t)
	testutil.CreateStylist(t, f.db, models.CategoryMen, []testutil.UserOption{testutil.WithCity("Paris")})
	testutil.CreateStylist(t, f.db, models.CategoryMobile, []testutil.UserOption{testutil.WithCity("Lyon")})

	all, err := f.svc.StylistService.Search(ctx, f.db, "", &dto.SearchQuery{City: "all", Category: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mobile, err := f.svc.StylistService.Search(ctx, f.db, "", &dto.SearchQuery{Category: "Mobile"})
	require.NoError(t, err)
	require.Len(t, mobile, 1)
	assert.Equal(t, models.CategoryMobile, mobile[0].Category)

	_, err = f.svc.StylistService.Search(ctx, f.db, "", &dto.SearchQuery{Category: "Kids"})
	assert.Equal(t, 400, apperrors.StatusCode(err))
}

func TestNearby(t *testing.T) {
	f := newFixture(t)
	// ~1.1 км и ~111 км от точки поиска
	near, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil, testutil.WithLocation(33.5831, -7.6034))
	testutil.CreateStylist(t, f.db, models.CategoryMen, nil, testutil.WithLocation(34.5731, -7.6034))
	testutil.CreateStylist(t, f.db, models.CategoryMen, nil)

	out, err := f.svc.StylistService.Nearby(ctx, f.db, 33.5731, -7.6034)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, near.ID, out[0].ID)
	assert.InDelta(t, 1.1, out[0].DistanceKm, 0.0001)
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(48.85, 2.35, 48.85, 2.35), 1e-9)
	// Париж - Лион
	assert.InDelta(t, 392, HaversineKm(48.8566, 2.3522, 45.7640, 4.8357), 2)
}

func TestGetProfile_Visibility(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	f.setNow(now)
	viewer := testutil.CreateUser(t, f.db, models.UserRoleClient)
	pending, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil, testutil.WithStatus(models.StylistStatusPendingActivation))
	active, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil, testutil.WithTrial(now.AddDate(0, 0, -20), now.AddDate(0, 0, 10)))

	_, err := f.svc.StylistService.GetProfile(ctx, f.db, viewer.ID, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotActive)

	own, err := f.svc.StylistService.GetProfile(ctx, f.db, pending.ID, pending.ID)
	require.NoError(t, err)
	assert.True(t, own.IsOwner)

	public, err := f.svc.StylistService.GetProfile(ctx, f.db, viewer.ID, active.ID)
	require.NoError(t, err)
	assert.Nil(t, public.Trial)
	assert.NotNil(t, public.Services)

	owner, err := f.svc.StylistService.GetProfile(ctx, f.db, active.ID, active.ID)
	require.NoError(t, err)
	require.NotNil(t, owner.Trial)
	assert.False(t, owner.Trial.Expired)
	assert.Equal(t, 10, owner.Trial.DaysLeft)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil)
	other, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil)
	capacity, waiting := 3, -4
	name := "Salon Atlas"

	_, err := f.svc.StylistService.UpdateProfile(ctx, f.db, other.ID, stylist.ID, &dto.UpdateProfileRequest{DisplayName: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	resp, err := f.svc.StylistService.UpdateProfile(ctx, f.db, stylist.ID, stylist.ID, &dto.UpdateProfileRequest{
		DisplayName: &name, CurrentCapacity: &capacity, WaitingCount: &waiting,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.CurrentCapacity)
	assert.Zero(t, resp.WaitingCount)

	var user models.User
	require.NoError(t, f.db.First(&user, "id = ?", stylist.ID).Error)
	assert.Equal(t, name, user.Name)
}

func TestUploadAvatar_ReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryMen, nil)

	first, err := f.svc.StylistService.UploadAvatar(ctx, f.db, stylist.ID, imageFile(t, "me.png"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.storage.Count())

	_, err = f.svc.StylistService.UploadAvatar(ctx, f.db, stylist.ID, imageFile(t, "me2.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.storage.Count())
	assert.False(t, f.storage.Has(strings.TrimPrefix(first.ImageURL, "/static/uploads/")))
}

func TestAdminActivation(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateUser(t, f.db, models.UserRoleAdmin)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)
	pending, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, nil, testutil.WithStatus(models.StylistStatusPendingActivation))
	active, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, nil)

	_, err := f.svc.StylistService.ListPending(ctx, f.db, client.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	list, err := f.svc.StylistService.ListPending(ctx, f.db, admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pending.ID, list[0].ID)

	resp, err := f.svc.StylistService.Approve(ctx, f.db, admin.ID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StylistStatusActive, resp.Status)

	_, err = f.svc.StylistService.Reject(ctx, f.db, admin.ID, active.ID)
	assert.ErrorIs(t, err, apperrors.ErrStylistNotPendingActivation)
}

func TestTrialState(t *testing.T) {
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -30)
	end := now.Add(-time.Hour)

	state := TrialState(&models.StylistProfile{TrialStart: &start, TrialEnd: &end}, now)

	assert.True(t, state.Expired)
	assert.Zero(t, state.DaysLeft)
	assert.False(t, TrialState(&models.StylistProfile{}, now).Expired)
}
