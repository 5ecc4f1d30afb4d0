package repositories

import (
	"testing"

	"hela9_backend/internal/models"
	"hela9_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stylistIDs(rows []StylistRow) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	return ids
}

func TestStylistRepository_SearchFiltersAndSorts(t *testing.T) {
	// 1. Подготовка
	db := testutil.NewTestDB(t)
	repo := NewStylistRepository()

	paris := []testutil.UserOption{testutil.WithCity("Paris")}
	lyon := []testutil.UserOption{testutil.WithCity("Lyon")}

	low, _ := testutil.CreateStylist(t, db, models.CategoryMen, paris, testutil.WithRating(3.9), testutil.WithWaiting(1))
	high, _ := testutil.CreateStylist(t, db, models.CategoryWomen, paris, testutil.WithRating(4.8), testutil.WithWaiting(5))
	mobile, _ := testutil.CreateStylist(t, db, models.CategoryMobile, paris, testutil.WithRating(4.1), testutil.WithWaiting(0))
	testutil.CreateStylist(t, db, models.CategoryMen, lyon)
	testutil.CreateStylist(t, db, models.CategoryMen, paris, testutil.WithStatus(models.StylistStatusPendingEmailConfirmation))

	// 2. Действие + 3. Проверка
	rows, err := repo.Search(db, StylistFilter{City: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, []string{high.ID, mobile.ID, low.ID}, stylistIDs(rows))

	rows, err = repo.Search(db, StylistFilter{City: "Paris", Sort: SortByWaiting})
	require.NoError(t, err)
	assert.Equal(t, []string{mobile.ID, low.ID, high.ID}, stylistIDs(rows))

	rows, err = repo.Search(db, StylistFilter{City: "Paris", Sort: SortMobile})
	require.NoError(t, err)
	assert.Equal(t, []string{mobile.ID}, stylistIDs(rows))

	rows, err = repo.Search(db, StylistFilter{Category: models.CategoryMen})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.ElementsMatch(t, []string{"Paris", "Lyon"}, []string{rows[0].City, rows[1].City})
}

func TestStylistRepository_ActiveWithLocation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewStylistRepository()

	located, _ := testutil.CreateStylist(t, db, models.CategoryMen, nil, testutil.WithLocation(48.86, 2.34))
	testutil.CreateStylist(t, db, models.CategoryMen, nil)

	rows, err := repo.FindActiveWithLocation(db)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, located.ID, rows[0].UserID)
	assert.InDelta(t, 48.86, *rows[0].Latitude, 1e-9)
}

func TestStylistRepository_ActiveIDsByCategory(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewStylistRepository()

	m1, _ := testutil.CreateStylist(t, db, models.CategoryMobile, nil)
	testutil.CreateStylist(t, db, models.CategoryMobile, nil, testutil.WithStatus(models.StylistStatusRejected))
	testutil.CreateStylist(t, db, models.CategoryWomen, nil)

	ids, err := repo.FindActiveIDsByCategory(db, models.CategoryMobile)

	require.NoError(t, err)
	assert.Equal(t, []string{m1.ID}, ids)
}
