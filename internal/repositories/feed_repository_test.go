package repositories

import (
	"testing"
	"time"

	"hela9_backend/internal/models"
	"hela9_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicationRepository_LikeIsIdempotent(t *testing.T) {
	// 1. Подготовка
	db := testutil.NewTestDB(t)
	repo := NewPublicationRepository()
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryWomen, nil)
	client := testutil.CreateUser(t, db, models.UserRoleClient)
	pub := &models.Publication{AuthorID: stylist.ID, Text: "New look"}
	require.NoError(t, repo.CreatePublication(db, pub))

	// 2. Действие
	require.NoError(t, repo.Like(db, pub.ID, client.ID))
	require.NoError(t, repo.Like(db, pub.ID, client.ID))

	// 3. Проверка
	count, err := repo.CountLikes(db, pub.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	liked, err := repo.LikedBy(db, []string{pub.ID}, client.ID)
	require.NoError(t, err)
	assert.True(t, liked[pub.ID])

	require.NoError(t, repo.Unlike(db, pub.ID, client.ID))
	require.NoError(t, repo.Unlike(db, pub.ID, client.ID))
	count, err = repo.CountLikes(db, pub.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestPublicationRepository_ImagesRoundTripInOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPublicationRepository()
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryWomen, nil)

	pub := &models.Publication{AuthorID: stylist.ID, Images: []string{"b.png", "a.jpg"}}
	require.NoError(t, repo.CreatePublication(db, pub))

	loaded, err := repo.FindByID(db, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.png", "a.jpg"}, []string(loaded.Images))
}

func TestPublicationRepository_CommentsGroupedOldestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPublicationRepository()
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryWomen, nil)
	client := testutil.CreateUser(t, db, models.UserRoleClient, testutil.WithName("Nadia"))
	pub := &models.Publication{AuthorID: stylist.ID, Text: "x"}
	require.NoError(t, repo.CreatePublication(db, pub))

	base := time.Now().Add(-time.Hour)
	second := &models.PublicationComment{PublicationID: pub.ID, AuthorID: client.ID, Text: "second"}
	second.CreatedAt = base.Add(time.Minute)
	first := &models.PublicationComment{PublicationID: pub.ID, AuthorID: client.ID, Text: "first"}
	first.CreatedAt = base
	require.NoError(t, repo.CreateComment(db, second))
	require.NoError(t, repo.CreateComment(db, first))

	grouped, err := repo.ListComments(db, []string{pub.ID})

	require.NoError(t, err)
	require.Len(t, grouped[pub.ID], 2)
	assert.Equal(t, "first", grouped[pub.ID][0].Text)
	assert.Equal(t, "Nadia", grouped[pub.ID][0].AuthorName)
}

func TestSubscriptionRepository_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository()
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryMen, nil)
	client := testutil.CreateUser(t, db, models.UserRoleClient)

	require.NoError(t, repo.Subscribe(db, client.ID, stylist.ID))
	require.NoError(t, repo.Subscribe(db, client.ID, stylist.ID))

	count, err := repo.CountSubscribers(db, stylist.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.Unsubscribe(db, client.ID, stylist.ID))
	subscribed, err := repo.IsSubscribed(db, client.ID, stylist.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)
}
