package repositories

import (
	"testing"

	"hela9_backend/internal/models"
	"hela9_backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBroadcast(t *testing.T, db *gorm.DB, repo DeplacementRepository, clientID string) *models.DeplacementRequest {
	t.Helper()
	req := &models.DeplacementRequest{
		ClientID:         clientID,
		ServiceRequested: "haircut",
		ClientLocation:   "Downtown",
		PreferredDate:    "2025-06-01",
		PreferredTime:    "10:00",
		Status:           models.DeplacementStatusPending,
	}
	require.NoError(t, repo.CreateRequest(db, req))
	return req
}

func newProposal(t *testing.T, db *gorm.DB, repo DeplacementRepository, req *models.DeplacementRequest, stylistID string, price int64) *models.PriceProposal {
	t.Helper()
	p := &models.PriceProposal{
		RequestID:     req.ID,
		StylistID:     stylistID,
		ClientID:      req.ClientID,
		ProposedPrice: decimal.NewFromInt(price),
		Status:        models.ProposalStatusPending,
	}
	require.NoError(t, repo.CreateProposal(db, p))
	return p
}

func TestDeplacementRepository_DuplicateProposal(t *testing.T) {
	// 1. Подготовка
	db := testutil.NewTestDB(t)
	repo := NewDeplacementRepository()
	client := testutil.CreateUser(t, db, models.UserRoleClient)
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryMobile, nil)
	req := newBroadcast(t, db, repo, client.ID)
	newProposal(t, db, repo, req, stylist.ID, 50)

	// 2. Действие
	err := repo.CreateProposal(db, &models.PriceProposal{
		RequestID:     req.ID,
		StylistID:     stylist.ID,
		ClientID:      client.ID,
		ProposedPrice: decimal.NewFromInt(40),
		Status:        models.ProposalStatusPending,
	})

	// 3. Проверка
	assert.ErrorIs(t, err, ErrProposalExists)
}

func TestDeplacementRepository_RefusePendingSiblings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDeplacementRepository()
	client := testutil.CreateUser(t, db, models.UserRoleClient)
	a, _ := testutil.CreateStylist(t, db, models.CategoryMobile, nil)
	b, _ := testutil.CreateStylist(t, db, models.CategoryMobile, nil)
	c, _ := testutil.CreateStylist(t, db, models.CategoryMobile, nil)
	req := newBroadcast(t, db, repo, client.ID)
	pa := newProposal(t, db, repo, req, a.ID, 50)
	pb := newProposal(t, db, repo, req, b.ID, 60)
	pc := newProposal(t, db, repo, req, c.ID, 70)
	require.NoError(t, repo.SetProposalStatus(db, pc.ID, models.ProposalStatusRefused))

	refused, err := repo.RefusePendingSiblings(db, req.ID, pa.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, refused)

	var sibling models.PriceProposal
	require.NoError(t, db.First(&sibling, "id = ?", pb.ID).Error)
	assert.Equal(t, models.ProposalStatusRefused, sibling.Status)

	var kept models.PriceProposal
	require.NoError(t, db.First(&kept, "id = ?", pa.ID).Error)
	assert.Equal(t, models.ProposalStatusPending, kept.Status)

	var alreadyRefused models.PriceProposal
	require.NoError(t, db.First(&alreadyRefused, "id = ?", pc.ID).Error)
	assert.Equal(t, models.ProposalStatusRefused, alreadyRefused.Status)
}

func TestDeplacementRepository_OpenBroadcastsWithoutProposal(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDeplacementRepository()
	client := testutil.CreateUser(t, db, models.UserRoleClient)
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryMobile, nil)

	answered := newBroadcast(t, db, repo, client.ID)
	open := newBroadcast(t, db, repo, client.ID)
	closed := newBroadcast(t, db, repo, client.ID)
	newProposal(t, db, repo, answered, stylist.ID, 50)
	require.NoError(t, repo.AcceptRequest(db, closed.ID, stylist.ID))

	requests, err := repo.FindOpenBroadcastsWithoutProposalFrom(db, stylist.ID)

	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, open.ID, requests[0].ID)
}

func TestDeplacementRepository_PendingForClientIsScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDeplacementRepository()
	client := testutil.CreateUser(t, db, models.UserRoleClient)
	other := testutil.CreateUser(t, db, models.UserRoleClient)
	stylist, _ := testutil.CreateStylist(t, db, models.CategoryMobile, nil)
	req := newBroadcast(t, db, repo, client.ID)
	p := newProposal(t, db, repo, req, stylist.ID, 55)

	_, err := repo.FindPendingProposalForClient(db, p.ID, other.ID)
	assert.ErrorIs(t, err, ErrProposalNotFound)

	rows, err := repo.ListPendingProposalsForClient(db, client.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "haircut", rows[0].ServiceRequested)
	assert.True(t, decimal.NewFromInt(55).Equal(rows[0].ProposedPrice))
}
