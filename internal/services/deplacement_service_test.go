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

func haircutDowntown() *dto.BroadcastRequest {
	return &dto.BroadcastRequest{Service: "haircut", Location: "Downtown", Date: "2025-07-01", Time: "15:00"}
}

func propose(t *testing.T, f *fixture, stylistID, requestID string, price int64) string {
	t.Helper()
	resp, err := f.svc.DeplacementService.Propose(ctx, f.db, stylistID, requestID, &dto.ProposeRequest{Price: decimal.NewFromInt(price)})
	require.NoError(t, err)
	return resp.ID
}

func TestDeplacement_AcceptRefusesCompetingProposals(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)
	cheap, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, []testutil.UserOption{testutil.WithPhone("+33 6 11 22 33 44")})
	pricey, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, nil)
	testutil.CreateStylist(t, f.db, models.CategoryMen, nil)

	created, err := f.svc.DeplacementService.Broadcast(ctx, f.db, client.ID, haircutDowntown())
	require.NoError(t, err)

	broadcasts := f.events.ofType(EventRequestCreated)
	require.Len(t, broadcasts, 1)
	assert.ElementsMatch(t, []string{cheap.ID, pricey.ID}, broadcasts[0].Recipients)

	cheapProposal := propose(t, f, cheap.ID, created.ID, 50)
	priceyProposal := propose(t, f, pricey.ID, created.ID, 60)

	pending, err := f.svc.DeplacementService.PendingProposalsFor(ctx, f.db, client.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	// 2. Действие
	resp, err := f.svc.DeplacementService.Respond(ctx, f.db, client.ID, cheapProposal, &dto.RespondRequest{Action: RespondAccept})

	// 3. Проверка
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAccepted, resp.Status)
	assert.Equal(t, "+33 6 11 22 33 44", resp.StylistPhone)
	assert.Equal(t, "https://wa.me/33611223344", resp.WhatsAppLink)

	var request models.DeplacementRequest
	require.NoError(t, f.db.First(&request, "id = ?", created.ID).Error)
	assert.Equal(t, models.DeplacementStatusAccepted, request.Status)
	require.NotNil(t, request.TargetStylistID)
	assert.Equal(t, cheap.ID, *request.TargetStylistID)

	var loser models.PriceProposal
	require.NoError(t, f.db.First(&loser, "id = ?", priceyProposal).Error)
	assert.Equal(t, models.ProposalStatusRefused, loser.Status)

	refusals := f.events.ofType(EventProposalRefused)
	require.Len(t, refusals, 1)
	assert.Equal(t, []string{pricey.ID}, refusals[0].Recipients)

	_, err = f.svc.DeplacementService.Respond(ctx, f.db, client.ID, priceyProposal, &dto.RespondRequest{Action: RespondAccept})
	assert.ErrorIs(t, err, apperrors.ErrProposalNotFound)

	open, err := f.svc.DeplacementService.OpenRequestsFor(ctx, f.db, pricey.ID)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestDeplacement_RefuseKeepsRequestOpen(t *testing.T) {
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, nil)
	created, err := f.svc.DeplacementService.Broadcast(ctx, f.db, client.ID, haircutDowntown())
	require.NoError(t, err)
	proposalID := propose(t, f, stylist.ID, created.ID, 40)

	resp, err := f.svc.DeplacementService.Respond(ctx, f.db, client.ID, proposalID, &dto.RespondRequest{Action: "Refuse"})

	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRefused, resp.Status)
	assert.Empty(t, resp.WhatsAppLink)

	var request models.DeplacementRequest
	require.NoError(t, f.db.First(&request, "id = ?", created.ID).Error)
	assert.Equal(t, models.DeplacementStatusPending, request.Status)
	assert.Nil(t, request.TargetStylistID)
}

func TestDeplacement_ProposeRules(t *testing.T) {
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)
	mobile, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, nil)
	salon, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil)
	created, err := f.svc.DeplacementService.Broadcast(ctx, f.db, client.ID, haircutDowntown())
	require.NoError(t, err)

	t.Run("non mobile stylist", func(t *testing.T) {
		_, err := f.svc.DeplacementService.Propose(ctx, f.db, salon.ID, created.ID, &dto.ProposeRequest{Price: decimal.NewFromInt(30)})
		assert.ErrorIs(t, err, apperrors.ErrNotMobileStylist)
	})

	t.Run("client cannot propose", func(t *testing.T) {
		_, err := f.svc.DeplacementService.Propose(ctx, f.db, client.ID, created.ID, &dto.ProposeRequest{Price: decimal.NewFromInt(30)})
		assert.ErrorIs(t, err, apperrors.ErrNotMobileStylist)
	})

	t.Run("price must be positive", func(t *testing.T) {
		_, err := f.svc.DeplacementService.Propose(ctx, f.db, mobile.ID, created.ID, &dto.ProposeRequest{Price: decimal.Zero})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := f.svc.DeplacementService.Propose(ctx, f.db, mobile.ID, "missing", &dto.ProposeRequest{Price: decimal.NewFromInt(30)})
		assert.ErrorIs(t, err, apperrors.ErrRequestNotOpen)
	})

	t.Run("second proposal rejected", func(t *testing.T) {
		propose(t, f, mobile.ID, created.ID, 30)
		_, err := f.svc.DeplacementService.Propose(ctx, f.db, mobile.ID, created.ID, &dto.ProposeRequest{Price: decimal.NewFromInt(25)})
		assert.ErrorIs(t, err, apperrors.ErrProposalAlreadySubmitted)
		assert.Len(t, f.events.ofType(EventProposalCreated), 1)
	})
}

func TestDeplacement_BroadcastValidation(t *testing.T) {
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryMobile, nil)

	bad := haircutDowntown()
	bad.Date = "01/07/2025"
	_, err := f.svc.DeplacementService.Broadcast(ctx, f.db, client.ID, bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateTime)

	_, err = f.svc.DeplacementService.Broadcast(ctx, f.db, stylist.ID, haircutDowntown())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	empty := haircutDowntown()
	empty.Location = "  "
	_, err = f.svc.DeplacementService.Broadcast(ctx, f.db, client.ID, empty)
	assert.Equal(t, 400, apperrors.StatusCode(err))

	assert.Empty(t, f.events.ofType(EventRequestCreated))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/212600112233", whatsAppLink("+212 600-11-22-33"))
	assert.Empty(t, whatsAppLink(""))
}
