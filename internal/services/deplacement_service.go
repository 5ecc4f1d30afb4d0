package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/metrics"
	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/validator"
	"hela9_backend/pkg/apperrors"
)

const (
	RespondAccept = "accept"
	RespondRefuse = "refuse"
)

// DeplacementService - торги за выезд мобильного стилиста:
// запрос клиента -> предложения цены -> принятие или отказ.
type DeplacementService interface {
	Broadcast(ctx context.Context, db *gorm.DB, clientID string, req *dto.BroadcastRequest) (*dto.CreatedResponse, error)
	Propose(ctx context.Context, db *gorm.DB, stylistID, requestID string, req *dto.ProposeRequest) (*dto.CreatedResponse, error)
	Respond(ctx context.Context, db *gorm.DB, clientID, proposalID string, req *dto.RespondRequest) (*dto.RespondResponse, error)

	OpenRequestsFor(ctx context.Context, db *gorm.DB, stylistID string) ([]dto.OpenRequest, error)
	PendingProposalsFor(ctx context.Context, db *gorm.DB, clientID string) ([]dto.PendingProposal, error)
}

type deplacementService struct {
	users       repositories.UserRepository
	stylists    repositories.StylistRepository
	deplacement repositories.DeplacementRepository
	events      EventPublisher
	metrics     *metrics.Registry
}

func NewDeplacementService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	deplacement repositories.DeplacementRepository,
	events EventPublisher,
	metrics *metrics.Registry,
) DeplacementService {
	if events == nil {
		events = NoopPublisher()
	}
	return &deplacementService{
		users:       users,
		stylists:    stylists,
		deplacement: deplacement,
		events:      events,
		metrics:     metrics,
	}
}

func (s *deplacementService) Broadcast(ctx context.Context, db *gorm.DB, clientID string, req *dto.BroadcastRequest) (*dto.CreatedResponse, error) {
	if _, err := requireConfirmed(db, s.users, clientID, models.UserRoleClient); err != nil {
		return nil, err
	}
	service := strings.TrimSpace(req.Service)
	location := strings.TrimSpace(req.Location)
	if service == "" || location == "" {
		return nil, apperrors.ValidationError(map[string]string{"service": "Service and location are required."})
	}
	if !validator.IsDate(req.Date) || !validator.IsTime(req.Time) {
		return nil, apperrors.ErrInvalidDateTime
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	request := &models.DeplacementRequest{
		ClientID:         clientID,
		ServiceRequested: service,
		ClientLocation:   location,
		PreferredDate:    req.Date,
		PreferredTime:    req.Time,
		Details:          strings.TrimSpace(req.Details),
		Status:           models.DeplacementStatusPending,
	}
	if err := s.deplacement.CreateRequest(tx, request); err != nil {
		return nil, apperrors.InternalError(err)
	}
	recipients, err := s.stylists.FindActiveIDsByCategory(tx, models.CategoryMobile)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.metrics.BiddingEvent("broadcast")
	logger.CtxInfo(ctx, "Deplacement request broadcasted", "request_id", request.ID, "recipients", len(recipients))
	s.events.Publish(ctx, Event{
		Type:       EventRequestCreated,
		Recipients: recipients,
		Payload: dto.OpenRequest{
			ID:               request.ID,
			ServiceRequested: request.ServiceRequested,
			ClientLocation:   request.ClientLocation,
			PreferredDate:    request.PreferredDate,
			PreferredTime:    request.PreferredTime,
			Details:          request.Details,
			CreatedAt:        request.CreatedAt,
		},
	})

	return &dto.CreatedResponse{
		Message: "Déplacement request broadcasted successfully to all mobile stylists.",
		ID:      request.ID,
	}, nil
}

func (s *deplacementService) Propose(ctx context.Context, db *gorm.DB, stylistID, requestID string, req *dto.ProposeRequest) (*dto.CreatedResponse, error) {
	_, profile, err := requireStylist(db, s.users, s.stylists, stylistID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInsufficientPermissions) {
			return nil, apperrors.ErrNotMobileStylist
		}
		return nil, err
	}
	if profile.Category != models.CategoryMobile {
		return nil, apperrors.ErrNotMobileStylist
	}
	if !req.Price.IsPositive() {
		return nil, apperrors.ErrInvalidPrice
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	request, err := s.deplacement.FindRequest(tx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrRequestNotOpen
		}
		return nil, apperrors.InternalError(err)
	}
	if request.Status != models.DeplacementStatusPending {
		return nil, apperrors.ErrRequestNotOpen
	}

	exists, err := s.deplacement.HasProposal(tx, requestID, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrProposalAlreadySubmitted
	}

	proposal := &models.PriceProposal{
		RequestID:     request.ID,
		StylistID:     stylistID,
		ClientID:      request.ClientID,
		ProposedPrice: req.Price,
		Notes:         strings.TrimSpace(req.Notes),
		Status:        models.ProposalStatusPending,
	}
	if err := s.deplacement.CreateProposal(tx, proposal); err != nil {
		if errors.Is(err, repositories.ErrProposalExists) {
			return nil, apperrors.ErrProposalAlreadySubmitted
		}
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.metrics.BiddingEvent("proposal")
	s.events.Publish(ctx, Event{
		Type:       EventProposalCreated,
		Recipients: []string{request.ClientID},
		Payload: map[string]interface{}{
			"proposal_id":    proposal.ID,
			"request_id":     request.ID,
			"stylist_id":     stylistID,
			"proposed_price": proposal.ProposedPrice,
		},
	})

	return &dto.CreatedResponse{Message: "Price proposal submitted successfully.", ID: proposal.ID}, nil
}

// whatsAppLink оставляет в номере только цифры.
func whatsAppLink(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

func (s *deplacementService) Respond(ctx context.Context, db *gorm.DB, clientID, proposalID string, req *dto.RespondRequest) (*dto.RespondResponse, error) {
	if _, err := requireConfirmed(db, s.users, clientID, models.UserRoleClient); err != nil {
		return nil, err
	}
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != RespondAccept && action != RespondRefuse {
		return nil, apperrors.ValidationError(map[string]string{"action": "Must be one of: accept, refuse"})
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	proposal, err := s.deplacement.FindPendingProposalForClient(tx, proposalID, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if action == RespondRefuse {
		if err := s.deplacement.SetProposalStatus(tx, proposal.ID, models.ProposalStatusRefused); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := tx.Commit().Error; err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.metrics.BiddingEvent("refused")
		s.publishOutcome(ctx, EventProposalRefused, proposal, []string{proposal.StylistID})
		return &dto.RespondResponse{Message: "Proposal refused.", Status: models.ProposalStatusRefused}, nil
	}

	// Принятие: предложение, запрос и отказ остальным в одной транзакции.
	if err := s.deplacement.SetProposalStatus(tx, proposal.ID, models.ProposalStatusAccepted); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.deplacement.AcceptRequest(tx, proposal.RequestID, proposal.StylistID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	refused, err := s.deplacement.RefusePendingSiblings(tx, proposal.RequestID, proposal.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stylist, err := s.users.FindByID(tx, proposal.StylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.metrics.BiddingEvent("accepted")
	logger.CtxInfo(ctx, "Proposal accepted", "proposal_id", proposal.ID, "request_id", proposal.RequestID, "refused", len(refused))
	s.publishOutcome(ctx, EventProposalAccepted, proposal, []string{proposal.StylistID})
	if len(refused) > 0 {
		s.publishOutcome(ctx, EventProposalRefused, proposal, refused)
	}

	return &dto.RespondResponse{
		Message:      "Proposal accepted! Booking confirmed.",
		Status:       models.ProposalStatusAccepted,
		StylistPhone: stylist.Phone,
		WhatsAppLink: whatsAppLink(stylist.Phone),
	}, nil
}

func (s *deplacementService) publishOutcome(ctx context.Context, eventType string, proposal *models.PriceProposal, recipients []string) {
	s.events.Publish(ctx, Event{
		Type:       eventType,
		Recipients: recipients,
		Payload: map[string]interface{}{
			"request_id": proposal.RequestID,
		},
	})
}

func (s *deplacementService) OpenRequestsFor(ctx context.Context, db *gorm.DB, stylistID string) ([]dto.OpenRequest, error) {
	requests, err := s.deplacement.FindOpenBroadcastsWithoutProposalFrom(db, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.OpenRequest, 0, len(requests))
	for _, r := range requests {
		out = append(out, dto.OpenRequest{
			ID:               r.ID,
			ServiceRequested: r.ServiceRequested,
			ClientLocation:   r.ClientLocation,
			PreferredDate:    r.PreferredDate,
			PreferredTime:    r.PreferredTime,
			Details:          r.Details,
			CreatedAt:        r.CreatedAt,
		})
	}
	return out, nil
}

func (s *deplacementService) PendingProposalsFor(ctx context.Context, db *gorm.DB, clientID string) ([]dto.PendingProposal, error) {
	rows, err := s.deplacement.ListPendingProposalsForClient(db, clientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PendingProposal, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PendingProposal{
			ID:               r.ID,
			RequestID:        r.RequestID,
			StylistID:        r.StylistID,
			StylistName:      r.StylistName,
			ServiceRequested: r.ServiceRequested,
			ProposedPrice:    r.ProposedPrice,
			Notes:            r.Notes,
			CreatedAt:        r.CreatedAt,
		})
	}
	return out, nil
}
