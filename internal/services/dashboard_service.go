package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

type DashboardService interface {
	Get(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	users        repositories.UserRepository
	stylists     repositories.StylistRepository
	reservations ReservationService
	deplacement  DeplacementService
	uploads      UploadService
	now          func() time.Time
}

func NewDashboardService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	reservations ReservationService,
	deplacement DeplacementService,
	uploads UploadService,
) DashboardService {
	return &dashboardService{
		users:        users,
		stylists:     stylists,
		reservations: reservations,
		deplacement:  deplacement,
		uploads:      uploads,
		now:          time.Now,
	}
}

func (s *dashboardService) Get(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardResponse, error) {
	user, err := loadUser(db, s.users, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsConfirmed {
		return nil, apperrors.ErrAccountNotConfirmed
	}
	resp := &dto.DashboardResponse{Role: user.Role}
	now := s.now()

	switch user.Role {
	case models.UserRoleClient:
		proposals, err := s.deplacement.PendingProposalsFor(ctx, db, user.ID)
		if err != nil {
			return nil, err
		}
		reservations, err := s.reservations.UpcomingForClient(ctx, db, user.ID, now)
		if err != nil {
			return nil, err
		}
		resp.Client = &dto.ClientDashboard{Proposals: proposals, Reservations: reservations}

	case models.UserRoleStylist:
		profile, err := s.stylists.FindProfile(db, user.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return nil, apperrors.ErrStylistNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		stylist := &dto.StylistDashboard{
			Profile: dto.StylistCard{
				ID:            user.ID,
				Name:          user.Name,
				City:          user.City,
				Category:      profile.Category,
				Address:       profile.Address,
				ProfileImage:  s.uploads.URL(ctx, profile.ProfileImage),
				Rating:        profile.Rating,
				PeopleWaiting: profile.PeopleWaiting,
			},
			Status:              profile.Status,
			Trial:               TrialState(profile, now),
			DeplacementRequests: []dto.OpenRequest{},
		}
		if profile.Category == models.CategoryMobile && profile.IsActive() {
			if stylist.DeplacementRequests, err = s.deplacement.OpenRequestsFor(ctx, db, user.ID); err != nil {
				return nil, err
			}
		}
		resp.Stylist = stylist
		resp.Warnings = stylistWarnings(profile, now)
	}

	return resp, nil
}
