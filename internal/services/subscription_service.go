package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

const (
	SubscriptionStatusSubscribed   = "subscribed"
	SubscriptionStatusUnsubscribed = "unsubscribed"
)

// SubscriptionService - подписки клиентов на стилистов. Обе операции идемпотентны.
type SubscriptionService interface {
	Subscribe(ctx context.Context, db *gorm.DB, clientID, stylistID string) (*dto.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, db *gorm.DB, clientID, stylistID string) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	users         repositories.UserRepository
	stylists      repositories.StylistRepository
	subscriptions repositories.SubscriptionRepository
}

func NewSubscriptionService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	subscriptions repositories.SubscriptionRepository,
) SubscriptionService {
	return &subscriptionService{users: users, stylists: stylists, subscriptions: subscriptions}
}

func (s *subscriptionService) Subscribe(ctx context.Context, db *gorm.DB, clientID, stylistID string) (*dto.SubscriptionResponse, error) {
	return s.change(db, clientID, stylistID, true)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, db *gorm.DB, clientID, stylistID string) (*dto.SubscriptionResponse, error) {
	return s.change(db, clientID, stylistID, false)
}

func (s *subscriptionService) change(db *gorm.DB, clientID, stylistID string, subscribe bool) (*dto.SubscriptionResponse, error) {
	if _, err := requireConfirmed(db, s.users, clientID, models.UserRoleClient); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.stylists.FindProfile(tx, stylistID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrStylistNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	already, err := s.subscriptions.IsSubscribed(tx, clientID, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.SubscriptionResponse{}
	switch {
	case subscribe && already:
		resp.Message = "Already subscribed."
	case subscribe:
		if err := s.subscriptions.Subscribe(tx, clientID, stylistID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.Message = "Subscribed successfully."
	case already:
		if err := s.subscriptions.Unsubscribe(tx, clientID, stylistID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.Message = "Unsubscribed successfully."
	default:
		resp.Message = "Not subscribed."
	}

	if resp.Count, err = s.subscriptions.CountSubscribers(tx, stylistID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp.Status = SubscriptionStatusUnsubscribed
	if subscribe {
		resp.Status = SubscriptionStatusSubscribed
	}
	return resp, nil
}
