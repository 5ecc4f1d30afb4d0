package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

// ReviewService - отзывы клиентов на профиле стилиста.
type ReviewService interface {
	AddReview(ctx context.Context, db *gorm.DB, clientID, stylistID string, req *dto.ReviewRequest) (*dto.ReviewResponse, error)
}

type reviewService struct {
	users    repositories.UserRepository
	stylists repositories.StylistRepository
	reviews  repositories.ReviewRepository
}

func NewReviewService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	reviews repositories.ReviewRepository,
) ReviewService {
	return &reviewService{users: users, stylists: stylists, reviews: reviews}
}

func (s *reviewService) AddReview(ctx context.Context, db *gorm.DB, clientID, stylistID string, req *dto.ReviewRequest) (*dto.ReviewResponse, error) {
	client, err := requireConfirmed(db, s.users, clientID, models.UserRoleClient)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.ErrCommentEmpty
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

	comment := &models.Comment{ClientID: client.ID, StylistID: stylistID, Text: text}
	if err := s.reviews.CreateReview(tx, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ReviewResponse{
		ID:         comment.ID,
		ClientName: client.Name,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
	}, nil
}
