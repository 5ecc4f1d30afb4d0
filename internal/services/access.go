package services

import (
	"errors"

	"gorm.io/gorm"

	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/pkg/apperrors"
)

var errLoginRequired = apperrors.NewUnauthorizedError("Login required")

// loadUser - пользователь из сессии. Удаленный пользователь считается неавторизованным.
func loadUser(db *gorm.DB, users repositories.UserRepository, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errLoginRequired
	}
	user, err := users.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errLoginRequired
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// requireConfirmed - пользователь с подтвержденным email и нужной ролью.
func requireConfirmed(db *gorm.DB, users repositories.UserRepository, userID string, role models.UserRole) (*models.User, error) {
	user, err := loadUser(db, users, userID)
	if err != nil {
		return nil, err
	}
	if role != "" && user.Role != role {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if !user.IsConfirmed {
		return nil, apperrors.ErrAccountNotConfirmed
	}
	return user, nil
}

// requireStylist - подтвержденный стилист вместе с профилем.
func requireStylist(db *gorm.DB, users repositories.UserRepository, stylists repositories.StylistRepository, userID string) (*models.User, *models.StylistProfile, error) {
	user, err := requireConfirmed(db, users, userID, models.UserRoleStylist)
	if err != nil {
		return nil, nil, err
	}
	profile, err := stylists.FindProfile(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, nil, apperrors.ErrStylistNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}
	return user, profile, nil
}
