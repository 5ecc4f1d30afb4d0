package testutil

import (
	"testing"
	"time"

	"hela9_backend/internal/auth"
	"hela9_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const DefaultPassword = "secret123"

// UserOption меняет пользователя перед сохранением.
type UserOption func(*models.User)

func WithCity(city string) UserOption {
	return func(u *models.User) { u.City = city }
}

func WithPhone(phone string) UserOption {
	return func(u *models.User) { u.Phone = phone }
}

func WithName(name string) UserOption {
	return func(u *models.User) { u.Name = name }
}

func WithEmail(email string) UserOption {
	return func(u *models.User) { u.Email = email }
}

func Unconfirmed(code string) UserOption {
	return func(u *models.User) {
		u.IsConfirmed = false
		u.ConfirmationCode = &code
	}
}

// CreateUser сохраняет подтвержденного пользователя с паролем DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole, opts ...UserOption) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Name:         "User " + uuid.NewString()[:8],
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: hash,
		Role:         role,
		City:         "Paris",
		Phone:        "+33 6 12 34 56 78",
		IsConfirmed:  true,
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, db.Create(user).Error, "create user")
	return user
}

// ProfileOption меняет профиль стилиста перед сохранением.
type ProfileOption func(*models.StylistProfile)

func WithStatus(status models.StylistStatus) ProfileOption {
	return func(p *models.StylistProfile) { p.Status = status }
}

func WithRating(rating float64) ProfileOption {
	return func(p *models.StylistProfile) { p.Rating = rating }
}

func WithWaiting(waiting int) ProfileOption {
	return func(p *models.StylistProfile) { p.PeopleWaiting = waiting }
}

func WithLocation(lat, lng float64) ProfileOption {
	return func(p *models.StylistProfile) {
		now := time.Now()
		p.Latitude = &lat
		p.Longitude = &lng
		p.LocationUpdatedAt = &now
	}
}

func WithTrial(start, end time.Time) ProfileOption {
	return func(p *models.StylistProfile) {
		p.TrialStart = &start
		p.TrialEnd = &end
	}
}

// CreateStylist сохраняет пользователя-стилиста и его активный профиль.
func CreateStylist(t *testing.T, db *gorm.DB, category models.StylistCategory, userOpts []UserOption, opts ...ProfileOption) (*models.User, *models.StylistProfile) {
	t.Helper()

	user := CreateUser(t, db, models.UserRoleStylist, userOpts...)
	profile := &models.StylistProfile{
		UserID:       user.ID,
		Category:     category,
		Description:  "Test stylist",
		Address:      "1 rue de Rivoli",
		ProfileImage: models.DefaultAvatar(category),
		Rating:       models.DefaultRating,
		Status:       models.StylistStatusActive,
	}
	for _, opt := range opts {
		opt(profile)
	}
	require.NoError(t, db.Create(profile).Error, "create stylist profile")
	return user, profile
}
