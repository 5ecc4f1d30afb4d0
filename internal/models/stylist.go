package models

import (
	"strings"
	"time"
)

const (
	DefaultRating   = 4.5
	TrialPeriodDays = 30

	defaultAvatarDir = "defaults/"
)

// StylistProfile хранится 1:1 с User (первичный ключ = user_id).
type StylistProfile struct {
	UserID            string          `gorm:"type:varchar(36);primaryKey"`
	Category          StylistCategory `gorm:"type:varchar(20);not null;index"`
	Description       string          `gorm:"type:text"`
	Address           string          `gorm:"size:200"`
	ProfileImage      string          `gorm:"size:255"`
	PeopleWaiting     int             `gorm:"not null"`
	CurrentCapacity   int             `gorm:"not null"`
	Rating            float64         `gorm:"not null"`
	Latitude          *float64
	Longitude         *float64
	LocationUpdatedAt *time.Time
	Status            StylistStatus `gorm:"type:varchar(40);not null;index"`
	ActivationDate    *time.Time
	TrialStart        *time.Time
	TrialEnd          *time.Time
	PaymentName       string `gorm:"size:100"`
	PaymentProof      string `gorm:"size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *StylistProfile) IsActive() bool { return p.Status == StylistStatusActive }

func (p *StylistProfile) HasLocation() bool { return p.Latitude != nil && p.Longitude != nil }

// DefaultAvatar возвращает ключ стандартной аватарки для категории.
func DefaultAvatar(category StylistCategory) string {
	switch category {
	case CategoryMen:
		return defaultAvatarDir + "man.png"
	case CategoryWomen:
		return defaultAvatarDir + "woman.png"
	case CategoryMobile:
		return defaultAvatarDir + "dep.png"
	default:
		return defaultAvatarDir + "default_coiffeur.png"
	}
}

func IsDefaultAvatar(key string) bool {
	return key == "" || strings.HasPrefix(key, defaultAvatarDir)
}
