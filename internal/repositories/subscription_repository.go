package repositories

import (
	"time"

	"hela9_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository - подписки клиентов на стилистов.
// Subscribe и Unsubscribe идемпотентны.
type SubscriptionRepository interface {
	Subscribe(db *gorm.DB, clientID, stylistID string) error
	Unsubscribe(db *gorm.DB, clientID, stylistID string) error
	IsSubscribed(db *gorm.DB, clientID, stylistID string) (bool, error)
	CountSubscribers(db *gorm.DB, stylistID string) (int64, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) Subscribe(db *gorm.DB, clientID, stylistID string) error {
	sub := &models.Subscription{ClientID: clientID, StylistID: stylistID, SubscribedAt: time.Now()}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) Unsubscribe(db *gorm.DB, clientID, stylistID string) error {
	return db.Where("client_id = ? AND stylist_id = ?", clientID, stylistID).
		Delete(&models.Subscription{}).Error
}

func (r *SubscriptionRepositoryImpl) IsSubscribed(db *gorm.DB, clientID, stylistID string) (bool, error) {
	var count int64
	err := db.Model(&models.Subscription{}).
		Where("client_id = ? AND stylist_id = ?", clientID, stylistID).
		Count(&count).Error
	return count > 0, err
}

func (r *SubscriptionRepositoryImpl) CountSubscribers(db *gorm.DB, stylistID string) (int64, error) {
	var count int64
	err := db.Model(&models.Subscription{}).Where("stylist_id = ?", stylistID).Count(&count).Error
	return count, err
}
