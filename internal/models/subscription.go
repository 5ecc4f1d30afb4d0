package models

import "time"

// Subscription - клиент подписан на стилиста.
type Subscription struct {
	ClientID     string `gorm:"type:varchar(36);primaryKey"`
	StylistID    string `gorm:"type:varchar(36);primaryKey;index"`
	SubscribedAt time.Time
}
