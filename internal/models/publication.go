package models

import (
	"time"

	"gorm.io/datatypes"
)

const MaxPublicationCommentLength = 250

type Publication struct {
	BaseModel
	AuthorID string                     `gorm:"type:varchar(36);not null;index"`
	Text     string                     `gorm:"type:text"`
	Images   datatypes.JSONSlice[string] // ключи в хранилище, в порядке загрузки
}

type PublicationLike struct {
	PublicationID string `gorm:"type:varchar(36);primaryKey"`
	UserID        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt     time.Time
}

type PublicationComment struct {
	BaseModel
	PublicationID string `gorm:"type:varchar(36);not null;index"`
	AuthorID      string `gorm:"type:varchar(36);not null;index"`
	Text          string `gorm:"size:250;not null"`
}
