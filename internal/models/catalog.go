package models

import "github.com/shopspring/decimal"

type Service struct {
	BaseModel
	StylistID string          `gorm:"type:varchar(36);not null;index"`
	Name      string          `gorm:"size:100;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

type MenuItem struct {
	BaseModel
	StylistID   string          `gorm:"type:varchar(36);not null;index"`
	Name        string          `gorm:"size:100;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"type:text"`
}

type Photo struct {
	BaseModel
	StylistID string `gorm:"type:varchar(36);not null;index"`
	ImagePath string `gorm:"size:255;not null"`
	Likes     int    `gorm:"not null"`
}
