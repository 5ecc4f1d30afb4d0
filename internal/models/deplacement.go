package models

import "github.com/shopspring/decimal"

// DeplacementRequest - запрос клиента на выезд мобильного стилиста.
// TargetStylistID == nil означает широковещательный запрос.
type DeplacementRequest struct {
	BaseModel
	ClientID         string            `gorm:"type:varchar(36);not null;index"`
	TargetStylistID  *string           `gorm:"type:varchar(36);index"`
	ServiceRequested string            `gorm:"size:200;not null"`
	ClientLocation   string            `gorm:"size:255;not null"`
	PreferredDate    string            `gorm:"size:10;not null"`
	PreferredTime    string            `gorm:"size:5;not null"`
	Details          string            `gorm:"type:text"`
	Status           DeplacementStatus `gorm:"type:varchar(20);not null;index"`
}

type PriceProposal struct {
	BaseModel
	RequestID     string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_proposal_request_stylist"`
	StylistID     string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_proposal_request_stylist"`
	ClientID      string          `gorm:"type:varchar(36);not null;index"`
	ProposedPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes         string          `gorm:"type:text"`
	Status        ProposalStatus  `gorm:"type:varchar(20);not null;index"`
}
