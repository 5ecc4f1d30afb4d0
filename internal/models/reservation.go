package models

type Reservation struct {
	BaseModel
	ClientID  string            `gorm:"type:varchar(36);not null;index"`
	StylistID string            `gorm:"type:varchar(36);not null;index"`
	ServiceID *string           `gorm:"type:varchar(36)"`
	Date      string            `gorm:"size:10;not null"` // YYYY-MM-DD
	Time      string            `gorm:"size:5;not null"`  // HH:MM
	Notes     string            `gorm:"type:text"`
	Status    ReservationStatus `gorm:"type:varchar(20);not null"`
}
