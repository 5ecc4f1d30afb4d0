package models

// Comment - отзыв клиента на профиле стилиста.
type Comment struct {
	BaseModel
	ClientID  string `gorm:"type:varchar(36);not null;index"`
	StylistID string `gorm:"type:varchar(36);not null;index"`
	Text      string `gorm:"type:text;not null"`
}
