package models

type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;index"`
	City         string   `gorm:"size:100"`
	Phone        string   `gorm:"size:30"`
	IsConfirmed  bool     `gorm:"not null"`
	Language     string   `gorm:"size:10"`
	// Один код на пользователя: и для подтверждения email, и для сброса пароля.
	ConfirmationCode *string `gorm:"size:6;uniqueIndex"`
}

func (u *User) IsStylist() bool { return u.Role == UserRoleStylist }
func (u *User) IsClient() bool  { return u.Role == UserRoleClient }
