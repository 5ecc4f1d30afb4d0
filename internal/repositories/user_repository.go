package repositories

import (
	"errors"

	"hela9_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindNames(db *gorm.DB, ids []string) (map[string]string, error)
	CodeInUse(db *gorm.DB, code string) (bool, error)

	SetConfirmationCode(db *gorm.DB, userID string, code *string) error
	Confirm(db *gorm.DB, userID string) error
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	UpdateFields(db *gorm.DB, userID string, fields map[string]interface{}) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindNames возвращает id -> имя для набора пользователей.
func (r *UserRepositoryImpl) FindNames(db *gorm.DB, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   string
		Name string
	}
	if err := db.Model(&models.User{}).Select("id, name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (r *UserRepositoryImpl) CodeInUse(db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("confirmation_code = ?", code).Count(&count).Error
	return count > 0, err
}

// SetConfirmationCode записывает новый код (nil очищает).
func (r *UserRepositoryImpl) SetConfirmationCode(db *gorm.DB, userID string, code *string) error {
	return r.UpdateFields(db, userID, map[string]interface{}{"confirmation_code": code})
}

func (r *UserRepositoryImpl) Confirm(db *gorm.DB, userID string) error {
	return r.UpdateFields(db, userID, map[string]interface{}{
		"is_confirmed":      true,
		"confirmation_code": nil,
	})
}

// UpdatePassword меняет хеш пароля и гасит код сброса.
func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	return r.UpdateFields(db, userID, map[string]interface{}{
		"password_hash":     passwordHash,
		"confirmation_code": nil,
	})
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, userID string, fields map[string]interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
