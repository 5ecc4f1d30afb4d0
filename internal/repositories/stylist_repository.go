package repositories

import (
	"errors"

	"hela9_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("stylist profile not found")
)

// Порядок выдачи в поиске стилистов.
const (
	SortByRating  = "rating"
	SortByWaiting = "waiting"
	SortMobile    = "mobile"
)

// StylistFilter - параметры поиска. Пустая строка в City/Category означает "без фильтра".
type StylistFilter struct {
	City     string
	Category models.StylistCategory
	Sort     string
}

// StylistRow - активный стилист вместе с полями пользователя.
type StylistRow struct {
	models.StylistProfile
	Name  string
	City  string
	Phone string
}

type StylistRepository interface {
	CreateProfile(db *gorm.DB, profile *models.StylistProfile) error
	FindProfile(db *gorm.DB, userID string) (*models.StylistProfile, error)
	SaveProfile(db *gorm.DB, profile *models.StylistProfile) error
	UpdateFields(db *gorm.DB, userID string, fields map[string]interface{}) error

	Search(db *gorm.DB, filter StylistFilter) ([]StylistRow, error)
	FindActiveWithLocation(db *gorm.DB) ([]StylistRow, error)
	FindByStatus(db *gorm.DB, status models.StylistStatus) ([]StylistRow, error)
	FindActiveIDsByCategory(db *gorm.DB, category models.StylistCategory) ([]string, error)
}

type StylistRepositoryImpl struct{}

func NewStylistRepository() StylistRepository {
	return &StylistRepositoryImpl{}
}

func (r *StylistRepositoryImpl) CreateProfile(db *gorm.DB, profile *models.StylistProfile) error {
	return db.Create(profile).Error
}

func (r *StylistRepositoryImpl) FindProfile(db *gorm.DB, userID string) (*models.StylistProfile, error) {
	var profile models.StylistProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *StylistRepositoryImpl) SaveProfile(db *gorm.DB, profile *models.StylistProfile) error {
	return db.Save(profile).Error
}

func (r *StylistRepositoryImpl) UpdateFields(db *gorm.DB, userID string, fields map[string]interface{}) error {
	result := db.Model(&models.StylistProfile{}).Where("user_id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *StylistRepositoryImpl) baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("stylist_profiles").
		Select("stylist_profiles.*, users.name AS name, users.city AS city, users.phone AS phone").
		Joins("JOIN users ON users.id = stylist_profiles.user_id")
}

func (r *StylistRepositoryImpl) Search(db *gorm.DB, filter StylistFilter) ([]StylistRow, error) {
	query := r.baseQuery(db).Where("stylist_profiles.status = ?", models.StylistStatusActive)

	if filter.City != "" {
		query = query.Where("users.city = ?", filter.City)
	}
	if filter.Category != "" {
		query = query.Where("stylist_profiles.category = ?", filter.Category)
	}

	switch filter.Sort {
	case SortByWaiting:
		query = query.Order("stylist_profiles.people_waiting ASC")
	case SortMobile:
		query = query.Where("stylist_profiles.category = ?", models.CategoryMobile).
			Order("stylist_profiles.rating DESC")
	default:
		query = query.Order("stylist_profiles.rating DESC")
	}

	var rows []StylistRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StylistRepositoryImpl) FindActiveWithLocation(db *gorm.DB) ([]StylistRow, error) {
	var rows []StylistRow
	err := r.baseQuery(db).
		Where("stylist_profiles.status = ?", models.StylistStatusActive).
		Where("stylist_profiles.latitude IS NOT NULL AND stylist_profiles.longitude IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StylistRepositoryImpl) FindByStatus(db *gorm.DB, status models.StylistStatus) ([]StylistRow, error) {
	var rows []StylistRow
	err := r.baseQuery(db).
		Where("stylist_profiles.status = ?", status).
		Order("stylist_profiles.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StylistRepositoryImpl) FindActiveIDsByCategory(db *gorm.DB, category models.StylistCategory) ([]string, error) {
	var ids []string
	err := db.Model(&models.StylistProfile{}).
		Where("status = ? AND category = ?", models.StylistStatusActive, category).
		Pluck("user_id", &ids).Error
	return ids, err
}
