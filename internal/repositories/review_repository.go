package repositories

import (
	"time"

	"hela9_backend/internal/models"

	"gorm.io/gorm"
)

// ReviewRow - отзыв вместе с именем клиента.
type ReviewRow struct {
	ID         string
	ClientID   string
	ClientName string
	Text       string
	CreatedAt  time.Time
}

type ReviewRepository interface {
	CreateReview(db *gorm.DB, comment *models.Comment) error
	ListForStylist(db *gorm.DB, stylistID string) ([]ReviewRow, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

// ListForStylist - отзывы от новых к старым.
func (r *ReviewRepositoryImpl) ListForStylist(db *gorm.DB, stylistID string) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := db.Table("comments").
		Select("comments.id, comments.client_id, users.name AS client_name, comments.text, comments.created_at").
		Joins("JOIN users ON users.id = comments.client_id").
		Where("comments.stylist_id = ?", stylistID).
		Order("comments.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
