package repositories

import (
	"errors"
	"time"

	"hela9_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPublicationNotFound = errors.New("publication not found")
	ErrCommentNotFound     = errors.New("comment not found")
)

// CommentRow - комментарий к публикации с именем автора.
type CommentRow struct {
	ID            string
	PublicationID string
	AuthorID      string
	AuthorName    string
	Text          string
	CreatedAt     time.Time
}

type PublicationRepository interface {
	CreatePublication(db *gorm.DB, publication *models.Publication) error
	FindByID(db *gorm.DB, id string) (*models.Publication, error)
	ListByAuthor(db *gorm.DB, authorID string) ([]models.Publication, error)

	// Лайки: Like и Unlike идемпотентны.
	Like(db *gorm.DB, publicationID, userID string) error
	Unlike(db *gorm.DB, publicationID, userID string) error
	CountLikes(db *gorm.DB, publicationID string) (int64, error)
	IsLiked(db *gorm.DB, publicationID, userID string) (bool, error)
	LikeCounts(db *gorm.DB, publicationIDs []string) (map[string]int64, error)
	LikedBy(db *gorm.DB, publicationIDs []string, userID string) (map[string]bool, error)

	CreateComment(db *gorm.DB, comment *models.PublicationComment) error
	FindComment(db *gorm.DB, id string) (*models.PublicationComment, error)
	DeleteComment(db *gorm.DB, comment *models.PublicationComment) error
	ListComments(db *gorm.DB, publicationIDs []string) (map[string][]CommentRow, error)
}

type PublicationRepositoryImpl struct{}

func NewPublicationRepository() PublicationRepository {
	return &PublicationRepositoryImpl{}
}

func (r *PublicationRepositoryImpl) CreatePublication(db *gorm.DB, publication *models.Publication) error {
	return db.Create(publication).Error
}

func (r *PublicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Publication, error) {
	var publication models.Publication
	if err := db.First(&publication, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}
	return &publication, nil
}

// ListByAuthor - публикации от новых к старым.
func (r *PublicationRepositoryImpl) ListByAuthor(db *gorm.DB, authorID string) ([]models.Publication, error) {
	var publications []models.Publication
	err := db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&publications).Error
	return publications, err
}

// --- Likes ---

func (r *PublicationRepositoryImpl) Like(db *gorm.DB, publicationID, userID string) error {
	like := &models.PublicationLike{PublicationID: publicationID, UserID: userID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

func (r *PublicationRepositoryImpl) Unlike(db *gorm.DB, publicationID, userID string) error {
	return db.Where("publication_id = ? AND user_id = ?", publicationID, userID).
		Delete(&models.PublicationLike{}).Error
}

func (r *PublicationRepositoryImpl) CountLikes(db *gorm.DB, publicationID string) (int64, error) {
	var count int64
	err := db.Model(&models.PublicationLike{}).Where("publication_id = ?", publicationID).Count(&count).Error
	return count, err
}

func (r *PublicationRepositoryImpl) IsLiked(db *gorm.DB, publicationID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.PublicationLike{}).
		Where("publication_id = ? AND user_id = ?", publicationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PublicationRepositoryImpl) LikeCounts(db *gorm.DB, publicationIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(publicationIDs))
	if len(publicationIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PublicationID string
		Total         int64
	}
	err := db.Model(&models.PublicationLike{}).
		Select("publication_id, COUNT(*) AS total").
		Where("publication_id IN ?", publicationIDs).
		Group("publication_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PublicationID] = row.Total
	}
	return counts, nil
}

func (r *PublicationRepositoryImpl) LikedBy(db *gorm.DB, publicationIDs []string, userID string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if len(publicationIDs) == 0 || userID == "" {
		return liked, nil
	}

	var ids []string
	err := db.Model(&models.PublicationLike{}).
		Where("publication_id IN ? AND user_id = ?", publicationIDs, userID).
		Pluck("publication_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// --- Comments ---

func (r *PublicationRepositoryImpl) CreateComment(db *gorm.DB, comment *models.PublicationComment) error {
	return db.Create(comment).Error
}

func (r *PublicationRepositoryImpl) FindComment(db *gorm.DB, id string) (*models.PublicationComment, error) {
	var comment models.PublicationComment
	if err := db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *PublicationRepositoryImpl) DeleteComment(db *gorm.DB, comment *models.PublicationComment) error {
	return db.Delete(comment).Error
}

// ListComments группирует комментарии по публикациям, от старых к новым.
func (r *PublicationRepositoryImpl) ListComments(db *gorm.DB, publicationIDs []string) (map[string][]CommentRow, error) {
	grouped := make(map[string][]CommentRow, len(publicationIDs))
	if len(publicationIDs) == 0 {
		return grouped, nil
	}

	var rows []CommentRow
	err := db.Table("publication_comments").
		Select(`publication_comments.id, publication_comments.publication_id, publication_comments.author_id,
			users.name AS author_name, publication_comments.text, publication_comments.created_at`).
		Joins("JOIN users ON users.id = publication_comments.author_id").
		Where("publication_comments.publication_id IN ?", publicationIDs).
		Order("publication_comments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.PublicationID] = append(grouped[row.PublicationID], row)
	}
	return grouped, nil
}
