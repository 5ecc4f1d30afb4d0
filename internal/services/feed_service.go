package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

const commentTimeLayout = "2006-01-02 15:04"

var (
	errPublicationNotFound = apperrors.NewNotFoundError("feed", "Publication not found.")
	errCommentNotFound     = apperrors.NewNotFoundError("feed", "Comment not found.")
)

type FeedService interface {
	CreatePublication(ctx context.Context, db *gorm.DB, userID string, req *dto.PublicationRequest, images []*dto.FileInput) (*dto.CreatePublicationResponse, error)
	ListForAuthor(ctx context.Context, db *gorm.DB, authorID, viewerID string) ([]dto.PublicationResponse, error)

	Like(ctx context.Context, db *gorm.DB, userID, publicationID string) (*dto.LikeResponse, error)
	Unlike(ctx context.Context, db *gorm.DB, userID, publicationID string) (*dto.LikeResponse, error)

	AddComment(ctx context.Context, db *gorm.DB, userID, publicationID, text string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, db *gorm.DB, userID, commentID string) error
}

type feedService struct {
	users        repositories.UserRepository
	stylists     repositories.StylistRepository
	publications repositories.PublicationRepository
	uploads      UploadService
}

func NewFeedService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	publications repositories.PublicationRepository,
	uploads UploadService,
) FeedService {
	return &feedService{
		users:        users,
		stylists:     stylists,
		publications: publications,
		uploads:      uploads,
	}
}

func (s *feedService) CreatePublication(ctx context.Context, db *gorm.DB, userID string, req *dto.PublicationRequest, images []*dto.FileInput) (*dto.CreatePublicationResponse, error) {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" && len(images) == 0 {
		return nil, apperrors.ErrEmptyPublication
	}
	// Все файлы проверяются до того, как хоть один попадет в хранилище.
	for _, img := range images {
		if err := s.uploads.Validate(img); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(images))
	committed := false
	defer func() {
		if !committed {
			s.uploads.Discard(ctx, keys...)
		}
	}()
	for _, img := range images {
		key, err := s.uploads.StoreImage(ctx, UploadKindPublication, userID, img)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	publication := &models.Publication{AuthorID: userID, Text: text, Images: keys}
	if err := s.publications.CreatePublication(tx, publication); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	committed = true

	logger.CtxInfo(ctx, "Publication created", "publication_id", publication.ID, "images", len(keys))

	return &dto.CreatePublicationResponse{
		Message:   "Publication created successfully.",
		ID:        publication.ID,
		ImageURLs: s.imageURLs(ctx, keys),
	}, nil
}

func (s *feedService) imageURLs(ctx context.Context, keys []string) []string {
	urls := make([]string, 0, len(keys))
	for _, k := range keys {
		urls = append(urls, s.uploads.URL(ctx, k))
	}
	return urls
}

// ListForAuthor - публикации стилиста (новые первыми) с лайками и комментариями.
func (s *feedService) ListForAuthor(ctx context.Context, db *gorm.DB, authorID, viewerID string) ([]dto.PublicationResponse, error) {
	pubs, err := s.publications.ListByAuthor(db, authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(pubs) == 0 {
		return []dto.PublicationResponse{}, nil
	}

	ids := make([]string, 0, len(pubs))
	for _, p := range pubs {
		ids = append(ids, p.ID)
	}

	counts, err := s.publications.LikeCounts(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	liked := map[string]bool{}
	if viewerID != "" {
		if liked, err = s.publications.LikedBy(db, ids, viewerID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	comments, err := s.publications.ListComments(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.PublicationResponse, 0, len(pubs))
	for _, p := range pubs {
		item := dto.PublicationResponse{
			ID:          p.ID,
			Text:        p.Text,
			ImageURLs:   s.imageURLs(ctx, p.Images),
			CreatedAt:   p.CreatedAt,
			LikesCount:  counts[p.ID],
			LikedByUser: liked[p.ID],
			Comments:    make([]dto.CommentResponse, 0, len(comments[p.ID])),
		}
		for _, c := range comments[p.ID] {
			item.Comments = append(item.Comments, dto.CommentResponse{
				ID:         c.ID,
				Text:       c.Text,
				AuthorID:   c.AuthorID,
				AuthorName: c.AuthorName,
				CreatedAt:  c.CreatedAt.Format(commentTimeLayout),
			})
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *feedService) findPublication(db *gorm.DB, id string) (*models.Publication, error) {
	pub, err := s.publications.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPublicationNotFound) {
			return nil, errPublicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return pub, nil
}

func (s *feedService) Like(ctx context.Context, db *gorm.DB, userID, publicationID string) (*dto.LikeResponse, error) {
	return s.toggleLike(db, userID, publicationID, true)
}

func (s *feedService) Unlike(ctx context.Context, db *gorm.DB, userID, publicationID string) (*dto.LikeResponse, error) {
	return s.toggleLike(db, userID, publicationID, false)
}

func (s *feedService) toggleLike(db *gorm.DB, userID, publicationID string, like bool) (*dto.LikeResponse, error) {
	if _, err := requireConfirmed(db, s.users, userID, ""); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.findPublication(tx, publicationID); err != nil {
		return nil, err
	}

	var err error
	if like {
		err = s.publications.Like(tx, publicationID, userID)
	} else {
		err = s.publications.Unlike(tx, publicationID, userID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	count, err := s.publications.CountLikes(tx, publicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LikeResponse{LikesCount: count, LikedByUser: like}, nil
}

func (s *feedService) AddComment(ctx context.Context, db *gorm.DB, userID, publicationID, text string) (*dto.CommentResponse, error) {
	user, err := requireConfirmed(db, s.users, userID, "")
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrCommentEmpty
	}
	if utf8.RuneCountInString(text) > models.MaxPublicationCommentLength {
		return nil, apperrors.ErrCommentTooLong
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.findPublication(tx, publicationID); err != nil {
		return nil, err
	}
	comment := &models.PublicationComment{PublicationID: publicationID, AuthorID: user.ID, Text: text}
	if err := s.publications.CreateComment(tx, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CommentResponse{
		Message:    "Comment added",
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorID:   user.ID,
		AuthorName: user.Name,
		CreatedAt:  comment.CreatedAt.Format(commentTimeLayout),
	}, nil
}

func (s *feedService) DeleteComment(ctx context.Context, db *gorm.DB, userID, commentID string) error {
	if _, err := loadUser(db, s.users, userID); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	comment, err := s.publications.FindComment(tx, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return errCommentNotFound
		}
		return apperrors.InternalError(err)
	}
	if comment.AuthorID != userID {
		return apperrors.ErrNotOwner
	}
	if err := s.publications.DeleteComment(tx, comment); err != nil {
		return apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
