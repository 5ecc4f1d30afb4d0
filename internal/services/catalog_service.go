package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

var (
	errServiceNotFound  = apperrors.NewNotFoundError("catalog", "Service not found.")
	errMenuItemNotFound = apperrors.NewNotFoundError("catalog", "Menu item not found.")
	errPhotoNotFound    = apperrors.NewNotFoundError("catalog", "Photo not found.")
)

// CatalogService - услуги, меню и фото стилиста. Только владелец.
type CatalogService interface {
	AddService(ctx context.Context, db *gorm.DB, userID string, req *dto.ServiceRequest) (*dto.ServiceResponse, error)
	UpdateService(ctx context.Context, db *gorm.DB, userID, serviceID string, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, db *gorm.DB, userID, serviceID string) error

	AddMenuItem(ctx context.Context, db *gorm.DB, userID string, req *dto.MenuItemRequest) (*dto.MenuItemResponse, error)
	UpdateMenuItem(ctx context.Context, db *gorm.DB, userID, itemID string, req *dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	DeleteMenuItem(ctx context.Context, db *gorm.DB, userID, itemID string) error

	AddPhoto(ctx context.Context, db *gorm.DB, userID string, file *dto.FileInput) (*dto.PhotoResponse, error)
	DeletePhoto(ctx context.Context, db *gorm.DB, userID, photoID string) error
}

type catalogService struct {
	users    repositories.UserRepository
	stylists repositories.StylistRepository
	catalog  repositories.CatalogRepository
	uploads  UploadService
}

func NewCatalogService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	catalog repositories.CatalogRepository,
	uploads UploadService,
) CatalogService {
	return &catalogService{users: users, stylists: stylists, catalog: catalog, uploads: uploads}
}

func serviceResponse(s *models.Service) dto.ServiceResponse {
	return dto.ServiceResponse{ID: s.ID, Name: s.Name, Price: s.Price}
}

func menuItemResponse(m *models.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{ID: m.ID, Name: m.Name, Price: m.Price, Description: m.Description}
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperrors.ValidationError(map[string]string{"price": "Must be greater than or equal to 0"})
	}
	return nil
}

// --- Services ---

func (s *catalogService) AddService(ctx context.Context, db *gorm.DB, userID string, req *dto.ServiceRequest) (*dto.ServiceResponse, error) {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	service := &models.Service{StylistID: userID, Name: strings.TrimSpace(req.Name), Price: req.Price}
	if err := s.catalog.CreateService(db, service); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := serviceResponse(service)
	return &resp, nil
}

func (s *catalogService) findService(db *gorm.DB, userID, serviceID string) (*models.Service, error) {
	service, err := s.catalog.FindServiceForStylist(db, userID, serviceID)
	if err != nil {
		if errors.Is(err, repositories.ErrServiceNotFound) {
			return nil, errServiceNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return service, nil
}

func (s *catalogService) UpdateService(ctx context.Context, db *gorm.DB, userID, serviceID string, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	service, err := s.findService(tx, userID, serviceID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		service.Price = *req.Price
	}
	if err := s.catalog.SaveService(tx, service); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := serviceResponse(service)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, db *gorm.DB, userID, serviceID string) error {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	service, err := s.findService(tx, userID, serviceID)
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteService(tx, service); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

// --- Menu ---

func (s *catalogService) AddMenuItem(ctx context.Context, db *gorm.DB, userID string, req *dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		StylistID:   userID,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.catalog.CreateMenuItem(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := menuItemResponse(item)
	return &resp, nil
}

func (s *catalogService) findMenuItem(db *gorm.DB, userID, itemID string) (*models.MenuItem, error) {
	item, err := s.catalog.FindMenuItemForStylist(db, userID, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrMenuItemNotFound) {
			return nil, errMenuItemNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *catalogService) UpdateMenuItem(ctx context.Context, db *gorm.DB, userID, itemID string, req *dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	item, err := s.findMenuItem(tx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if err := s.catalog.SaveMenuItem(tx, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := menuItemResponse(item)
	return &resp, nil
}

func (s *catalogService) DeleteMenuItem(ctx context.Context, db *gorm.DB, userID, itemID string) error {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	item, err := s.findMenuItem(tx, userID, itemID)
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteMenuItem(tx, item); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

// --- Photos ---

func (s *catalogService) AddPhoto(ctx context.Context, db *gorm.DB, userID string, file *dto.FileInput) (*dto.PhotoResponse, error) {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}

	key, err := s.uploads.StoreImage(ctx, UploadKindPhoto, userID, file)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		s.uploads.Discard(ctx, key)
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	photo := &models.Photo{StylistID: userID, ImagePath: key}
	if err := s.catalog.CreatePhoto(tx, photo); err != nil {
		s.uploads.Discard(ctx, key)
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		s.uploads.Discard(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	return &dto.PhotoResponse{ID: photo.ID, ImageURL: s.uploads.URL(ctx, key)}, nil
}

func (s *catalogService) DeletePhoto(ctx context.Context, db *gorm.DB, userID, photoID string) error {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	photo, err := s.catalog.FindPhotoForStylist(tx, userID, photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrPhotoNotFound) {
			return errPhotoNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.catalog.DeletePhoto(tx, photo); err != nil {
		return apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	// Файл удаляется только после успешного коммита.
	s.uploads.Discard(ctx, photo.ImagePath)
	return nil
}
