package repositories

import (
	"errors"

	"hela9_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrPhotoNotFound    = errors.New("photo not found")
)

// CatalogRepository - услуги, меню и фото стилиста.
// Find*ForStylist ищут запись только среди записей данного стилиста.
type CatalogRepository interface {
	CreateService(db *gorm.DB, service *models.Service) error
	FindServiceForStylist(db *gorm.DB, stylistID, serviceID string) (*models.Service, error)
	SaveService(db *gorm.DB, service *models.Service) error
	DeleteService(db *gorm.DB, service *models.Service) error
	ListServices(db *gorm.DB, stylistID string) ([]models.Service, error)
	ServiceNames(db *gorm.DB, stylistIDs []string) (map[string][]string, error)

	CreateMenuItem(db *gorm.DB, item *models.MenuItem) error
	FindMenuItemForStylist(db *gorm.DB, stylistID, itemID string) (*models.MenuItem, error)
	SaveMenuItem(db *gorm.DB, item *models.MenuItem) error
	DeleteMenuItem(db *gorm.DB, item *models.MenuItem) error
	ListMenu(db *gorm.DB, stylistID string) ([]models.MenuItem, error)

	CreatePhoto(db *gorm.DB, photo *models.Photo) error
	FindPhotoForStylist(db *gorm.DB, stylistID, photoID string) (*models.Photo, error)
	DeletePhoto(db *gorm.DB, photo *models.Photo) error
	ListPhotos(db *gorm.DB, stylistID string) ([]models.Photo, error)
}

type CatalogRepositoryImpl struct{}

func NewCatalogRepository() CatalogRepository {
	return &CatalogRepositoryImpl{}
}

// --- Services ---

func (r *CatalogRepositoryImpl) CreateService(db *gorm.DB, service *models.Service) error {
	return db.Create(service).Error
}

func (r *CatalogRepositoryImpl) FindServiceForStylist(db *gorm.DB, stylistID, serviceID string) (*models.Service, error) {
	var service models.Service
	err := db.Where("id = ? AND stylist_id = ?", serviceID, stylistID).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *CatalogRepositoryImpl) SaveService(db *gorm.DB, service *models.Service) error {
	return db.Save(service).Error
}

func (r *CatalogRepositoryImpl) DeleteService(db *gorm.DB, service *models.Service) error {
	return db.Delete(service).Error
}

func (r *CatalogRepositoryImpl) ListServices(db *gorm.DB, stylistID string) ([]models.Service, error) {
	var services []models.Service
	err := db.Where("stylist_id = ?", stylistID).Order("name ASC").Find(&services).Error
	return services, err
}

// ServiceNames возвращает stylist_id -> названия услуг.
func (r *CatalogRepositoryImpl) ServiceNames(db *gorm.DB, stylistIDs []string) (map[string][]string, error) {
	names := make(map[string][]string, len(stylistIDs))
	if len(stylistIDs) == 0 {
		return names, nil
	}

	var services []models.Service
	if err := db.Where("stylist_id IN ?", stylistIDs).Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	for _, s := range services {
		names[s.StylistID] = append(names[s.StylistID], s.Name)
	}
	return names, nil
}

// --- Menu ---

func (r *CatalogRepositoryImpl) CreateMenuItem(db *gorm.DB, item *models.MenuItem) error {
	return db.Create(item).Error
}

func (r *CatalogRepositoryImpl) FindMenuItemForStylist(db *gorm.DB, stylistID, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := db.Where("id = ? AND stylist_id = ?", itemID, stylistID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepositoryImpl) SaveMenuItem(db *gorm.DB, item *models.MenuItem) error {
	return db.Save(item).Error
}

func (r *CatalogRepositoryImpl) DeleteMenuItem(db *gorm.DB, item *models.MenuItem) error {
	return db.Delete(item).Error
}

func (r *CatalogRepositoryImpl) ListMenu(db *gorm.DB, stylistID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := db.Where("stylist_id = ?", stylistID).Order("name ASC").Find(&items).Error
	return items, err
}

// --- Photos ---

func (r *CatalogRepositoryImpl) CreatePhoto(db *gorm.DB, photo *models.Photo) error {
	return db.Create(photo).Error
}

func (r *CatalogRepositoryImpl) FindPhotoForStylist(db *gorm.DB, stylistID, photoID string) (*models.Photo, error) {
	var photo models.Photo
	err := db.Where("id = ? AND stylist_id = ?", photoID, stylistID).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *CatalogRepositoryImpl) DeletePhoto(db *gorm.DB, photo *models.Photo) error {
	return db.Delete(photo).Error
}

func (r *CatalogRepositoryImpl) ListPhotos(db *gorm.DB, stylistID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := db.Where("stylist_id = ?", stylistID).Order("created_at DESC").Find(&photos).Error
	return photos, err
}
