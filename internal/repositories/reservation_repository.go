package repositories

import (
	"errors"

	"hela9_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
)

// ReservationRow - бронь с именем/телефоном клиента и названием услуги.
type ReservationRow struct {
	ID          string
	ClientID    string
	ClientName  string
	ClientPhone string
	StylistID   string
	StylistName string
	ServiceName *string
	Date        string
	Time        string
	Notes       string
	Status      models.ReservationStatus
}

type ReservationRepository interface {
	CreateReservation(db *gorm.DB, reservation *models.Reservation) error
	FindByID(db *gorm.DB, id string) (*models.Reservation, error)
	UpdateStatus(db *gorm.DB, id string, status models.ReservationStatus) error
	ListForStylist(db *gorm.DB, stylistID string) ([]ReservationRow, error)
	ListUpcomingForClient(db *gorm.DB, clientID, fromDate string) ([]ReservationRow, error)
}

type ReservationRepositoryImpl struct{}

func NewReservationRepository() ReservationRepository {
	return &ReservationRepositoryImpl{}
}

func (r *ReservationRepositoryImpl) CreateReservation(db *gorm.DB, reservation *models.Reservation) error {
	return db.Create(reservation).Error
}

func (r *ReservationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := db.First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ReservationStatus) error {
	result := db.Model(&models.Reservation{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepositoryImpl) rows(db *gorm.DB) *gorm.DB {
	return db.Table("reservations").
		Select(`reservations.id, reservations.client_id, clients.name AS client_name, clients.phone AS client_phone,
			reservations.stylist_id, stylists.name AS stylist_name, services.name AS service_name,
			reservations.date, reservations.time, reservations.notes, reservations.status`).
		Joins("JOIN users AS clients ON clients.id = reservations.client_id").
		Joins("JOIN users AS stylists ON stylists.id = reservations.stylist_id").
		Joins("LEFT JOIN services ON services.id = reservations.service_id")
}

// ListForStylist - все брони стилиста по дате и времени.
func (r *ReservationRepositoryImpl) ListForStylist(db *gorm.DB, stylistID string) ([]ReservationRow, error) {
	var rows []ReservationRow
	err := r.rows(db).
		Where("reservations.stylist_id = ?", stylistID).
		Order("reservations.date ASC, reservations.time ASC").
		Scan(&rows).Error
	return rows, err
}

// ListUpcomingForClient - брони клиента начиная с fromDate (YYYY-MM-DD), кроме отмененных.
func (r *ReservationRepositoryImpl) ListUpcomingForClient(db *gorm.DB, clientID, fromDate string) ([]ReservationRow, error) {
	var rows []ReservationRow
	err := r.rows(db).
		Where("reservations.client_id = ? AND reservations.date >= ?", clientID, fromDate).
		Where("reservations.status <> ?", models.ReservationStatusCancelled).
		Order("reservations.date ASC, reservations.time ASC").
		Scan(&rows).Error
	return rows, err
}
