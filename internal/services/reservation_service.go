package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/validator"
	"hela9_backend/pkg/apperrors"
)

var errReservationNotFound = apperrors.NewNotFoundError("reservation", "Reservation not found.")

type ReservationService interface {
	Reserve(ctx context.Context, db *gorm.DB, clientID string, req *dto.ReserveRequest) (*dto.ReservationResponse, error)
	ListForStylist(ctx context.Context, db *gorm.DB, userID, stylistID string) ([]dto.ReservationItem, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, reservationID string, req *dto.ReservationStatusRequest) (*dto.ReservationStatusResponse, error)
	UpcomingForClient(ctx context.Context, db *gorm.DB, clientID string, now time.Time) ([]dto.ReservationItem, error)
}

type reservationService struct {
	users        repositories.UserRepository
	stylists     repositories.StylistRepository
	catalog      repositories.CatalogRepository
	reservations repositories.ReservationRepository
}

func NewReservationService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	catalog repositories.CatalogRepository,
	reservations repositories.ReservationRepository,
) ReservationService {
	return &reservationService{
		users:        users,
		stylists:     stylists,
		catalog:      catalog,
		reservations: reservations,
	}
}

func (s *reservationService) Reserve(ctx context.Context, db *gorm.DB, clientID string, req *dto.ReserveRequest) (*dto.ReservationResponse, error) {
	if _, err := requireConfirmed(db, s.users, clientID, models.UserRoleClient); err != nil {
		return nil, err
	}
	if !validator.IsDate(req.Date) || !validator.IsTime(req.Time) {
		return nil, apperrors.ErrInvalidDateTime
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	profile, err := s.stylists.FindProfile(tx, req.StylistID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrStylistNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !profile.IsActive() {
		return nil, apperrors.ErrProfileNotActive
	}

	var serviceID *string
	if req.ServiceID != nil && *req.ServiceID != "" {
		if _, err := s.catalog.FindServiceForStylist(tx, profile.UserID, *req.ServiceID); err != nil {
			if errors.Is(err, repositories.ErrServiceNotFound) {
				return nil, apperrors.ErrServiceNotOfStylist
			}
			return nil, apperrors.InternalError(err)
		}
		serviceID = req.ServiceID
	}

	reservation := &models.Reservation{
		ClientID:  clientID,
		StylistID: profile.UserID,
		ServiceID: serviceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     strings.TrimSpace(req.Notes),
		Status:    models.ReservationStatusPending,
	}
	if err := s.reservations.CreateReservation(tx, reservation); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Reservation created", "reservation_id", reservation.ID, "stylist_id", reservation.StylistID)

	return &dto.ReservationResponse{
		Message:   "Reservation created successfully.",
		ID:        reservation.ID,
		StylistID: reservation.StylistID,
		Date:      reservation.Date,
		Time:      reservation.Time,
		Status:    reservation.Status,
	}, nil
}

func reservationItem(row repositories.ReservationRow) dto.ReservationItem {
	item := dto.ReservationItem{
		ID:          row.ID,
		ClientName:  row.ClientName,
		ClientPhone: row.ClientPhone,
		StylistID:   row.StylistID,
		StylistName: row.StylistName,
		Date:        row.Date,
		Time:        row.Time,
		Service:     "Unspecified",
		Notes:       row.Notes,
		Status:      row.Status,
	}
	if row.ServiceName != nil && *row.ServiceName != "" {
		item.Service = *row.ServiceName
	}
	if item.ClientPhone == "" {
		item.ClientPhone = "N/A"
	}
	if item.Notes == "" {
		item.Notes = "None"
	}
	return item
}

func (s *reservationService) ListForStylist(ctx context.Context, db *gorm.DB, userID, stylistID string) ([]dto.ReservationItem, error) {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}
	if userID != stylistID {
		return nil, apperrors.ErrNotOwner
	}

	rows, err := s.reservations.ListForStylist(db, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.ReservationItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, reservationItem(row))
	}
	return out, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, db *gorm.DB, userID, reservationID string, req *dto.ReservationStatusRequest) (*dto.ReservationStatusResponse, error) {
	next := models.ReservationStatus(req.Status)
	if !next.IsValid() {
		return nil, apperrors.ErrInvalidReservationStatus
	}
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	reservation, err := s.reservations.FindByID(tx, reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrReservationNotFound) {
			return nil, errReservationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if reservation.StylistID != userID {
		return nil, apperrors.ErrNotOwner
	}
	if !reservation.Status.CanTransitionTo(next) {
		return nil, apperrors.ErrInvalidReservationStatus
	}
	if err := s.reservations.UpdateStatus(tx, reservation.ID, next); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ReservationStatusResponse{
		Message:   fmt.Sprintf("Reservation %s status updated to %s successfully.", reservation.ID, next),
		NewStatus: next,
	}, nil
}

func (s *reservationService) UpcomingForClient(ctx context.Context, db *gorm.DB, clientID string, now time.Time) ([]dto.ReservationItem, error) {
	rows, err := s.reservations.ListUpcomingForClient(db, clientID, now.Format(validator.DateLayout))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.ReservationItem, 0, len(rows))
	for _, row := range rows {
		item := reservationItem(row)
		item.ClientName, item.ClientPhone = "", ""
		out = append(out, item)
	}
	return out, nil
}
