package dto

import "hela9_backend/internal/models"

type ReserveRequest struct {
	StylistID string  `json:"stylist_id" validate:"required"`
	ServiceID *string `json:"service_id" validate:"omitempty,min=1"`
	Date      string  `json:"date" validate:"required,date-ymd"`
	Time      string  `json:"time" validate:"required,time-hm"`
	Notes     string  `json:"notes" validate:"omitempty,max=1000"`
}

type ReservationResponse struct {
	Message   string                   `json:"message"`
	ID        string                   `json:"id"`
	StylistID string                   `json:"stylist_id"`
	Date      string                   `json:"date"`
	Time      string                   `json:"time"`
	Status    models.ReservationStatus `json:"status"`
}

// ReservationItem - строка в списке броней стилиста или клиента.
type ReservationItem struct {
	ID          string                   `json:"id"`
	ClientName  string                   `json:"client_name,omitempty"`
	ClientPhone string                   `json:"client_phone,omitempty"`
	StylistID   string                   `json:"stylist_id,omitempty"`
	StylistName string                   `json:"stylist_name,omitempty"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Service     string                   `json:"service"`
	Notes       string                   `json:"notes"`
	Status      models.ReservationStatus `json:"status"`
}

type ReservationStatusRequest struct {
	Status string `json:"status" validate:"required,is-reservation-status"`
}

type ReservationStatusResponse struct {
	Message   string                   `json:"message"`
	NewStatus models.ReservationStatus `json:"new_status"`
}
