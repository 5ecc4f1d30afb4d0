package dto

import (
	"time"

	"hela9_backend/internal/models"

	"github.com/shopspring/decimal"
)

type BroadcastRequest struct {
	Service  string `json:"service" validate:"required,max=200"`
	Location string `json:"location" validate:"required,max=255"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Details  string `json:"details" validate:"omitempty,max=2000"`
}

type ProposeRequest struct {
	Price decimal.Decimal `json:"price"`
	Notes string          `json:"notes" validate:"omitempty,max=2000"`
}

type RespondRequest struct {
	Action string `json:"action" validate:"required,is-respond-action"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type RespondResponse struct {
	Message      string                `json:"message"`
	Status       models.ProposalStatus `json:"status"`
	StylistPhone string                `json:"coiffeur_phone,omitempty"`
	WhatsAppLink string                `json:"whatsapp_link,omitempty"`
}

// OpenRequest - широковещательный запрос, видимый мобильному стилисту.
type OpenRequest struct {
	ID               string    `json:"id"`
	ServiceRequested string    `json:"service_requested"`
	ClientLocation   string    `json:"client_location"`
	PreferredDate    string    `json:"preferred_date"`
	PreferredTime    string    `json:"preferred_time"`
	Details          string    `json:"details"`
	CreatedAt        time.Time `json:"created_at"`
}

// PendingProposal - предложение, ожидающее ответа клиента.
type PendingProposal struct {
	ID               string          `json:"id"`
	RequestID        string          `json:"request_id"`
	StylistID        string          `json:"stylist_id"`
	StylistName      string          `json:"stylist_name"`
	ServiceRequested string          `json:"service_requested"`
	ProposedPrice    decimal.Decimal `json:"proposed_price"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
}
