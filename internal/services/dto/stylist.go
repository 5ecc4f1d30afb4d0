package dto

import (
	"time"

	"hela9_backend/internal/models"

	"github.com/shopspring/decimal"
)

// SearchQuery - параметры GET /api/stylists. "all" отключает фильтр.
type SearchQuery struct {
	City     string `form:"city" json:"city"`
	Category string `form:"category" json:"category"`
	Sort     string `form:"sort" json:"sort" validate:"omitempty,oneof=rating waiting mobile"`
}

type StylistCard struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	City          string                 `json:"city"`
	Category      models.StylistCategory `json:"category"`
	Address       string                 `json:"address"`
	ProfileImage  string                 `json:"profile_image"`
	Rating        float64                `json:"rating"`
	PeopleWaiting int                    `json:"people_waiting"`
}

type NearbyQuery struct {
	Lat *float64 `form:"lat"`
	Lon *float64 `form:"lon"`
}

type NearbyStylist struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Category     models.StylistCategory `json:"category"`
	DistanceKm   float64                `json:"distance_km"`
	ProfileImage string                 `json:"profile_image"`
	Rating       float64                `json:"rating"`
}

type StylistLocation struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Address         string                 `json:"address"`
	Category        models.StylistCategory `json:"category"`
	Lat             float64                `json:"lat"`
	Lng             float64                `json:"lng"`
	WaitingCount    int                    `json:"waiting_count"`
	CurrentCapacity int                    `json:"current_capacity"`
	Services        []string               `json:"services"`
	ProfileURL      string                 `json:"profile_url"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// UpdateProfileRequest - частичное обновление, nil поля не меняются.
type UpdateProfileRequest struct {
	DisplayName     *string `json:"display_name" validate:"omitempty,min=1,max=100"`
	City            *string `json:"city" validate:"omitempty,max=100"`
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	Address         *string `json:"address" validate:"omitempty,max=200"`
	CurrentCapacity *int    `json:"current_capacity"`
	WaitingCount    *int    `json:"waiting_count"`
}

type UpdateProfileResponse struct {
	Message         string `json:"message"`
	CurrentCapacity int    `json:"current_capacity"`
	WaitingCount    int    `json:"waiting_count"`
}

// --- Catalog ---

type ServiceRequest struct {
	Name  string          `json:"name" validate:"required,max=100"`
	Price decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Price *decimal.Decimal `json:"price"`
}

type ServiceResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type MenuItemRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
}

type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

type PhotoResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	Likes    int    `json:"likes"`
}

type AvatarResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}

// --- Reviews ---

type ReviewRequest struct {
	Text string `json:"comment_text" form:"comment_text" validate:"required,max=2000"`
}

type ReviewResponse struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Text       string    `json:"comment_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// --- Profile page ---

type StylistProfileResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	City            string                 `json:"city"`
	Phone           string                 `json:"phone"`
	Category        models.StylistCategory `json:"category"`
	Description     string                 `json:"description"`
	Address         string                 `json:"address"`
	ProfileImage    string                 `json:"profile_image"`
	Rating          float64                `json:"rating"`
	PeopleWaiting   int                    `json:"people_waiting"`
	CurrentCapacity int                    `json:"current_capacity"`
	Status          models.StylistStatus   `json:"status"`
	Latitude        *float64               `json:"latitude,omitempty"`
	Longitude       *float64               `json:"longitude,omitempty"`
	IsOwner         bool                   `json:"is_owner"`
	IsSubscribed    bool                   `json:"is_subscribed"`
	SubscriberCount int64                  `json:"subscriber_count"`
	Services        []ServiceResponse      `json:"services"`
	Menu            []MenuItemResponse     `json:"menu"`
	Photos          []PhotoResponse        `json:"photos"`
	Reviews         []ReviewResponse       `json:"reviews"`
	Publications    []PublicationResponse  `json:"publications"`
	Trial           *TrialStatus           `json:"trial,omitempty"`
}

// TrialStatus - состояние пробного периода (только для владельца).
type TrialStatus struct {
	TrialStart *time.Time `json:"trial_start,omitempty"`
	TrialEnd   *time.Time `json:"trial_end,omitempty"`
	Expired    bool       `json:"expired"`
	DaysLeft   int        `json:"days_left"`
}

// --- Admin ---

type PendingStylist struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	City            string                 `json:"city"`
	Category        models.StylistCategory `json:"category"`
	PaymentName     string                 `json:"payment_name"`
	PaymentProofURL string                 `json:"payment_proof_url,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

type StylistStatusResponse struct {
	Message string               `json:"message"`
	Status  models.StylistStatus `json:"status"`
}
