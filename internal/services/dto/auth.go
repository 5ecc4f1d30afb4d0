package dto

import (
	"time"

	"hela9_backend/internal/models"
)

// SignupClientRequest - регистрация клиента
type SignupClientRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=120"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	City     string `json:"city" form:"city" validate:"required,max=100"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,max=30"`
}

// SignupStylistRequest - регистрация стилиста (multipart, файл подтверждения оплаты отдельно)
type SignupStylistRequest struct {
	Name        string `form:"name" json:"name" validate:"required,max=100"`
	Email       string `form:"email" json:"email" validate:"required,email,max=120"`
	Password    string `form:"password" json:"password" validate:"required,min=6"`
	City        string `form:"city" json:"city" validate:"required,max=100"`
	Phone       string `form:"phone" json:"phone" validate:"required,max=30"`
	Category    string `form:"category" json:"category" validate:"required,is-stylist-category"`
	Description string `form:"description" json:"description" validate:"omitempty,max=2000"`
	Address     string `form:"address" json:"address" validate:"required,max=200"`
	PaymentName string `form:"payment_name" json:"payment_name" validate:"omitempty,max=100"`
}

type ConfirmRequest struct {
	Code string `json:"code" validate:"required,confirmation-code"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyRequest struct {
	Code string `json:"code" validate:"required,confirmation-code"`
}

type ResetRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// SessionUser - то, что кладется в сессию и отдается клиенту после входа.
type SessionUser struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	IsConfirmed bool            `json:"is_confirmed"`
}

type SignupResponse struct {
	Message              string      `json:"message"`
	User                 SessionUser `json:"user"`
	ConfirmationRequired bool        `json:"confirmation_required"`
}

type LoginResponse struct {
	Message              string      `json:"message"`
	User                 SessionUser `json:"user"`
	ConfirmationRequired bool        `json:"confirmation_required"`
	Warnings             []string    `json:"warnings,omitempty"`
}

type ConfirmResponse struct {
	Message          string     `json:"message"`
	ProfileActivated bool       `json:"profile_activated"`
	TrialEnd         *time.Time `json:"trial_end,omitempty"`
}

type MeResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	City         string          `json:"city"`
	Phone        string          `json:"phone"`
	IsConfirmed  bool            `json:"is_confirmed"`
	Language     string          `json:"language,omitempty"`
	ProfileImage string          `json:"profile_image,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
