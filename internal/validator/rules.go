package validator

import (
	"log"
	"time"

	"hela9_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// registerCustomRules регистрирует кастомные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила на основе statuses.go
	mustRegister("is-stylist-category", validateStylistCategory)
	mustRegister("is-reservation-status", validateReservationStatus)
	mustRegister("is-respond-action", validateRespondAction)

	// Форматы
	mustRegister("confirmation-code", validateConfirmationCode)
	mustRegister("date-ymd", validateDate)
	mustRegister("time-hm", validateTime)
}

func validateStylistCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	return models.StylistCategory(value).IsValid()
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ReservationStatus(value).IsValid()
}

func validateRespondAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "accept", "refuse":
		return true
	default:
		return false
	}
}

func validateConfirmationCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if len(value) != 6 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsDate(value)
}

func validateTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsTime(value)
}

// IsDate проверяет строгий формат YYYY-MM-DD.
func IsDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// IsTime проверяет строгий формат HH:MM.
func IsTime(value string) bool {
	_, err := time.Parse(TimeLayout, value)
	return err == nil
}
