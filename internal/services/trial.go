package services

import (
	"fmt"
	"time"

	"hela9_backend/internal/models"
	"hela9_backend/internal/services/dto"
)

const (
	warningTrialExpired = "Your trial period has expired. Please renew your subscription to stay visible."
	warningNotActive    = "Your profile is not active yet (status: %s)."
)

// TrialState считает состояние пробного периода на момент now.
// Планировщика нет: функция вызывается при входе и на дашборде.
func TrialState(p *models.StylistProfile, now time.Time) dto.TrialStatus {
	state := dto.TrialStatus{TrialStart: p.TrialStart, TrialEnd: p.TrialEnd}
	if p.TrialEnd == nil {
		return state
	}
	if p.TrialEnd.Before(now) {
		state.Expired = true
		return state
	}
	state.DaysLeft = int(p.TrialEnd.Sub(now).Hours() / 24)
	return state
}

// stylistWarnings - предупреждения, которые не блокируют вход.
func stylistWarnings(p *models.StylistProfile, now time.Time) []string {
	var warnings []string
	if !p.IsActive() {
		warnings = append(warnings, fmt.Sprintf(warningNotActive, p.Status))
	}
	if TrialState(p, now).Expired {
		warnings = append(warnings, warningTrialExpired)
	}
	return warnings
}
