package dto

import "hela9_backend/internal/models"

type DashboardResponse struct {
	Role     models.UserRole   `json:"role"`
	Client   *ClientDashboard  `json:"client,omitempty"`
	Stylist  *StylistDashboard `json:"stylist,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

type ClientDashboard struct {
	Proposals    []PendingProposal `json:"proposals"`
	Reservations []ReservationItem `json:"reservations"`
}

type StylistDashboard struct {
	Profile             StylistCard          `json:"profile"`
	Status              models.StylistStatus `json:"status"`
	Trial               TrialStatus          `json:"trial"`
	DeplacementRequests []OpenRequest        `json:"deplacement_requests"`
}
