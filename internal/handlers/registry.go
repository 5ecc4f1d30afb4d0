package handlers

import (
	"hela9_backend/internal/i18n"
	"hela9_backend/internal/services"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	StylistHandler     *StylistHandler
	CatalogHandler     *CatalogHandler
	ReservationHandler *ReservationHandler
	FeedHandler        *FeedHandler
	DeplacementHandler *DeplacementHandler
	DashboardHandler   *DashboardHandler
	LanguageHandler    *LanguageHandler
}

// NewAppHandlers собирает хэндлеры поверх контейнера сервисов.
func NewAppHandlers(base *BaseHandler, svc *services.ServiceContainer, catalog *i18n.Catalog, rateLimit RateLimitFunc) *AppHandlers {
	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, svc.AuthService, rateLimit),
		StylistHandler:     NewStylistHandler(base, svc.StylistService, svc.ReviewService),
		CatalogHandler:     NewCatalogHandler(base, svc.CatalogService),
		ReservationHandler: NewReservationHandler(base, svc.ReservationService),
		FeedHandler:        NewFeedHandler(base, svc.FeedService, svc.SubscriptionService),
		DeplacementHandler: NewDeplacementHandler(base, svc.DeplacementService),
		DashboardHandler:   NewDashboardHandler(base, svc.DashboardService),
		LanguageHandler:    NewLanguageHandler(base, catalog, svc.AuthService),
	}
}
