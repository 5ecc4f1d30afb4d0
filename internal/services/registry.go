package services

import (
	"hela9_backend/internal/email"
	"hela9_backend/internal/imageprocessor"
	"hela9_backend/internal/metrics"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	StylistService      StylistService
	CatalogService      CatalogService
	ReviewService       ReviewService
	ReservationService  ReservationService
	FeedService         FeedService
	SubscriptionService SubscriptionService
	DeplacementService  DeplacementService
	DashboardService    DashboardService
	UploadService       UploadService
	EmailService        *EmailService
}

// Dependencies - внешние зависимости сервисного слоя.
type Dependencies struct {
	Storage      storage.Storage
	Mailer       email.Provider
	AppName      string
	Events       EventPublisher
	Metrics      *metrics.Registry
	MaxFileSize  int64
	ImageQuality int
	AvatarSize   int
}

// NewServiceContainer собирает репозитории и сервисы.
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	stylistRepo := repositories.NewStylistRepository()
	catalogRepo := repositories.NewCatalogRepository()
	reviewRepo := repositories.NewReviewRepository()
	reservationRepo := repositories.NewReservationRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	publicationRepo := repositories.NewPublicationRepository()
	deplacementRepo := repositories.NewDeplacementRepository()

	uploadService := NewUploadService(
		deps.Storage,
		imageprocessor.NewProcessor(deps.ImageQuality, deps.AvatarSize),
		deps.MaxFileSize,
	)
	emailService := NewEmailService(deps.Mailer, deps.AppName)

	feedService := NewFeedService(userRepo, stylistRepo, publicationRepo, uploadService)
	reservationService := NewReservationService(userRepo, stylistRepo, catalogRepo, reservationRepo)
	deplacementService := NewDeplacementService(userRepo, stylistRepo, deplacementRepo, deps.Events, deps.Metrics)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, stylistRepo, uploadService, emailService, deps.Metrics),
		StylistService:      NewStylistService(userRepo, stylistRepo, catalogRepo, reviewRepo, subscriptionRepo, feedService, uploadService),
		CatalogService:      NewCatalogService(userRepo, stylistRepo, catalogRepo, uploadService),
		ReviewService:       NewReviewService(userRepo, stylistRepo, reviewRepo),
		ReservationService:  reservationService,
		FeedService:         feedService,
		SubscriptionService: NewSubscriptionService(userRepo, stylistRepo, subscriptionRepo),
		DeplacementService:  deplacementService,
		DashboardService:    NewDashboardService(userRepo, stylistRepo, reservationService, deplacementService, uploadService),
		UploadService:       uploadService,
		EmailService:        emailService,
	}
}
