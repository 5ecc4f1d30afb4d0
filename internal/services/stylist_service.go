package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

const (
	DefaultNearbyLat = 48.8606
	DefaultNearbyLon = 2.3376

	nearbyRadiusKm = 50.0
	nearbyLimit    = 10

	filterAll = "all"
)

// StylistService - профиль стилиста, поиск и активация администратором.
type StylistService interface {
	Search(ctx context.Context, db *gorm.DB, viewerID string, q *dto.SearchQuery) ([]dto.StylistCard, error)
	Nearby(ctx context.Context, db *gorm.DB, lat, lon float64) ([]dto.NearbyStylist, error)
	Locations(ctx context.Context, db *gorm.DB) ([]dto.StylistLocation, error)
	GetProfile(ctx context.Context, db *gorm.DB, viewerID, stylistID string) (*dto.StylistProfileResponse, error)

	UpdateProfile(ctx context.Context, db *gorm.DB, userID, stylistID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
	UpdateLocation(ctx context.Context, db *gorm.DB, userID string, req *dto.LocationRequest) error
	UploadAvatar(ctx context.Context, db *gorm.DB, userID string, file *dto.FileInput) (*dto.AvatarResponse, error)

	ListPending(ctx context.Context, db *gorm.DB, adminID string) ([]dto.PendingStylist, error)
	Approve(ctx context.Context, db *gorm.DB, adminID, stylistID string) (*dto.StylistStatusResponse, error)
	Reject(ctx context.Context, db *gorm.DB, adminID, stylistID string) (*dto.StylistStatusResponse, error)
}

type stylistService struct {
	users         repositories.UserRepository
	stylists      repositories.StylistRepository
	catalog       repositories.CatalogRepository
	reviews       repositories.ReviewRepository
	subscriptions repositories.SubscriptionRepository
	feed          FeedService
	uploads       UploadService
	now           func() time.Time
}

func NewStylistService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	catalog repositories.CatalogRepository,
	reviews repositories.ReviewRepository,
	subscriptions repositories.SubscriptionRepository,
	feed FeedService,
	uploads UploadService,
) StylistService {
	return &stylistService{
		users:         users,
		stylists:      stylists,
		catalog:       catalog,
		reviews:       reviews,
		subscriptions: subscriptions,
		feed:          feed,
		uploads:       uploads,
		now:           time.Now,
	}
}

func (s *stylistService) card(ctx context.Context, row repositories.StylistRow) dto.StylistCard {
	return dto.StylistCard{
		ID:            row.UserID,
		Name:          row.Name,
		City:          row.City,
		Category:      row.Category,
		Address:       row.Address,
		ProfileImage:  s.uploads.URL(ctx, row.ProfileImage),
		Rating:        row.Rating,
		PeopleWaiting: row.PeopleWaiting,
	}
}

func (s *stylistService) Search(ctx context.Context, db *gorm.DB, viewerID string, q *dto.SearchQuery) ([]dto.StylistCard, error) {
	filter := repositories.StylistFilter{Sort: q.Sort}

	// Без явного города ищем в городе вошедшего пользователя.
	switch city := strings.TrimSpace(q.City); {
	case strings.EqualFold(city, filterAll):
	case city != "":
		filter.City = city
	case viewerID != "":
		if viewer, err := s.users.FindByID(db, viewerID); err == nil {
			filter.City = viewer.City
		}
	}

	if category := strings.TrimSpace(q.Category); category != "" && !strings.EqualFold(category, filterAll) {
		filter.Category = models.StylistCategory(category)
		if !filter.Category.IsValid() {
			return nil, apperrors.ValidationError(map[string]string{"category": "Must be one of: Men, Women, Mobile, all"})
		}
	}

	rows, err := s.stylists.Search(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.StylistCard, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.card(ctx, row))
	}
	return out, nil
}

func (s *stylistService) Nearby(ctx context.Context, db *gorm.DB, lat, lon float64) ([]dto.NearbyStylist, error) {
	rows, err := s.stylists.FindActiveWithLocation(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.NearbyStylist, 0, len(rows))
	for _, row := range rows {
		d := HaversineKm(lat, lon, *row.Latitude, *row.Longitude)
		if d >= nearbyRadiusKm {
			continue
		}
		out = append(out, dto.NearbyStylist{
			ID:           row.UserID,
			Name:         row.Name,
			Category:     row.Category,
			DistanceKm:   roundTo(d, 0.1),
			ProfileImage: s.uploads.URL(ctx, row.ProfileImage),
			Rating:       row.Rating,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if len(out) > nearbyLimit {
		out = out[:nearbyLimit]
	}
	return out, nil
}

func (s *stylistService) Locations(ctx context.Context, db *gorm.DB) ([]dto.StylistLocation, error) {
	rows, err := s.stylists.FindActiveWithLocation(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	names, err := s.catalog.ServiceNames(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.StylistLocation, 0, len(rows))
	for _, row := range rows {
		services := names[row.UserID]
		if services == nil {
			services = []string{}
		}
		out = append(out, dto.StylistLocation{
			ID:              row.UserID,
			Name:            row.Name,
			Address:         row.Address,
			Category:        row.Category,
			Lat:             *row.Latitude,
			Lng:             *row.Longitude,
			WaitingCount:    row.PeopleWaiting,
			CurrentCapacity: row.CurrentCapacity,
			Services:        services,
			ProfileURL:      "/api/stylists/" + row.UserID,
		})
	}
	return out, nil
}

func (s *stylistService) findProfile(db *gorm.DB, stylistID string) (*models.StylistProfile, error) {
	profile, err := s.stylists.FindProfile(db, stylistID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrStylistNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *stylistService) GetProfile(ctx context.Context, db *gorm.DB, viewerID, stylistID string) (*dto.StylistProfileResponse, error) {
	profile, err := s.findProfile(db, stylistID)
	if err != nil {
		return nil, err
	}
	isOwner := viewerID != "" && viewerID == stylistID
	if !profile.IsActive() && !isOwner {
		return nil, apperrors.ErrProfileNotActive
	}
	user, err := s.users.FindByID(db, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.StylistProfileResponse{
		ID:              user.ID,
		Name:            user.Name,
		City:            user.City,
		Phone:           user.Phone,
		Category:        profile.Category,
		Description:     profile.Description,
		Address:         profile.Address,
		ProfileImage:    s.uploads.URL(ctx, profile.ProfileImage),
		Rating:          profile.Rating,
		PeopleWaiting:   profile.PeopleWaiting,
		CurrentCapacity: profile.CurrentCapacity,
		Status:          profile.Status,
		Latitude:        profile.Latitude,
		Longitude:       profile.Longitude,
		IsOwner:         isOwner,
	}
	if isOwner {
		trial := TrialState(profile, s.now())
		resp.Trial = &trial
	}

	services, err := s.catalog.ListServices(db, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Services = make([]dto.ServiceResponse, 0, len(services))
	for _, sv := range services {
		resp.Services = append(resp.Services, serviceResponse(&sv))
	}

	menu, err := s.catalog.ListMenu(db, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Menu = make([]dto.MenuItemResponse, 0, len(menu))
	for _, item := range menu {
		resp.Menu = append(resp.Menu, menuItemResponse(&item))
	}

	photos, err := s.catalog.ListPhotos(db, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Photos = make([]dto.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		resp.Photos = append(resp.Photos, dto.PhotoResponse{ID: p.ID, ImageURL: s.uploads.URL(ctx, p.ImagePath), Likes: p.Likes})
	}

	reviews, err := s.reviews.ListForStylist(db, stylistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Reviews = make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, dto.ReviewResponse{ID: r.ID, ClientName: r.ClientName, Text: r.Text, CreatedAt: r.CreatedAt})
	}

	if resp.Publications, err = s.feed.ListForAuthor(ctx, db, stylistID, viewerID); err != nil {
		return nil, err
	}

	if resp.SubscriberCount, err = s.subscriptions.CountSubscribers(db, stylistID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if viewerID != "" && !isOwner {
		if resp.IsSubscribed, err = s.subscriptions.IsSubscribed(db, viewerID, stylistID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return resp, nil
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (s *stylistService) UpdateProfile(ctx context.Context, db *gorm.DB, userID, stylistID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	if userID != stylistID {
		if _, err := loadUser(db, s.users, userID); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrNotOwner
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	_, profile, err := requireStylist(tx, s.users, s.stylists, userID)
	if err != nil {
		return nil, err
	}

	userFields := map[string]interface{}{}
	if req.DisplayName != nil {
		userFields["name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.City != nil {
		userFields["city"] = strings.TrimSpace(*req.City)
	}
	if req.Phone != nil {
		userFields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if len(userFields) > 0 {
		if err := s.users.UpdateFields(tx, userID, userFields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if req.Bio != nil {
		profile.Description = strings.TrimSpace(*req.Bio)
	}
	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.CurrentCapacity != nil {
		profile.CurrentCapacity = clampZero(*req.CurrentCapacity)
	}
	if req.WaitingCount != nil {
		profile.PeopleWaiting = clampZero(*req.WaitingCount)
	}
	if err := s.stylists.SaveProfile(tx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UpdateProfileResponse{
		Message:         "Profile updated successfully",
		CurrentCapacity: profile.CurrentCapacity,
		WaitingCount:    profile.PeopleWaiting,
	}, nil
}

func (s *stylistService) UpdateLocation(ctx context.Context, db *gorm.DB, userID string, req *dto.LocationRequest) error {
	if _, _, err := requireStylist(db, s.users, s.stylists, userID); err != nil {
		return err
	}
	err := s.stylists.UpdateFields(db, userID, map[string]interface{}{
		"latitude":            *req.Latitude,
		"longitude":           *req.Longitude,
		"location_updated_at": s.now().UTC(),
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *stylistService) UploadAvatar(ctx context.Context, db *gorm.DB, userID string, file *dto.FileInput) (*dto.AvatarResponse, error) {
	_, profile, err := requireStylist(db, s.users, s.stylists, userID)
	if err != nil {
		return nil, err
	}

	key, err := s.uploads.StoreAvatar(ctx, userID, file)
	if err != nil {
		return nil, err
	}
	previous := profile.ProfileImage

	if err := s.stylists.UpdateFields(db, userID, map[string]interface{}{"profile_image": key}); err != nil {
		s.uploads.Discard(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	if !models.IsDefaultAvatar(previous) {
		s.uploads.Discard(ctx, previous)
	}
	logger.CtxInfo(ctx, "Avatar updated", "user_id", userID)

	return &dto.AvatarResponse{
		Message:  "Profile picture uploaded successfully.",
		ImageURL: s.uploads.URL(ctx, key),
	}, nil
}

func (s *stylistService) ListPending(ctx context.Context, db *gorm.DB, adminID string) ([]dto.PendingStylist, error) {
	if _, err := requireConfirmed(db, s.users, adminID, models.UserRoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.stylists.FindByStatus(db, models.StylistStatusPendingActivation)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PendingStylist, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PendingStylist{
			ID:              row.UserID,
			Name:            row.Name,
			City:            row.City,
			Category:        row.Category,
			PaymentName:     row.PaymentName,
			PaymentProofURL: s.uploads.SignedURL(ctx, row.PaymentProof),
			CreatedAt:       row.CreatedAt,
		})
	}
	return out, nil
}

func (s *stylistService) Approve(ctx context.Context, db *gorm.DB, adminID, stylistID string) (*dto.StylistStatusResponse, error) {
	return s.resolveActivation(ctx, db, adminID, stylistID, models.StylistStatusActive)
}

func (s *stylistService) Reject(ctx context.Context, db *gorm.DB, adminID, stylistID string) (*dto.StylistStatusResponse, error) {
	return s.resolveActivation(ctx, db, adminID, stylistID, models.StylistStatusRejected)
}

func (s *stylistService) resolveActivation(ctx context.Context, db *gorm.DB, adminID, stylistID string, next models.StylistStatus) (*dto.StylistStatusResponse, error) {
	if _, err := requireConfirmed(db, s.users, adminID, models.UserRoleAdmin); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	profile, err := s.findProfile(tx, stylistID)
	if err != nil {
		return nil, err
	}
	if profile.Status != models.StylistStatusPendingActivation {
		return nil, apperrors.ErrStylistNotPendingActivation
	}

	fields := map[string]interface{}{"status": next}
	if next == models.StylistStatusActive {
		fields["activation_date"] = s.now().UTC()
	}
	if err := s.stylists.UpdateFields(tx, stylistID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Stylist activation resolved", "stylist_id", stylistID, "status", next, "admin_id", adminID)
	return &dto.StylistStatusResponse{Message: "Stylist status updated to " + string(next) + ".", Status: next}, nil
}
