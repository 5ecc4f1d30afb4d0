package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"hela9_backend/internal/auth"
	"hela9_backend/internal/logger"
	"hela9_backend/internal/metrics"
	"hela9_backend/internal/models"
	"hela9_backend/internal/repositories"
	"hela9_backend/internal/services/dto"
	"hela9_backend/pkg/apperrors"
)

const maxCodeAttempts = 10

type AuthService interface {
	SignupClient(ctx context.Context, db *gorm.DB, req *dto.SignupClientRequest) (*dto.SignupResponse, error)
	SignupStylist(ctx context.Context, db *gorm.DB, req *dto.SignupStylistRequest, proof *dto.FileInput) (*dto.SignupResponse, error)
	Confirm(ctx context.Context, db *gorm.DB, userID, code string) (*dto.ConfirmResponse, error)
	ResendConfirmation(ctx context.Context, db *gorm.DB, userID string) error
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Forgot возвращает true, если пользователь найден и код отправлен.
	Forgot(ctx context.Context, db *gorm.DB, email string) (bool, error)
	VerifyResetCode(ctx context.Context, db *gorm.DB, email, code string) error
	ResetPassword(ctx context.Context, db *gorm.DB, email string, req *dto.ResetRequest) error

	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.MeResponse, error)
	UpdateLanguage(ctx context.Context, db *gorm.DB, userID, lang string) error
}

type authService struct {
	users    repositories.UserRepository
	stylists repositories.StylistRepository
	uploads  UploadService
	mailer   *EmailService
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewAuthService(
	users repositories.UserRepository,
	stylists repositories.StylistRepository,
	uploads UploadService,
	mailer *EmailService,
	metrics *metrics.Registry,
) AuthService {
	return &authService{
		users:    users,
		stylists: stylists,
		uploads:  uploads,
		mailer:   mailer,
		metrics:  metrics,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sessionUser(u *models.User) dto.SessionUser {
	return dto.SessionUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsConfirmed: u.IsConfirmed,
	}
}

// newCode подбирает код, который сейчас ни у кого не выставлен.
func (s *authService) newCode(db *gorm.DB) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := auth.GenerateCode()
		if err != nil {
			return "", err
		}
		inUse, err := s.users.CodeInUse(db, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique confirmation code")
}

func (s *authService) ensureEmailFree(db *gorm.DB, email string) error {
	_, err := s.users.FindByEmail(db, normalizeEmail(email))
	if err == nil {
		return apperrors.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) createUser(tx *gorm.DB, user *models.User) error {
	if err := s.users.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyRegistered
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) SignupClient(ctx context.Context, db *gorm.DB, req *dto.SignupClientRequest) (*dto.SignupResponse, error) {
	email := normalizeEmail(req.Email)
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.ensureEmailFree(tx, email); err != nil {
		return nil, err
	}
	code, err := s.newCode(tx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:             strings.TrimSpace(req.Name),
		Email:            email,
		PasswordHash:     hash,
		Role:             models.UserRoleClient,
		City:             strings.TrimSpace(req.City),
		Phone:            strings.TrimSpace(req.Phone),
		ConfirmationCode: &code,
	}
	if err := s.createUser(tx, user); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.mailer.SendConfirmationCode(ctx, user, code)
	s.metrics.SignupCompleted(string(user.Role))
	logger.CtxInfo(ctx, "Client signed up", "user_id", user.ID)

	return &dto.SignupResponse{
		Message:              "Account created. A 6-digit confirmation code has been sent to your email.",
		User:                 sessionUser(user),
		ConfirmationRequired: true,
	}, nil
}

func (s *authService) SignupStylist(ctx context.Context, db *gorm.DB, req *dto.SignupStylistRequest, proof *dto.FileInput) (*dto.SignupResponse, error) {
	category := models.StylistCategory(req.Category)
	if !category.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{"category": "Must be one of: Men, Women, Mobile"})
	}
	if proof != nil {
		if err := s.uploads.Validate(proof); err != nil {
			return nil, err
		}
	}

	email := normalizeEmail(req.Email)
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.ensureEmailFree(tx, email); err != nil {
		return nil, err
	}
	code, err := s.newCode(tx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:             strings.TrimSpace(req.Name),
		Email:            email,
		PasswordHash:     hash,
		Role:             models.UserRoleStylist,
		City:             strings.TrimSpace(req.City),
		Phone:            strings.TrimSpace(req.Phone),
		ConfirmationCode: &code,
	}
	if err := s.createUser(tx, user); err != nil {
		return nil, err
	}

	// Файл сохраняется до коммита; при любой ошибке ниже он удаляется.
	var proofKey string
	committed := false
	if proof != nil {
		proofKey, err = s.uploads.StoreImage(ctx, UploadKindPaymentProof, user.ID, proof)
		if err != nil {
			return nil, err
		}
		defer func() {
			if !committed {
				s.uploads.Discard(ctx, proofKey)
			}
		}()
	}

	profile := &models.StylistProfile{
		UserID:       user.ID,
		Category:     category,
		Description:  strings.TrimSpace(req.Description),
		Address:      strings.TrimSpace(req.Address),
		ProfileImage: models.DefaultAvatar(category),
		Rating:       models.DefaultRating,
		Status:       models.StylistStatusPendingEmailConfirmation,
		PaymentName:  strings.TrimSpace(req.PaymentName),
		PaymentProof: proofKey,
	}
	if err := s.stylists.CreateProfile(tx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	committed = true

	s.mailer.SendConfirmationCode(ctx, user, code)
	s.metrics.SignupCompleted(string(user.Role))
	logger.CtxInfo(ctx, "Stylist signed up", "user_id", user.ID, "category", category)

	return &dto.SignupResponse{
		Message:              "Account created. A 6-digit confirmation code has been sent to your email.",
		User:                 sessionUser(user),
		ConfirmationRequired: true,
	}, nil
}

func codesEqual(stored *string, submitted string) bool {
	if stored == nil || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(submitted)) == 1
}

func (s *authService) Confirm(ctx context.Context, db *gorm.DB, userID, code string) (*dto.ConfirmResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := loadUser(tx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if user.IsConfirmed {
		return nil, apperrors.ErrAlreadyConfirmed
	}
	if !codesEqual(user.ConfirmationCode, code) {
		return nil, apperrors.ErrInvalidConfirmationCode
	}

	if err := s.users.Confirm(tx, user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ConfirmResponse{Message: "Account confirmed successfully."}

	if user.IsStylist() {
		profile, err := s.stylists.FindProfile(tx, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		if profile != nil && profile.Status == models.StylistStatusPendingEmailConfirmation {
			now := s.now().UTC()
			trialEnd := now.Add(models.TrialPeriodDays * 24 * time.Hour)
			err := s.stylists.UpdateFields(tx, user.ID, map[string]interface{}{
				"status":          models.StylistStatusActive,
				"activation_date": now,
				"trial_start":     now,
				"trial_end":       trialEnd,
			})
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			resp.ProfileActivated = true
			resp.TrialEnd = &trialEnd
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.metrics.AccountConfirmed(string(user.Role))
	logger.CtxInfo(ctx, "Account confirmed", "user_id", user.ID, "profile_activated", resp.ProfileActivated)
	return resp, nil
}

func (s *authService) ResendConfirmation(ctx context.Context, db *gorm.DB, userID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := loadUser(tx, s.users, userID)
	if err != nil {
		return err
	}
	if user.IsConfirmed {
		return apperrors.ErrAlreadyConfirmed
	}
	code, err := s.newCode(tx)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.users.SetConfirmationCode(tx, user.ID, &code); err != nil {
		return apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	s.mailer.SendConfirmationCode(ctx, user, code)
	return nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	resp := &dto.LoginResponse{User: sessionUser(user)}

	if !user.IsConfirmed {
		code := ""
		if user.ConfirmationCode != nil {
			code = *user.ConfirmationCode
		} else {
			if code, err = s.newCode(db); err != nil {
				return nil, apperrors.InternalError(err)
			}
			if err := s.users.SetConfirmationCode(db, user.ID, &code); err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
		s.mailer.SendConfirmationCode(ctx, user, code)

		resp.Message = "Account not confirmed. A confirmation code has been sent to your email."
		resp.ConfirmationRequired = true
		return resp, nil
	}

	if user.IsStylist() {
		profile, err := s.stylists.FindProfile(db, user.ID)
		switch {
		case err == nil:
			resp.Warnings = stylistWarnings(profile, s.now())
		case !errors.Is(err, repositories.ErrProfileNotFound):
			return nil, apperrors.InternalError(err)
		}
	}

	resp.Message = "Login successful"
	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID, "role", user.Role)
	return resp, nil
}

func (s *authService) Forgot(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return false, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.users.FindByEmail(tx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	code, err := s.newCode(tx)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	if err := s.users.SetConfirmationCode(tx, user.ID, &code); err != nil {
		return false, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return false, apperrors.InternalError(err)
	}

	s.mailer.SendResetCode(ctx, user, code)
	return true, nil
}

func (s *authService) VerifyResetCode(ctx context.Context, db *gorm.DB, email, code string) error {
	user, err := s.users.FindByEmail(db, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrResetSessionExpired
		}
		return apperrors.InternalError(err)
	}
	if !codesEqual(user.ConfirmationCode, code) {
		return apperrors.ErrInvalidResetCode
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, db *gorm.DB, email string, req *dto.ResetRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"new_password": err.Error()})
	}

	user, err := s.users.FindByEmail(db, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrResetSessionExpired
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.users.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "Password reset", "user_id", user.ID)
	return nil
}

func (s *authService) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := loadUser(db, s.users, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.MeResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		City:        user.City,
		Phone:       user.Phone,
		IsConfirmed: user.IsConfirmed,
		Language:    user.Language,
	}
	if user.IsStylist() {
		if profile, err := s.stylists.FindProfile(db, user.ID); err == nil {
			resp.ProfileImage = s.uploads.URL(ctx, profile.ProfileImage)
		}
	}
	return resp, nil
}

func (s *authService) UpdateLanguage(ctx context.Context, db *gorm.DB, userID, lang string) error {
	if userID == "" {
		return nil
	}
	if err := s.users.UpdateFields(db, userID, map[string]interface{}{"language": lang}); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}
