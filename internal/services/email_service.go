package services

import (
	"context"

	"hela9_backend/internal/email"
	"hela9_backend/internal/logger"
	"hela9_backend/internal/models"
)

const (
	subjectConfirmationCode = "Your 7ela9 Account Confirmation Code"
	subjectPasswordReset    = "Your 7ela9 Password Reset Code"
)

// EmailService отправляет письма с кодами. Ошибки отправки только логируются.
type EmailService struct {
	provider email.Provider
	appName  string
}

func NewEmailService(provider email.Provider, appName string) *EmailService {
	if appName == "" {
		appName = "7ela9"
	}
	return &EmailService{provider: provider, appName: appName}
}

func (s *EmailService) SendConfirmationCode(ctx context.Context, user *models.User, code string) {
	s.sendCode(ctx, user, code, subjectConfirmationCode, email.TemplateConfirmationCode)
}

func (s *EmailService) SendResetCode(ctx context.Context, user *models.User, code string) {
	s.sendCode(ctx, user, code, subjectPasswordReset, email.TemplatePasswordReset)
}

func (s *EmailService) sendCode(ctx context.Context, user *models.User, code, subject, template string) {
	if s == nil || s.provider == nil {
		logger.CtxWarn(ctx, "Email provider not configured, code not sent", "user_id", user.ID)
		return
	}
	data := email.TemplateData{
		"Name":    user.Name,
		"AppName": s.appName,
		"Code":    code,
	}
	if err := s.provider.SendTemplate([]string{user.Email}, subject, template, data); err != nil {
		logger.CtxWithError(ctx, "Failed to send code email", err, "user_id", user.ID, "template", template)
		return
	}
	logger.CtxInfo(ctx, "Code email sent", "user_id", user.ID, "template", template)
}
