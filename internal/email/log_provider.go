package email

import (
	"hela9_backend/internal/logger"
)

// LogProvider используется, когда SMTP не настроен: письмо только пишется в лог.
type LogProvider struct {
	renderer TemplateRenderer
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("Email (not sent, SMTP disabled)",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	logger.Info("Email template (not sent, SMTP disabled)",
		"to", to,
		"subject", subject,
		"template", templateName,
		"data", data,
	)
	if p.renderer == nil {
		return nil
	}
	_, err := p.renderer.Render(templateName, data)
	return err
}

func (p *LogProvider) Validate() error { return nil }

func (p *LogProvider) Close() error { return nil }
