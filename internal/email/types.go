package email

// Email - письмо с кодом. Отправитель всегда берется из SMTPConfig.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

type TemplateData map[string]interface{}
